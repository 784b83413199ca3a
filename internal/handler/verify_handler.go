package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"agni/internal/model"
	"agni/internal/verify"

	"github.com/gin-gonic/gin"
)

const (
	ServiceName    = "A.G.N.I. AI Real-time Verification"
	ServiceVersion = "2.0.0"
)

type Verifier interface {
	Verify(ctx context.Context, text string) model.VerificationResponse
}

// Status is the capability snapshot reported by /health and the landing page.
type Status struct {
	GenerativeConfigured bool
	SearchConfigured     bool
	CacheConfigured      bool
	StaticDir            string
}

// NewStatus reports the clients Bootstrap actually built, not the
// credentials that happen to be set.
func NewStatus(caps verify.Capabilities, staticDir string) Status {
	return Status{
		GenerativeConfigured: caps.Generative,
		SearchConfigured:     caps.Search,
		CacheConfigured:      caps.Cache,
		StaticDir:            staticDir,
	}
}

func (s Status) staticFiles() bool {
	if s.StaticDir == "" {
		return false
	}
	info, err := os.Stat(s.StaticDir)
	return err == nil && info.IsDir()
}

func (s Status) indexPage() bool {
	if !s.staticFiles() {
		return false
	}
	_, err := os.Stat(filepath.Join(s.StaticDir, "index.html"))
	return err == nil
}

type VerifyHandler struct {
	verifier Verifier
	status   Status
}

func NewVerifyHandler(verifier Verifier, status Status) *VerifyHandler {
	return &VerifyHandler{verifier: verifier, status: status}
}

func (h *VerifyHandler) VerifyNews(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid verify request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	text, err := ValidateText(req.Text)
	if err != nil {
		if !errors.Is(err, ErrEmptyText) && !errors.Is(err, ErrTextTooShort) && !errors.Is(err, ErrTextTooLong) {
			slog.Error("unexpected validation error", "error", err)
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	result := h.verifier.Verify(c.Request.Context(), text)

	c.JSON(http.StatusOK, toVerificationResponse(result))
}

func (h *VerifyHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Service:   ServiceName,
		Version:   ServiceVersion,
		Capabilities: CapabilitiesResponse{
			GenerativeText:       h.status.GenerativeConfigured,
			WebSearch:            h.status.SearchConfigured,
			EvidenceCache:        h.status.CacheConfigured,
			StaticFiles:          h.status.staticFiles(),
			RealTimeVerification: true,
		},
		APIStatus: APIStatusResponse{
			GenerativeConfigured: h.status.GenerativeConfigured,
			SearchConfigured:     h.status.SearchConfigured,
			FullFunctionality:    h.status.GenerativeConfigured && h.status.SearchConfigured,
		},
	})
}

func toVerificationResponse(r model.VerificationResponse) VerificationResponse {
	sources := make([]string, len(r.Sources))
	copy(sources, r.Sources)

	results := make([]SearchResultResponse, len(r.Evidence))
	for i, e := range r.Evidence {
		results[i] = SearchResultResponse{
			Title:   e.Title,
			Link:    e.Link,
			Snippet: e.Snippet,
			Source:  e.Source,
		}
	}

	return VerificationResponse{
		Classification: string(r.Classification),
		Reason:         r.Reason,
		Sources:        sources,
		SearchResults:  results,
		Confidence:     r.Confidence,
		Timestamp:      r.Timestamp.Format(time.RFC3339),
		ProcessingTime: r.ProcessingTime.Seconds(),
	}
}
