package handler

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

var landingTemplate = template.Must(template.New("landing").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>A.G.N.I. AI - Real-time Verification</title>
    <style>
        body { font-family: 'Segoe UI', Arial, sans-serif; max-width: 900px; margin: 40px auto; padding: 20px; background: #f5f7fa; }
        .card { background: white; padding: 25px; border-radius: 12px; margin: 20px 0; box-shadow: 0 4px 6px rgba(0,0,0,0.1); }
        .item { display: flex; justify-content: space-between; margin: 10px 0; }
        .ok { color: #10b981; font-weight: bold; }
        .off { color: #ef4444; font-weight: bold; }
        code { background: #374151; color: #e5e7eb; padding: 4px 8px; border-radius: 4px; }
    </style>
</head>
<body>
    <h1>A.G.N.I. AI</h1>
    <h2>Advanced General News Intelligence</h2>
    <div class="card">
        <h3>System Status</h3>
        {{range .Items}}
        <div class="item">
            <strong>{{.Name}}</strong>
            {{if .Active}}<span class="ok">ACTIVE</span>{{else}}<span class="off">NOT CONFIGURED</span>{{end}}
        </div>
        {{end}}
    </div>
    <div class="card">
        <h3>API Endpoints</h3>
        <p><strong>Verify News:</strong> <code>POST /api/verify_news</code></p>
        <p><strong>Health Check:</strong> <code>GET /health</code></p>
        <p><strong>Metrics:</strong> <code>GET /metrics</code></p>
    </div>
    <div class="card">
        <h3>Configuration</h3>
        <pre><code>GEMINI_API_KEY=your_gemini_key_here
GOOGLE_SEARCH_API_KEY=your_search_api_key
GOOGLE_SEARCH_ENGINE_ID=your_search_engine_id</code></pre>
    </div>
</body>
</html>`))

type statusItem struct {
	Name   string
	Active bool
}

// GetIndex redirects to the bundled frontend when there is one and
// otherwise renders a status page.
func (h *VerifyHandler) GetIndex(c *gin.Context) {
	if h.status.indexPage() {
		c.Redirect(http.StatusTemporaryRedirect, "/static/index.html")
		return
	}

	c.Render(http.StatusOK, render.HTML{
		Template: landingTemplate,
		Data: gin.H{
			"Items": []statusItem{
				{Name: "Generative AI", Active: h.status.GenerativeConfigured},
				{Name: "Google Search API", Active: h.status.SearchConfigured},
				{Name: "Evidence Cache", Active: h.status.CacheConfigured},
				{Name: "Static Files", Active: h.status.staticFiles()},
			},
		},
	})
}
