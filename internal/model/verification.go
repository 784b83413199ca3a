package model

import "time"

type Classification string

const (
	Verified       Classification = "Verified"
	Misinformation Classification = "Misinformation"
	Unverifiable   Classification = "Unverifiable"

	NoVerifiableClaims = "no verifiable claims"
)

// ParseClassification maps anything outside the known set to Unverifiable.
func ParseClassification(raw any) Classification {
	s, ok := raw.(string)
	if !ok {
		return Unverifiable
	}

	switch c := Classification(s); c {
	case Verified, Misinformation, Unverifiable:
		return c
	default:
		return Unverifiable
	}
}

type EvidenceRecord struct {
	Title   string
	Link    string
	Snippet string
	Source  string
}

type Verdict struct {
	Classification Classification
	Reason         string
	Confidence     float64
	Sources        []string
	Evidence       []EvidenceRecord
	KeyFindings    []string
}

type VerificationResponse struct {
	Verdict
	Timestamp      time.Time
	ProcessingTime time.Duration
}

// ClampConfidence keeps a confidence score inside [0, 1].
func ClampConfidence(v float64) float64 {
	if v != v {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// FirstN returns at most n records and the links they point to.
func FirstN(evidence []EvidenceRecord, n int) ([]EvidenceRecord, []string) {
	if len(evidence) < n {
		n = len(evidence)
	}

	records := make([]EvidenceRecord, n)
	copy(records, evidence[:n])

	links := make([]string, n)
	for i, r := range records {
		links[i] = r.Link
	}
	return records, links
}
