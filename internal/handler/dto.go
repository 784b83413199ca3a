package handler

type VerifyRequest struct {
	Text string `json:"text"`
}

type SearchResultResponse struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
}

type VerificationResponse struct {
	Classification string                 `json:"classification"`
	Reason         string                 `json:"reason"`
	Sources        []string               `json:"sources"`
	SearchResults  []SearchResultResponse `json:"search_results"`
	Confidence     float64                `json:"confidence"`
	Timestamp      string                 `json:"timestamp"`
	ProcessingTime float64                `json:"processing_time"`
}

type CapabilitiesResponse struct {
	GenerativeText       bool `json:"generative_text"`
	WebSearch            bool `json:"web_search"`
	EvidenceCache        bool `json:"evidence_cache"`
	StaticFiles          bool `json:"static_files"`
	RealTimeVerification bool `json:"real_time_verification"`
}

type APIStatusResponse struct {
	GenerativeConfigured bool `json:"generative_configured"`
	SearchConfigured     bool `json:"search_configured"`
	FullFunctionality    bool `json:"full_functionality"`
}

type HealthResponse struct {
	Status       string               `json:"status"`
	Timestamp    string               `json:"timestamp"`
	Service      string               `json:"service"`
	Version      string               `json:"version"`
	Capabilities CapabilitiesResponse `json:"capabilities"`
	APIStatus    APIStatusResponse    `json:"api_status"`
}
