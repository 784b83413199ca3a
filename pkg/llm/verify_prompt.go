package llm

import (
	"fmt"
	"strings"
)

const claimExtractionPrompt = `Analyze the following text and extract 2-3 key factual claims that can be verified through search.
Focus on specific, verifiable statements (names, dates, events, statistics, etc.).
Ignore opinions and subjective statements.

Text: "%s"

Return the claims as a JSON array of strings. Example:
["claim 1", "claim 2", "claim 3"]

If no verifiable claims are found, return: ["no verifiable claims"]`

const verdictPrompt = `You are A.G.N.I. (Advanced General News Intelligence), an expert fact-checker with access to real-time information.

TASK: Analyze the following claim and determine its accuracy using the provided search results.

CLAIM TO VERIFY: "%s"
%s
INSTRUCTIONS:
1. Carefully analyze the claim against the search results
2. Look for corroboration or contradiction in reliable sources
3. Consider source credibility (news outlets, official sites, fact-checkers)
4. Assign a confidence score (0.0 to 1.0) based on evidence strength

RESPONSE FORMAT (JSON only):
{
    "classification": "Verified" | "Misinformation" | "Unverifiable",
    "reason": "2-3 sentence explanation citing specific sources when possible",
    "confidence": 0.0-1.0,
    "key_findings": ["finding 1", "finding 2"]
}

CLASSIFICATION RULES:
- "Verified": Multiple reliable sources confirm the claim (confidence > 0.7)
- "Misinformation": Reliable sources contradict the claim (confidence > 0.7)
- "Unverifiable": Insufficient evidence, opinion-based, or conflicting information

Respond with JSON only, no additional text.`

type EvidenceInput struct {
	Source  string
	Title   string
	Snippet string
	Link    string
}

func ClaimExtractionPrompt(text string) string {
	return fmt.Sprintf(claimExtractionPrompt, text)
}

func VerdictPrompt(text string, evidence []EvidenceInput) string {
	return fmt.Sprintf(verdictPrompt, text, formatEvidenceForVerdict(evidence))
}

func formatEvidenceForVerdict(evidence []EvidenceInput) string {
	if len(evidence) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\nRELEVANT SEARCH RESULTS:\n")
	for i, e := range evidence {
		sb.WriteString(fmt.Sprintf("%d. Source: %s\n", i+1, e.Source))
		sb.WriteString(fmt.Sprintf("   Title: %s\n", e.Title))
		sb.WriteString(fmt.Sprintf("   Content: %s\n", e.Snippet))
		sb.WriteString(fmt.Sprintf("   URL: %s\n\n", e.Link))
	}
	return sb.String()
}
