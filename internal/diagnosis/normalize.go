// Package diagnosis turns free-text model output into a fixed set of labeled
// fields. The prompt that asks the model for those labels lives in this
// package too, and the two are versioned together.
package diagnosis

import (
	"regexp"
	"strings"
)

// Fallback values used when a label is missing from the model output.
const (
	FallbackDisease    = "Unknown"
	FallbackConfidence = "Medium"
	FallbackTreatment  = "No specific treatment recommendations available."
	FallbackPrevention = "Maintain good plant hygiene and monitor regularly."
)

// Result is the normalized model output. Every field is always populated.
type Result struct {
	Disease     string `json:"disease"`
	Confidence  string `json:"confidence"`
	Description string `json:"description"`
	Treatment   string `json:"treatment"`
	Prevention  string `json:"prevention"`
}

// Each field is tried against the bold-labeled pattern first, then the plain one.
var (
	diseasePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\*\*Disease Name:\*\*\s*(.+?)(?:\n|$)`),
		regexp.MustCompile(`(?i)Disease Name:\s*(.+?)(?:\n|$)`),
	}
	confidencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\*\*Confidence Level:\*\*\s*(.+?)(?:\n|$)`),
		regexp.MustCompile(`(?i)Confidence Level:\s*(.+?)(?:\n|$)`),
	}
	descriptionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\*\*Description:\*\*\s*([\s\S]+?)(?:\*\*Treatment|\*\*Prevention|$)`),
		regexp.MustCompile(`(?i)Description:\s*([\s\S]+?)(?:\n\nTreatment|\n\nPrevention|$)`),
	}
	treatmentPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\*\*Treatment Recommendations:\*\*\s*([\s\S]+?)(?:\*\*Prevention|$)`),
		regexp.MustCompile(`(?i)Treatment Recommendations:\s*([\s\S]+?)(?:\n\nPrevention|$)`),
	}
	preventionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\*\*Prevention Tips:\*\*\s*([\s\S]+?)$`),
		regexp.MustCompile(`(?i)Prevention Tips:\s*([\s\S]+?)$`),
	}
)

// Normalize extracts the five labeled fields from text. It never fails:
// a field whose label is absent gets its fallback value, and a missing
// description falls back to the whole input unchanged.
func Normalize(text string) Result {
	return Result{
		Disease:     extract(text, diseasePatterns, FallbackDisease),
		Confidence:  extract(text, confidencePatterns, FallbackConfidence),
		Description: extract(text, descriptionPatterns, text),
		Treatment:   extract(text, treatmentPatterns, FallbackTreatment),
		Prevention:  extract(text, preventionPatterns, FallbackPrevention),
	}
}

func extract(text string, patterns []*regexp.Regexp, fallback string) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return fallback
}

// Confidence labels the prompt asks the model to choose from.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)
