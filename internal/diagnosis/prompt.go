package diagnosis

import (
	"fmt"

	"github.com/heartmarshall/nivara-backend/internal/domain"
)

// PromptVersion identifies the label layout shared by Prompt and Normalize.
// Bump it whenever either side changes.
const PromptVersion = "2025-10.1"

// Prompt asks a vision model to diagnose a plant photo using the labels
// Normalize understands.
const Prompt = `You are an expert plant pathologist and agricultural specialist. Analyze this plant image and provide a detailed disease diagnosis.

Please provide your analysis in the following structured format:

**Disease Name:** [Name of the disease if detected, or "Healthy Plant" if no disease is found]

**Confidence Level:** [High/Medium/Low]

**Description:** [Detailed description of what you observe in the image, including symptoms, affected areas, and any visible signs of disease or health issues]

**Treatment Recommendations:** [If disease is detected, provide specific treatment steps including any recommended fungicides, pesticides, or cultural practices. If healthy, provide general care tips]

**Prevention Tips:** [Advice on how to prevent this disease in the future, including proper watering, fertilization, spacing, and monitoring practices]

Be thorough, accurate, and provide actionable advice. If the image is unclear or you cannot identify a specific disease, please state that clearly.`

const libraryPrompt = `You are an expert plant pathologist writing an entry for a botanical disease library. Describe the plant disease "%s".

Answer in %s using exactly this structured format:

**Disease Name:** [Common name of the disease, or "Unknown" if the query is not a plant disease]

**Confidence Level:** [High/Medium/Low]

**Description:** [What the disease is, which crops it affects and its typical symptoms]

**Treatment Recommendations:** [Specific treatment steps, one sentence per step]

**Prevention Tips:** [Prevention advice, one sentence per step]`

// LibraryPrompt asks a text model for a disease library entry about query,
// answered in lang, using the same labels as Prompt.
func LibraryPrompt(query string, lang domain.Language) string {
	language := "English"
	if lang == domain.LanguageHI {
		language = "Hindi (keep the bold labels in English)"
	}
	return fmt.Sprintf(libraryPrompt, query, language)
}

// SplitSentences segments a normalized field into list items.
func SplitSentences(field string) []string {
	return domain.SplitSentences(field)
}
