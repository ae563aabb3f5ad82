// Package extraction turns free-text clinical notes into a structured
// Summary, either through a generative backend or through ordered pattern
// tables.
package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Alijeyrad/health_companion/pkg/observability"
)

// Generator is a text-generation backend.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Extract never fails. With a non-nil gen the backend is asked for the JSON
// summary first; backend errors and malformed output fall back to the
// pattern tables. A panic anywhere yields an empty summary.
func Extract(ctx context.Context, text string, gen Generator) (s *Summary) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "extraction panicked", "panic", r)
			s = Empty()
		}
	}()

	source := observability.SourceHeuristic
	if gen != nil {
		summary, err := extractWithGenerator(ctx, text, gen)
		if err == nil {
			observability.CountExtraction(ctx, observability.SourceGenerator)
			return summary
		}
		slog.WarnContext(ctx, "generative extraction failed, using heuristics", "err", err)
		observability.CountGeneratorError(ctx, "extraction")
		source = observability.SourceFallback
	}

	observability.CountExtraction(ctx, source)
	return Heuristic(text)
}

func extractWithGenerator(ctx context.Context, text string, gen Generator) (*Summary, error) {
	out, err := gen.Generate(ctx, buildPrompt(text))
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	summary, err := Decode([]byte(StripFences(out, "json")))
	if err != nil {
		return nil, fmt.Errorf("decode generated summary: %w", err)
	}
	return summary, nil
}

// StripFences removes markdown code fences, optionally tagged with lang,
// from generated text.
func StripFences(s, lang string) string {
	if lang != "" {
		s = strings.ReplaceAll(s, "```"+lang, "")
	}
	return strings.TrimSpace(strings.ReplaceAll(s, "```", ""))
}

func buildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}

const promptTemplate = `Extract the following medical information from the given medical note in a structured JSON format:

1. Patient Details (name, age, gender, marital status, residence)
2. Chief Complaints (primary symptoms and duration)
3. Chief Complaint Details (location in body, severity on scale 1-10)
4. Past History (previous illnesses, surgeries)
5. Chronic Diseases (diabetes, hypertension, etc.)
6. Lifestyle (smoking, alcohol, recreational drugs with frequency)
7. Drug History (current medications)
8. Family History (conditions in family members)
9. Allergies (especially medication allergies)
10. Symptoms (all mentioned symptoms)
11. Possible Diseases (based on mentioned symptoms)

Instructions:
- Extract only if clearly mentioned
- Be concise but thorough
- IMPORTANT: Return ALL fields in the JSON structure exactly as shown below, even if no information is found
- For empty fields, use null for string fields and empty arrays [] for list fields
- Prioritize medical relevance
- For allergies, be especially thorough - this is critical patient safety information

Medical Note: "%s"

Output Format JSON:
{
    "patient_details": {
        "name": "string or null",
        "age": "string or null",
        "gender": "string or null",
        "marital_status": "string or null",
        "residence": "string or null"
    },
    "chief_complaints": ["complaint with duration", ...],
    "chief_complaint_details": [
        {
            "complaint": "string",
            "location": "string or null",
            "severity": "string or null",
            "duration": "string or null"
        },
        ...
    ],
    "past_history": ["previous illness/surgery", ...],
    "chronic_diseases": ["disease", ...],
    "lifestyle": [
        {
            "habit": "string",
            "frequency": "string or null",
            "duration": "string or null"
        },
        ...
    ],
    "drug_history": ["medication", ...],
    "family_history": ["condition with relation", ...],
    "allergies": ["allergy", ...],
    "symptoms": ["symptom", ...],
    "possible_diseases": ["disease", ...]
}
`
