package services

import (
	"encoding/json"
	"errors"
	"strings"

	"worksheethub/models"
)

// ErrNoContent means the upstream envelope did not carry generated text
// at the expected nesting path. It is terminal: retrying a response
// shape problem is pointless.
var ErrNoContent = errors.New("no content generated")

// Extraction is the usable content pulled out of an upstream reply.
// Either Document is set, or RawText carries the generated text that
// failed to parse as a worksheet. The raw-text case is a successful,
// degraded outcome, not an error.
type Extraction struct {
	Document   *models.WorksheetDocument
	RawText    string
	ParseError string
}

type geminiEnvelope struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ExtractWorksheet pulls the generated text out of a Gemini response
// body and tries to parse it as a worksheet document.
func ExtractWorksheet(body []byte) (Extraction, error) {
	var envelope geminiEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Extraction{}, ErrNoContent
	}

	text := generatedText(envelope)
	if text == "" {
		return Extraction{}, ErrNoContent
	}

	cleaned := CleanFences(text)

	var doc models.WorksheetDocument
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return Extraction{
			RawText:    text,
			ParseError: "Failed to parse as JSON, returning raw text",
		}, nil
	}
	return Extraction{Document: &doc}, nil
}

func generatedText(envelope geminiEnvelope) string {
	if len(envelope.Candidates) == 0 {
		return ""
	}
	parts := envelope.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}

// CleanFences strips one leading markdown code-fence marker (with or
// without a language tag) and one trailing marker. Stripping is never
// recursive: nested fences inside the text are left alone.
func CleanFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		rest := cleaned[len("```"):]
		if i := strings.IndexByte(rest, '\n'); i >= 0 && isFenceTag(rest[:i]) {
			rest = rest[i+1:]
		}
		cleaned = rest
	}
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// isFenceTag reports whether the remainder of a fence line is a bare
// language tag, or nothing at all.
func isFenceTag(s string) bool {
	for _, r := range strings.TrimSpace(s) {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
