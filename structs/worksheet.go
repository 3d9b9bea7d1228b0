package structs

import "worksheethub/models"

// GenerateRequest is the proxy boundary payload: the fully built prompt
// text the client wants forwarded upstream.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// RenderRequest asks the server to turn a worksheet document (or a
// raw-text fallback) into sanitized printable markup.
type RenderRequest struct {
	Worksheet      *models.WorksheetDocument `json:"worksheet,omitempty"`
	IncludeAnswers bool                      `json:"includeAnswers"`
	Raw            string                    `json:"raw,omitempty"`
	Title          string                    `json:"title,omitempty"`
}

// RenderResponse carries the sanitized markup back to the client.
type RenderResponse struct {
	HTML string `json:"html"`
}
