package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"worksheethub/services"
	"worksheethub/structs"
)

// MaxPromptLength bounds the prompt accepted at the proxy boundary.
const MaxPromptLength = 100000

// GenerateWorksheet proxies one worksheet-generation request to the
// upstream model and maps every failure class to its HTTP status.
// Malformed generated text is not a failure: it degrades to a raw-text
// 200 response.
func GenerateWorksheet(ctx *gin.Context) {
	var req structs.GenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
		return
	}
	if req.Prompt == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
		return
	}
	if len(req.Prompt) > MaxPromptLength {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Prompt too long (max %d characters)", MaxPromptLength),
		})
		return
	}

	if services.DefaultGemini == nil || !services.DefaultGemini.Configured() {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Gemini API key not configured"})
		return
	}

	outcome := services.DefaultGemini.Call(ctx.Request.Context(), req.Prompt)
	switch outcome.Kind {
	case services.OutcomeSuccess:
		// fall through to extraction
	case services.OutcomeTimedOut:
		ctx.JSON(http.StatusGatewayTimeout, gin.H{"error": "Request timed out. Please try again."})
		return
	case services.OutcomeUpstreamRejected:
		ctx.JSON(outcome.Status, gin.H{
			"error":   fmt.Sprintf("Gemini API error: %d", outcome.Status),
			"details": string(outcome.Body),
		})
		return
	default:
		ctx.JSON(http.StatusBadGateway, gin.H{
			"error":   "Upstream network failure. Please try again.",
			"details": outcome.Cause.Error(),
		})
		return
	}

	extraction, err := services.ExtractWorksheet(outcome.Body)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "No content generated"})
		return
	}

	if extraction.Document == nil {
		ctx.JSON(http.StatusOK, gin.H{
			"raw":        extraction.RawText,
			"parseError": extraction.ParseError,
		})
		return
	}

	services.NormalizeWorksheet(extraction.Document)
	ctx.JSON(http.StatusOK, gin.H{"worksheet": extraction.Document})
}

// RenderWorksheet turns a client-supplied worksheet document, or a
// raw-text fallback, into sanitized printable markup.
func RenderWorksheet(ctx *gin.Context) {
	var req structs.RenderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid render request"})
		return
	}

	if req.Worksheet != nil {
		services.NormalizeWorksheet(req.Worksheet)
		html := services.DefaultRenderer.Render(req.Worksheet, req.IncludeAnswers)
		ctx.JSON(http.StatusOK, structs.RenderResponse{HTML: html})
		return
	}
	if req.Raw != "" {
		html := services.DefaultRenderer.RenderRaw(req.Title, req.Raw)
		ctx.JSON(http.StatusOK, structs.RenderResponse{HTML: html})
		return
	}
	ctx.JSON(http.StatusBadRequest, gin.H{"error": "Either worksheet or raw text is required"})
}

// BuildPrompt lets the picker UI preview the prompt that /api/generate
// would send for its current selection.
func BuildPrompt(ctx *gin.Context) {
	var req services.PromptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prompt request"})
		return
	}
	if req.SubjectName == "" || req.ChapterName == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Subject and chapter are required"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"prompt": services.BuildPrompt(req)})
}
