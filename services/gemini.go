package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"syscall"
	"time"

	"worksheethub/config"
)

const defaultGeminiTimeout = 60 * time.Second

// DefaultGemini is the process-wide upstream caller, wired once at
// startup.
var DefaultGemini *GeminiService

// InitWorksheetService configures the upstream caller from config.
func InitWorksheetService(cfg *config.Config) {
	DefaultGemini = NewGeminiService(cfg)
}

// OutcomeKind classifies the result of one resilient upstream call.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeTimedOut
	OutcomeUpstreamRejected
	OutcomeNetworkTransient
	OutcomeNetworkFatal
)

// RequestOutcome is the settled result of a Call, including how many
// network attempts were made. It is consumed immediately by the
// controller and never stored.
type RequestOutcome struct {
	Kind     OutcomeKind
	Status   int
	Body     []byte
	Attempts int
	Cause    error
}

// GeminiService issues generateContent calls against the Gemini REST
// API under a bounded deadline, retrying at most once on transient
// transport failures or 5xx responses.
type GeminiService struct {
	apiKey     string
	model      string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

func NewGeminiService(cfg *config.Config) *GeminiService {
	timeout := time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultGeminiTimeout
	}
	return &GeminiService{
		apiKey:     cfg.Gemini.ApiKey,
		model:      cfg.Gemini.Model,
		baseURL:    cfg.Gemini.BaseURL,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// NewGeminiServiceWithClient is intended for tests; it avoids network
// access by letting the caller swap in a scripted http.Client.
func NewGeminiServiceWithClient(cfg *config.Config, client *http.Client) *GeminiService {
	s := NewGeminiService(cfg)
	if client != nil {
		s.httpClient = client
	}
	return s
}

// Configured reports whether an API key is present.
func (s *GeminiService) Configured() bool {
	return s.apiKey != ""
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	TopK             int     `json:"topK"`
	TopP             float64 `json:"topP"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig generationConfig  `json:"generationConfig"`
	SafetySettings   []safetySetting   `json:"safetySettings"`
}

func buildGenerateRequest(prompt string) generateRequest {
	return generateRequest{
		Contents: []generateContent{
			{Parts: []generatePart{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:      0.7,
			TopK:             40,
			TopP:             0.95,
			MaxOutputTokens:  8192,
			ResponseMimeType: "application/json",
		},
		SafetySettings: []safetySetting{
			{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"},
			{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_NONE"},
			{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_NONE"},
			{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_NONE"},
		},
	}
}

// Call runs the upstream request with at most one retry total: a
// transient transport failure on the first attempt, or a completed 5xx
// response, gets a single retry under a fresh deadline. A retried call
// is never retried again on either classification.
func (s *GeminiService) Call(ctx context.Context, prompt string) RequestOutcome {
	attempts := 0

	status, body, err := s.attempt(ctx, prompt)
	attempts++
	if err != nil {
		if isDeadline(err) {
			return RequestOutcome{Kind: OutcomeTimedOut, Attempts: attempts, Cause: err}
		}
		if !isTransient(err) {
			return RequestOutcome{Kind: OutcomeNetworkFatal, Attempts: attempts, Cause: err}
		}
		status, body, err = s.attempt(ctx, prompt)
		attempts++
		if err != nil {
			if isDeadline(err) {
				return RequestOutcome{Kind: OutcomeTimedOut, Attempts: attempts, Cause: err}
			}
			// A second transient failure is surfaced, not retried again.
			if isTransient(err) {
				return RequestOutcome{Kind: OutcomeNetworkTransient, Attempts: attempts, Cause: err}
			}
			return RequestOutcome{Kind: OutcomeNetworkFatal, Attempts: attempts, Cause: err}
		}
		// The single retry is spent; whatever status came back is final.
		return settle(status, body, attempts)
	}

	if is2xx(status) {
		return RequestOutcome{Kind: OutcomeSuccess, Status: status, Body: body, Attempts: attempts}
	}

	if status >= 500 {
		status2, body2, err2 := s.attempt(ctx, prompt)
		attempts++
		if err2 != nil {
			if isDeadline(err2) {
				return RequestOutcome{Kind: OutcomeTimedOut, Attempts: attempts, Cause: err2}
			}
			return RequestOutcome{Kind: OutcomeNetworkFatal, Attempts: attempts, Cause: err2}
		}
		return settle(status2, body2, attempts)
	}

	// 4xx and other non-5xx rejections are never retried.
	return RequestOutcome{Kind: OutcomeUpstreamRejected, Status: status, Body: body, Attempts: attempts}
}

func settle(status int, body []byte, attempts int) RequestOutcome {
	if is2xx(status) {
		return RequestOutcome{Kind: OutcomeSuccess, Status: status, Body: body, Attempts: attempts}
	}
	return RequestOutcome{Kind: OutcomeUpstreamRejected, Status: status, Body: body, Attempts: attempts}
}

// attempt performs one POST under its own deadline. The cancel func is
// deferred so the timer is released as soon as the attempt settles.
func (s *GeminiService) attempt(ctx context.Context, prompt string) (int, []byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	payload, err := json.Marshal(buildGenerateRequest(prompt))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

// isDeadline distinguishes our own deadline expiring from connect-level
// timeouts, which are treated as transient instead.
func isDeadline(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// isTransient matches connection resets, refused connections and dial
// timeouts, the failures worth a single immediate retry.
func isTransient(err error) bool {
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
