package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"worksheethub/config"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc, timeoutSeconds int) *GeminiService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Gemini.ApiKey = "test-key"
	cfg.Gemini.Model = "gemini-1.5-flash"
	cfg.Gemini.BaseURL = server.URL
	cfg.Gemini.TimeoutSeconds = timeoutSeconds
	return NewGeminiService(cfg)
}

func envelopeWithText(t *testing.T, text string) []byte {
	t.Helper()
	payload := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal envelope: %v", err)
	}
	return body
}

func TestCallSuccess(t *testing.T) {
	body := envelopeWithText(t, `{"title":"Plants"}`)
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}

	s := newTestGemini(t, handler, 5)
	outcome := s.Call(context.Background(), "make a worksheet")
	if outcome.Kind != OutcomeSuccess {
		t.Fatalf("expected success, got kind %d (cause %v)", outcome.Kind, outcome.Cause)
	}
	if outcome.Attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", outcome.Attempts)
	}
	if string(outcome.Body) != string(body) {
		t.Errorf("body not passed through: %s", outcome.Body)
	}
}

func TestCallTransientThenSuccess(t *testing.T) {
	calls := 0
	handler := func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Fatal("response writer does not support hijacking")
			}
			conn, _, err := hj.Hijack()
			if err != nil {
				t.Fatalf("hijack failed: %v", err)
			}
			conn.Close()
			return
		}
		w.Write(envelopeWithText(t, `{"title":"Numbers"}`))
	}

	s := newTestGemini(t, handler, 5)
	outcome := s.Call(context.Background(), "make a worksheet")
	if outcome.Kind != OutcomeSuccess {
		t.Fatalf("expected success after retry, got kind %d (cause %v)", outcome.Kind, outcome.Cause)
	}
	if outcome.Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", outcome.Attempts)
	}
	if calls != 2 {
		t.Errorf("expected upstream to see 2 requests, saw %d", calls)
	}
}

func TestCallTwoTransientFailures(t *testing.T) {
	calls := 0
	handler := func(w http.ResponseWriter, r *http.Request) {
		calls++
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Fatal("response writer does not support hijacking")
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			t.Fatalf("hijack failed: %v", err)
		}
		conn.Close()
	}

	s := newTestGemini(t, handler, 5)
	outcome := s.Call(context.Background(), "make a worksheet")
	if outcome.Kind != OutcomeNetworkTransient {
		t.Fatalf("expected terminal transient failure, got kind %d (cause %v)", outcome.Kind, outcome.Cause)
	}
	if outcome.Attempts != 2 {
		t.Errorf("retries must not compound: expected 2 attempts, got %d", outcome.Attempts)
	}
	if calls != 2 {
		t.Errorf("expected exactly 2 requests, saw %d", calls)
	}
}

func TestCallTwoServerErrors(t *testing.T) {
	calls := 0
	handler := func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal"}`))
	}

	s := newTestGemini(t, handler, 5)
	outcome := s.Call(context.Background(), "make a worksheet")
	if outcome.Kind != OutcomeUpstreamRejected {
		t.Fatalf("expected upstream rejection, got kind %d", outcome.Kind)
	}
	if outcome.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", outcome.Status)
	}
	if outcome.Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", outcome.Attempts)
	}
	if calls != 2 {
		t.Errorf("expected exactly 2 requests, saw %d", calls)
	}
}

func TestCallServerErrorThenSuccess(t *testing.T) {
	calls := 0
	handler := func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write(envelopeWithText(t, `{"title":"Shapes"}`))
	}

	s := newTestGemini(t, handler, 5)
	outcome := s.Call(context.Background(), "make a worksheet")
	if outcome.Kind != OutcomeSuccess {
		t.Fatalf("expected success on retry, got kind %d", outcome.Kind)
	}
	if outcome.Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", outcome.Attempts)
	}
}

func TestCallClientErrorNotRetried(t *testing.T) {
	calls := 0
	handler := func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad request"}`))
	}

	s := newTestGemini(t, handler, 5)
	outcome := s.Call(context.Background(), "make a worksheet")
	if outcome.Kind != OutcomeUpstreamRejected {
		t.Fatalf("expected upstream rejection, got kind %d", outcome.Kind)
	}
	if outcome.Status != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", outcome.Status)
	}
	if outcome.Attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", outcome.Attempts)
	}
	if calls != 1 {
		t.Errorf("expected exactly 1 request, saw %d", calls)
	}
}

func TestCallDeadlineExpiry(t *testing.T) {
	release := make(chan struct{})
	handler := func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-time.After(10 * time.Second):
		}
	}

	s := newTestGemini(t, handler, 1)
	// Registered after the server's cleanup so the handler is released
	// before Close waits on it.
	t.Cleanup(func() { close(release) })
	start := time.Now()
	outcome := s.Call(context.Background(), "make a worksheet")
	if outcome.Kind != OutcomeTimedOut {
		t.Fatalf("expected timeout, got kind %d (cause %v)", outcome.Kind, outcome.Cause)
	}
	if outcome.Attempts != 1 {
		t.Errorf("expected 1 attempt before timeout, got %d", outcome.Attempts)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("call was not cancelled promptly, took %s", elapsed)
	}
}
