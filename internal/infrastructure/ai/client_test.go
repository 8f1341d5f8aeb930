package ai

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c := NewClient(Config{
		APIKey:         "test-key",
		Model:          "test-model",
		BaseURL:        baseURL,
		MaxRetries:     3,
		InitialBackoff: time.Millisecond,
	}, log.New(testWriter{t}, "", 0))
	c.sleep = func(context.Context, time.Duration) error { return nil }
	return c
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSpace(string(p)))
	return len(p), nil
}

func envelope(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
	return string(b)
}

func TestGenerateJSON_RetriesOn429ThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(envelope(`{"ok":true}`)))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	got, err := c.GenerateJSON(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"ok":true}` {
		t.Fatalf("unexpected text: %q", got)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("expected exactly 2 calls, got %d", n)
	}
}

func TestGenerateJSON_TerminalStatusDoesNotRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GenerateJSON(context.Background(), "prompt")

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected code: %d", se.Code)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected exactly 1 call, got %d", n)
	}
}

func TestGenerateJSON_RateLimitExhaustsRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GenerateJSON(context.Background(), "prompt")

	// the final attempt has no retries left, so the 429 itself surfaces
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusTooManyRequests {
		t.Fatalf("unexpected code: %d", se.Code)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Fatalf("expected 3 calls, got %d", n)
	}
}

func TestGenerateJSON_EmptyCandidatesSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GenerateJSON(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected api error with message, got %v", err)
	}
}

func TestGenerateJSON_MissingAPIKey(t *testing.T) {
	c := NewClient(Config{}, nil)
	if _, err := c.GenerateJSON(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestExtractResume_RejectsNonJSONOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(envelope("this is prose, not json")))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.ExtractResume(context.Background(), "resume text"); err == nil {
		t.Fatal("expected error for non-JSON extraction output")
	}
}

func TestExtractResume_SendsSchemaConstrainedRequest(t *testing.T) {
	var gotReq generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(envelope(`{"skills":["go"],"experience":[],"education":[],"project_highlights":[]}`)))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	out, err := c.ExtractResume(context.Background(), "some resume")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var analysis struct {
		Skills []string `json:"skills"`
	}
	if err := json.Unmarshal(out, &analysis); err != nil {
		t.Fatal(err)
	}
	if len(analysis.Skills) != 1 || analysis.Skills[0] != "go" {
		t.Fatalf("unexpected skills: %v", analysis.Skills)
	}

	if gotReq.SystemInstruction == nil {
		t.Fatal("expected system instruction")
	}
	if gotReq.GenerationConfig == nil || gotReq.GenerationConfig.ResponseMIMEType != "application/json" {
		t.Fatal("expected JSON response mime type")
	}
	if len(gotReq.GenerationConfig.ResponseSchema) == 0 {
		t.Fatal("expected response schema")
	}
}
