package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL        = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel          = "gemini-2.5-flash"
	defaultMaxRetries     = 3
	defaultInitialBackoff = 1 * time.Second
	defaultRequestTimeout = 60 * time.Second
)

// ErrMaxRetries signals that every attempt was consumed without a
// successful response.
var ErrMaxRetries = errors.New("max retries reached")

// StatusError is a terminal upstream failure: any non-2xx status that
// is not retryable.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api request failed with status: %d %s", e.Code, e.Status)
}

type Config struct {
	APIKey         string
	Model          string
	BaseURL        string
	MaxRetries     int
	InitialBackoff time.Duration
	RequestTimeout time.Duration
}

// Client talks to the Gemini generateContent endpoint. Rate-limit
// responses are retried with exponential backoff; any other non-2xx
// status is terminal.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *log.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

func NewClient(cfg Config, logger *log.Logger) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = defaultInitialBackoff
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.RequestTimeout},
		logger: logger,
		sleep:  sleepCtx,
	}
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
	Temperature      *float64        `json:"temperature,omitempty"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateJSON sends a single prompt and asks the model to answer with
// a JSON document. The returned string is the raw text payload; it is
// the caller's job to sanitize and parse it.
func (c *Client) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{ResponseMIMEType: "application/json"},
	}
	return c.generate(ctx, req)
}

// ExtractResume runs the structured resume extraction: skills,
// experience, education and project highlights, schema-constrained.
func (c *Client) ExtractResume(ctx context.Context, resumeText string) (json.RawMessage, error) {
	temp := 0.1
	req := generateRequest{
		Contents: []content{{Parts: []part{{
			Text: "Analyze and extract the required information from the following resume text:\n\nRESUME TEXT:\n---\n" + resumeText + "\n---",
		}}}},
		SystemInstruction: &content{Parts: []part{{Text: resumeSystemInstruction}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   json.RawMessage(resumeSchema),
			Temperature:      &temp,
		},
	}

	text, err := c.generate(ctx, req)
	if err != nil {
		return nil, err
	}

	var probe any
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return nil, fmt.Errorf("resume extraction returned invalid JSON: %w", err)
	}
	return json.RawMessage(text), nil
}

func (c *Client) generate(ctx context.Context, req generateRequest) (string, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return "", errors.New("gemini api key is not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)

	respBody, err := c.fetchWithRetry(ctx, url, body)
	if err != nil {
		return "", err
	}

	var out generateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("decode response envelope: %w", err)
	}

	text := ""
	if len(out.Candidates) > 0 && len(out.Candidates[0].Content.Parts) > 0 {
		text = out.Candidates[0].Content.Parts[0].Text
	}
	if text == "" {
		if out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("api error: %s", out.Error.Message)
		}
		return "", errors.New("api error: model returned an empty response")
	}
	return text, nil
}

// fetchWithRetry posts the payload, retrying rate-limited responses and
// transport failures with exponential backoff (1s, 2s, 4s, ...). Any
// other non-2xx status fails immediately.
func (c *Client) fetchWithRetry(ctx context.Context, url string, body []byte) ([]byte, error) {
	delay := c.cfg.InitialBackoff

	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		respBody, status, err := c.doOnce(ctx, url, body)
		if err != nil {
			if attempt < c.cfg.MaxRetries-1 {
				c.logger.Printf("[AI] request failed, retrying in %s: %v", delay, err)
				if serr := c.sleep(ctx, delay); serr != nil {
					return nil, serr
				}
				delay *= 2
				continue
			}
			return nil, err
		}

		if status >= 200 && status < 300 {
			return respBody, nil
		}

		if status == http.StatusTooManyRequests && attempt < c.cfg.MaxRetries-1 {
			c.logger.Printf("[AI] rate limited, retrying in %s", delay)
			if serr := c.sleep(ctx, delay); serr != nil {
				return nil, serr
			}
			delay *= 2
			continue
		}

		return nil, &StatusError{Code: status, Status: http.StatusText(status)}
	}

	return nil, ErrMaxRetries
}

func (c *Client) doOnce(ctx context.Context, url string, body []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return b, resp.StatusCode, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
