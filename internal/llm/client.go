// Package llm talks to a local Ollama server and turns its free-text
// replies into typed values.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// GenerateRequest is one prompt sent to the model.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	// JSON asks the server to constrain output to a JSON value.
	JSON bool
}

type GenerateResponse struct {
	Text    string
	Model   string
	Latency time.Duration
}

// Client generates text from a language model.
type Client interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
	// Available reports whether the server answers at all.
	Available(ctx context.Context) bool
}

type ollamaClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewOllamaClient returns a Client for the server at cfg.Endpoint.
func NewOllamaClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &ollamaClient{
		cfg: cfg,
		http: &http.Client{Transport: &http.Transport{
			DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		}},
		observer: observer,
	}
}

type generateBody struct {
	Model   string         `json:"model"`
	System  string         `json:"system,omitempty"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Format  string         `json:"format,omitempty"`
	Options generateOption `json:"options"`
}

type generateOption struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type generateReply struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

// Generate makes 1+MaxRetries attempts inside a single task timeout.
// Errors wrap ErrTimeout, ErrUnavailable or ErrRequestFailed.
func (c *ollamaClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.cfg.TaskTimeout(req.Task))
	defer cancel()

	tc := c.cfg.Tasks[req.Task]
	body := generateBody{
		Model:   c.cfg.Model,
		System:  req.SystemPrompt,
		Prompt:  req.UserPrompt,
		Options: generateOption{Temperature: tc.Temperature, NumPredict: tc.MaxTokens},
	}
	if req.JSON {
		body.Format = "json"
	}

	var (
		reply    *generateReply
		err      error
		attempts int
	)
	for attempts < 1+c.cfg.MaxRetries {
		attempts++
		reply, err = c.post(ctx, body)
		if err == nil || ctx.Err() != nil {
			break
		}
	}
	if err != nil {
		err = classify(ctx, err)
	}

	event := CallEvent{
		Task:      req.Task,
		Model:     c.cfg.Model,
		Latency:   time.Since(start),
		Attempts:  attempts,
		Success:   err == nil,
		ErrorCode: Code(err),
	}
	c.observer.OnCallComplete(event)
	if err != nil {
		return nil, err
	}
	return &GenerateResponse{Text: reply.Response, Model: reply.Model, Latency: event.Latency}, nil
}

func (c *ollamaClient) post(ctx context.Context, body generateBody) (*generateReply, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}

	var reply generateReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &reply, nil
}

func (c *ollamaClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("%w: %v", ErrRequestFailed, err)
}
