// Package execution runs learner code in a Judge0 sandbox.
package execution

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultJudge0URL  = "https://judge0-ce.p.rapidapi.com"
	defaultJudge0Host = "judge0-ce.p.rapidapi.com"
)

// ErrNotConfigured is returned when no Judge0 API key is set.
var ErrNotConfigured = errors.New("code execution is not configured")

// UpstreamError is a non-200 reply from Judge0.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("judge0 error (status %d): %s", e.StatusCode, e.Body)
}

// Submission is a program to run.
type Submission struct {
	LanguageID int    `json:"language_id"`
	SourceCode string `json:"source_code"`
	Stdin      string `json:"stdin"`
}

// Status is Judge0's verdict.
type Status struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// Result is the output of a finished submission.
type Result struct {
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	CompileOutput string `json:"compile_output"`
	Status        Status `json:"status"`
	Time          string `json:"time"`
	Memory        int    `json:"memory"`
}

// Judge0Client submits code to Judge0 through RapidAPI.
type Judge0Client struct {
	apiKey  string
	host    string
	baseURL string
	client  *http.Client
}

// Judge0Option configures a Judge0Client.
type Judge0Option func(*Judge0Client)

// WithJudge0URL overrides the API base URL.
func WithJudge0URL(url string) Judge0Option {
	return func(c *Judge0Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithJudge0Host overrides the X-RapidAPI-Host header.
func WithJudge0Host(host string) Judge0Option {
	return func(c *Judge0Client) {
		if host != "" {
			c.host = host
		}
	}
}

// WithJudge0HTTPClient replaces the HTTP client.
func WithJudge0HTTPClient(client *http.Client) Judge0Option {
	return func(c *Judge0Client) {
		c.client = client
	}
}

// NewJudge0Client creates a Judge0 client.
func NewJudge0Client(apiKey string, opts ...Judge0Option) *Judge0Client {
	c := &Judge0Client{
		apiKey:  apiKey,
		host:    defaultJudge0Host,
		baseURL: defaultJudge0URL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API key is set.
func (c *Judge0Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// Submit runs s synchronously and waits for the result.
func (c *Judge0Client) Submit(ctx context.Context, s Submission) (Result, error) {
	if !c.Configured() {
		return Result{}, ErrNotConfigured
	}

	body, err := json.Marshal(s)
	if err != nil {
		return Result{}, fmt.Errorf("marshaling submission: %w", err)
	}

	url := c.baseURL + "/submissions?base64_encoded=false&wait=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("reading response: %w", err)
	}
	// Judge0 answers 201 Created for wait=true submissions.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return Result{}, &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var out Result
	if err := json.Unmarshal(respBody, &out); err != nil {
		return Result{}, fmt.Errorf("parsing response: %w", err)
	}
	return out, nil
}
