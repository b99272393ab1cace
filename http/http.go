package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	contentType              = "application/json"
	errFailedToRead          = "failed to read response: %w"
	errFailedToCreateRequest = "failed to create request: %w"
	errFailedToMakeRequest   = "failed to make request: %w"
	headerContentType        = "Content-Type"
	headerUserAgent          = "User-Agent"

	DefaultAuthHeader      = "Authorization"
	DefaultAuthTokenPrefix = "Bearer "

	maxErrorBodyBytes = 4096
)

type Config struct {
	APIKey          string
	AuthHeader      string
	AuthTokenPrefix string
	UserAgent       string
	Timeout         time.Duration
	SkipTLSVerify   bool
	CustomHeaders   map[string]string
}

type Caller interface {
	Post(ctx context.Context, url string, body []byte) ([]byte, error)
}

type RestCaller struct {
	client *http.Client
	config Config
}

// Ensure RestCaller implements Caller interface
var _ Caller = &RestCaller{}

func New(cfg Config) *RestCaller {
	client := &http.Client{Timeout: cfg.Timeout}
	if cfg.SkipTLSVerify {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	if cfg.AuthHeader == "" {
		cfg.AuthHeader = DefaultAuthHeader
	}

	return &RestCaller{
		client: client,
		config: cfg,
	}
}

// StatusError is returned for any non-2xx response. Body holds the raw
// response (capped) so callers can show what the server said.
type StatusError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *StatusError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("http status %d: %s", e.StatusCode, e.Message)
	case e.Body != "":
		return fmt.Sprintf("http status %d: %s", e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("http status: %d", e.StatusCode)
	}
}

func (r *RestCaller) Post(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := r.newRequest(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf(errFailedToCreateRequest, err)
	}

	response, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf(errFailedToMakeRequest, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBodyBytes))
		return nil, &StatusError{
			StatusCode: response.StatusCode,
			Message:    errorMessage(raw),
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	result, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf(errFailedToRead, err)
	}

	return result, nil
}

func (r *RestCaller) newRequest(ctx context.Context, method, url string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	if r.config.APIKey != "" {
		req.Header.Set(r.config.AuthHeader, r.config.AuthTokenPrefix+r.config.APIKey)
	}
	req.Header.Set(headerContentType, contentType)
	if r.config.UserAgent != "" {
		req.Header.Set(headerUserAgent, r.config.UserAgent)
	}
	for k, v := range r.config.CustomHeaders {
		req.Header.Set(k, v)
	}

	return req, nil
}

// errorMessage understands both the OpenAI shape {"error":{"message":...}}
// and the Ollama shape {"error":"..."}.
func errorMessage(raw []byte) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Error) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(envelope.Error, &s); err == nil {
		return s
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Error, &obj); err == nil {
		return obj.Message
	}

	return ""
}
