package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/emotion-sanctuary/sanctum/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

// WorkerTransport calls the proxying worker service for chat completions.
// Request: POST {baseURL}/chat with {"message": ..., "systemPrompt": ...}.
// The worker responds with {"response": ...} but older deployments use
// {"message": ...}; both are accepted.
type WorkerTransport struct {
	endpoint   string
	httpClient *http.Client
}

var _ Transport = &WorkerTransport{}

// WorkerOption is a functional option for WorkerTransport
type WorkerOption func(*WorkerTransport)

// WithWorkerHTTPClient overrides the HTTP client (mainly for tests)
func WithWorkerHTTPClient(hc *http.Client) WorkerOption {
	return func(t *WorkerTransport) {
		t.httpClient = hc
	}
}

// NewWorkerTransport creates a transport for the worker proxy at baseURL
func NewWorkerTransport(baseURL string, opts ...WorkerOption) (*WorkerTransport, error) {
	if baseURL == "" {
		return nil, goerr.New("worker base URL is required")
	}

	t := &WorkerTransport{
		endpoint:   strings.TrimSuffix(baseURL, "/") + "/chat",
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

func (t *WorkerTransport) Name() string {
	return "worker"
}

func (t *WorkerTransport) Complete(ctx context.Context, systemPrompt, message string) (string, error) {
	reqBody, err := json.Marshal(map[string]string{
		"message":      message,
		"systemPrompt": systemPrompt,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", goerr.Wrap(err, "failed to create chat request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "worker chat request failed")
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", goerr.New("worker chat returned non-2xx status",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}

	var respBody struct {
		Response string `json:"response"`
		Message  string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return "", goerr.Wrap(err, "failed to decode worker chat response")
	}

	reply := respBody.Response
	if reply == "" {
		reply = respBody.Message
	}
	if reply == "" {
		return "", goerr.New("worker chat response has no reply")
	}

	return reply, nil
}
