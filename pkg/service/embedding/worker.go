package embedding

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

// WorkerTransport calls the proxying worker service that holds the upstream
// API key. Request: POST {baseURL}/embedding with {"text": ...}. The worker
// responds with {"embedding": [...]} but older deployments use {"vector":
// [...]}; both are accepted.
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
		endpoint:   strings.TrimSuffix(baseURL, "/") + "/embedding",
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

func (t *WorkerTransport) Embed(ctx context.Context, text string) ([]float32, error) {
	reqBody, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal embedding request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create embedding request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "worker embedding request failed")
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, goerr.New("worker embedding returned non-2xx status",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}

	var respBody struct {
		Embedding []float32 `json:"embedding"`
		Vector    []float32 `json:"vector"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, goerr.Wrap(err, "failed to decode worker embedding response")
	}

	vec := respBody.Embedding
	if len(vec) == 0 {
		vec = respBody.Vector
	}
	if len(vec) == 0 {
		return nil, goerr.New("worker embedding response has no vector")
	}

	return vec, nil
}
