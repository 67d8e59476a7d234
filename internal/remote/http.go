package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// evaluatePath is the scoring service's evaluation endpoint, relative to the
// configured base URL.
const evaluatePath = "/api/v1/evaluate"

// evaluateRequest is the wire shape of an evaluation request.
type evaluateRequest struct {
	Metric     string           `json:"metric"`
	Data       []map[string]any `json:"data"`
	Parameters map[string]any   `json:"parameters,omitempty"`
}

// evaluateResponse is the wire shape of a successful evaluation response.
type evaluateResponse struct {
	Results []map[string]any `json:"results"`
}

// httpHandler is the core handler that performs the actual HTTP exchange
// with the scoring service.
type httpHandler struct {
	client   *http.Client
	endpoint string
	apiKey   string
	timeout  time.Duration
}

// NewHTTPHandler creates the core handler that posts evaluation requests to
// the scoring service at the given base endpoint. The timeout bounds each
// individual exchange via the request context, so retry backoff between
// attempts never consumes it.
func NewHTTPHandler(client *http.Client, endpoint, apiKey string, timeout time.Duration) Handler {
	return &httpHandler{client: client, endpoint: endpoint, apiKey: apiKey, timeout: timeout}
}

// Handle implements Handler by posting the request to the scoring service
// and decoding the result list.
func (h *httpHandler) Handle(ctx context.Context, req *Request) (*Response, error) {
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	body, err := json.Marshal(evaluateRequest{
		Metric:     req.Metric,
		Data:       req.Records,
		Parameters: req.Params,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal evaluation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint+evaluatePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build evaluation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if h.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+h.apiKey)
	}
	if req.TraceID != "" {
		httpReq.Header.Set("X-Request-Id", req.TraceID)
	}

	start := time.Now()
	httpResp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("evaluation request failed: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read evaluation response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, parseAPIError(httpResp, raw)
	}

	var resp evaluateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.Results == nil {
		return nil, fmt.Errorf("%w: missing results field", ErrMalformedResponse)
	}

	return &Response{
		Results:   resp.Results,
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

// parseAPIError converts a non-200 response into an APIError, extracting the
// service's structured error body when present.
func parseAPIError(httpResp *http.Response, body []byte) error {
	apiErr := &APIError{
		StatusCode: httpResp.StatusCode,
		Message:    string(body),
		Type:       classifyStatus(httpResp.StatusCode),
	}

	var errResp struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		apiErr.Message = errResp.Error.Message
		apiErr.Code = errResp.Error.Code
	}

	if v := httpResp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			apiErr.RetryAfter = secs
		}
	}

	return apiErr
}
