package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	apperrors "github.com/getmentor/mentorship-portal/pkg/errors"
	"github.com/getmentor/mentorship-portal/pkg/httpclient"
	"github.com/getmentor/mentorship-portal/pkg/logger"
	"github.com/getmentor/mentorship-portal/pkg/metrics"
	"github.com/getmentor/mentorship-portal/pkg/tracing"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const serviceName = "mentorship_backend"

// Client talks to the external mentorship REST API on behalf of the viewer.
// Every call attaches the bearer token found in the context; a missing token is
// not treated specially, the backend decides.
type Client struct {
	baseURL    string
	httpClient httpclient.Client
}

// NewClient creates a backend client rooted at baseURL (no trailing slash)
func NewClient(baseURL string, httpClient httpclient.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// call performs a JSON request and decodes a 2xx body into out (when non-nil)
func (c *Client) call(ctx context.Context, operation, method, path string, in, out any) error {
	resp, err := c.send(ctx, operation, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		logger.Warn("Failed to decode backend response",
			zap.String("operation", operation),
			zap.Error(err))
		return apperrors.InternalError(operation + ": decode response")
	}
	return nil
}

// send performs the request and returns the response only when it is 2xx.
// The caller closes the body, which also ends the call's span.
func (c *Client) send(ctx context.Context, operation, method, path string, in any) (*http.Response, error) {
	ctx, span := tracing.StartSpan(ctx, "backend."+operation)

	resp, err := c.do(ctx, operation, method, path, in)
	if err != nil {
		span.RecordError(err)
		span.End()
		return nil, err
	}
	resp.Body = &spanBody{ReadCloser: resp.Body, span: span}
	return resp, nil
}

func (c *Client) do(ctx context.Context, operation, method, path string, in any) (*http.Response, error) {
	start := time.Now()

	var body io.Reader = http.NoBody
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", operation, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		c.record(operation, "error", duration, zap.Error(err))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %v: %w", operation, err, apperrors.ErrUnavailable)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeAPIError(resp)
		resp.Body.Close()
		c.record(operation, "error", duration, zap.Int("status_code", apiErr.Status), zap.String("message", apiErr.Message))
		return nil, apiErr
	}

	c.record(operation, "success", duration, zap.Int("status_code", resp.StatusCode))
	return resp, nil
}

// spanBody ends the request span once the body is closed, so streamed
// downloads are timed to their last byte
type spanBody struct {
	io.ReadCloser
	span trace.Span
	once sync.Once
}

func (b *spanBody) Close() error {
	err := b.ReadCloser.Close()
	b.once.Do(func() { b.span.End() })
	return err
}

func (c *Client) record(operation, status string, duration float64, fields ...zap.Field) {
	metrics.BackendRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.BackendRequestTotal.WithLabelValues(operation, status).Inc()
	logger.LogAPICall(serviceName, operation, status, duration, fields...)
}

// decodeList accepts either a bare JSON array or an object wrapping the array
// under key or "data"
func decodeList[T any](raw json.RawMessage, key string) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []T{}, nil
	}

	if raw[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	for _, k := range []string{key, "data"} {
		if inner, ok := wrapped[k]; ok {
			return decodeList[T](inner, key)
		}
	}
	return nil, fmt.Errorf("response has neither %q nor \"data\" list", key)
}

func fetchList[T any](ctx context.Context, c *Client, operation, path, key string) ([]T, error) {
	var raw json.RawMessage
	if err := c.call(ctx, operation, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}

	items, err := decodeList[T](raw, key)
	if err != nil {
		logger.Warn("Unexpected list payload from backend",
			zap.String("operation", operation),
			zap.Error(err))
		return nil, apperrors.InternalError(operation + ": unexpected list payload")
	}
	return items, nil
}
