package timeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "timechat/timeapi"
	maxBodyBytes        = 1 << 20
	RequestIDHeader     = "X-Request-Id"
)

// Client talks to the time lookup service.
type Client struct {
	httpClient *http.Client
	baseURL    string

	tracer   trace.Tracer
	duration metric.Float64Histogram
	failures metric.Int64Counter
}

// NewClient validates baseURL and builds a client whose requests give up
// after timeout. Tracing and metrics use the global otel providers.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}

	meter := otel.Meter(instrumentationName)
	duration, err := meter.Float64Histogram(
		"timeapi.request.duration",
		metric.WithDescription("Time lookup service request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}
	failures, err := meter.Int64Counter(
		"timeapi.request.failures",
		metric.WithDescription("Failed requests to the time lookup service"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create failure counter: %w", err)
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		tracer:     otel.Tracer(instrumentationName),
		duration:   duration,
		failures:   failures,
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping issues GET <base-url>/. Any 2xx response means the service is
// reachable; everything else wraps ErrConnectivityCheckFailed.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "timeapi.ping")
	defer func() { c.finish(ctx, span, "ping", start, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", ErrConnectivityCheckFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnectivityCheckFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if !isSuccess(resp.StatusCode) {
		return fmt.Errorf("%w: %w", ErrConnectivityCheckFailed, &StatusError{
			Op:         "ping",
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		})
	}

	return nil
}

// Lookup issues POST <base-url>/time with {"location": location}.
// Every failure wraps ErrQueryFailed.
func (c *Client) Lookup(ctx context.Context, location string) (_ *LookupResponse, err error) {
	requestID := uuid.New().String()
	start := time.Now()

	ctx, span := c.tracer.Start(ctx, "timeapi.lookup", trace.WithAttributes(
		attribute.String("timechat.location", location),
		attribute.String("timechat.request_id", requestID),
	))
	defer func() { c.finish(ctx, span, "lookup", start, err) }()

	body, err := json.Marshal(LookupRequest{Location: location})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %w", ErrQueryFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/time", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrQueryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send request: %w", ErrQueryFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrQueryFailed, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if !isSuccess(resp.StatusCode) {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, &StatusError{
			Op:         "lookup",
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		})
	}

	var out LookupResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal response: %w", ErrQueryFailed, err)
	}

	slog.Debug("lookup succeeded", "location", location, "request_id", requestID, "has_answer", out.Answer != "")
	return &out, nil
}

func (c *Client) finish(ctx context.Context, span trace.Span, op string, start time.Time, err error) {
	attrs := metric.WithAttributes(attribute.String("op", op))
	c.duration.Record(ctx, float64(time.Since(start).Milliseconds()), attrs)
	if err != nil {
		c.failures.Add(ctx, 1, attrs)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Debug("timeapi request failed", "op", op, "error", err)
	}
	span.End()
}
