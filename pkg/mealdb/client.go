// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mealdb

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/NVIDIA/mealdb-proxy/pkg/defaults"
	cnserrors "github.com/NVIDIA/mealdb-proxy/pkg/errors"
	"github.com/NVIDIA/mealdb-proxy/pkg/serializer"
)

const (
	searchPath = "/search.php"
	randomPath = "/random.php"

	opSearch = "search"
	opRandom = "random"
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the total timeout of a single fetch.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient replaces the pooled HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithBreaker configures the circuit breaker. A threshold of zero disables it.
func WithBreaker(threshold int, timeout time.Duration) Option {
	return func(c *Client) {
		c.breakerThreshold = threshold
		c.breakerTimeout = timeout
	}
}

// WithTracer sets the tracer used for fetch spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// Client fetches raw JSON from TheMealDB. It holds no per-request state and
// is safe for concurrent use.
type Client struct {
	baseURL          string
	timeout          time.Duration
	httpClient       *http.Client
	breakerThreshold int
	breakerTimeout   time.Duration
	tracer           trace.Tracer

	reader  *serializer.HttpReader
	breaker *gobreaker.CircuitBreaker
}

// NewClient returns a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:          strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		timeout:          defaults.UpstreamTimeout,
		breakerThreshold: defaults.UpstreamBreakerThreshold,
		breakerTimeout:   defaults.UpstreamBreakerTimeout,
		tracer:           otel.Tracer("mealdb-client"),
	}

	for _, opt := range opts {
		opt(c)
	}

	readerOpts := []serializer.HttpReaderOption{
		serializer.WithTotalTimeout(c.timeout),
	}
	if c.httpClient != nil {
		readerOpts = append(readerOpts, serializer.WithClient(c.httpClient))
	}
	c.reader = serializer.NewHttpReader(readerOpts...)

	if c.breakerThreshold > 0 {
		c.breaker = newBreaker(c.breakerThreshold, c.breakerTimeout, c.tracer)
	}

	return c
}

// NewClientFromConfig builds a client from cfg. Options are applied after
// the config values.
func NewClientFromConfig(cfg *Config, opts ...Option) *Client {
	if cfg == nil {
		cfg = ParseConfig()
	}
	base := []Option{
		WithTimeout(cfg.Timeout),
		WithBreaker(cfg.BreakerThreshold, cfg.BreakerTimeout),
	}
	return NewClient(cfg.BaseURL, append(base, opts...)...)
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Search fetches meals whose name matches term.
func (c *Client) Search(ctx context.Context, term string) ([]byte, error) {
	q := url.Values{}
	q.Set("s", term)
	return c.fetch(ctx, opSearch, c.baseURL+searchPath+"?"+q.Encode())
}

// Random fetches a single random meal.
func (c *Client) Random(ctx context.Context) ([]byte, error) {
	return c.fetch(ctx, opRandom, c.baseURL+randomPath)
}

func (c *Client) fetch(ctx context.Context, op, endpoint string) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "mealdb."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", http.MethodGet),
			attribute.String("url.full", endpoint),
		),
	)
	defer span.End()

	slog.Debug("upstream request", "operation", op, "url", endpoint)

	start := time.Now()
	body, err := c.execute(ctx, endpoint)
	upstreamRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if err != nil {
		result := resultError
		message := "upstream request failed"
		if isBreakerRejection(err) {
			result = resultRejected
			message = "upstream circuit open"
		}
		upstreamRequestsTotal.WithLabelValues(op, result).Inc()

		span.RecordError(err)
		span.SetStatus(codes.Error, message)

		details := map[string]any{
			"operation": op,
			"url":       endpoint,
		}
		var se *serializer.StatusError
		if errors.As(err, &se) {
			details["status"] = se.StatusCode
			span.SetAttributes(attribute.Int("http.response.status_code", se.StatusCode))
		}

		slog.Warn(message, "operation", op, "url", endpoint, "error", err)
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeFetchFailed, message, err, details)
	}

	upstreamRequestsTotal.WithLabelValues(op, resultSuccess).Inc()
	span.SetAttributes(attribute.Int("mealdb.response.bytes", len(body)))
	return body, nil
}

func (c *Client) execute(ctx context.Context, endpoint string) ([]byte, error) {
	if c.breaker == nil {
		return c.reader.ReadWithContext(ctx, endpoint)
	}
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.reader.ReadWithContext(ctx, endpoint)
	})
	if err != nil {
		return nil, err
	}
	body, _ := out.([]byte)
	return body, nil
}
