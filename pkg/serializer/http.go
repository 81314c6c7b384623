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

package serializer

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/NVIDIA/mealdb-proxy/pkg/defaults"
)

// RespondJSON writes a JSON response with the given status code and data.
// It buffers the JSON encoding before writing headers to prevent partial responses.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")

	// Serialize first to detect errors before writing headers
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		// Connection is broken, log but can't recover
		slog.Warn("response write failed", "error", err)
	}
}

const (
	HttpReaderUserAgent = "MealDB-Proxy/1.0"
)

var (
	HttpReaderDefaultTimeout             = defaults.HTTPClientTimeout
	HttpReaderDefaultKeepAlive           = defaults.HTTPKeepAlive
	HttpReaderDefaultConnectTimeout      = defaults.HTTPConnectTimeout
	HttpReaderDefaultTLSHandshakeTimeout = defaults.HTTPTLSHandshakeTimeout
	HttpReaderDefaultHeaderTimeout       = defaults.HTTPResponseHeaderTimeout
	HttpReaderDefaultIdleConnTimeout     = defaults.HTTPIdleConnTimeout
	HttpReaderDefaultMaxBodyBytes        = int64(defaults.UpstreamMaxBodyBytes)
	HttpReaderDefaultMaxIdleConns        = 100
	HttpReaderDefaultMaxIdleConnsPerHost = 10
)

// StatusError is returned by HttpReader when the server answers with a
// non-2xx status. Body holds at most the first 512 bytes of the response.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s from %s", e.Status, e.URL)
}

// HttpReaderOption defines a configuration option for HttpReader.
type HttpReaderOption func(*HttpReader)

// HttpReader performs single-attempt GET requests over a pooled transport.
// It is safe for concurrent use.
type HttpReader struct {
	UserAgent    string
	TotalTimeout time.Duration
	MaxBodyBytes int64
	Client       *http.Client

	totalTimeoutSet bool
}

func WithUserAgent(userAgent string) HttpReaderOption {
	return func(r *HttpReader) {
		r.UserAgent = userAgent
	}
}

func WithTotalTimeout(timeout time.Duration) HttpReaderOption {
	return func(r *HttpReader) {
		r.TotalTimeout = timeout
		r.totalTimeoutSet = true
	}
}

func WithMaxBodyBytes(n int64) HttpReaderOption {
	return func(r *HttpReader) {
		r.MaxBodyBytes = n
	}
}

// WithClient replaces the pooled client, e.g. with httptest.Server.Client().
func WithClient(client *http.Client) HttpReaderOption {
	return func(r *HttpReader) {
		r.Client = client
	}
}

// NewHttpReader creates a new HttpReader with the specified options.
func NewHttpReader(options ...HttpReaderOption) *HttpReader {
	r := &HttpReader{
		UserAgent:    HttpReaderUserAgent,
		TotalTimeout: HttpReaderDefaultTimeout,
		MaxBodyBytes: HttpReaderDefaultMaxBodyBytes,
		Client: &http.Client{
			Timeout:   HttpReaderDefaultTimeout,
			Transport: newDefaultHTTPTransport(),
		},
	}

	for _, opt := range options {
		opt(r)
	}

	if r.Client == nil {
		r.Client = &http.Client{Timeout: HttpReaderDefaultTimeout, Transport: newDefaultHTTPTransport()}
	}
	if r.UserAgent == "" {
		r.UserAgent = HttpReaderUserAgent
	}
	// Apply client timeout only if explicitly set so a caller-provided
	// client keeps its own.
	if r.totalTimeoutSet && r.TotalTimeout > 0 {
		r.Client.Timeout = r.TotalTimeout
	}
	return r
}

func newDefaultHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        HttpReaderDefaultMaxIdleConns,
		MaxIdleConnsPerHost: HttpReaderDefaultMaxIdleConnsPerHost,
		DialContext: (&net.Dialer{
			Timeout:   HttpReaderDefaultConnectTimeout,
			KeepAlive: HttpReaderDefaultKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   HttpReaderDefaultTLSHandshakeTimeout,
		ResponseHeaderTimeout: HttpReaderDefaultHeaderTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,
		IdleConnTimeout:       HttpReaderDefaultIdleConnTimeout,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

// ReadWithContext fetches url and returns the response body.
// Any 2xx status is success; other statuses yield a *StatusError.
func (r *HttpReader) ReadWithContext(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("url is empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for url %s: %w", url, err)
	}
	req.Header.Set("User-Agent", r.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed for url %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(snippet),
		}
	}

	body := io.Reader(resp.Body)
	if r.MaxBodyBytes > 0 {
		body = io.LimitReader(resp.Body, r.MaxBodyBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", url, err)
	}
	if r.MaxBodyBytes > 0 && int64(len(data)) > r.MaxBodyBytes {
		return nil, fmt.Errorf("response body from %s exceeds %d bytes", url, r.MaxBodyBytes)
	}

	return data, nil
}
