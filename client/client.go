// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/podgraph-foundation/podgraph/lib/httputil"
	"github.com/podgraph-foundation/podgraph/lib/rdf"
)

// Config holds configuration for creating a Client.
type Config struct {
	// HTTPClient is used for all requests. If nil, http.DefaultClient
	// is used.
	HTTPClient *http.Client

	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger

	// BearerToken, when non-empty, is sent as an Authorization header
	// on every request. Podgraph treats authentication as an opaque
	// pass-through; obtaining and refreshing the token is the
	// caller's concern.
	BearerToken string
}

// Client performs the HTTP exchanges of the resource and access-list
// operations. Resources are addressed by absolute IRI; there is no
// base URL, since one client may talk to any number of pods.
type Client struct {
	httpClient  *http.Client
	logger      *slog.Logger
	bearerToken string
}

// New creates a Client.
func New(config Config) *Client {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient:  httpClient,
		logger:      logger,
		bearerToken: config.BearerToken,
	}
}

// CloseIdleConnections closes idle HTTP connections in the underlying
// transport's connection pool. Call after a network disruption to
// force fresh TCP connections instead of reusing a poisoned pooled
// connection.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// StatusError reports a non-success HTTP response. The status code and
// a bounded read of the response body are embedded so the failure is
// diagnosable without re-issuing the request.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	message := fmt.Sprintf("client: %s %s failed: %s", e.Method, e.URL, e.Status)
	if body := strings.TrimSpace(e.Body); body != "" {
		message += ": " + body
	}
	return message
}

// HasStatus reports whether err is a *StatusError with the given code.
func HasStatus(err error, statusCode int) bool {
	statusErr, ok := err.(*StatusError)
	return ok && statusErr.StatusCode == statusCode
}

// response is the slice of an HTTP response the resource operations
// need after doRequest has consumed the body.
type response struct {
	statusCode int
	header     http.Header
	body       []byte
}

// doRequest performs one HTTP exchange and returns the response. On a
// non-2xx status it returns a *StatusError; transport-level failures
// are wrapped with the method and address.
func (c *Client) doRequest(ctx context.Context, method string, address rdf.IRI, headers map[string]string, requestBody io.Reader) (*response, error) {
	request, err := http.NewRequestWithContext(ctx, method, string(address), requestBody)
	if err != nil {
		return nil, fmt.Errorf("client: failed to create %s request for %s: %w", method, address, err)
	}
	for name, value := range headers {
		request.Header.Set(name, value)
	}
	if c.bearerToken != "" {
		request.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}

	httpResponse, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("client: %s %s failed: %w", method, address, err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode < 200 || httpResponse.StatusCode >= 300 {
		return nil, &StatusError{
			Method:     method,
			URL:        string(address),
			StatusCode: httpResponse.StatusCode,
			Status:     httpResponse.Status,
			Body:       httputil.ErrorBody(httpResponse.Body),
		}
	}

	responseBody, err := httputil.ReadResponse(httpResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("client: failed to read response body from %s: %w", address, err)
	}
	return &response{
		statusCode: httpResponse.StatusCode,
		header:     httpResponse.Header,
		body:       responseBody,
	}, nil
}

// resolveAgainst resolves a possibly-relative reference from a header
// against the address the request was sent to. Absolute references
// pass through.
func resolveAgainst(reference string, requested rdf.IRI) (rdf.IRI, error) {
	if reference == "" {
		return "", fmt.Errorf("client: empty reference in response header from %s", requested)
	}
	base, err := url.Parse(string(requested))
	if err != nil {
		return "", &rdf.InvalidIRIError{Value: string(requested), Reason: err.Error()}
	}
	resolved, err := base.Parse(reference)
	if err != nil {
		return "", fmt.Errorf("client: cannot resolve reference %q against %s: %w", reference, requested, err)
	}
	return rdf.IRI(resolved.String()), nil
}
