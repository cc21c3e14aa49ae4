// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// HTTPClientOption customizes a client built by NewHTTPClient.
type HTTPClientOption func(*resty.Client)

// WithBaseURL sets the base URL every relative request is resolved against.
func WithBaseURL(baseURL string) HTTPClientOption {
	return func(c *resty.Client) { c.SetBaseURL(baseURL) }
}

// WithTimeout bounds every request issued by the client.
func WithTimeout(timeout time.Duration) HTTPClientOption {
	return func(c *resty.Client) {
		if timeout > 0 {
			c.SetTimeout(timeout)
		}
	}
}

// WithAuthToken attaches "Authorization: Bearer <token>" to every request.
func WithAuthToken(token string) HTTPClientOption {
	return func(c *resty.Client) {
		if token != "" {
			c.SetAuthToken(token)
		}
	}
}

// NewHTTPClient returns an independent client with its own connection pool.
//
//	client := utils.NewHTTPClient(utils.WithBaseURL("http://localhost:8080"))
//	resp, err := client.R().Get("/api/version/")
func NewHTTPClient(opts ...HTTPClientOption) *HTTPClient {
	c := resty.New()
	for _, opt := range opts {
		opt(c)
	}
	return &HTTPClient{Client: c}
}
