package client

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/tapmytalent/resume-optimizer/pkg/requestid"
)

// NewHTTPClient returns the HTTP client used for backend calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}
}

func (b *builder) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, b.server+path, body)
	if err != nil {
		return nil, err
	}

	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		reqID = requestid.Generate()
	}
	req.Header.Set(middleware.RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if b.token != "" {
		req.Header.Set("X-Authorization", "Bearer "+b.token)
	}
	return req, nil
}
