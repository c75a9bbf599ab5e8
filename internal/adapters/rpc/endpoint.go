// Package rpc holds what the XML-RPC and JSON-RPC codecs share: endpoint
// resolution, request deadlines and HTTP status classification.
package rpc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/odoo-partners-cli/internal/domain"
)

// MaxResponseBytes bounds decoded response bodies. Partner images are
// returned inline as base64, so this is generous.
const MaxResponseBytes = 64 << 20

// Endpoint joins path onto baseURL, keeping any path prefix the base carries.
func Endpoint(baseURL string, path string) (string, error) {
	if strings.TrimSpace(baseURL) == "" {
		return "", domain.NewFailure(domain.FailureConfigurationMissing, "resolve endpoint", errors.New("ODOO_URL not set"))
	}

	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", domain.NewFailure(domain.FailureConfigurationMissing, "resolve endpoint", fmt.Errorf("parse ODOO_URL: %w", err))
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", domain.NewFailure(domain.FailureConfigurationMissing, "resolve endpoint", errors.New("ODOO_URL must use http or https"))
	}
	if parsed.Host == "" {
		return "", domain.NewFailure(domain.FailureConfigurationMissing, "resolve endpoint", errors.New("ODOO_URL host is required"))
	}

	return parsed.JoinPath(strings.TrimPrefix(path, "/")).String(), nil
}

// RequestContext applies timeout unless it is zero or ctx already carries a
// deadline. A zero timeout leaves the transport defaults in charge.
func RequestContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func HTTPClient(client *http.Client) *http.Client {
	if client != nil {
		return client
	}
	return http.DefaultClient
}

// CheckStatus turns a non-2xx response into a transport fault.
func CheckStatus(op string, resp *http.Response) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}
	return domain.NewFailure(domain.FailureTransport, op, fmt.Errorf("status %d", resp.StatusCode))
}

func OpName(service domain.Service, method string) string {
	return fmt.Sprintf("call %s.%s", service, method)
}
