// Package xmlrpc implements the XML-RPC transport: one methodCall per request,
// posted to {url}/xmlrpc/2/{service}.
package xmlrpc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bnema/odoo-partners-cli/internal/adapters/rpc"
	"github.com/bnema/odoo-partners-cli/internal/domain"
	"github.com/bnema/odoo-partners-cli/internal/ports"
	"github.com/kolo/xmlrpc"
)

const (
	EndpointPrefix = "/xmlrpc/2/"
	ContentType    = "text/xml"
)

type Codec struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.Codec = Codec{}

func (c Codec) Call(ctx context.Context, service domain.Service, method string, args []any) (any, error) {
	op := rpc.OpName(service, method)

	endpoint, err := rpc.Endpoint(c.BaseURL, EndpointPrefix+string(service))
	if err != nil {
		return nil, err
	}

	body, err := xmlrpc.EncodeMethodCall(method, args...)
	if err != nil {
		return nil, domain.NewFailure(domain.FailureEncoding, op, fmt.Errorf("encode method call: %w", err))
	}

	requestCtx, cancel := rpc.RequestContext(ctx, c.RequestTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewFailure(domain.FailureTransport, op, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", ContentType)

	resp, err := rpc.HTTPClient(c.HTTPClient).Do(req)
	if err != nil {
		return nil, domain.NewFailure(domain.FailureTransport, op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := rpc.CheckStatus(op, resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, rpc.MaxResponseBytes))
	if err != nil {
		return nil, domain.NewFailure(domain.FailureTransport, op, fmt.Errorf("read response: %w", err))
	}

	response := xmlrpc.Response(data)
	if err := response.Err(); err != nil {
		var fault xmlrpc.FaultError
		if errors.As(err, &fault) {
			return nil, domain.NewRemoteFailure(op, domain.RemoteError{Code: fault.Code, Message: fault.String})
		}
		return nil, domain.NewFailure(domain.FailureMalformedResponse, op, fmt.Errorf("decode fault: %w", err))
	}

	var result any
	if err := response.Unmarshal(&result); err != nil {
		return nil, domain.NewFailure(domain.FailureMalformedResponse, op, fmt.Errorf("decode response: %w", err))
	}
	return result, nil
}
