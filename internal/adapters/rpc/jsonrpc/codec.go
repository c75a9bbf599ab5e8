// Package jsonrpc implements the JSON-RPC transport: every call is a single
// POST of a {"jsonrpc":"2.0","method":"call"} envelope to {url}/jsonrpc.
package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bnema/odoo-partners-cli/internal/adapters/rpc"
	"github.com/bnema/odoo-partners-cli/internal/domain"
	"github.com/bnema/odoo-partners-cli/internal/ports"
	"github.com/google/uuid"
)

const (
	EndpointPath = "/jsonrpc"
	ContentType  = "application/json"
	version      = "2.0"
	envelopeCall = "call"
)

type Codec struct {
	BaseURL    string
	HTTPClient *http.Client
	// RequestTimeout bounds each call when ctx has no deadline. Zero keeps the
	// HTTP client's own behaviour.
	RequestTimeout time.Duration
	NewID          func() string
}

var _ ports.Codec = Codec{}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  params `json:"params"`
	ID      string `json:"id"`
}

type params struct {
	Service domain.Service `json:"service"`
	Method  string         `json:"method"`
	Args    []any          `json:"args"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *errorObject    `json:"error"`
}

type errorObject struct {
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    *errorData `json:"data"`
}

type errorData struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Debug   string `json:"debug"`
}

func (c Codec) Call(ctx context.Context, service domain.Service, method string, args []any) (any, error) {
	op := rpc.OpName(service, method)

	endpoint, err := rpc.Endpoint(c.BaseURL, EndpointPath)
	if err != nil {
		return nil, err
	}

	if args == nil {
		args = []any{}
	}
	body, err := json.Marshal(request{
		JSONRPC: version,
		Method:  envelopeCall,
		Params:  params{Service: service, Method: method, Args: args},
		ID:      c.newID(),
	})
	if err != nil {
		return nil, domain.NewFailure(domain.FailureEncoding, op, fmt.Errorf("encode request: %w", err))
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

	var envelope response
	if err := json.NewDecoder(io.LimitReader(resp.Body, rpc.MaxResponseBytes)).Decode(&envelope); err != nil {
		return nil, domain.NewFailure(domain.FailureMalformedResponse, op, fmt.Errorf("decode response: %w", err))
	}

	if envelope.Error != nil {
		return nil, domain.NewRemoteFailure(op, envelope.Error.remote())
	}

	return decodeResult(op, envelope.Result)
}

func (c Codec) newID() string {
	if c.NewID != nil {
		return c.NewID()
	}
	return uuid.NewString()
}

func (e errorObject) remote() domain.RemoteError {
	remote := domain.RemoteError{Code: e.Code, Message: e.Message}
	if e.Data != nil {
		remote.Name = e.Data.Name
		remote.Detail = e.Data.Message
		remote.Debug = e.Data.Debug
	}
	return remote
}

// decodeResult keeps numbers as json.Number so record ids stay exact.
func decodeResult(op string, raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var result any
	if err := decoder.Decode(&result); err != nil {
		return nil, domain.NewFailure(domain.FailureMalformedResponse, op, fmt.Errorf("decode result: %w", err))
	}
	if decoder.More() {
		return nil, domain.NewFailure(domain.FailureMalformedResponse, op, errors.New("trailing data after result"))
	}
	return result, nil
}
