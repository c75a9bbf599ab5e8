package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfigurationMissing = errors.New("configuration missing")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrTransportFault       = errors.New("transport fault")
	ErrRemoteService        = errors.New("remote service error")
	ErrMalformedResponse    = errors.New("malformed response")
	ErrEncodingFailed       = errors.New("request encoding failed")
	ErrValidationFailed     = errors.New("validation failed")
	ErrSessionRequired      = errors.New("session required")
)

type FailureKind string

const (
	FailureConfigurationMissing FailureKind = "configuration_missing"
	FailureAuthenticationFailed FailureKind = "authentication_failed"
	FailureTransport            FailureKind = "transport_fault"
	FailureRemoteService        FailureKind = "remote_service_error"
	FailureMalformedResponse    FailureKind = "malformed_response"
	FailureValidation           FailureKind = "validation_failed"
	// FailureEncoding is a request this process could not serialize.
	FailureEncoding FailureKind = "encoding_failed"
)

func (k FailureKind) sentinel() error {
	switch k {
	case FailureConfigurationMissing:
		return ErrConfigurationMissing
	case FailureAuthenticationFailed:
		return ErrAuthenticationFailed
	case FailureTransport:
		return ErrTransportFault
	case FailureRemoteService:
		return ErrRemoteService
	case FailureMalformedResponse:
		return ErrMalformedResponse
	case FailureEncoding:
		return ErrEncodingFailed
	case FailureValidation:
		return ErrValidationFailed
	default:
		return nil
	}
}

// RemoteError is the error payload reported by the remote service, either a
// JSON-RPC error object or an XML-RPC fault.
type RemoteError struct {
	Code    int
	Message string
	// Name is the server-side exception class, e.g. "odoo.exceptions.AccessError".
	Name   string
	Detail string
	Debug  string
}

func (e RemoteError) String() string {
	parts := make([]string, 0, 3)
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Name != "" {
		parts = append(parts, e.Name)
	}
	if e.Detail != "" && e.Detail != e.Message {
		parts = append(parts, e.Detail)
	}
	if len(parts) == 0 {
		return fmt.Sprintf("code %d", e.Code)
	}
	return strings.Join(parts, ": ")
}

// Failure is the tagged error returned by every remote-facing operation.
// errors.Is matches it against the sentinel of its Kind.
type Failure struct {
	Kind   FailureKind
	Op     string
	Err    error
	Remote *RemoteError
}

func NewFailure(kind FailureKind, op string, err error) *Failure {
	return &Failure{Kind: kind, Op: op, Err: err}
}

func NewRemoteFailure(op string, remote RemoteError) *Failure {
	return &Failure{Kind: FailureRemoteService, Op: op, Remote: &remote}
}

func (f *Failure) Error() string {
	var detail string
	switch {
	case f.Remote != nil:
		detail = f.Remote.String()
	case f.Err != nil:
		detail = f.Err.Error()
	}

	msg := string(f.Kind)
	if sentinel := f.Kind.sentinel(); sentinel != nil {
		msg = sentinel.Error()
	}
	if f.Op != "" {
		msg = f.Op + ": " + msg
	}
	if detail != "" {
		msg += ": " + detail
	}
	return msg
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func (f *Failure) Is(target error) bool {
	sentinel := f.Kind.sentinel()
	return sentinel != nil && target == sentinel
}

// KindOf reports the failure kind carried by err, if any.
func KindOf(err error) (FailureKind, bool) {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Kind, true
	}
	return "", false
}
