package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsValidateListsEveryMissingField(t *testing.T) {
	err := Credentials{ServiceURL: "http://localhost:8069"}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigurationMissing))
	assert.Contains(t, err.Error(), "ODOO_DB, ODOO_USERNAME, ODOO_PASSWORD not set")

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, FailureConfigurationMissing, kind)
}

func TestCredentialsValidateAcceptsCompleteCredentials(t *testing.T) {
	creds := Credentials{ServiceURL: "http://localhost:8069", Database: "odoo", Username: "admin", Secret: "admin"}
	assert.NoError(t, creds.Validate())
	assert.Equal(t, "********", creds.Redacted().Secret)
	assert.Equal(t, "admin", creds.Secret)
}

func TestFailureMatchesOnlyItsOwnKind(t *testing.T) {
	transport := NewFailure(FailureTransport, "call object.execute_kw", errors.New("status 502"))
	remote := NewRemoteFailure("call object.execute_kw", RemoteError{Code: 200, Message: "Odoo Server Error", Name: "odoo.exceptions.AccessError"})

	assert.True(t, errors.Is(transport, ErrTransportFault))
	assert.False(t, errors.Is(transport, ErrRemoteService))
	assert.True(t, errors.Is(remote, ErrRemoteService))
	assert.False(t, errors.Is(remote, ErrTransportFault))

	wrapped := fmt.Errorf("list partners: %w", remote)
	assert.True(t, errors.Is(wrapped, ErrRemoteService))
	assert.Equal(t, "list partners: call object.execute_kw: remote service error: Odoo Server Error: odoo.exceptions.AccessError", wrapped.Error())
}

func TestFailureUnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewFailure(FailureTransport, "call common.authenticate", cause)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "call common.authenticate: transport fault: connection refused", err.Error())
}

func TestNameFilter(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []any
	}{
		{name: "empty name matches all", in: "", want: []any{}},
		{name: "name becomes ilike term", in: "Azure", want: []any{[]any{"name", "ilike", "Azure"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NameFilter(tt.in).Wire())
		})
	}
}

func TestIDFilterWire(t *testing.T) {
	assert.Equal(t, []any{[]any{"id", "=", int64(42)}}, IDFilter(42).Wire())
}

func TestPartnerFromRecordHandlesFalseFields(t *testing.T) {
	partner, err := PartnerFromRecord(Record{"id": json.Number("7"), "name": "Deco Addict", "email": false, "image_1920": false})
	require.NoError(t, err)
	assert.Equal(t, Partner{ID: 7, Name: "Deco Addict"}, partner)

	partner, err = PartnerFromRecord(Record{"id": int64(8), "name": "Gemini Furniture", "email": "gemini@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "gemini@example.com", partner.Email)

	_, err = PartnerFromRecord(Record{"name": "no id"})
	require.Error(t, err)
}

func TestPartnerDraftValues(t *testing.T) {
	assert.Equal(t, map[string]any{"name": "Ready Mat"}, PartnerDraft{Name: "Ready Mat"}.Values())
	assert.Equal(t,
		map[string]any{"name": "Ready Mat", "email": "ready@example.com", "image_1920": "aGVsbG8="},
		PartnerDraft{Name: "Ready Mat", Email: "ready@example.com", Image: "aGVsbG8="}.Values(),
	)
}

func TestPartnerDraftValidateRequiresName(t *testing.T) {
	err := PartnerDraft{Name: "  "}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidationFailed))
}

func TestParsePartnerID(t *testing.T) {
	id, err := ParsePartnerID("15")
	require.NoError(t, err)
	assert.Equal(t, PartnerID(15), id)

	for _, raw := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := ParsePartnerID(raw)
		assert.True(t, errors.Is(err, ErrValidationFailed), raw)
	}
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(false))
	assert.False(t, Truthy(int64(0)))
	assert.False(t, Truthy(json.Number("0")))
	assert.True(t, Truthy(true))
	assert.True(t, Truthy(int64(2)))
	assert.True(t, Truthy(json.Number("2")))
}

func TestSessionValid(t *testing.T) {
	assert.False(t, Session{}.Valid())
	assert.True(t, Session{UserID: 2}.Valid())
}
