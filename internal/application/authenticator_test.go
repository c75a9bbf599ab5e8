package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/bnema/odoo-partners-cli/internal/domain"
	"github.com/bnema/odoo-partners-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthenticateReturnsSession(t *testing.T) {
	codec := mocks.NewMockCodec(t)
	auth := NewAuthenticator(testCreds, codec)

	codec.EXPECT().Call(mockAnyContext(), domain.ServiceCommon, "authenticate", []any{"odoo", "admin", "secret", map[string]any{}}).
		Return(json.Number("2"), nil)

	session, err := auth.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Session{UserID: 2, IssuedFor: testCreds}, session)
}

func TestAuthenticateFalsyUIDIsAuthenticationFailed(t *testing.T) {
	for _, result := range []any{false, nil, int64(0)} {
		codec := mocks.NewMockCodec(t)
		auth := NewAuthenticator(testCreds, codec)
		codec.EXPECT().Call(mockAnyContext(), domain.ServiceCommon, "authenticate", mock.Anything).Return(result, nil).Once()

		_, err := auth.Authenticate(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrAuthenticationFailed), "%v", result)
		assert.False(t, errors.Is(err, domain.ErrTransportFault), "%v", result)
	}
}

func TestAuthenticateMissingCredentialsFailsBeforeCalling(t *testing.T) {
	codec := mocks.NewMockCodec(t)
	auth := NewAuthenticator(domain.Credentials{ServiceURL: "http://odoo.test"}, codec)

	_, err := auth.Authenticate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigurationMissing))
	codec.AssertNotCalled(t, "Call", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthenticatePropagatesTransportFault(t *testing.T) {
	codec := mocks.NewMockCodec(t)
	auth := NewAuthenticator(testCreds, codec)

	codec.EXPECT().Call(mockAnyContext(), domain.ServiceCommon, "authenticate", mock.Anything).
		Return(nil, domain.NewFailure(domain.FailureTransport, "call common.authenticate", errors.New("connection refused"))).Once()

	_, err := auth.Authenticate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTransportFault))
	assert.False(t, errors.Is(err, domain.ErrAuthenticationFailed))
}
