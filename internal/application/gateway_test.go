package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/odoo-partners-cli/internal/domain"
	"github.com/bnema/odoo-partners-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testCreds = domain.Credentials{
	ServiceURL: "http://odoo.test",
	Database:   "odoo",
	Username:   "admin",
	Secret:     "secret",
}

func testSession() domain.Session {
	return domain.Session{UserID: 2, IssuedFor: testCreds}
}

func mockAnyContext() any {
	return mock.Anything
}

func TestGatewayShapesExecuteKW(t *testing.T) {
	codec := mocks.NewMockCodec(t)
	gateway := NewGateway(codec)

	codec.EXPECT().Call(mockAnyContext(), domain.ServiceObject, "execute_kw", []any{
		"odoo", int64(2), "secret", "res.partner", "search_read",
		[]any{[]any{}},
		map[string]any{"limit": 5},
	}).Return([]any{}, nil)

	result, err := gateway.ExecuteKW(context.Background(), testSession(), domain.RemoteCallRequest{
		Model:   "res.partner",
		Method:  "search_read",
		Args:    []any{[]any{}},
		Options: map[string]any{"limit": 5},
	})
	require.NoError(t, err)
	assert.Equal(t, []any{}, result)
}

func TestGatewayOmitsEmptyOptions(t *testing.T) {
	codec := mocks.NewMockCodec(t)
	gateway := NewGateway(codec)

	codec.EXPECT().Call(mockAnyContext(), domain.ServiceObject, "execute_kw", []any{
		"odoo", int64(2), "secret", "res.partner", "unlink", []any{[]any{int64(9)}},
	}).Return(true, nil)

	result, err := gateway.ExecuteKW(context.Background(), testSession(), domain.RemoteCallRequest{
		Model:  "res.partner",
		Method: "unlink",
		Args:   []any{[]any{int64(9)}},
	})
	require.NoError(t, err)
	assert.Equal(t, true, result)
}

func TestGatewayRejectsCallWithoutSession(t *testing.T) {
	codec := mocks.NewMockCodec(t)
	gateway := NewGateway(codec)

	_, err := gateway.ExecuteKW(context.Background(), domain.Session{}, domain.RemoteCallRequest{Model: "res.partner", Method: "search_read"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSessionRequired))
	codec.AssertNotCalled(t, "Call", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGatewayPropagatesCodecFailure(t *testing.T) {
	codec := mocks.NewMockCodec(t)
	gateway := NewGateway(codec)

	failure := domain.NewFailure(domain.FailureTransport, "call object.execute_kw", errors.New("status 500"))
	codec.EXPECT().Call(mockAnyContext(), domain.ServiceObject, "execute_kw", mock.Anything).Return(nil, failure)

	_, err := gateway.ExecuteKW(context.Background(), testSession(), domain.RemoteCallRequest{Model: "res.partner", Method: "search_read"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTransportFault))
}
