package application

import (
	"context"
	"fmt"

	"github.com/bnema/odoo-partners-cli/internal/domain"
	"github.com/bnema/odoo-partners-cli/internal/ports"
)

type Authenticator struct {
	creds domain.Credentials
	codec ports.Codec
}

func NewAuthenticator(creds domain.Credentials, codec ports.Codec) *Authenticator {
	return &Authenticator{creds: creds, codec: codec}
}

// Authenticate exchanges the credentials for a session. A falsy uid from the
// remote service is reported as ErrAuthenticationFailed, which is an expected
// outcome rather than a transport problem. It never retries.
func (a *Authenticator) Authenticate(ctx context.Context) (domain.Session, error) {
	if err := a.creds.Validate(); err != nil {
		return domain.Session{}, err
	}

	result, err := a.codec.Call(ctx, domain.ServiceCommon, domain.MethodAuthenticate, []any{
		a.creds.Database,
		a.creds.Username,
		a.creds.Secret,
		map[string]any{},
	})
	if err != nil {
		return domain.Session{}, err
	}

	if !domain.Truthy(result) {
		return domain.Session{}, domain.NewFailure(domain.FailureAuthenticationFailed, "authenticate", fmt.Errorf("no user id returned for %q on database %q", a.creds.Username, a.creds.Database))
	}

	uid, err := domain.AsInt64(result)
	if err != nil || uid <= 0 {
		return domain.Session{}, domain.NewFailure(domain.FailureAuthenticationFailed, "authenticate", fmt.Errorf("unexpected user id %v", result))
	}

	return domain.Session{UserID: uid, IssuedFor: a.creds}, nil
}
