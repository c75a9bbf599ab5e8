package application

import (
	"context"

	"github.com/bnema/odoo-partners-cli/internal/domain"
	"github.com/bnema/odoo-partners-cli/internal/ports"
)

// Gateway shapes every data call as object.execute_kw. It passes filters and
// options through untouched; choosing between a match-all filter and a
// substring filter is left to the caller.
type Gateway struct {
	codec ports.Codec
}

func NewGateway(codec ports.Codec) *Gateway {
	return &Gateway{codec: codec}
}

func (g *Gateway) ExecuteKW(ctx context.Context, session domain.Session, req domain.RemoteCallRequest) (any, error) {
	if !session.Valid() {
		return nil, domain.ErrSessionRequired
	}

	args := req.Args
	if args == nil {
		args = []any{}
	}

	params := []any{
		session.IssuedFor.Database,
		session.UserID,
		session.IssuedFor.Secret,
		req.Model,
		req.Method,
		args,
	}
	if len(req.Options) > 0 {
		params = append(params, req.Options)
	}

	return g.codec.Call(ctx, domain.ServiceObject, domain.MethodExecuteKW, params)
}
