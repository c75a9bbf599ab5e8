package ports

import (
	"context"

	"github.com/bnema/odoo-partners-cli/internal/domain"
)

// Codec performs one remote procedure call and returns the decoded result.
// Implementations report failures as *domain.Failure.
type Codec interface {
	Call(ctx context.Context, service domain.Service, method string, args []any) (any, error)
}
