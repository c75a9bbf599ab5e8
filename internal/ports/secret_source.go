package ports

import "context"

// SecretSource resolves a secret reference to its value.
type SecretSource interface {
	Get(ctx context.Context, key string) (string, error)
}
