// Package credentials persists the back-office bearer token between runs.
// The token lives in a single key/value slot; writes are rare and
// user-triggered, so last-writer-wins is acceptable.
package credentials

import "context"

type Repository interface {
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
