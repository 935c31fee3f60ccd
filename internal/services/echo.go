package services

import (
	"context"

	"github.com/avolkov/backoffice/internal/api"
	"github.com/avolkov/backoffice/internal/logging"
)

// optionalEcho decodes the server's echo of an updated entity when there
// is one. Servers that answer 204 or with an empty body yield nil, which
// keeps the caller's optimistic value in place. A malformed echo is
// ignored the same way rather than failing an update that the server
// already accepted.
func optionalEcho[T any](ctx context.Context, log logging.Logger, resp *api.Response) (*T, error) {
	if !resp.HasJSON() {
		return nil, nil
	}
	var echo T
	if err := resp.Decode(&echo); err != nil {
		log.Warn(ctx, "ignoring malformed entity echo", "error", err)
		return nil, nil
	}
	return &echo, nil
}
