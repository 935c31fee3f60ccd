package grid

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// CreateGuard deduplicates concurrent creation of the same parent entity,
// e.g. the draft order that must hold a server-assigned id before lines
// can attach to it. Callers racing on the same key share one in-flight
// create and observe the same id. The slot is dropped as soon as the call
// finishes, so after a failure the next caller simply retries.
type CreateGuard struct {
	g singleflight.Group
}

// Ensure runs create at most once per key among concurrent callers and
// returns the resulting id. The context of the caller that actually
// starts the request drives it; latecomers just wait for the shared
// result.
func (c *CreateGuard) Ensure(ctx context.Context, key string, create func(ctx context.Context) (int64, error)) (int64, error) {
	v, err, _ := c.g.Do(key, func() (any, error) {
		return create(ctx)
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}
