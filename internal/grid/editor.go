package grid

import (
	"context"
	"fmt"
)

// Edit is a completed inline cell edit: which field changed, the proposed
// value, and the value the cell held before editing started. Values travel
// as strings because that is what a grid cell yields.
type Edit struct {
	Field    string
	Value    string
	Previous string
}

// Editor runs the optimistic single-field edit contract for one entity
// type. Row types must be plain value types (scalar fields only): the
// pre-edit snapshot is a shallow copy.
//
// The contract, per edit:
//
//  1. Normalize the proposed and previous values.
//  2. Invalid value: revert the field, emit a warning, no network call.
//  3. Unchanged after normalization: revert to the normalized previous
//     value, no network call.
//  4. Otherwise apply locally, recompute derived fields, persist remotely.
//  5. Remote success: adopt the server's echo of the row when it returns
//     one, keep the optimistic value when it doesn't.
//  6. Remote failure: restore the pre-edit snapshot exactly and emit an
//     error carrying the failure's message.
//
// Edits are not serialized per row: two overlapping edits race and the
// last response to arrive wins, matching the behavior of the grids this
// replaces.
type Editor[T any] struct {
	// Normalize canonicalizes a raw cell value (trimming, usually).
	// Optional.
	Normalize func(field, value string) string

	// Validate rejects a proposed value with a user-facing error. Optional.
	Validate func(field, value string) error

	// Apply writes a validated value into the row. Required.
	Apply func(row *T, field, value string) error

	// Recompute refreshes fields derived from the edited ones. Optional.
	Recompute func(row *T)

	// Persist sends the updated row to the server and returns its echo of
	// the entity, or nil when the server answered without a body. Required.
	Persist func(ctx context.Context, row T) (*T, error)

	// Notifier receives the outcome. Optional.
	Notifier Notifier
}

// Edit runs the contract against row in place. The returned error is
// non-nil only for remote failures; validation problems are handled
// entirely through revert + notification.
func (e *Editor[T]) Edit(ctx context.Context, row *T, ed Edit) error {
	value, prev := ed.Value, ed.Previous
	if e.Normalize != nil {
		value = e.Normalize(ed.Field, value)
		prev = e.Normalize(ed.Field, prev)
	}

	if e.Validate != nil {
		if err := e.Validate(ed.Field, value); err != nil {
			if applyErr := e.Apply(row, ed.Field, prev); applyErr != nil {
				e.notifier().Warning(applyErr.Error())
				return nil
			}
			e.notifier().Warning(err.Error())
			return nil
		}
	}

	if value == prev {
		// Idempotent no-op; still writes back the normalized previous value.
		_ = e.Apply(row, ed.Field, prev)
		return nil
	}

	snapshot := *row
	if err := e.Apply(row, ed.Field, value); err != nil {
		*row = snapshot
		e.notifier().Warning(err.Error())
		return nil
	}
	if e.Recompute != nil {
		e.Recompute(row)
	}

	echo, err := e.Persist(ctx, *row)
	if err != nil {
		*row = snapshot
		e.notifier().Error(err.Error())
		return fmt.Errorf("persist %s: %w", ed.Field, err)
	}
	if echo != nil {
		*row = *echo
	}
	e.notifier().Success(fmt.Sprintf("%s updated", ed.Field))
	return nil
}

func (e *Editor[T]) notifier() Notifier {
	if e.Notifier == nil {
		return nopNotifier{}
	}
	return e.Notifier
}
