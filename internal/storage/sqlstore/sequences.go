package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Kind names the child collection an ID is allocated for.
type Kind string

const (
	KindPlan  Kind = "plan"
	KindAddon Kind = "addon"
)

// Allocator hands out the next local ID for a child of categoryID. It runs
// inside the transaction that inserts the child, so the ID is only consumed
// if the insert commits.
type Allocator interface {
	Next(ctx context.Context, tx *sqlx.Tx, categoryID int64, kind Kind) (int64, error)
}

// SequenceAllocator keeps one counter row per (category, kind) and bumps it
// with an upsert. The row lock taken by the upsert serializes concurrent
// creates for the same category; IDs are never reused after a delete.
type SequenceAllocator struct{}

const nextIDQuery = `
	INSERT INTO id_sequences (category_id, kind, last_id)
	VALUES (?, ?, 1)
	ON CONFLICT (category_id, kind) DO UPDATE SET last_id = id_sequences.last_id + 1
	RETURNING last_id`

// Next implements Allocator.
func (SequenceAllocator) Next(ctx context.Context, tx *sqlx.Tx, categoryID int64, kind Kind) (int64, error) {
	var id int64
	if err := tx.GetContext(ctx, &id, tx.Rebind(nextIDQuery), categoryID, string(kind)); err != nil {
		return 0, fmt.Errorf("failed to allocate %s id: %w", kind, err)
	}
	return id, nil
}
