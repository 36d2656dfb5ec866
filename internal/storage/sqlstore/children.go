package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/mmynk/catalog/internal/storage"
)

// table describes an updatable table: its name and the whitelist mapping
// payload field keys to columns. Only whitelisted columns ever reach SQL.
type table struct {
	name    string
	columns map[string]string
}

// buildUpdate renders a parameterized UPDATE for the fields in changes,
// in sorted field order. It returns an empty query when changes is empty.
func buildUpdate(t table, changes storage.Changes, where string, whereArgs ...any) (string, []any, error) {
	if len(changes) == 0 {
		return "", nil, nil
	}

	fields := make([]string, 0, len(changes))
	for f := range changes {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	sets := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+len(whereArgs))
	for _, f := range fields {
		col, ok := t.columns[f]
		if !ok {
			return "", nil, fmt.Errorf("unknown %s field %q", t.name, f)
		}
		sets = append(sets, col+" = ?")
		args = append(args, changes[f])
	}
	args = append(args, whereArgs...)

	query := "UPDATE " + t.name + " SET " + strings.Join(sets, ", ") + " WHERE " + where
	return query, args, nil
}

// update runs a partial update and reports rows affected. Empty changes
// never touch the database.
func (s *Store) update(ctx context.Context, t table, changes storage.Changes, where string, whereArgs ...any) (int64, error) {
	query, args, err := buildUpdate(t, changes, where, whereArgs...)
	if err != nil {
		return 0, err
	}
	if query == "" {
		return 0, nil
	}

	result, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return 0, wrapWriteError("update "+t.name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

// insertChild allocates the next ID for kind under categoryID and calls
// insert with it, all in one transaction. Nothing is written when the
// category is missing or the insert fails.
func (s *Store) insertChild(ctx context.Context, categoryID int64, kind Kind, insert func(tx *sqlx.Tx, id int64) error) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.GetContext(ctx, &exists, tx.Rebind("SELECT 1 FROM categories WHERE id = ?"), categoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("category %d: %w", categoryID, storage.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to check category: %w", err)
	}

	id, err := s.alloc.Next(ctx, tx, categoryID, kind)
	if err != nil {
		return 0, err
	}

	if err := insert(tx, id); err != nil {
		return 0, wrapWriteError(fmt.Sprintf("insert %s", kind), err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return id, nil
}

// deleteChild removes at most one row of tableName keyed by (categoryID, id).
func (s *Store) deleteChild(ctx context.Context, tableName string, categoryID, id int64) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		s.db.Rebind("DELETE FROM "+tableName+" WHERE category_id = ? AND id = ?"),
		categoryID, id,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", tableName, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
