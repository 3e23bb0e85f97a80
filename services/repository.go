package services

import (
	"context"
	"errors"
	"fmt"

	"juris_control_go/models"
	"juris_control_go/services/tablestore"
)

// errNoMatch is returned by UpdateFirst when no row matches. It satisfies
// errors.Is(err, ErrNotFound).
var errNoMatch = notFound("no matching row")

// TableRepository gives a row-level view over one whole-table store entry.
// Every write is read-modify-replace of the full table.
type TableRepository struct {
	store    tablestore.Store
	name     string
	columns  []string
	idColumn string
}

// NewTableRepository creates a repository for table. idColumn may be empty
// for tables whose rows are identified by position only.
func NewTableRepository(store tablestore.Store, table string, columns []string, idColumn string) *TableRepository {
	return &TableRepository{
		store:    store,
		name:     table,
		columns:  columns,
		idColumn: idColumn,
	}
}

// Name returns the table name.
func (r *TableRepository) Name() string {
	return r.name
}

// Rows reads and normalizes the table for decoding.
func (r *TableRepository) Rows(ctx context.Context) ([]tablestore.Row, error) {
	rows, err := r.raw(ctx)
	if err != nil {
		return nil, err
	}
	return tablestore.Normalize(rows, r.columns), nil
}

// raw reads the table without normalizing it. Writes start from these rows
// so that rows a write does not touch go back exactly as they were read.
func (r *TableRepository) raw(ctx context.Context) ([]tablestore.Row, error) {
	rows, err := r.store.ReadAll(ctx, r.name)
	if err != nil {
		return nil, storeError("read", r.name, err)
	}
	kept := rows[:0]
	for _, row := range rows {
		if row != nil && !row.IsEmpty() {
			kept = append(kept, row)
		}
	}
	return kept, nil
}

// Replace overwrites the table.
func (r *TableRepository) Replace(ctx context.Context, rows []tablestore.Row) error {
	if err := r.store.ReplaceAll(ctx, r.name, rows); err != nil {
		return storeError("replace", r.name, err)
	}
	return nil
}

// Append adds rows at the end of the table and returns the position of the
// first appended row.
func (r *TableRepository) Append(ctx context.Context, rows ...tablestore.Row) (int, error) {
	current, err := r.raw(ctx)
	if err != nil {
		return 0, err
	}
	position := len(current)
	if err := r.Replace(ctx, append(current, rows...)); err != nil {
		return 0, err
	}
	return position, nil
}

// NextID allocates the next identifier from the current table contents.
func (r *TableRepository) NextID(ctx context.Context) (int64, error) {
	rows, err := r.raw(ctx)
	if err != nil {
		return 0, err
	}
	id := NextID(rows, r.idColumn)
	if indexWhere(rows, r.hasID(id)) >= 0 {
		return 0, fmt.Errorf("%s: %w", r.name, ErrIDSpaceExhausted)
	}
	return id, nil
}

// Find returns the first row whose id column equals id, and its index.
func (r *TableRepository) Find(ctx context.Context, id int64) (tablestore.Row, int, error) {
	rows, err := r.Rows(ctx)
	if err != nil {
		return nil, -1, err
	}
	idx := indexWhere(rows, r.hasID(id))
	if idx < 0 {
		return nil, -1, fmt.Errorf("%s id %d: %w", r.name, id, ErrNotFound)
	}
	return rows[idx], idx, nil
}

// Update applies fn to the row with the given id and replaces the table.
func (r *TableRepository) Update(ctx context.Context, id int64, fn func(tablestore.Row) (tablestore.Row, error)) (tablestore.Row, error) {
	updated, err := r.UpdateFirst(ctx, r.hasID(id), fn)
	if errors.Is(err, errNoMatch) {
		return nil, fmt.Errorf("%s id %d: %w", r.name, id, ErrNotFound)
	}
	return updated, err
}

// UpdateFirst applies fn to the first row accepted by match and replaces the
// table. fn receives a copy of the row as stored. Nothing is written when no
// row matches or fn fails; the former returns an ErrNotFound error.
func (r *TableRepository) UpdateFirst(ctx context.Context, match func(tablestore.Row) bool, fn func(tablestore.Row) (tablestore.Row, error)) (tablestore.Row, error) {
	rows, err := r.raw(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexWhere(rows, match)
	if idx < 0 {
		return nil, errNoMatch
	}

	updated, err := fn(rows[idx].Clone())
	if err != nil {
		return nil, err
	}
	rows[idx] = updated

	if err := r.Replace(ctx, rows); err != nil {
		return nil, err
	}
	return updated, nil
}

// Upsert merges row into the first row with the given id, or appends it
// with the id set when there is none.
func (r *TableRepository) Upsert(ctx context.Context, id int64, row tablestore.Row) error {
	rows, err := r.raw(ctx)
	if err != nil {
		return err
	}

	patch := row.Merge(tablestore.Row{r.idColumn: models.FormatID(id)})
	if idx := indexWhere(rows, r.hasID(id)); idx >= 0 {
		rows[idx] = rows[idx].Merge(patch)
	} else {
		rows = append(rows, patch)
	}
	return r.Replace(ctx, rows)
}

// Delete removes the first row with the given id.
func (r *TableRepository) Delete(ctx context.Context, id int64) error {
	rows, err := r.raw(ctx)
	if err != nil {
		return err
	}
	idx := indexWhere(rows, r.hasID(id))
	if idx < 0 {
		return fmt.Errorf("%s id %d: %w", r.name, id, ErrNotFound)
	}
	return r.Replace(ctx, append(rows[:idx], rows[idx+1:]...))
}

func (r *TableRepository) hasID(id int64) func(tablestore.Row) bool {
	return func(row tablestore.Row) bool {
		return sameKey(row.Get(r.idColumn), id)
	}
}

func indexWhere(rows []tablestore.Row, match func(tablestore.Row) bool) int {
	for i, row := range rows {
		if match(row) {
			return i
		}
	}
	return -1
}

func storeError(op, table string, err error) error {
	if errors.Is(err, ErrStoreUnavailable) {
		return fmt.Errorf("%s %s: %w", op, table, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %s %s: %v", ErrStoreUnavailable, op, table, err)
}
