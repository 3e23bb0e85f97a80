// Package tablestore holds the whole-table persistence contract used by the
// record services, plus the adapters that implement it (in-memory, spreadsheet
// workbook, and a TTL read cache). The SQL adapter lives in package db.
package tablestore

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// Table names
const (
	TableClients      = "clients"
	TableCases        = "cases"
	TableCaseHistory  = "case_history"
	TableEvents       = "schedule_events"
	TableInstallments = "financial_installments"
)

// AllTables lists every table in display order.
var AllTables = []string{
	TableClients,
	TableCases,
	TableCaseHistory,
	TableEvents,
	TableInstallments,
}

// ErrUnavailable is returned when the backing store cannot be reached.
var ErrUnavailable = errors.New("table store unavailable")

// Store reads and replaces whole tables. There is no row-level write.
//
// ReplaceAll is not guaranteed atomic at the backing store, and no version
// token is carried between a read and the following replace: two sessions
// that read-modify-replace the same table concurrently will silently lose one
// of the writes (last replace wins). Callers needing protection must provide
// it outside this package, e.g. optimistic versioning or a single-writer queue.
type Store interface {
	// ReadAll returns the rows of a table in stored order. Rows that are
	// empty in every column are excluded. A missing table reads as empty.
	ReadAll(ctx context.Context, table string) ([]Row, error)
	// ReplaceAll overwrites the table with rows, in order.
	ReplaceAll(ctx context.Context, table string, rows []Row) error
	// InvalidateCache drops any time-bounded read cache held for the caller.
	InvalidateCache()
}

// Row is one table row keyed by column name. Every cell round-trips as text.
type Row map[string]string

// Get returns the trimmed value of a column, or "" when absent.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// IsEmpty reports whether every cell is blank.
func (r Row) IsEmpty() bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge returns a copy of r with every column of patch written over it.
// Columns present only in r are kept as they are.
func (r Row) Merge(patch Row) Row {
	out := r.Clone()
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// CloneRows deep-copies a slice of rows.
func CloneRows(rows []Row) []Row {
	if rows == nil {
		return nil
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}

// Normalize is applied once right after every read: it drops rows that are
// empty in every column and makes sure each row carries every expected
// column, so downstream code never has to special-case a missing column or
// an empty table.
func Normalize(rows []Row, columns []string) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r == nil || r.IsEmpty() {
			continue
		}
		n := r.Clone()
		for _, c := range columns {
			if _, ok := n[c]; !ok {
				n[c] = ""
			}
		}
		out = append(out, n)
	}
	return out
}

// Columns returns the header for a table: the schema columns first, then any
// extra columns found in rows, sorted by name.
func Columns(schema []string, rows []Row) []string {
	seen := make(map[string]bool, len(schema))
	header := make([]string, 0, len(schema))
	for _, c := range schema {
		if !seen[c] {
			seen[c] = true
			header = append(header, c)
		}
	}

	var extra []string
	for _, r := range rows {
		for c := range r {
			if !seen[c] {
				seen[c] = true
				extra = append(extra, c)
			}
		}
	}
	sort.Strings(extra)
	return append(header, extra...)
}
