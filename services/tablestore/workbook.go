package tablestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
)

// ErrBlobNotFound is returned by a BlobStore when the key does not exist yet.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore persists the raw workbook bytes (local disk, R2 bucket, ...).
type BlobStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// WorkbookStore keeps every table as one sheet of a single .xlsx workbook.
// Row 1 of each sheet is the header and names the columns.
//
// Each ReplaceAll loads the whole workbook, swaps one sheet, and saves the
// whole workbook back, so the mutex only orders writers inside this process.
type WorkbookStore struct {
	blobs   BlobStore
	key     string
	schemas map[string][]string
	mu      sync.Mutex
}

// NewWorkbookStore creates a workbook-backed store. schemas gives the header
// order used when a sheet is written; unknown columns are appended sorted.
func NewWorkbookStore(blobs BlobStore, key string, schemas map[string][]string) *WorkbookStore {
	return &WorkbookStore{blobs: blobs, key: key, schemas: schemas}
}

// ReadAll decodes one sheet into rows.
func (w *WorkbookStore) ReadAll(ctx context.Context, table string) ([]Row, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	sheets, _, err := w.load(ctx)
	if err != nil {
		return nil, err
	}
	return decodeSheet(sheets[table]), nil
}

// ReplaceAll rewrites one sheet and saves the workbook.
func (w *WorkbookStore) ReplaceAll(ctx context.Context, table string, rows []Row) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	sheets, order, err := w.load(ctx)
	if err != nil {
		return err
	}

	if _, ok := sheets[table]; !ok {
		order = append(order, table)
	}
	sheets[table] = encodeSheet(Columns(w.schemas[table], rows), rows)

	data, err := writeWorkbook(sheets, order)
	if err != nil {
		return err
	}
	if err := w.blobs.Save(ctx, w.key, data); err != nil {
		return fmt.Errorf("%w: save workbook %s: %v", ErrUnavailable, w.key, err)
	}
	return nil
}

// InvalidateCache is a no-op; the workbook is re-read on every call.
func (w *WorkbookStore) InvalidateCache() {}

func (w *WorkbookStore) load(ctx context.Context) (map[string][][]string, []string, error) {
	sheets := make(map[string][][]string)

	data, err := w.blobs.Load(ctx, w.key)
	if errors.Is(err, ErrBlobNotFound) {
		return sheets, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: load workbook %s: %v", ErrUnavailable, w.key, err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook %s: %w", w.key, err)
	}
	defer f.Close()

	order := f.GetSheetList()
	for _, name := range order {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
		}
		sheets[name] = rows
	}
	return sheets, order, nil
}

func writeWorkbook(sheets map[string][][]string, order []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("failed to name sheet %s: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}

		for r, cells := range sheets[name] {
			values := make([]interface{}, len(cells))
			for c, v := range cells {
				values[c] = v
			}
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				return nil, fmt.Errorf("failed to write sheet %s: %w", name, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook buffer: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeSheet(raw [][]string) []Row {
	if len(raw) == 0 {
		return []Row{}
	}

	header := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		header[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		r := make(Row, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(cells) {
				r[col] = cells[i]
			} else {
				r[col] = ""
			}
		}
		if r.IsEmpty() {
			continue
		}
		rows = append(rows, r)
	}
	return rows
}

func encodeSheet(header []string, rows []Row) [][]string {
	out := make([][]string, 0, len(rows)+1)
	out = append(out, header)
	for _, r := range rows {
		cells := make([]string, len(header))
		for i, col := range header {
			cells[i] = r[col]
		}
		out = append(out, cells)
	}
	return out
}
