package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"juris_control_go/services/tablestore"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TableRow is one logical table row. Cells are kept as a JSON object so
// tables can gain columns without a migration.
type TableRow struct {
	ID        uint              `gorm:"primaryKey"`
	Sheet     string            `gorm:"not null;index:idx_table_rows_sheet_position,priority:1"`
	Position  int               `gorm:"not null;index:idx_table_rows_sheet_position,priority:2"`
	Data      datatypes.JSONMap `gorm:"not null"`
	UpdatedAt time.Time
}

func (TableRow) TableName() string {
	return "table_rows"
}

// TableStore implements tablestore.Store on a SQL database.
type TableStore struct {
	db *gorm.DB
}

func NewTableStore(database *gorm.DB) *TableStore {
	return &TableStore{db: database}
}

func (s *TableStore) ReadAll(ctx context.Context, table string) ([]tablestore.Row, error) {
	var records []TableRow
	err := s.db.WithContext(ctx).
		Where("sheet = ?", table).
		Order("position ASC").
		Find(&records).Error
	if err != nil {
		return nil, unavailable(err)
	}

	rows := make([]tablestore.Row, 0, len(records))
	for _, rec := range records {
		row := make(tablestore.Row, len(rec.Data))
		for k, v := range rec.Data {
			row[k] = cellText(v)
		}
		if !row.IsEmpty() {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// ReplaceAll swaps the table contents inside one transaction.
func (s *TableStore) ReplaceAll(ctx context.Context, table string, rows []tablestore.Row) error {
	records := make([]TableRow, 0, len(rows))
	for _, row := range rows {
		if row.IsEmpty() {
			continue
		}
		data := make(datatypes.JSONMap, len(row))
		for k, v := range row {
			data[k] = v
		}
		records = append(records, TableRow{Sheet: table, Position: len(records), Data: data})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sheet = ?", table).Delete(&TableRow{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(records, 200).Error
	})
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// InvalidateCache is a no-op: every read goes to the database.
func (s *TableStore) InvalidateCache() {}

func unavailable(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", tablestore.ErrUnavailable, err)
}

func cellText(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
