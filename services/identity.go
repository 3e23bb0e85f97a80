package services

import (
	"math"

	"juris_control_go/models"
	"juris_control_go/services/tablestore"
)

// NextID returns the smallest identifier strictly greater than every numeric
// value in column, or 1 when the table is empty or the column holds nothing
// numeric. Values such as "3.0" count as 3; anything unparsable is ignored.
//
// Identifiers are 64-bit. When the column already holds math.MaxInt64 there
// is no greater id and NextID returns math.MaxInt64 itself;
// TableRepository.NextID reports that case as ErrIDSpaceExhausted.
func NextID(rows []tablestore.Row, column string) int64 {
	var max int64
	found := false
	for _, row := range rows {
		id, ok := models.ParseID(row.Get(column))
		if !ok {
			continue
		}
		if !found || id > max {
			max = id
			found = true
		}
	}
	if !found {
		return 1
	}
	if max == math.MaxInt64 {
		return max
	}
	return max + 1
}
