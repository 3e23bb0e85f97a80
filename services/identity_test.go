package services

import (
	"context"
	"math"
	"testing"

	"juris_control_go/services/tablestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextID(t *testing.T) {
	tests := []struct {
		name string
		rows []tablestore.Row
		want int64
	}{
		{
			name: "Empty table",
			rows: nil,
			want: 1,
		},
		{
			name: "Mixed representations",
			rows: []tablestore.Row{{"id": "3"}, {"id": "5"}, {"id": "2.0"}, {"id": "x"}},
			want: 6,
		},
		{
			name: "Column absent",
			rows: []tablestore.Row{{"name": "Ana"}, {"name": "Bruno"}},
			want: 1,
		},
		{
			name: "Column entirely non-numeric",
			rows: []tablestore.Row{{"id": "abc"}, {"id": ""}},
			want: 1,
		},
		{
			name: "Float artifacts only",
			rows: []tablestore.Row{{"id": "9.0"}, {"id": " 4 "}},
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextID(tt.rows, "id"))
		})
	}
}

func TestNextID_Saturates(t *testing.T) {
	rows := []tablestore.Row{{"id": "1"}, {"id": "9223372036854775807"}}
	assert.Equal(t, int64(math.MaxInt64), NextID(rows, "id"))

	store := tablestore.NewMemoryStore()
	require.NoError(t, store.ReplaceAll(context.Background(), "things", rows))
	_, err := NewTableRepository(store, "things", nil, "id").NextID(context.Background())
	assert.ErrorIs(t, err, ErrIDSpaceExhausted)
}
