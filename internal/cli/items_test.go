package cli

import (
	"bytes"
	"testing"

	"github.com/Veraticus/cashiering/internal/consignment"
	"github.com/Veraticus/cashiering/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteItems(t *testing.T) {
	items := testutil.SampleItems()
	var buf bytes.Buffer

	err := WriteItems(&buf, items[:2], func(key string) bool { return key == items[0].Key })
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Lot")
	assert.Contains(t, out, items[0].Name)
	assert.Contains(t, out, items[1].Name)
	assert.Contains(t, out, consignment.FormatCurrency(items[0].Total))
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte(CheckedBox)))
}

func TestWriteItems_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteItems(&buf, nil, nil))
	assert.Contains(t, buf.String(), "No items match the current view.")
}

func TestWriteTotals(t *testing.T) {
	tests := []struct {
		name   string
		totals consignment.Totals
		want   string
	}{
		{
			name:   "visible",
			totals: consignment.ComputeTotals(testutil.SampleItems()),
			want:   "Visible items (7)",
		},
		{
			name:   "selection",
			totals: consignment.TotalsFor(testutil.SampleItems()[:1], nil),
			want:   "Selected items (1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteTotals(&buf, tt.totals))
			out := buf.String()
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, "Bidder Deposit")
			assert.Contains(t, out, "$10,000.00")
			assert.Contains(t, out, "$5,000.00")
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgress(&buf, 2, "Seeding")
	Step(bar)
	Step(bar)
	assert.True(t, bar.IsFinished())
}
