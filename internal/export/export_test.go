package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/Veraticus/cashiering/internal/consignment"
	"github.com/Veraticus/cashiering/internal/model"
	"github.com/Veraticus/cashiering/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() Report {
	items := testutil.SampleItems()
	params := consignment.DefaultViewParams()
	params.Pivot = consignment.PivotAll
	view := consignment.DeriveView(items, params)
	selected := []model.ConsignmentItem{items[0]}
	return Report{
		GeneratedAt: time.Date(2026, 1, 20, 15, 4, 0, 0, time.UTC),
		Selected:    map[string]bool{items[0].Key: true},
		AccountID:   "acct-1001",
		EventName:   "Scottsdale 2026",
		Params:      params,
		Items:       view,
		Totals:      consignment.TotalsFor(selected, view),
	}
}

func TestBuildViewXLSX(t *testing.T) {
	r := sampleReport()

	data, err := BuildViewXLSX(r)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	title, err := f.GetCellValue("summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "All Items - acct-1001", title)

	basis, err := f.GetCellValue("summary", "B9")
	require.NoError(t, err)
	assert.Equal(t, "Selected items", basis)

	rows, err := f.GetRows("items")
	require.NoError(t, err)
	require.Len(t, rows, len(r.Items)+1)
	assert.Equal(t, "Name", rows[0][2])
	assert.Equal(t, r.Items[0].Name, rows[1][2])
}

func TestBuildViewPDF(t *testing.T) {
	data, err := BuildViewPDF(sampleReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestBuildViewPDF_Empty(t *testing.T) {
	r := sampleReport()
	r.Items = nil
	r.Selected = nil
	r.Totals = consignment.TotalsFor(nil, nil)

	data, err := BuildViewPDF(r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestBuildDeliveryManifestPDF(t *testing.T) {
	items := testutil.SampleItems()[:2]
	req := model.DeliveryRequest{
		RequestedAt: time.Date(2026, 1, 20, 15, 4, 0, 0, time.UTC),
		ID:          "req-1",
		AccountID:   "acct-1001",
		Address:     model.DefaultAddresses[0],
		Carrier:     model.DefaultCarriers[2],
		Comments:    "Call before arrival",
		Items:       items,
		TotalAmount: decimal.NewFromInt(241700),
	}

	data, err := BuildDeliveryManifestPDF(req)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestReport_Title(t *testing.T) {
	r := Report{AccountID: "a1", Params: consignment.ViewParams{Pivot: consignment.PivotBoughtVehicles}}
	assert.Equal(t, "Bought Vehicles - a1", r.Title())
}

func TestRender(t *testing.T) {
	r := sampleReport()

	tests := []struct {
		format string
		prefix string
		err    error
	}{
		{format: FormatXLSX, prefix: "PK"},
		{format: FormatPDF, prefix: "%PDF-"},
		{format: "csv", err: ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := Render(r, tt.format)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte(tt.prefix)))
		})
	}
}

func TestReport_FileName(t *testing.T) {
	r := sampleReport()
	assert.Equal(t, "acct-1001-20260120-150400.pdf", r.FileName(FormatPDF))
}
