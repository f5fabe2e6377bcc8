package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const currencyFormat = `"$"#,##0.00`

// BuildViewXLSX renders the report as a workbook with a summary sheet and an items sheet.
func BuildViewXLSX(r Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	summarySheet := "summary"
	itemsSheet := "items"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, err
	}

	numFmt := currencyFormat
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", r.Title())
	_ = f.SetCellStyle(summarySheet, "A1", "A1", bold)
	_ = f.SetCellValue(summarySheet, "A3", "Account")
	_ = f.SetCellValue(summarySheet, "B3", r.AccountID)
	_ = f.SetCellValue(summarySheet, "A4", "Event")
	_ = f.SetCellValue(summarySheet, "B4", r.EventName)
	_ = f.SetCellValue(summarySheet, "A5", "Generated")
	_ = f.SetCellValue(summarySheet, "B5", r.GeneratedAt.Format(time.RFC3339))
	_ = f.SetCellValue(summarySheet, "A6", "Search")
	_ = f.SetCellValue(summarySheet, "B6", r.Params.Search)
	_ = f.SetCellValue(summarySheet, "A7", "Filter")
	_ = f.SetCellValue(summarySheet, "B7", r.Params.Filter.Label())
	_ = f.SetCellValue(summarySheet, "A8", "Sort")
	_ = f.SetCellValue(summarySheet, "B8", r.Params.Sort.Label())
	_ = f.SetCellValue(summarySheet, "A9", "Totals basis")
	_ = f.SetCellValue(summarySheet, "B9", r.totalsBasis())

	totals := r.Totals
	amounts := []struct {
		label string
		value float64
	}{
		{"Total Owed", totals.TotalOwed.InexactFloat64()},
		{"Total Hammer Price", totals.TotalHammerPrice.InexactFloat64()},
		{"Total Fees", totals.TotalFees.InexactFloat64()},
		{"Bidder Deposit", totals.BidderDeposit.InexactFloat64()},
		{"Escrow Amount", totals.EscrowAmount.InexactFloat64()},
		{"Credits", totals.Credits.InexactFloat64()},
	}
	for i, a := range amounts {
		row := 11 + i
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), a.label)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), a.value)
		_ = f.SetCellStyle(summarySheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), money)
	}

	headers := []string{"Selected", "Lot", "Name", "Type", "Consign", "Stage", "Invoiced", "Hammer Price", "Fees", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(itemsSheet, cell, h)
	}
	_ = f.SetCellStyle(itemsSheet, "A1", "J1", bold)

	for i, item := range r.Items {
		row := i + 2
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("A%d", row), yesNo(r.Selected[item.Key]))
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("B%d", row), item.DisplayLot())
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("C%d", row), item.Name)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("D%d", row), string(item.TransactionType))
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("E%d", row), string(item.ConsignType))
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("F%d", row), item.DisplayStage())
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("G%d", row), yesNo(item.Invoiced))
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("H%d", row), item.HammerPrice.InexactFloat64())
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("I%d", row), item.Fees().InexactFloat64())
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("J%d", row), item.Total.InexactFloat64())
	}
	if len(r.Items) > 0 {
		_ = f.SetCellStyle(itemsSheet, "H2", fmt.Sprintf("J%d", len(r.Items)+1), money)
	}
	_ = f.SetColWidth(itemsSheet, "C", "C", 36)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
