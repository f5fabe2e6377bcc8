package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Veraticus/cashiering/internal/consignment"
	"github.com/Veraticus/cashiering/internal/model"
	"github.com/jung-kurt/gofpdf"
)

// BuildViewPDF renders the report as a one-table PDF.
func BuildViewPDF(r Report) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, tr(r.Title()))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	if r.EventName != "" {
		pdf.Cell(0, 6, tr("Event: "+r.EventName))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", r.GeneratedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Filter: %s   Sort: %s   Search: %q",
		r.Params.Filter.Label(), r.Params.Sort.Label(), r.Params.Search)))
	pdf.Ln(8)

	widths := []float64{12, 20, 90, 25, 28, 30, 20, 30}
	headers := []string{"Sel", "Lot", "Name", "Type", "Consign", "Hammer", "Invoiced", "Total"}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, item := range r.Items {
		sel := ""
		if r.Selected[item.Key] {
			sel = "X"
		}
		cells := []struct {
			text  string
			align string
		}{
			{sel, "C"},
			{item.DisplayLot(), "C"},
			{tr(item.Name), "L"},
			{string(item.TransactionType), "C"},
			{string(item.ConsignType), "C"},
			{consignment.FormatCurrency(item.HammerPrice), "R"},
			{yesNo(item.Invoiced), "C"},
			{consignment.FormatCurrency(item.Total), "R"},
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c.text, "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(r.Items) == 0 {
		pdf.CellFormat(sum(widths), 6, "No items", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Totals (%s, %d items)", r.totalsBasis(), r.Totals.ItemCount))
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	for _, line := range r.totalLines() {
		pdf.CellFormat(50, 6, line.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, line.amount, "", 0, "R", false, 0, "")
		pdf.Ln(5)
	}

	return output(pdf)
}

// BuildDeliveryManifestPDF renders a confirmed delivery request for the carrier.
func BuildDeliveryManifestPDF(req model.DeliveryRequest) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, "Delivery Manifest")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Request: %s", req.ID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Account: %s", req.AccountID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Requested: %s", req.RequestedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr("Carrier: "+req.Carrier.Label))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr("Deliver to: "+req.Address.Label))
	pdf.Ln(5)
	if req.Comments != "" {
		pdf.MultiCell(0, 5, tr("Comments: "+req.Comments), "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(25, 6, "Lot", "1", 0, "C", false, 0, "")
	pdf.CellFormat(90, 6, "Item", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Hammer", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Total", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, item := range req.Items {
		pdf.CellFormat(25, 6, item.DisplayLot(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(90, 6, tr(item.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, consignment.FormatCurrency(item.HammerPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, consignment.FormatCurrency(item.Total), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(150, 6, "Total Amount", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, consignment.FormatCurrency(req.TotalAmount), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	return output(pdf)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
