// Package export renders dashboard views and delivery requests as XLSX and PDF documents.
package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/cashiering/internal/consignment"
	"github.com/Veraticus/cashiering/internal/model"
)

// Report is a frozen dashboard view: the visible items and the totals shown beside them.
type Report struct {
	GeneratedAt time.Time
	Selected    map[string]bool
	AccountID   string
	EventName   string
	Params      consignment.ViewParams
	Items       []model.ConsignmentItem
	Totals      consignment.Totals
}

// Document formats.
const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// ErrUnknownFormat is returned by Render for formats other than xlsx and pdf.
var ErrUnknownFormat = errors.New("unknown export format")

// Render builds the report as an xlsx workbook or a pdf document.
func Render(r Report, format string) ([]byte, error) {
	switch format {
	case FormatXLSX:
		return BuildViewXLSX(r)
	case FormatPDF:
		return BuildViewPDF(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// FileName returns "<account>-<timestamp>.<format>".
func (r Report) FileName(format string) string {
	return fmt.Sprintf("%s-%s.%s", r.AccountID, r.GeneratedAt.Format("20060102-150405"), format)
}

// Title returns the document heading, e.g. "Bought Vehicles - acct-1001".
func (r Report) Title() string {
	return r.Params.Pivot.Label() + " - " + r.AccountID
}

func (r Report) totalsBasis() string {
	if r.Totals.FromSelection {
		return "Selected items"
	}
	return "Visible items"
}

type totalLine struct {
	label  string
	amount string
}

func (r Report) totalLines() []totalLine {
	f := r.Totals.Formatted()
	return []totalLine{
		{"Total Owed", f.TotalOwed},
		{"Total Hammer Price", f.TotalHammerPrice},
		{"Total Fees", f.TotalFees},
		{"Bidder Deposit", f.BidderDeposit},
		{"Escrow Amount", f.EscrowAmount},
		{"Credits", f.Credits},
	}
}
