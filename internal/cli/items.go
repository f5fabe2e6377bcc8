package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/cashiering/internal/consignment"
	"github.com/Veraticus/cashiering/internal/model"
)

// WriteItems prints items as an aligned table. selected, when non-nil,
// marks the checkbox column.
func WriteItems(w io.Writer, items []model.ConsignmentItem, selected func(key string) bool) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, InfoStyle.Render("No items match the current view."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		"",
		HeaderStyle.Render("Lot"),
		HeaderStyle.Render("Item"),
		HeaderStyle.Render("Type"),
		HeaderStyle.Render("Stage"),
		HeaderStyle.Render("Hammer"),
		HeaderStyle.Render("Fees"),
		HeaderStyle.Render("Total"))
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		"", strings.Repeat("-", 5), strings.Repeat("-", 30), strings.Repeat("-", 11),
		strings.Repeat("-", 12), strings.Repeat("-", 12), strings.Repeat("-", 10), strings.Repeat("-", 12))

	for _, item := range items {
		box := EmptyBox
		if selected != nil && selected(item.Key) {
			box = CheckedBox
		}
		lot := item.Lot
		if lot == "" {
			lot = SubtleStyle.Render("-")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			box,
			lot,
			item.Name,
			string(item.ConsignType),
			item.DisplayStage(),
			consignment.FormatCurrency(item.HammerPrice),
			consignment.FormatCurrency(item.Fees()),
			consignment.FormatCurrency(item.Total))
	}
	return tw.Flush()
}

// WriteTotals prints the totals block under a heading naming its basis.
func WriteTotals(w io.Writer, t consignment.Totals) error {
	basis := fmt.Sprintf("Visible items (%d)", t.ItemCount)
	if t.FromSelection {
		basis = fmt.Sprintf("Selected items (%d)", t.ItemCount)
	}

	f := t.Formatted()
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, line := range [][2]string{
		{"Total Owed", MoneyStyle.Render(f.TotalOwed)},
		{"Hammer Price", f.TotalHammerPrice},
		{"Fees", f.TotalFees},
		{"Bidder Deposit", f.BidderDeposit},
		{"Escrow", f.EscrowAmount},
		{"Credits", f.Credits},
	} {
		fmt.Fprintf(tw, "%s\t%s\t\n", line[0], line[1])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, RenderBox(basis, strings.TrimRight(b.String(), "\n")))
	return err
}
