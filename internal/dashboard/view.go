package dashboard

import (
	"context"
	"strconv"

	"github.com/Veraticus/cashiering/internal/consignment"
	"github.com/Veraticus/cashiering/internal/delivery"
	"github.com/Veraticus/cashiering/internal/model"
	"github.com/Veraticus/cashiering/internal/tui/viewmodel"
)

// Snapshot renders the whole dashboard from the current state.
func (s *Session) Snapshot() viewmodel.DashboardView {
	view := s.View()
	selected := s.SelectedItems()

	v := viewmodel.DashboardView{
		AccountID:       s.accountID,
		Pivot:           string(s.params.Pivot),
		Search:          s.params.Search,
		Filter:          string(s.params.Filter),
		Sort:            string(s.params.Sort),
		Tabs:            s.tabs(),
		Items:           make([]viewmodel.ItemView, 0, len(view)),
		Totals:          TotalsView(consignment.TotalsFor(selected, view)),
		Delivery:        s.deliveryView(selected),
		SelectedCount:   s.selection.Count(),
		TotalCount:      len(s.items),
		CanOpenDelivery: delivery.CanOpen(s.selection.Count()),
		State:           s.state(),
	}
	if s.cart != nil {
		v.EventName = s.cart.EventName
	}
	if s.loadErr != nil {
		v.LoadError = "Unable to load items"
	}
	for _, item := range view {
		v.Items = append(v.Items, ItemRow(item, s.selection.IsSelected(item.Key)))
	}
	return v
}

func (s *Session) state() viewmodel.AppState {
	switch {
	case s.loading:
		return viewmodel.StateLoading
	case s.delivery.State() == delivery.StateReviewing:
		return viewmodel.StateReviewing
	case s.loadErr != nil:
		return viewmodel.StateError
	default:
		return viewmodel.StateReady
	}
}

func (s *Session) tabs() []viewmodel.TabView {
	counts := s.cats.Counts()
	tabs := make([]viewmodel.TabView, 0, len(consignment.Pivots))
	for _, p := range consignment.Pivots {
		tabs = append(tabs, viewmodel.TabView{
			Pivot:  string(p),
			Label:  p.Label(),
			Count:  counts[p],
			Active: p == s.params.Pivot,
		})
	}
	return tabs
}

func (s *Session) deliveryView(selected []model.ConsignmentItem) viewmodel.DeliveryView {
	draft := s.delivery.Draft()
	dv := viewmodel.DeliveryView{
		State:      s.delivery.State().String(),
		Open:       s.delivery.State() == delivery.StateReviewing,
		CanConfirm: s.delivery.CanConfirm(len(selected)),
		Comments:   draft.Comments,
		Addresses:  optionViews(s.delivery.Addresses(), draft.Address.Key),
		Carriers:   optionViews(s.delivery.Carriers(), draft.Carrier.Key),
	}
	if dv.Open {
		for _, item := range selected {
			dv.Items = append(dv.Items, ItemRow(item, true))
		}
		dv.Breakdown = TotalsView(consignment.ComputeTotals(selected))
	}
	return dv
}

func optionViews(options []model.Option, selectedKey string) []viewmodel.OptionView {
	views := make([]viewmodel.OptionView, 0, len(options))
	for _, opt := range options {
		views = append(views, viewmodel.OptionView{
			Key:      opt.Key,
			Label:    opt.Label,
			Selected: opt.Key == selectedKey,
		})
	}
	return views
}

// ItemRow converts an item into a list row.
func ItemRow(item model.ConsignmentItem, selected bool) viewmodel.ItemView {
	return viewmodel.ItemView{
		Key:             item.Key,
		Name:            item.Name,
		Lot:             item.DisplayLot(),
		Stage:           item.DisplayStage(),
		ConsignType:     string(item.ConsignType),
		TransactionType: string(item.TransactionType),
		ImageURL:        item.ImageURL,
		HammerPrice:     consignment.FormatCurrency(item.HammerPrice),
		Fees:            consignment.FormatCurrency(item.Fees()),
		Total:           consignment.FormatCurrency(item.Total),
		IsSelected:      selected,
		Invoiced:        item.Invoiced,
	}
}

// TotalsView formats totals for display.
func TotalsView(t consignment.Totals) viewmodel.TotalsView {
	f := t.Formatted()
	return viewmodel.TotalsView{
		TotalOwed:        f.TotalOwed,
		TotalHammerPrice: f.TotalHammerPrice,
		TotalFees:        f.TotalFees,
		BidderDeposit:    f.BidderDeposit,
		EscrowAmount:     f.EscrowAmount,
		Credits:          f.Credits,
		ItemCount:        t.ItemCount,
		FromSelection:    t.FromSelection,
	}
}

// Detail renders the detail panel for the item with key.
func (s *Session) Detail(ctx context.Context, key string) (viewmodel.DetailView, error) {
	item, err := s.DetailItem(ctx, key)
	if err != nil {
		return viewmodel.DetailView{}, err
	}
	return DetailView(item, s.selection.IsSelected(key)), nil
}

// DetailView converts an item with its vehicle and seller into the detail panel.
func DetailView(item model.ConsignmentItem, selected bool) viewmodel.DetailView {
	b := consignment.BreakdownFor(item)
	d := viewmodel.DetailView{
		Item: ItemRow(item, selected),
		Breakdown: []viewmodel.DetailField{
			{Label: "Hammer Price", Value: consignment.FormatCurrency(b.HammerPrice)},
			{Label: "Commission", Value: consignment.FormatCurrency(b.Commission)},
			{Label: "Taxes", Value: consignment.FormatCurrency(b.Taxes)},
			{Label: "Shipping", Value: consignment.FormatCurrency(b.Shipping)},
			{Label: "Documentation Fee", Value: consignment.FormatCurrency(b.DocumentationFee)},
			{Label: "Buyer Fee", Value: consignment.FormatCurrency(b.BuyerFee)},
		},
		Total: consignment.FormatCurrency(b.Sum()),
		Flags: map[string]bool{
			"invoiced": item.Invoiced,
			"ship":     item.Ship,
			"drive":    item.Drive,
		},
	}

	if v := item.Vehicle; v != nil {
		d.Vehicle = []viewmodel.DetailField{
			{Label: "Vehicle", Value: viewmodel.ValueOrDash(v.Title())},
			{Label: "VIN", Value: viewmodel.ValueOrDash(v.VIN)},
			{Label: "Style", Value: viewmodel.ValueOrDash(v.Style)},
			{Label: "Engine", Value: viewmodel.ValueOrDash(v.Engine)},
			{Label: "Cylinders", Value: viewmodel.ValueOrDash(v.Cylinders)},
			{Label: "Transmission", Value: viewmodel.ValueOrDash(v.Transmission)},
			{Label: "Power Source", Value: viewmodel.ValueOrDash(v.PowerSource)},
			{Label: "Exterior", Value: viewmodel.ValueOrDash(v.ExteriorColor)},
			{Label: "Interior", Value: viewmodel.ValueOrDash(v.InteriorColor)},
			{Label: "Mileage", Value: mileage(v.Mileage)},
			{Label: "Description", Value: viewmodel.ValueOrDash(v.ShortDescription)},
		}
	}
	if sd := item.Seller; sd != nil {
		d.Seller = []viewmodel.DetailField{
			{Label: "Seller", Value: viewmodel.ValueOrDash(sd.Name)},
			{Label: "Phone", Value: viewmodel.ValueOrDash(sd.Phone)},
			{Label: "Email", Value: viewmodel.ValueOrDash(sd.Email)},
			{Label: "Address", Value: viewmodel.ValueOrDash(sd.Address)},
			{Label: "Tax ID", Value: viewmodel.ValueOrDash(sd.TaxID)},
			{Label: "Tax ID State", Value: viewmodel.ValueOrDash(sd.TaxIDState)},
		}
	}
	return d
}

func mileage(miles int) string {
	if miles <= 0 {
		return "-"
	}
	return strconv.Itoa(miles)
}
