// Package consignment derives the categorized, filtered, sorted and totaled
// item lists shown by the cashiering dashboard.
package consignment

import (
	"github.com/Veraticus/cashiering/internal/model"
)

// Pivot identifies the active category tab.
type Pivot string

// Known pivots. Any other value selects the full, uncategorized item list.
const (
	PivotSalesCompleted    Pivot = "salesCompleted"
	PivotBoughtVehicles    Pivot = "boughtVehicles"
	PivotBoughtAutomobilia Pivot = "boughtAutomobilia"
	PivotSoldVehicles      Pivot = "soldVehicles"
	PivotUnsoldVehicles    Pivot = "unsoldVehicles"
	PivotSoldAutomobilia   Pivot = "soldAutomobilia"
	PivotUnsoldAutomobilia Pivot = "unsoldAutomobilia"
	PivotAll               Pivot = "all"
)

// Pivots lists the category tabs in display order.
var Pivots = []Pivot{
	PivotSalesCompleted,
	PivotBoughtVehicles,
	PivotBoughtAutomobilia,
	PivotSoldVehicles,
	PivotUnsoldVehicles,
	PivotSoldAutomobilia,
	PivotUnsoldAutomobilia,
}

// Label returns the tab title for the pivot.
func (p Pivot) Label() string {
	switch p {
	case PivotSalesCompleted:
		return "Sales Completed"
	case PivotBoughtVehicles:
		return "Bought Vehicles"
	case PivotBoughtAutomobilia:
		return "Bought Automobilia"
	case PivotSoldVehicles:
		return "Sold Vehicles"
	case PivotUnsoldVehicles:
		return "Unsold Vehicles"
	case PivotSoldAutomobilia:
		return "Sold Automobilia"
	case PivotUnsoldAutomobilia:
		return "Unsold Automobilia"
	default:
		return "All Items"
	}
}

// IsKnown reports whether p names one of the category tabs.
func (p Pivot) IsKnown() bool {
	for _, known := range Pivots {
		if p == known {
			return true
		}
	}
	return false
}

// Categories holds the six buckets produced by Categorize.
type Categories struct {
	BoughtVehicles    []model.ConsignmentItem
	BoughtAutomobilia []model.ConsignmentItem
	SoldVehicles      []model.ConsignmentItem
	UnsoldVehicles    []model.ConsignmentItem
	SoldAutomobilia   []model.ConsignmentItem
	UnsoldAutomobilia []model.ConsignmentItem
}

// Categorize partitions items by transaction type, consign type and invoiced status.
// Bought vehicles are not conditioned on the invoiced flag while bought automobilia
// require it; purchased automobilia that are not invoiced land in no bucket.
func Categorize(items []model.ConsignmentItem) Categories {
	var c Categories
	for _, item := range items {
		switch {
		case item.TransactionType == model.TransactionPurchase && item.ConsignType == model.ConsignVehicle:
			c.BoughtVehicles = append(c.BoughtVehicles, item)
		case item.TransactionType == model.TransactionPurchase && item.ConsignType == model.ConsignAutomobilia && item.Invoiced:
			c.BoughtAutomobilia = append(c.BoughtAutomobilia, item)
		case item.TransactionType == model.TransactionSale && item.ConsignType == model.ConsignVehicle && item.Invoiced:
			c.SoldVehicles = append(c.SoldVehicles, item)
		case item.TransactionType == model.TransactionSale && item.ConsignType == model.ConsignVehicle:
			c.UnsoldVehicles = append(c.UnsoldVehicles, item)
		case item.TransactionType == model.TransactionSale && item.ConsignType == model.ConsignAutomobilia && item.Invoiced:
			c.SoldAutomobilia = append(c.SoldAutomobilia, item)
		case item.TransactionType == model.TransactionSale && item.ConsignType == model.ConsignAutomobilia:
			c.UnsoldAutomobilia = append(c.UnsoldAutomobilia, item)
		}
	}
	return c
}

// Bucket returns the items for a pivot. The second result is false when the
// pivot is not a category tab, in which case the caller shows the full list.
func (c Categories) Bucket(p Pivot) ([]model.ConsignmentItem, bool) {
	switch p {
	case PivotBoughtVehicles:
		return c.BoughtVehicles, true
	case PivotBoughtAutomobilia:
		return c.BoughtAutomobilia, true
	case PivotSoldVehicles:
		return c.SoldVehicles, true
	case PivotUnsoldVehicles:
		return c.UnsoldVehicles, true
	case PivotSoldAutomobilia:
		return c.SoldAutomobilia, true
	case PivotUnsoldAutomobilia:
		return c.UnsoldAutomobilia, true
	case PivotSalesCompleted:
		return salesCompleted(c), true
	default:
		return nil, false
	}
}

// salesCompleted backs the "Sales Completed" tab, which has no content source yet.
// TODO: populate from settled invoices once the host exposes invoice status per item.
func salesCompleted(Categories) []model.ConsignmentItem {
	return nil
}

// Counts returns the number of items per pivot, for tab badges.
func (c Categories) Counts() map[Pivot]int {
	counts := make(map[Pivot]int, len(Pivots))
	for _, p := range Pivots {
		items, _ := c.Bucket(p)
		counts[p] = len(items)
	}
	return counts
}

// Len returns the total number of categorized items.
func (c Categories) Len() int {
	return len(c.BoughtVehicles) + len(c.BoughtAutomobilia) +
		len(c.SoldVehicles) + len(c.UnsoldVehicles) +
		len(c.SoldAutomobilia) + len(c.UnsoldAutomobilia)
}
