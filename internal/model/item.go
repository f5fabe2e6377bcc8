package model

import (
	"github.com/shopspring/decimal"
)

// TransactionType tells whether the account bought or consigned (sold) an item.
type TransactionType string

const (
	// TransactionPurchase marks an item the account bought.
	TransactionPurchase TransactionType = "Purchase"
	// TransactionSale marks an item the account consigned for sale.
	TransactionSale TransactionType = "Sale"
)

// ConsignType is the Vehicle vs. Automobilia classification of an item.
type ConsignType string

const (
	// ConsignVehicle is a vehicle consignment.
	ConsignVehicle ConsignType = "Vehicle"
	// ConsignAutomobilia is an automobilia (memorabilia) consignment.
	ConsignAutomobilia ConsignType = "Automobilia"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == TransactionPurchase || t == TransactionSale
}

// IsValid reports whether c is one of the known consign types.
func (c ConsignType) IsValid() bool {
	return c == ConsignVehicle || c == ConsignAutomobilia
}

// ConsignmentItem is one vehicle or automobilia item tied to an account.
// Items are normalized by the repository adapter and never mutated by the dashboard.
type ConsignmentItem struct {
	Vehicle          *VehicleDetail
	Seller           *SellerDetail
	Key              string // unique within one loaded item list
	ID               string // cart item record id
	CartID           string
	VehicleID        string
	Name             string
	Lot              string
	ImageURL         string
	StageLabel       string
	Comments         string
	TransactionType  TransactionType
	ConsignType      ConsignType
	HammerPrice      decimal.Decimal
	Commission       decimal.Decimal
	DocumentationFee decimal.Decimal
	TaxFee           decimal.Decimal
	Total            decimal.Decimal
	Invoiced         bool
	Ship             bool
	Drive            bool
}

// Fees returns commission + documentation fee + tax fee.
func (i ConsignmentItem) Fees() decimal.Decimal {
	return i.Commission.Add(i.DocumentationFee).Add(i.TaxFee)
}

// IsVehicle reports whether the item is a vehicle consignment.
func (i ConsignmentItem) IsVehicle() bool {
	return i.ConsignType == ConsignVehicle
}

// DisplayStage returns the stage label, or "Unknown" when the host supplied none.
func (i ConsignmentItem) DisplayStage() string {
	if i.StageLabel == "" {
		return "Unknown"
	}
	return i.StageLabel
}

// DisplayLot returns the lot label, or "0" when the item has no lot yet.
func (i ConsignmentItem) DisplayLot() string {
	if i.Lot == "" {
		return "0"
	}
	return i.Lot
}

// VehicleDetail holds the technical attributes of the vehicle behind an item.
type VehicleDetail struct {
	ID               string
	Year             string
	Make             string
	Model            string
	VIN              string
	Style            string
	Engine           string
	Cylinders        string
	Transmission     string
	PowerSource      string
	ExteriorColor    string
	InteriorColor    string
	ShortDescription string
	LongDescription  string
	Mileage          int
}

// Title returns "year make model" with empty parts dropped.
func (v *VehicleDetail) Title() string {
	if v == nil {
		return ""
	}
	title := ""
	for _, part := range []string{v.Year, v.Make, v.Model} {
		if part == "" {
			continue
		}
		if title != "" {
			title += " "
		}
		title += part
	}
	return title
}

// SellerDetail holds the account details of the consignor of an item.
type SellerDetail struct {
	AccountID               string
	Name                    string
	Phone                   string
	Email                   string
	Address                 string
	TaxID                   string
	TaxIDState              string
	TaxIDExpiration         string
	DealerLicenseExpiration string
}
