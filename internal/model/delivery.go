package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Option is a selectable key/label pair offered by the delivery panel.
type Option struct {
	Key   string
	Label string
}

// DefaultCarriers is the fixed carrier set offered for delivery.
var DefaultCarriers = []Option{
	{Key: "fedex", Label: "FedEx Vehicle Transport"},
	{Key: "ups", Label: "UPS Auto Logistics"},
	{Key: "reliable", Label: "Reliable Carriers"},
	{Key: "montway", Label: "Montway Auto Transport"},
	{Key: "sherpa", Label: "Sherpa Auto Transport"},
	{Key: "easycar", Label: "Easy Car Shipping"},
	{Key: "uship", Label: "uShip Vehicle Transport"},
}

// DefaultAddresses is the address set used when an account has no titling addresses on file.
var DefaultAddresses = []Option{
	{Key: "address1", Label: "123 Main St, Scottsdale, AZ 85251"},
	{Key: "address2", Label: "456 Oak Ave, Phoenix, AZ 85004"},
	{Key: "address3", Label: "789 Pine Rd, Tucson, AZ 85701"},
	{Key: "address4", Label: "321 Maple Dr, Mesa, AZ 85201"},
	{Key: "address5", Label: "654 Birch Ln, Chandler, AZ 85225"},
}

// FindOption returns the option with the given key.
func FindOption(options []Option, key string) (Option, bool) {
	for _, opt := range options {
		if opt.Key == key {
			return opt, true
		}
	}
	return Option{}, false
}

// Address is a vehicle titling address on file for an account.
type Address struct {
	ID            string
	AccountID     string
	Line1         string
	Line2         string
	City          string
	StateProvince string
	PostalCode    string
	County        string
	Country       string
	IsDefault     bool
	Active        bool
}

// String renders the address on one line, e.g. "123 Main St, Scottsdale, AZ 85251".
func (a Address) String() string {
	street := a.Line1
	if a.Line2 != "" {
		street += " " + a.Line2
	}
	out := street
	if a.City != "" {
		out += ", " + a.City
	}
	if a.StateProvince != "" || a.PostalCode != "" {
		out += ","
		if a.StateProvince != "" {
			out += " " + a.StateProvince
		}
		if a.PostalCode != "" {
			out += " " + a.PostalCode
		}
	}
	return out
}

// AsOption converts the address into a delivery option keyed by its id.
func (a Address) AsOption() Option {
	return Option{Key: a.ID, Label: a.String()}
}

// Cart is the open cart of an account at an auction event.
type Cart struct {
	ID        string
	AccountID string
	EventID   string
	EventName string
	Open      bool
}

// DeliveryRequest is the snapshot emitted when a clerk confirms delivery of the selected items.
type DeliveryRequest struct {
	RequestedAt time.Time
	ID          string
	AccountID   string
	Address     Option
	Carrier     Option
	Comments    string
	Items       []ConsignmentItem
	TotalAmount decimal.Decimal
}

// ItemKeys returns the keys of the requested items in request order.
func (r DeliveryRequest) ItemKeys() []string {
	keys := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		keys = append(keys, item.Key)
	}
	return keys
}
