// Package seed loads YAML fixture files of accounts, carts and items into storage.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/cashiering/internal/model"
	"github.com/Veraticus/cashiering/internal/service"
	"gopkg.in/yaml.v3"
)

// ErrInvalidFixture is returned when a fixture file references records it does not define.
var ErrInvalidFixture = errors.New("invalid fixture")

// Fixture is the top-level document of a seed file.
type Fixture struct {
	Accounts []Account `yaml:"accounts"`
	Vehicles []Vehicle `yaml:"vehicles"`
	Carts    []Cart    `yaml:"carts"`
}

// Account is an account with its titling addresses.
type Account struct {
	ID                      string    `yaml:"id"`
	Name                    string    `yaml:"name"`
	Phone                   string    `yaml:"phone"`
	Email                   string    `yaml:"email"`
	BillingAddress          string    `yaml:"billing_address"`
	TaxID                   string    `yaml:"tax_id"`
	TaxIDState              string    `yaml:"tax_id_state"`
	TaxIDExpiration         string    `yaml:"tax_id_expiration"`
	DealerLicenseExpiration string    `yaml:"dealer_license_expiration"`
	Addresses               []Address `yaml:"addresses"`
}

// Address is a vehicle titling address.
type Address struct {
	ID            string `yaml:"id"`
	Line1         string `yaml:"line1"`
	Line2         string `yaml:"line2"`
	City          string `yaml:"city"`
	StateProvince string `yaml:"state"`
	PostalCode    string `yaml:"postal_code"`
	County        string `yaml:"county"`
	Country       string `yaml:"country"`
	Default       bool   `yaml:"default"`
	Inactive      bool   `yaml:"inactive"`
}

// Vehicle is the technical record of a vehicle.
type Vehicle struct {
	ID               string `yaml:"id"`
	Year             string `yaml:"year"`
	Make             string `yaml:"make"`
	Model            string `yaml:"model"`
	VIN              string `yaml:"vin"`
	Style            string `yaml:"style"`
	Engine           string `yaml:"engine"`
	Cylinders        string `yaml:"cylinders"`
	Transmission     string `yaml:"transmission"`
	PowerSource      string `yaml:"power_source"`
	ExteriorColor    string `yaml:"exterior_color"`
	InteriorColor    string `yaml:"interior_color"`
	ShortDescription string `yaml:"short_description"`
	LongDescription  string `yaml:"long_description"`
	Mileage          int    `yaml:"mileage"`
}

// Cart is a cart and its items in display order.
type Cart struct {
	ID        string `yaml:"id"`
	AccountID string `yaml:"account"`
	EventID   string `yaml:"event_id"`
	EventName string `yaml:"event_name"`
	Closed    bool   `yaml:"closed"`
	Items     []Item `yaml:"items"`
}

// Item is one cart line. Money fields keep the host's currency text, e.g. "$1,250.00".
type Item struct {
	ID               string `yaml:"id"`
	Vehicle          string `yaml:"vehicle"`
	Seller           string `yaml:"seller"`
	Name             string `yaml:"name"`
	Lot              string `yaml:"lot"`
	ImageURL         string `yaml:"image_url"`
	Stage            string `yaml:"stage"`
	Comments         string `yaml:"comments"`
	Transaction      string `yaml:"transaction"`
	Consign          string `yaml:"consign"`
	HammerPrice      string `yaml:"hammer_price"`
	Commission       string `yaml:"commission"`
	DocumentationFee string `yaml:"documentation_fee"`
	TaxFee           string `yaml:"tax_fee"`
	Total            string `yaml:"total"`
	Invoiced         bool   `yaml:"invoiced"`
	Ship             bool   `yaml:"ship"`
	Drive            bool   `yaml:"drive"`
}

// Load reads and validates a fixture file.
func Load(path string) (*Fixture, error) {
	f, err := os.Open(path) //nolint:gosec // fixture path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Parse decodes and validates a fixture document.
func Parse(r io.Reader) (*Fixture, error) {
	var fixture Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fixture); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	if err := fixture.Validate(); err != nil {
		return nil, err
	}
	return &fixture, nil
}

// Validate checks cross references between accounts, vehicles and carts.
func (f *Fixture) Validate() error {
	accounts := make(map[string]bool, len(f.Accounts))
	for _, a := range f.Accounts {
		if a.ID == "" {
			return fmt.Errorf("%w: account without id", ErrInvalidFixture)
		}
		accounts[a.ID] = true
	}
	vehicles := make(map[string]bool, len(f.Vehicles))
	for _, v := range f.Vehicles {
		if v.ID == "" {
			return fmt.Errorf("%w: vehicle without id", ErrInvalidFixture)
		}
		vehicles[v.ID] = true
	}

	for _, c := range f.Carts {
		if !accounts[c.AccountID] {
			return fmt.Errorf("%w: cart %s references unknown account %q", ErrInvalidFixture, c.ID, c.AccountID)
		}
		for _, item := range c.Items {
			if item.Vehicle != "" && !vehicles[item.Vehicle] {
				return fmt.Errorf("%w: item %s references unknown vehicle %q", ErrInvalidFixture, item.ID, item.Vehicle)
			}
			if item.Seller != "" && !accounts[item.Seller] {
				return fmt.Errorf("%w: item %s references unknown seller %q", ErrInvalidFixture, item.ID, item.Seller)
			}
		}
	}
	return nil
}

// Size returns the number of records Apply writes.
func (f *Fixture) Size() int {
	n := len(f.Accounts) + len(f.Vehicles) + len(f.Carts)
	for _, a := range f.Accounts {
		n += len(a.Addresses)
	}
	for _, c := range f.Carts {
		n += len(c.Items)
	}
	return n
}

// Apply writes the fixture in one transaction. progress, when non-nil, is
// called once per record written.
func (f *Fixture) Apply(ctx context.Context, store service.Storage, progress func()) (err error) {
	tick := func() {
		if progress != nil {
			progress()
		}
	}

	tx, err := store.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, a := range f.Accounts {
		if err = tx.SaveAccount(ctx, a.model()); err != nil {
			return fmt.Errorf("account %s: %w", a.ID, err)
		}
		tick()
	}
	for _, a := range f.Accounts {
		for _, addr := range a.Addresses {
			if err = tx.SaveAddress(ctx, addr.model(a.ID)); err != nil {
				return fmt.Errorf("address %s: %w", addr.ID, err)
			}
			tick()
		}
	}
	for _, v := range f.Vehicles {
		if err = tx.SaveVehicle(ctx, v.model()); err != nil {
			return fmt.Errorf("vehicle %s: %w", v.ID, err)
		}
		tick()
	}
	for _, c := range f.Carts {
		if err = tx.SaveCart(ctx, c.model()); err != nil {
			return fmt.Errorf("cart %s: %w", c.ID, err)
		}
		tick()
		for _, item := range c.Items {
			if err = tx.SaveCartItem(ctx, item.model(c.ID)); err != nil {
				return fmt.Errorf("item %s: %w", item.ID, err)
			}
			tick()
		}
	}

	return tx.Commit()
}

func (a Account) model() *model.Account {
	return &model.Account{
		ID:                      a.ID,
		Name:                    a.Name,
		Phone:                   a.Phone,
		Email:                   a.Email,
		BillingAddress:          a.BillingAddress,
		TaxID:                   a.TaxID,
		TaxIDState:              a.TaxIDState,
		TaxIDExpiration:         a.TaxIDExpiration,
		DealerLicenseExpiration: a.DealerLicenseExpiration,
	}
}

func (a Address) model(accountID string) *model.Address {
	return &model.Address{
		ID:            a.ID,
		AccountID:     accountID,
		Line1:         a.Line1,
		Line2:         a.Line2,
		City:          a.City,
		StateProvince: a.StateProvince,
		PostalCode:    a.PostalCode,
		County:        a.County,
		Country:       a.Country,
		IsDefault:     a.Default,
		Active:        !a.Inactive,
	}
}

func (v Vehicle) model() *model.VehicleDetail {
	return &model.VehicleDetail{
		ID:               v.ID,
		Year:             v.Year,
		Make:             v.Make,
		Model:            v.Model,
		VIN:              v.VIN,
		Style:            v.Style,
		Engine:           v.Engine,
		Cylinders:        v.Cylinders,
		Transmission:     v.Transmission,
		PowerSource:      v.PowerSource,
		ExteriorColor:    v.ExteriorColor,
		InteriorColor:    v.InteriorColor,
		ShortDescription: v.ShortDescription,
		LongDescription:  v.LongDescription,
		Mileage:          v.Mileage,
	}
}

func (c Cart) model() *model.Cart {
	return &model.Cart{
		ID:        c.ID,
		AccountID: c.AccountID,
		EventID:   c.EventID,
		EventName: c.EventName,
		Open:      !c.Closed,
	}
}

func (i Item) model(cartID string) *model.CartItem {
	return &model.CartItem{
		ID:               i.ID,
		CartID:           cartID,
		VehicleID:        i.Vehicle,
		SellerAccountID:  i.Seller,
		Name:             i.Name,
		Lot:              i.Lot,
		ImageURL:         i.ImageURL,
		StageLabel:       i.Stage,
		Comments:         i.Comments,
		TransactionType:  model.TransactionType(i.Transaction),
		ConsignType:      model.ConsignType(i.Consign),
		HammerPrice:      i.HammerPrice,
		Commission:       i.Commission,
		DocumentationFee: i.DocumentationFee,
		TaxFee:           i.TaxFee,
		Total:            i.Total,
		Invoiced:         i.Invoiced,
		Ship:             i.Ship,
		Drive:            i.Drive,
	}
}
