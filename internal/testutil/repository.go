package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/Veraticus/cashiering/internal/common"
	"github.com/Veraticus/cashiering/internal/model"
	"github.com/Veraticus/cashiering/internal/service"
	"github.com/shopspring/decimal"
)

var _ service.ItemRepository = (*FakeRepository)(nil)

// FakeRepository is an in-memory service.ItemRepository with injectable failures.
type FakeRepository struct {
	ItemsErr     error
	DetailErr    error
	AddressesErr error
	CartErr      error
	Items        map[string][]model.ConsignmentItem
	Details      map[string]model.ConsignmentItem
	Addresses    map[string][]model.Address
	Carts        map[string]model.Cart
	ItemCalls    int
	mu           sync.Mutex
}

// NewFakeRepository returns an empty fake repository.
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		Items:     make(map[string][]model.ConsignmentItem),
		Details:   make(map[string]model.ConsignmentItem),
		Addresses: make(map[string][]model.Address),
		Carts:     make(map[string]model.Cart),
	}
}

// FetchItems implements service.ItemRepository.
func (f *FakeRepository) FetchItems(_ context.Context, accountID string) ([]model.ConsignmentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ItemCalls++
	if f.ItemsErr != nil {
		return nil, f.ItemsErr
	}
	items := f.Items[accountID]
	out := make([]model.ConsignmentItem, len(items))
	copy(out, items)
	return out, nil
}

// FetchDetail implements service.ItemRepository.
func (f *FakeRepository) FetchDetail(_ context.Context, itemID string) (*model.ConsignmentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DetailErr != nil {
		return nil, f.DetailErr
	}
	item, ok := f.Details[itemID]
	if !ok {
		return nil, fmt.Errorf("item %s: %w", itemID, common.ErrNotFound)
	}
	return &item, nil
}

// FetchAddresses implements service.ItemRepository.
func (f *FakeRepository) FetchAddresses(_ context.Context, accountID string) ([]model.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.AddressesErr != nil {
		return nil, f.AddressesErr
	}
	return f.Addresses[accountID], nil
}

// FetchCart implements service.ItemRepository.
func (f *FakeRepository) FetchCart(_ context.Context, accountID string) (*model.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CartErr != nil {
		return nil, f.CartErr
	}
	cart, ok := f.Carts[accountID]
	if !ok {
		return nil, common.ErrNoOpenCart
	}
	return &cart, nil
}

// SetItemsErr changes the FetchItems failure.
func (f *FakeRepository) SetItemsErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ItemsErr = err
}

// Item builds a consignment item for tests. Money arguments are whole dollars.
func Item(key string, tx model.TransactionType, ct model.ConsignType, invoiced bool, name string, hammer, total int64) model.ConsignmentItem {
	return model.ConsignmentItem{
		Key:              key,
		ID:               "ci-" + key,
		CartID:           "cart-1",
		Name:             name,
		Lot:              "L" + key,
		StageLabel:       "Checked In",
		TransactionType:  tx,
		ConsignType:      ct,
		Invoiced:         invoiced,
		HammerPrice:      decimal.NewFromInt(hammer),
		Commission:       decimal.NewFromInt(hammer / 10),
		DocumentationFee: decimal.NewFromInt(100),
		TaxFee:           decimal.Zero,
		Total:            decimal.NewFromInt(total),
	}
}

// SampleItems returns one item per bucket plus an uncategorized one, in a fixed order.
//
//	1 Purchase Vehicle      (not invoiced) -> boughtVehicles
//	2 Sale     Vehicle      invoiced       -> soldVehicles
//	3 Sale     Vehicle      not invoiced   -> unsoldVehicles
//	4 Purchase Automobilia  invoiced       -> boughtAutomobilia
//	5 Purchase Automobilia  not invoiced   -> none
//	6 Sale     Automobilia  invoiced       -> soldAutomobilia
//	7 Sale     Automobilia  not invoiced   -> unsoldAutomobilia
func SampleItems() []model.ConsignmentItem {
	return []model.ConsignmentItem{
		Item("1", model.TransactionPurchase, model.ConsignVehicle, false, "1967 Shelby GT500", 150000, 165100),
		Item("2", model.TransactionSale, model.ConsignVehicle, true, "1957 Chevrolet Bel Air", 85000, 76600),
		Item("3", model.TransactionSale, model.ConsignVehicle, false, "1970 Plymouth Superbird", 0, 0),
		Item("4", model.TransactionPurchase, model.ConsignAutomobilia, true, "Gulf Oil Sign", 2500, 2850),
		Item("5", model.TransactionPurchase, model.ConsignAutomobilia, false, "Texaco Gas Pump", 4000, 4500),
		Item("6", model.TransactionSale, model.ConsignAutomobilia, true, "Neon Clock", 1200, 1000),
		Item("7", model.TransactionSale, model.ConsignAutomobilia, false, "Route 66 Poster", 0, 0),
	}
}
