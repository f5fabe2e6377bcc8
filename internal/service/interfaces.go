// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/cashiering/internal/model"
)

// ItemRepository loads the consignment items of an account. Implementations
// return normalized items; the dashboard never sees the underlying records.
type ItemRepository interface {
	// FetchItems returns the items in the account's open cart, in cart order.
	FetchItems(ctx context.Context, accountID string) ([]model.ConsignmentItem, error)
	// FetchDetail returns one item with vehicle and seller detail attached.
	FetchDetail(ctx context.Context, itemID string) (*model.ConsignmentItem, error)
	// FetchAddresses returns the account's active vehicle titling addresses.
	FetchAddresses(ctx context.Context, accountID string) ([]model.Address, error)
	// FetchCart returns the account's open cart.
	FetchCart(ctx context.Context, accountID string) (*model.Cart, error)
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	ItemRepository

	// Account operations
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id string) (*model.Account, error)
	ListAccounts(ctx context.Context) ([]model.Account, error)

	// Cart operations
	SaveCart(ctx context.Context, cart *model.Cart) error
	SaveCartItem(ctx context.Context, item *model.CartItem) error

	// Vehicle and address operations
	SaveVehicle(ctx context.Context, vehicle *model.VehicleDetail) error
	SaveAddress(ctx context.Context, address *model.Address) error

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit() error
	Rollback() error
	// Include all Storage methods for use within transaction
	Storage
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
