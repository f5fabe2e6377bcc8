// Package storage provides the SQLite persistence layer behind the item repository.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/cashiering/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidAccount = errors.New("invalid account")
	ErrInvalidCart    = errors.New("invalid cart")
	ErrInvalidItem    = errors.New("invalid cart item")
	ErrInvalidVehicle = errors.New("invalid vehicle")
	ErrInvalidAddress = errors.New("invalid address")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateAccount(account *model.Account) error {
	if account == nil {
		return fmt.Errorf("%w: account", ErrNilParameter)
	}
	if strings.TrimSpace(account.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidAccount)
	}
	if strings.TrimSpace(account.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidAccount)
	}
	return nil
}

func validateCart(cart *model.Cart) error {
	if cart == nil {
		return fmt.Errorf("%w: cart", ErrNilParameter)
	}
	if strings.TrimSpace(cart.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidCart)
	}
	if strings.TrimSpace(cart.AccountID) == "" {
		return fmt.Errorf("%w: missing account ID", ErrInvalidCart)
	}
	return nil
}

// validateCartItem checks identity and classification fields. Money fields are
// free text and normalize to zero when they do not parse.
func validateCartItem(item *model.CartItem) error {
	if item == nil {
		return fmt.Errorf("%w: cart item", ErrNilParameter)
	}
	if strings.TrimSpace(item.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidItem)
	}
	if strings.TrimSpace(item.CartID) == "" {
		return fmt.Errorf("%w: missing cart ID", ErrInvalidItem)
	}
	if !item.TransactionType.IsValid() {
		return fmt.Errorf("%w: transaction type %q", ErrInvalidItem, item.TransactionType)
	}
	if !item.ConsignType.IsValid() {
		return fmt.Errorf("%w: consign type %q", ErrInvalidItem, item.ConsignType)
	}
	return nil
}

func validateVehicle(vehicle *model.VehicleDetail) error {
	if vehicle == nil {
		return fmt.Errorf("%w: vehicle", ErrNilParameter)
	}
	if strings.TrimSpace(vehicle.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidVehicle)
	}
	if vehicle.Mileage < 0 {
		return fmt.Errorf("%w: negative mileage", ErrInvalidVehicle)
	}
	return nil
}

func validateAddress(address *model.Address) error {
	if address == nil {
		return fmt.Errorf("%w: address", ErrNilParameter)
	}
	if strings.TrimSpace(address.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidAddress)
	}
	if strings.TrimSpace(address.AccountID) == "" {
		return fmt.Errorf("%w: missing account ID", ErrInvalidAddress)
	}
	if strings.TrimSpace(address.Line1) == "" {
		return fmt.Errorf("%w: missing street", ErrInvalidAddress)
	}
	return nil
}
