package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/cashiering/internal/model"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		str     string
		wantErr bool
	}{
		{name: "valid string", str: "acc1"},
		{name: "empty string", str: "", wantErr: true},
		{name: "whitespace only", str: "  \t", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, "param")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrEmptyString) {
				t.Errorf("validateString() error = %v, want ErrEmptyString", err)
			}
		})
	}
}

func TestValidateCartItem(t *testing.T) {
	valid := func() *model.CartItem {
		return &model.CartItem{
			ID:              "item1",
			CartID:          "cart1",
			TransactionType: model.TransactionPurchase,
			ConsignType:     model.ConsignVehicle,
			Total:           "$12.00",
		}
	}

	tests := []struct {
		item    *model.CartItem
		wantErr error
		name    string
	}{
		{name: "valid item", item: valid()},
		{name: "nil item", item: nil, wantErr: ErrNilParameter},
		{
			name: "missing id",
			item: func() *model.CartItem {
				i := valid()
				i.ID = ""
				return i
			}(),
			wantErr: ErrInvalidItem,
		},
		{
			name: "missing cart",
			item: func() *model.CartItem {
				i := valid()
				i.CartID = " "
				return i
			}(),
			wantErr: ErrInvalidItem,
		},
		{
			name: "unknown transaction type",
			item: func() *model.CartItem {
				i := valid()
				i.TransactionType = "Trade"
				return i
			}(),
			wantErr: ErrInvalidItem,
		},
		{
			name: "unknown consign type",
			item: func() *model.CartItem {
				i := valid()
				i.ConsignType = "Boat"
				return i
			}(),
			wantErr: ErrInvalidItem,
		},
		{
			name: "malformed money is accepted",
			item: func() *model.CartItem {
				i := valid()
				i.HammerPrice = "TBD"
				return i
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCartItem(tt.item)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateCartItem() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateCartItem() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRecords(t *testing.T) {
	tests := []struct {
		validate func() error
		wantErr  error
		name     string
	}{
		{
			name:     "account without name",
			validate: func() error { return validateAccount(&model.Account{ID: "a"}) },
			wantErr:  ErrInvalidAccount,
		},
		{
			name:     "cart without account",
			validate: func() error { return validateCart(&model.Cart{ID: "c"}) },
			wantErr:  ErrInvalidCart,
		},
		{
			name:     "vehicle with negative mileage",
			validate: func() error { return validateVehicle(&model.VehicleDetail{ID: "v", Mileage: -1}) },
			wantErr:  ErrInvalidVehicle,
		},
		{
			name:     "address without street",
			validate: func() error { return validateAddress(&model.Address{ID: "a", AccountID: "acc"}) },
			wantErr:  ErrInvalidAddress,
		},
		{
			name:     "nil vehicle",
			validate: func() error { return validateVehicle(nil) },
			wantErr:  ErrNilParameter,
		},
		{
			name: "valid address",
			validate: func() error {
				return validateAddress(&model.Address{ID: "a", AccountID: "acc", Line1: "1 Main St"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
