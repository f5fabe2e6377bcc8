// Package testutil provides fixtures and test doubles shared across package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/Veraticus/cashiering/internal/model"
	"github.com/Veraticus/cashiering/internal/service"
	"github.com/Veraticus/cashiering/internal/storage"
)

// TestDB represents a migrated in-memory database for one test.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database.
// It automatically handles migrations and cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// SeedCart stores the account, an open cart and the given items in order.
// Item CartIDs are rewritten to the seeded cart.
func (db *TestDB) SeedCart(accountID string, items []model.ConsignmentItem) *model.Cart {
	db.t.Helper()
	ctx := context.Background()

	cart := &model.Cart{
		ID:        "cart-" + accountID,
		AccountID: accountID,
		EventID:   "scottsdale-2026",
		EventName: "Scottsdale 2026",
		Open:      true,
	}

	err := db.WithTransaction(func(tx service.Transaction) error {
		if err := tx.SaveAccount(ctx, &model.Account{ID: accountID, Name: "Account " + accountID}); err != nil {
			return err
		}
		if err := tx.SaveCart(ctx, cart); err != nil {
			return err
		}
		for _, item := range items {
			rec := storage.Record(item)
			rec.CartID = cart.ID
			rec.VehicleID = ""
			if err := tx.SaveCartItem(ctx, &rec); err != nil {
				return err
			}
		}
		return nil
	}, true)
	if err != nil {
		db.t.Fatalf("failed to seed cart for %s: %v", accountID, err)
	}
	return cart
}

// SeedAddresses stores titling addresses for an existing account.
func (db *TestDB) SeedAddresses(addresses ...model.Address) {
	db.t.Helper()
	ctx := context.Background()
	for i := range addresses {
		if err := db.Storage.SaveAddress(ctx, &addresses[i]); err != nil {
			db.t.Fatalf("failed to seed address %s: %v", addresses[i].ID, err)
		}
	}
}

// WithTransaction executes the given function within a database transaction.
// The transaction is committed when commit is set and fn succeeds, and rolled
// back otherwise.
func (db *TestDB) WithTransaction(fn func(tx service.Transaction) error, commit bool) error {
	ctx := context.Background()
	tx, err := db.Storage.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if !commit {
		return tx.Rollback()
	}
	return tx.Commit()
}
