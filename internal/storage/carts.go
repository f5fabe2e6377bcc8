package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/cashiering/internal/common"
	"github.com/Veraticus/cashiering/internal/model"
)

// SaveCart inserts or updates a cart.
func (s *SQLiteStorage) SaveCart(ctx context.Context, cart *model.Cart) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCart(cart); err != nil {
		return err
	}
	return s.saveCartTx(ctx, s.db, cart)
}

func (s *SQLiteStorage) saveCartTx(ctx context.Context, q queryable, cart *model.Cart) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO carts (id, account_id, event_id, event_name, open)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			account_id = excluded.account_id,
			event_id = excluded.event_id,
			event_name = excluded.event_name,
			open = excluded.open
	`, cart.ID, cart.AccountID, cart.EventID, cart.EventName, cart.Open)
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// FetchCart returns the most recently created open cart of the account.
func (s *SQLiteStorage) FetchCart(ctx context.Context, accountID string) (*model.Cart, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return nil, err
	}
	return s.fetchCartTx(ctx, s.db, accountID)
}

func (s *SQLiteStorage) fetchCartTx(ctx context.Context, q queryable, accountID string) (*model.Cart, error) {
	var cart model.Cart
	err := q.QueryRowContext(ctx, `
		SELECT id, account_id, event_id, event_name, open
		FROM carts
		WHERE account_id = ? AND open = 1
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, accountID).Scan(&cart.ID, &cart.AccountID, &cart.EventID, &cart.EventName, &cart.Open)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", accountID, common.ErrNoOpenCart)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return &cart, nil
}
