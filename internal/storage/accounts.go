package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/cashiering/internal/common"
	"github.com/Veraticus/cashiering/internal/model"
)

const accountCacheTTL = 5 * time.Minute

// SaveAccount inserts or updates an account.
func (s *SQLiteStorage) SaveAccount(ctx context.Context, account *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAccount(account); err != nil {
		return err
	}
	if err := s.saveAccountTx(ctx, s.db, account); err != nil {
		return err
	}
	s.invalidateAccount(account.ID)
	return nil
}

func (s *SQLiteStorage) saveAccountTx(ctx context.Context, q queryable, account *model.Account) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO accounts (id, name, phone, email, billing_address, tax_id,
		                      tax_id_state, tax_id_expiration, dealer_license_expiration)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			phone = excluded.phone,
			email = excluded.email,
			billing_address = excluded.billing_address,
			tax_id = excluded.tax_id,
			tax_id_state = excluded.tax_id_state,
			tax_id_expiration = excluded.tax_id_expiration,
			dealer_license_expiration = excluded.dealer_license_expiration
	`, account.ID, account.Name, account.Phone, account.Email, account.BillingAddress,
		account.TaxID, account.TaxIDState, account.TaxIDExpiration, account.DealerLicenseExpiration)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// GetAccount retrieves an account by ID.
func (s *SQLiteStorage) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	if account := s.getCachedAccount(id); account != nil {
		return account, nil
	}

	account, err := s.getAccountTx(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	s.cacheAccount(account)
	return account, nil
}

func (s *SQLiteStorage) getAccountTx(ctx context.Context, q queryable, id string) (*model.Account, error) {
	var a model.Account
	err := q.QueryRowContext(ctx, `
		SELECT id, name, phone, email, billing_address, tax_id,
		       tax_id_state, tax_id_expiration, dealer_license_expiration
		FROM accounts
		WHERE id = ?
	`, id).Scan(&a.ID, &a.Name, &a.Phone, &a.Email, &a.BillingAddress, &a.TaxID,
		&a.TaxIDState, &a.TaxIDExpiration, &a.DealerLicenseExpiration)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &a, nil
}

// ListAccounts returns every account ordered by name.
func (s *SQLiteStorage) ListAccounts(ctx context.Context) ([]model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.listAccountsTx(ctx, s.db)
}

func (s *SQLiteStorage) listAccountsTx(ctx context.Context, q queryable) ([]model.Account, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, phone, email, billing_address, tax_id,
		       tax_id_state, tax_id_expiration, dealer_license_expiration
		FROM accounts
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Phone, &a.Email, &a.BillingAddress, &a.TaxID,
			&a.TaxIDState, &a.TaxIDExpiration, &a.DealerLicenseExpiration); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// getCachedAccount retrieves an account from the cache.
func (s *SQLiteStorage) getCachedAccount(id string) *model.Account {
	s.cacheMutex.RLock()

	if time.Now().After(s.cacheExpiry) {
		// Upgrade to write lock
		s.cacheMutex.RUnlock()
		s.cacheMutex.Lock()
		defer s.cacheMutex.Unlock()

		// Double-check after acquiring write lock
		if time.Now().After(s.cacheExpiry) {
			s.accountCache = make(map[string]*model.Account)
		}
		return nil
	}

	account := s.accountCache[id]
	s.cacheMutex.RUnlock()
	return account
}

// cacheAccount adds an account to the cache.
func (s *SQLiteStorage) cacheAccount(account *model.Account) {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()

	if len(s.accountCache) == 0 {
		s.cacheExpiry = time.Now().Add(accountCacheTTL)
	}
	s.accountCache[account.ID] = account
}

func (s *SQLiteStorage) invalidateAccount(id string) {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()
	delete(s.accountCache, id)
}
