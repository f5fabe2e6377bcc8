package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/cashiering/internal/model"
)

// SaveAddress inserts or updates a vehicle titling address.
func (s *SQLiteStorage) SaveAddress(ctx context.Context, address *model.Address) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAddress(address); err != nil {
		return err
	}
	return s.saveAddressTx(ctx, s.db, address)
}

func (s *SQLiteStorage) saveAddressTx(ctx context.Context, q queryable, a *model.Address) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO vehicle_titling_addresses (id, account_id, line1, line2, city, state_province,
		                                       postal_code, county, country, is_default, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			account_id = excluded.account_id,
			line1 = excluded.line1,
			line2 = excluded.line2,
			city = excluded.city,
			state_province = excluded.state_province,
			postal_code = excluded.postal_code,
			county = excluded.county,
			country = excluded.country,
			is_default = excluded.is_default,
			active = excluded.active
	`, a.ID, a.AccountID, a.Line1, a.Line2, a.City, a.StateProvince,
		a.PostalCode, a.County, a.Country, a.IsDefault, a.Active)
	if err != nil {
		return fmt.Errorf("failed to save address: %w", err)
	}
	return nil
}

// FetchAddresses returns the active titling addresses of an account, default first.
func (s *SQLiteStorage) FetchAddresses(ctx context.Context, accountID string) ([]model.Address, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return nil, err
	}
	return s.fetchAddressesTx(ctx, s.db, accountID)
}

func (s *SQLiteStorage) fetchAddressesTx(ctx context.Context, q queryable, accountID string) ([]model.Address, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, account_id, line1, line2, city, state_province, postal_code,
		       county, country, is_default, active
		FROM vehicle_titling_addresses
		WHERE account_id = ? AND active = 1
		ORDER BY is_default DESC, rowid
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var addresses []model.Address
	for rows.Next() {
		var a model.Address
		if err := rows.Scan(&a.ID, &a.AccountID, &a.Line1, &a.Line2, &a.City, &a.StateProvince,
			&a.PostalCode, &a.County, &a.Country, &a.IsDefault, &a.Active); err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}
