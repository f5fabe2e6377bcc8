package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS accounts (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					phone TEXT NOT NULL DEFAULT '',
					email TEXT NOT NULL DEFAULT '',
					billing_address TEXT NOT NULL DEFAULT '',
					tax_id TEXT NOT NULL DEFAULT '',
					tax_id_state TEXT NOT NULL DEFAULT '',
					tax_id_expiration TEXT NOT NULL DEFAULT '',
					dealer_license_expiration TEXT NOT NULL DEFAULT '',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS carts (
					id TEXT PRIMARY KEY,
					account_id TEXT NOT NULL,
					event_id TEXT NOT NULL DEFAULT '',
					event_name TEXT NOT NULL DEFAULT '',
					open INTEGER NOT NULL DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (account_id) REFERENCES accounts(id)
				)`,
				`CREATE INDEX idx_carts_account ON carts(account_id, open)`,

				`CREATE TABLE IF NOT EXISTS vehicles (
					id TEXT PRIMARY KEY,
					year TEXT NOT NULL DEFAULT '',
					make TEXT NOT NULL DEFAULT '',
					model TEXT NOT NULL DEFAULT '',
					vin TEXT NOT NULL DEFAULT '',
					style TEXT NOT NULL DEFAULT '',
					engine TEXT NOT NULL DEFAULT '',
					cylinders TEXT NOT NULL DEFAULT '',
					transmission TEXT NOT NULL DEFAULT '',
					power_source TEXT NOT NULL DEFAULT '',
					exterior_color TEXT NOT NULL DEFAULT '',
					interior_color TEXT NOT NULL DEFAULT '',
					short_description TEXT NOT NULL DEFAULT '',
					long_description TEXT NOT NULL DEFAULT '',
					mileage INTEGER NOT NULL DEFAULT 0
				)`,

				`CREATE TABLE IF NOT EXISTS cart_items (
					id TEXT PRIMARY KEY,
					cart_id TEXT NOT NULL,
					vehicle_id TEXT,
					seller_account_id TEXT,
					name TEXT NOT NULL DEFAULT '',
					lot TEXT NOT NULL DEFAULT '',
					image_url TEXT NOT NULL DEFAULT '',
					stage_label TEXT NOT NULL DEFAULT '',
					transaction_type TEXT NOT NULL,
					consign_type TEXT NOT NULL,
					hammer_price TEXT NOT NULL DEFAULT '',
					commission TEXT NOT NULL DEFAULT '',
					documentation_fee TEXT NOT NULL DEFAULT '',
					tax_fee TEXT NOT NULL DEFAULT '',
					total TEXT NOT NULL DEFAULT '',
					invoiced INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (cart_id) REFERENCES carts(id),
					FOREIGN KEY (vehicle_id) REFERENCES vehicles(id),
					FOREIGN KEY (seller_account_id) REFERENCES accounts(id)
				)`,
				`CREATE INDEX idx_cart_items_cart ON cart_items(cart_id)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Add item logistics flags, comments and list position",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`ALTER TABLE cart_items ADD COLUMN ship INTEGER NOT NULL DEFAULT 0`,
				`ALTER TABLE cart_items ADD COLUMN drive INTEGER NOT NULL DEFAULT 0`,
				`ALTER TABLE cart_items ADD COLUMN comments TEXT NOT NULL DEFAULT ''`,
				`ALTER TABLE cart_items ADD COLUMN position INTEGER NOT NULL DEFAULT 0`,
			)
		},
	},
	{
		Version:     3,
		Description: "Add vehicle titling addresses",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS vehicle_titling_addresses (
					id TEXT PRIMARY KEY,
					account_id TEXT NOT NULL,
					line1 TEXT NOT NULL,
					line2 TEXT NOT NULL DEFAULT '',
					city TEXT NOT NULL DEFAULT '',
					state_province TEXT NOT NULL DEFAULT '',
					postal_code TEXT NOT NULL DEFAULT '',
					county TEXT NOT NULL DEFAULT '',
					country TEXT NOT NULL DEFAULT '',
					is_default INTEGER NOT NULL DEFAULT 0,
					active INTEGER NOT NULL DEFAULT 1,
					FOREIGN KEY (account_id) REFERENCES accounts(id)
				)`,
				`CREATE INDEX idx_titling_addresses_account ON vehicle_titling_addresses(account_id, active)`,
			)
		},
	},
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// Migrate runs all pending migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	// Verify we're at the expected schema version
	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

// SchemaVersion returns the current schema version of the database.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
