package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Veraticus/cashiering/internal/model"
	"github.com/Veraticus/cashiering/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

var _ service.Storage = (*SQLiteStorage)(nil)

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	cacheExpiry  time.Time
	db           *sql.DB
	accountCache map[string]*model.Account
	dbPath       string
	cacheMutex   sync.RWMutex
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dsn := ":memory:"
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections, and :memory: needs exactly one
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:           db,
		dbPath:       dbPath,
		accountCache: make(map[string]*model.Account),
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Path returns the database path the storage was opened with.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// BeginTx starts a new database transaction.
func (s *SQLiteStorage) BeginTx(ctx context.Context) (service.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return &sqliteTransaction{
		tx:      tx,
		storage: s,
	}, nil
}

// queryable is an interface satisfied by both *sql.DB and *sql.Tx.
type queryable interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// sqliteTransaction wraps sql.Tx to implement service.Transaction.
type sqliteTransaction struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTransaction) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTransaction) Rollback() error {
	return t.tx.Rollback()
}

func (t *sqliteTransaction) FetchItems(ctx context.Context, accountID string) ([]model.ConsignmentItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return nil, err
	}
	return t.storage.fetchItemsTx(ctx, t.tx, accountID)
}

func (t *sqliteTransaction) FetchDetail(ctx context.Context, itemID string) (*model.ConsignmentItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(itemID, "itemID"); err != nil {
		return nil, err
	}
	return t.storage.fetchDetailTx(ctx, t.tx, itemID)
}

func (t *sqliteTransaction) FetchAddresses(ctx context.Context, accountID string) ([]model.Address, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return nil, err
	}
	return t.storage.fetchAddressesTx(ctx, t.tx, accountID)
}

func (t *sqliteTransaction) FetchCart(ctx context.Context, accountID string) (*model.Cart, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return nil, err
	}
	return t.storage.fetchCartTx(ctx, t.tx, accountID)
}

func (t *sqliteTransaction) SaveAccount(ctx context.Context, account *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAccount(account); err != nil {
		return err
	}
	if err := t.storage.saveAccountTx(ctx, t.tx, account); err != nil {
		return err
	}
	t.storage.invalidateAccount(account.ID)
	return nil
}

func (t *sqliteTransaction) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return t.storage.getAccountTx(ctx, t.tx, id)
}

func (t *sqliteTransaction) ListAccounts(ctx context.Context) ([]model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return t.storage.listAccountsTx(ctx, t.tx)
}

func (t *sqliteTransaction) SaveCart(ctx context.Context, cart *model.Cart) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCart(cart); err != nil {
		return err
	}
	return t.storage.saveCartTx(ctx, t.tx, cart)
}

func (t *sqliteTransaction) SaveCartItem(ctx context.Context, item *model.CartItem) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCartItem(item); err != nil {
		return err
	}
	return t.storage.saveCartItemTx(ctx, t.tx, item)
}

func (t *sqliteTransaction) SaveVehicle(ctx context.Context, vehicle *model.VehicleDetail) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateVehicle(vehicle); err != nil {
		return err
	}
	return t.storage.saveVehicleTx(ctx, t.tx, vehicle)
}

func (t *sqliteTransaction) SaveAddress(ctx context.Context, address *model.Address) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAddress(address); err != nil {
		return err
	}
	return t.storage.saveAddressTx(ctx, t.tx, address)
}

func (t *sqliteTransaction) Migrate(_ context.Context) error {
	// Migrations should not be run within a transaction
	return fmt.Errorf("migrations cannot be run within a transaction")
}

func (t *sqliteTransaction) BeginTx(_ context.Context) (service.Transaction, error) {
	return nil, fmt.Errorf("nested transactions are not supported")
}

func (t *sqliteTransaction) Close() error {
	return fmt.Errorf("cannot close storage from within a transaction")
}
