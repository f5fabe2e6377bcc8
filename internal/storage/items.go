package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/cashiering/internal/common"
	"github.com/Veraticus/cashiering/internal/consignment"
	"github.com/Veraticus/cashiering/internal/model"
)

// SaveCartItem inserts or updates a cart item. Items without an explicit
// position are appended after the cart's existing items.
func (s *SQLiteStorage) SaveCartItem(ctx context.Context, item *model.CartItem) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCartItem(item); err != nil {
		return err
	}
	return s.saveCartItemTx(ctx, s.db, item)
}

func (s *SQLiteStorage) saveCartItemTx(ctx context.Context, q queryable, item *model.CartItem) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO cart_items (id, cart_id, vehicle_id, seller_account_id, name, lot, image_url,
		                        stage_label, comments, transaction_type, consign_type, hammer_price,
		                        commission, documentation_fee, tax_fee, total, invoiced, ship, drive,
		                        position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
		        (SELECT COALESCE(MAX(position), 0) + 1 FROM cart_items WHERE cart_id = ?))
		ON CONFLICT(id) DO UPDATE SET
			cart_id = excluded.cart_id,
			vehicle_id = excluded.vehicle_id,
			seller_account_id = excluded.seller_account_id,
			name = excluded.name,
			lot = excluded.lot,
			image_url = excluded.image_url,
			stage_label = excluded.stage_label,
			comments = excluded.comments,
			transaction_type = excluded.transaction_type,
			consign_type = excluded.consign_type,
			hammer_price = excluded.hammer_price,
			commission = excluded.commission,
			documentation_fee = excluded.documentation_fee,
			tax_fee = excluded.tax_fee,
			total = excluded.total,
			invoiced = excluded.invoiced,
			ship = excluded.ship,
			drive = excluded.drive
	`, item.ID, item.CartID, nullString(item.VehicleID), nullString(item.SellerAccountID),
		item.Name, item.Lot, item.ImageURL, item.StageLabel, item.Comments,
		string(item.TransactionType), string(item.ConsignType),
		item.HammerPrice, item.Commission, item.DocumentationFee, item.TaxFee, item.Total,
		item.Invoiced, item.Ship, item.Drive, item.CartID)
	if err != nil {
		return fmt.Errorf("failed to save cart item: %w", err)
	}
	return nil
}

// FetchItems returns the normalized items of the account's open cart in cart
// order. An account without an open cart has no items.
func (s *SQLiteStorage) FetchItems(ctx context.Context, accountID string) ([]model.ConsignmentItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return nil, err
	}
	return s.fetchItemsTx(ctx, s.db, accountID)
}

func (s *SQLiteStorage) fetchItemsTx(ctx context.Context, q queryable, accountID string) ([]model.ConsignmentItem, error) {
	cart, err := s.fetchCartTx(ctx, q, accountID)
	if errors.Is(err, common.ErrNoOpenCart) {
		return []model.ConsignmentItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT ci.id, ci.cart_id, COALESCE(ci.vehicle_id, ''), COALESCE(ci.seller_account_id, ''),
		       ci.name, ci.lot, ci.image_url, ci.stage_label, ci.comments,
		       ci.transaction_type, ci.consign_type, ci.hammer_price, ci.commission,
		       ci.documentation_fee, ci.tax_fee, ci.total, ci.invoiced, ci.ship, ci.drive,
		       COALESCE(v.year, ''), COALESCE(v.make, ''), COALESCE(v.model, '')
		FROM cart_items ci
		LEFT JOIN vehicles v ON v.id = ci.vehicle_id
		WHERE ci.cart_id = ?
		ORDER BY ci.position, ci.id
	`, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []model.ConsignmentItem{}
	for rows.Next() {
		var rec model.CartItem
		var title model.VehicleDetail
		if err := rows.Scan(&rec.ID, &rec.CartID, &rec.VehicleID, &rec.SellerAccountID,
			&rec.Name, &rec.Lot, &rec.ImageURL, &rec.StageLabel, &rec.Comments,
			&rec.TransactionType, &rec.ConsignType, &rec.HammerPrice, &rec.Commission,
			&rec.DocumentationFee, &rec.TaxFee, &rec.Total, &rec.Invoiced, &rec.Ship, &rec.Drive,
			&title.Year, &title.Make, &title.Model); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		item := Normalize(rec)
		if item.Name == "" {
			item.Name = title.Title()
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cart items: %w", err)
	}
	return items, nil
}

// FetchDetail returns one item with its vehicle and seller attached.
func (s *SQLiteStorage) FetchDetail(ctx context.Context, itemID string) (*model.ConsignmentItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(itemID, "itemID"); err != nil {
		return nil, err
	}

	return s.fetchDetailTx(ctx, s.db, itemID)
}

func (s *SQLiteStorage) fetchDetailTx(ctx context.Context, q queryable, itemID string) (*model.ConsignmentItem, error) {
	var rec model.CartItem
	err := q.QueryRowContext(ctx, `
		SELECT id, cart_id, COALESCE(vehicle_id, ''), COALESCE(seller_account_id, ''),
		       name, lot, image_url, stage_label, comments,
		       transaction_type, consign_type, hammer_price, commission,
		       documentation_fee, tax_fee, total, invoiced, ship, drive
		FROM cart_items
		WHERE id = ?
	`, itemID).Scan(&rec.ID, &rec.CartID, &rec.VehicleID, &rec.SellerAccountID,
		&rec.Name, &rec.Lot, &rec.ImageURL, &rec.StageLabel, &rec.Comments,
		&rec.TransactionType, &rec.ConsignType, &rec.HammerPrice, &rec.Commission,
		&rec.DocumentationFee, &rec.TaxFee, &rec.Total, &rec.Invoiced, &rec.Ship, &rec.Drive)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %s: %w", itemID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}

	item := Normalize(rec)

	if rec.VehicleID != "" {
		vehicle, err := s.getVehicleTx(ctx, q, rec.VehicleID)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		item.Vehicle = vehicle
		if item.Name == "" {
			item.Name = vehicle.Title()
		}
	}
	if rec.SellerAccountID != "" {
		seller, err := s.getAccountTx(ctx, q, rec.SellerAccountID)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		if seller != nil {
			item.Seller = seller.SellerDetail()
		}
	}
	return &item, nil
}

// Normalize converts a stored cart item into the dashboard item shape. Money
// text that does not parse becomes zero.
func Normalize(rec model.CartItem) model.ConsignmentItem {
	return model.ConsignmentItem{
		Key:              rec.ID,
		ID:               rec.ID,
		CartID:           rec.CartID,
		VehicleID:        rec.VehicleID,
		Name:             rec.Name,
		Lot:              rec.Lot,
		ImageURL:         rec.ImageURL,
		StageLabel:       rec.StageLabel,
		Comments:         rec.Comments,
		TransactionType:  rec.TransactionType,
		ConsignType:      rec.ConsignType,
		HammerPrice:      consignment.ParseCurrency(rec.HammerPrice),
		Commission:       consignment.ParseCurrency(rec.Commission),
		DocumentationFee: consignment.ParseCurrency(rec.DocumentationFee),
		TaxFee:           consignment.ParseCurrency(rec.TaxFee),
		Total:            consignment.ParseCurrency(rec.Total),
		Invoiced:         rec.Invoiced,
		Ship:             rec.Ship,
		Drive:            rec.Drive,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Record converts a dashboard item back into its stored form.
func Record(item model.ConsignmentItem) model.CartItem {
	return model.CartItem{
		ID:               item.ID,
		CartID:           item.CartID,
		VehicleID:        item.VehicleID,
		Name:             item.Name,
		Lot:              item.Lot,
		ImageURL:         item.ImageURL,
		StageLabel:       item.StageLabel,
		Comments:         item.Comments,
		TransactionType:  item.TransactionType,
		ConsignType:      item.ConsignType,
		HammerPrice:      item.HammerPrice.StringFixed(2),
		Commission:       item.Commission.StringFixed(2),
		DocumentationFee: item.DocumentationFee.StringFixed(2),
		TaxFee:           item.TaxFee.StringFixed(2),
		Total:            item.Total.StringFixed(2),
		Invoiced:         item.Invoiced,
		Ship:             item.Ship,
		Drive:            item.Drive,
	}
}
