package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/cashiering/internal/common"
	"github.com/Veraticus/cashiering/internal/model"
)

// SaveVehicle inserts or updates a vehicle record.
func (s *SQLiteStorage) SaveVehicle(ctx context.Context, vehicle *model.VehicleDetail) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateVehicle(vehicle); err != nil {
		return err
	}
	return s.saveVehicleTx(ctx, s.db, vehicle)
}

func (s *SQLiteStorage) saveVehicleTx(ctx context.Context, q queryable, v *model.VehicleDetail) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO vehicles (id, year, make, model, vin, style, engine, cylinders, transmission,
		                      power_source, exterior_color, interior_color, short_description,
		                      long_description, mileage)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			year = excluded.year,
			make = excluded.make,
			model = excluded.model,
			vin = excluded.vin,
			style = excluded.style,
			engine = excluded.engine,
			cylinders = excluded.cylinders,
			transmission = excluded.transmission,
			power_source = excluded.power_source,
			exterior_color = excluded.exterior_color,
			interior_color = excluded.interior_color,
			short_description = excluded.short_description,
			long_description = excluded.long_description,
			mileage = excluded.mileage
	`, v.ID, v.Year, v.Make, v.Model, v.VIN, v.Style, v.Engine, v.Cylinders, v.Transmission,
		v.PowerSource, v.ExteriorColor, v.InteriorColor, v.ShortDescription, v.LongDescription, v.Mileage)
	if err != nil {
		return fmt.Errorf("failed to save vehicle: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) getVehicleTx(ctx context.Context, q queryable, id string) (*model.VehicleDetail, error) {
	var v model.VehicleDetail
	err := q.QueryRowContext(ctx, `
		SELECT id, year, make, model, vin, style, engine, cylinders, transmission,
		       power_source, exterior_color, interior_color, short_description,
		       long_description, mileage
		FROM vehicles
		WHERE id = ?
	`, id).Scan(&v.ID, &v.Year, &v.Make, &v.Model, &v.VIN, &v.Style, &v.Engine, &v.Cylinders,
		&v.Transmission, &v.PowerSource, &v.ExteriorColor, &v.InteriorColor,
		&v.ShortDescription, &v.LongDescription, &v.Mileage)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vehicle %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return &v, nil
}
