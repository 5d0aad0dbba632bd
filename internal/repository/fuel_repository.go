package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"history-service/internal/model"
)

type FuelRepository struct {
	db *gorm.DB
}

func NewFuelRepository(db *gorm.DB) *FuelRepository {
	return &FuelRepository{db: db}
}

func fuelColumn(field model.PredicateField) string {
	switch field {
	case model.FieldVehicle:
		return "f.vehicle_id"
	case model.FieldDate:
		return "f.date"
	case model.FieldCost:
		return "f.total_cost"
	case model.FieldFuelType:
		return "f.fuel_type"
	}
	return ""
}

func fuelSortColumn(key model.SortKey) string {
	switch key {
	case model.SortByKm:
		return "f.odometer"
	case model.SortByCost:
		return "f.total_cost"
	default:
		return "f.date"
	}
}

func (r *FuelRepository) base(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("fuel_records f").
		Joins("JOIN vehicles v ON v.id = f.vehicle_id").
		Where("v.user_id = ?", userID)
}

const fuelColumns = `f.id, f.vehicle_id, v.name AS vehicle_name, f.date,
	f.odometer, f.liters, f.price_per_liter, f.total_cost, f.fuel_type,
	f.is_full_tank, f.gas_station`

func (r *FuelRepository) Find(ctx context.Context, userID uuid.UUID, preds []model.Predicate, order model.OrderKey, limit int) ([]model.FuelEvent, error) {
	var events []model.FuelEvent

	query := r.base(ctx, userID).Select(fuelColumns)
	query = applyPredicates(query, preds, fuelColumn)
	query = query.Order(orderClause(order, fuelSortColumn(order.Key), "f.id"))
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Scan(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *FuelRepository) Count(ctx context.Context, userID uuid.UUID, preds []model.Predicate) (int64, error) {
	var total int64
	query := applyPredicates(r.base(ctx, userID), preds, fuelColumn)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *FuelRepository) InWindow(ctx context.Context, userID uuid.UUID, vehicleID *int64, rng model.DateRange) ([]model.FuelEvent, error) {
	var events []model.FuelEvent

	query := r.base(ctx, userID).
		Select(fuelColumns).
		Where("f.date <= ?", rng.To)
	if !rng.From.IsZero() {
		query = query.Where("f.date >= ?", rng.From)
	}
	if vehicleID != nil {
		query = query.Where("f.vehicle_id = ?", *vehicleID)
	}
	query = query.Order("f.date ASC, f.id ASC")

	if err := query.Scan(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FullTankChain returns every full-tank fill for one vehicle in date order.
// Consumption for any fill on a page depends on its full-tank predecessor,
// which may lie outside the page's filters, so the whole chain is fetched.
func (r *FuelRepository) FullTankChain(ctx context.Context, userID uuid.UUID, vehicleID int64) ([]model.FuelEvent, error) {
	var events []model.FuelEvent

	query := r.base(ctx, userID).
		Select(fuelColumns).
		Where("f.vehicle_id = ? AND f.is_full_tank = ?", vehicleID, true).
		Order("f.date ASC, f.id ASC")

	if err := query.Scan(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
