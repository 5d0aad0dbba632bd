package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"history-service/internal/model"
)

type MaintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

func maintenanceColumn(field model.PredicateField) string {
	switch field {
	case model.FieldVehicle:
		return "m.vehicle_id"
	case model.FieldDate:
		return "m.service_date"
	case model.FieldCost:
		return "m.cost"
	case model.FieldCategory:
		return "m.category"
	}
	return ""
}

func maintenanceSortColumn(key model.SortKey) string {
	switch key {
	case model.SortByKm:
		return "m.odometer_at_service"
	case model.SortByCost:
		return "m.cost"
	default:
		return "m.service_date"
	}
}

func (r *MaintenanceRepository) base(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("maintenance_records m").
		Joins("JOIN vehicles v ON v.id = m.vehicle_id").
		Where("v.user_id = ?", userID)
}

// Find returns the user's maintenance events matching the compiled
// predicates, under the shared ordering, truncated to limit rows.
func (r *MaintenanceRepository) Find(ctx context.Context, userID uuid.UUID, preds []model.Predicate, order model.OrderKey, limit int) ([]model.MaintenanceEvent, error) {
	var events []model.MaintenanceEvent

	query := r.base(ctx, userID).
		Select(`m.id, m.vehicle_id, v.name AS vehicle_name, m.service_date,
			m.odometer_at_service, m.cost, m.category, m.description,
			m.service_provider_name, m.attachment_count`)
	query = applyPredicates(query, preds, maintenanceColumn)
	query = query.Order(orderClause(order, maintenanceSortColumn(order.Key), "m.id"))
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Scan(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *MaintenanceRepository) Count(ctx context.Context, userID uuid.UUID, preds []model.Predicate) (int64, error) {
	var total int64
	query := applyPredicates(r.base(ctx, userID), preds, maintenanceColumn)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// InWindow fetches all of the user's maintenance events in a date window,
// optionally restricted to one vehicle, ordered by service date ascending.
// A zero From means no lower bound.
func (r *MaintenanceRepository) InWindow(ctx context.Context, userID uuid.UUID, vehicleID *int64, rng model.DateRange) ([]model.MaintenanceEvent, error) {
	var events []model.MaintenanceEvent

	query := r.base(ctx, userID).
		Select(`m.id, m.vehicle_id, v.name AS vehicle_name, m.service_date,
			m.odometer_at_service, m.cost, m.category, m.description,
			m.service_provider_name, m.attachment_count`).
		Where("m.service_date <= ?", rng.To)
	if !rng.From.IsZero() {
		query = query.Where("m.service_date >= ?", rng.From)
	}
	if vehicleID != nil {
		query = query.Where("m.vehicle_id = ?", *vehicleID)
	}
	query = query.Order("m.service_date ASC, m.id ASC")

	if err := query.Scan(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
