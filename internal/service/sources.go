package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"history-service/internal/model"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
)

// MaintenanceSource reads the maintenance store. Records arrive validated
// and user-scoped; the engine never writes through this interface.
type MaintenanceSource interface {
	Find(ctx context.Context, userID uuid.UUID, preds []model.Predicate, order model.OrderKey, limit int) ([]model.MaintenanceEvent, error)
	Count(ctx context.Context, userID uuid.UUID, preds []model.Predicate) (int64, error)
	InWindow(ctx context.Context, userID uuid.UUID, vehicleID *int64, rng model.DateRange) ([]model.MaintenanceEvent, error)
}

// FuelSource reads the fuel-record store.
type FuelSource interface {
	Find(ctx context.Context, userID uuid.UUID, preds []model.Predicate, order model.OrderKey, limit int) ([]model.FuelEvent, error)
	Count(ctx context.Context, userID uuid.UUID, preds []model.Predicate) (int64, error)
	InWindow(ctx context.Context, userID uuid.UUID, vehicleID *int64, rng model.DateRange) ([]model.FuelEvent, error)
	FullTankChain(ctx context.Context, userID uuid.UUID, vehicleID int64) ([]model.FuelEvent, error)
}

// VehicleSource answers ownership questions about vehicles.
type VehicleSource interface {
	VerifyOwnership(ctx context.Context, userID uuid.UUID, ids []int64) ([]int64, error)
	Get(ctx context.Context, userID uuid.UUID, ids []int64) ([]model.Vehicle, error)
}
