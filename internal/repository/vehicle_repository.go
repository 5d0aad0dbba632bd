package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"history-service/internal/model"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// VerifyOwnership returns the subset of ids that belong to the user.
func (r *VehicleRepository) VerifyOwnership(ctx context.Context, userID uuid.UUID, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var owned []int64
	err := r.db.WithContext(ctx).
		Table("vehicles").
		Where("user_id = ? AND id IN ?", userID, ids).
		Pluck("id", &owned).Error
	if err != nil {
		return nil, err
	}
	return owned, nil
}

// Get returns the user's vehicles among ids. Ids the user does not own are
// simply absent from the result.
func (r *VehicleRepository) Get(ctx context.Context, userID uuid.UUID, ids []int64) ([]model.Vehicle, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var vehicles []model.Vehicle
	err := r.db.WithContext(ctx).
		Table("vehicles").
		Select("id, user_id, name").
		Where("user_id = ? AND id IN ?", userID, ids).
		Scan(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}
