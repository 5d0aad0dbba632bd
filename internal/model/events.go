package model

import (
	"time"

	"github.com/google/uuid"
)

type MaintenanceCategory string

const (
	CategoryPreventive MaintenanceCategory = "preventive"
	CategoryCorrective MaintenanceCategory = "corrective"
	CategoryInspection MaintenanceCategory = "inspection"
	CategoryUpgrade    MaintenanceCategory = "upgrade"
	CategoryWarranty   MaintenanceCategory = "warranty"
	CategoryRecall     MaintenanceCategory = "recall"
	CategoryOther      MaintenanceCategory = "other"
)

func (c MaintenanceCategory) Valid() bool {
	switch c {
	case CategoryPreventive, CategoryCorrective, CategoryInspection,
		CategoryUpgrade, CategoryWarranty, CategoryRecall, CategoryOther:
		return true
	}
	return false
}

type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelEthanol  FuelType = "ethanol"
	FuelDiesel   FuelType = "diesel"
)

func (f FuelType) Valid() bool {
	switch f {
	case FuelGasoline, FuelEthanol, FuelDiesel:
		return true
	}
	return false
}

type Vehicle struct {
	ID     int64     `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
}

// MaintenanceEvent is the read model for one service record. The engine
// never writes these; they are owned by the maintenance store.
type MaintenanceEvent struct {
	ID                  int64               `json:"id"`
	VehicleID           int64               `json:"vehicle_id"`
	VehicleName         string              `json:"vehicle_name"`
	ServiceDate         time.Time           `json:"service_date"`
	OdometerAtService   *int64              `json:"odometer_at_service,omitempty"`
	Cost                float64             `json:"cost"`
	Category            MaintenanceCategory `json:"category"`
	Description         string              `json:"description"`
	ServiceProviderName *string             `json:"service_provider_name,omitempty"`
	AttachmentCount     int64               `json:"attachment_count"`
}

// FuelEvent is the read model for one fuel purchase. TotalCost is persisted
// as liters times price per liter rounded to two decimals.
type FuelEvent struct {
	ID            int64     `json:"id"`
	VehicleID     int64     `json:"vehicle_id"`
	VehicleName   string    `json:"vehicle_name"`
	Date          time.Time `json:"date"`
	Odometer      int64     `json:"odometer"`
	Liters        float64   `json:"liters"`
	PricePerLiter float64   `json:"price_per_liter"`
	TotalCost     float64   `json:"total_cost"`
	FuelType      FuelType  `json:"fuel_type"`
	IsFullTank    bool      `json:"is_full_tank"`
	GasStation    *string   `json:"gas_station,omitempty"`
}
