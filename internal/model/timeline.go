package model

import "time"

// TimelineItem is the source-agnostic envelope both event streams are
// normalized into before the global sort. Exactly one of Maintenance and
// Fuel is populated, matching Type.
type TimelineItem struct {
	Type        RecordType          `json:"type"`
	ID          int64               `json:"id"`
	VehicleID   int64               `json:"vehicle_id"`
	VehicleName string              `json:"vehicle_name"`
	Date        time.Time           `json:"date"`
	Odometer    *int64              `json:"odometer,omitempty"`
	Cost        float64             `json:"cost"`
	Consumption *float64            `json:"consumption,omitempty"`
	Maintenance *MaintenancePayload `json:"maintenance,omitempty"`
	Fuel        *FuelPayload        `json:"fuel,omitempty"`
}

type MaintenancePayload struct {
	Category            MaintenanceCategory `json:"category"`
	Description         string              `json:"description"`
	ServiceProviderName *string             `json:"service_provider_name,omitempty"`
	AttachmentCount     int64               `json:"attachment_count"`
}

type FuelPayload struct {
	Liters        float64  `json:"liters"`
	PricePerLiter float64  `json:"price_per_liter"`
	FuelType      FuelType `json:"fuel_type"`
	IsFullTank    bool     `json:"is_full_tank"`
	GasStation    *string  `json:"gas_station,omitempty"`
}

type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

type TimelinePage struct {
	Items          []TimelineItem `json:"items"`
	Pagination     Pagination     `json:"pagination"`
	FiltersApplied HistoryFilter  `json:"filters_applied"`
}

// NewMaintenanceItem normalizes a maintenance event into the envelope.
func NewMaintenanceItem(e MaintenanceEvent) TimelineItem {
	return TimelineItem{
		Type:        RecordTypeMaintenance,
		ID:          e.ID,
		VehicleID:   e.VehicleID,
		VehicleName: e.VehicleName,
		Date:        e.ServiceDate,
		Odometer:    e.OdometerAtService,
		Cost:        e.Cost,
		Maintenance: &MaintenancePayload{
			Category:            e.Category,
			Description:         e.Description,
			ServiceProviderName: e.ServiceProviderName,
			AttachmentCount:     e.AttachmentCount,
		},
	}
}

// NewFuelItem normalizes a fuel event into the envelope. Consumption is
// attached later, once the vehicle's full-tank chain is known.
func NewFuelItem(e FuelEvent) TimelineItem {
	odometer := e.Odometer
	return TimelineItem{
		Type:        RecordTypeFuel,
		ID:          e.ID,
		VehicleID:   e.VehicleID,
		VehicleName: e.VehicleName,
		Date:        e.Date,
		Odometer:    &odometer,
		Cost:        e.TotalCost,
		Fuel: &FuelPayload{
			Liters:        e.Liters,
			PricePerLiter: e.PricePerLiter,
			FuelType:      e.FuelType,
			IsFullTank:    e.IsFullTank,
			GasStation:    e.GasStation,
		},
	}
}
