package model

import "time"

type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

type PeriodInfo struct {
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	Days             int       `json:"days"`
	DistanceTraveled float64   `json:"distance_traveled"`
}

type CostSummary struct {
	Total              float64 `json:"total"`
	Maintenance        float64 `json:"maintenance"`
	Fuel               float64 `json:"fuel"`
	MaintenancePercent float64 `json:"maintenance_percent"`
	FuelPercent        float64 `json:"fuel_percent"`
}

type CostPerDistance struct {
	Total       float64 `json:"total"`
	Maintenance float64 `json:"maintenance"`
	Fuel        float64 `json:"fuel"`
}

type CategoryCost struct {
	Category MaintenanceCategory `json:"category"`
	Count    int64               `json:"count"`
	Cost     float64             `json:"cost"`
}

type MaintenanceStats struct {
	Count         int64             `json:"count"`
	AverageCost   float64           `json:"average_cost"`
	ByCategory    []CategoryCost    `json:"by_category"`
	MostExpensive *MaintenanceEvent `json:"most_expensive,omitempty"`
}

type FuelTypeCost struct {
	FuelType FuelType `json:"fuel_type"`
	Count    int64    `json:"count"`
	Liters   float64  `json:"liters"`
	Cost     float64  `json:"cost"`
}

type FuelStats struct {
	Count                int64          `json:"count"`
	TotalLiters          float64        `json:"total_liters"`
	AverageConsumption   *float64       `json:"average_consumption,omitempty"`
	AveragePricePerLiter float64        `json:"average_price_per_liter"`
	ByFuelType           []FuelTypeCost `json:"by_fuel_type"`
}

type Projections struct {
	MonthlyAverage float64 `json:"monthly_average"`
	Next3Months    float64 `json:"next_3_months"`
	Next6Months    float64 `json:"next_6_months"`
}

type TrendInfo struct {
	Direction      TrendDirection `json:"direction"`
	FirstHalfCost  float64        `json:"first_half_cost"`
	SecondHalfCost float64        `json:"second_half_cost"`
	ChangePercent  float64        `json:"change_percent"`
}

// PeriodStatistics is computed on demand and never persisted.
type PeriodStatistics struct {
	Period           PeriodInfo       `json:"period"`
	TotalCosts       CostSummary      `json:"total_costs"`
	CostPerDistance  CostPerDistance  `json:"cost_per_distance"`
	MaintenanceStats MaintenanceStats `json:"maintenance_stats"`
	FuelStats        FuelStats        `json:"fuel_stats"`
	Projections      Projections      `json:"projections"`
	Trend            *TrendInfo       `json:"trend,omitempty"`
}
