package model

import "time"

type ComparisonRequest struct {
	VehicleIDs []int64      `json:"vehicle_ids"`
	StartDate  *time.Time   `json:"start_date,omitempty"`
	EndDate    *time.Time   `json:"end_date,omitempty"`
	Period     PeriodPreset `json:"period,omitempty"`
}

type VehicleComparisonRow struct {
	VehicleID          int64    `json:"vehicle_id"`
	Name               string   `json:"name"`
	DistanceTraveled   float64  `json:"distance_traveled"`
	TotalCost          float64  `json:"total_cost"`
	CostPerDistance    float64  `json:"cost_per_distance"`
	MaintenanceCost    float64  `json:"maintenance_cost"`
	FuelCost           float64  `json:"fuel_cost"`
	AverageConsumption *float64 `json:"average_consumption,omitempty"`
	ServicesCount      int64    `json:"services_count"`
	EfficiencyRank     int      `json:"efficiency_rank"`
}

type ComparisonHighlight struct {
	VehicleID int64   `json:"vehicle_id"`
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
}

type ComparisonSummary struct {
	MostEconomical  ComparisonHighlight  `json:"most_economical"`
	MostExpensive   ComparisonHighlight  `json:"most_expensive"`
	BestConsumption *ComparisonHighlight `json:"best_consumption,omitempty"`
}

type VehicleComparison struct {
	Period   DateRange              `json:"period"`
	Vehicles []VehicleComparisonRow `json:"vehicles"`
	Summary  ComparisonSummary      `json:"summary"`
}
