package model

import (
	"fmt"
	"time"
)

type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type RecordType string

const (
	RecordTypeAll         RecordType = "all"
	RecordTypeMaintenance RecordType = "maintenance"
	RecordTypeFuel        RecordType = "fuel"
)

func (t RecordType) Valid() bool {
	switch t {
	case RecordTypeAll, RecordTypeMaintenance, RecordTypeFuel:
		return true
	}
	return false
}

type SortKey string

const (
	SortByDate SortKey = "date"
	SortByKm   SortKey = "km"
	SortByCost SortKey = "cost"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortByDate, SortByKm, SortByCost:
		return true
	}
	return false
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (o SortOrder) Valid() bool {
	return o == SortAsc || o == SortDesc
}

// PredicateField identifies a filterable attribute independent of how either
// source table names its columns. Repositories map fields to columns; the
// query builder binds the values.
type PredicateField string

const (
	FieldVehicle  PredicateField = "vehicle"
	FieldDate     PredicateField = "date"
	FieldCost     PredicateField = "cost"
	FieldCategory PredicateField = "category"
	FieldFuelType PredicateField = "fuel_type"
)

type Predicate struct {
	Field PredicateField
	Op    string
	Value any
}

type OrderKey struct {
	Key  SortKey
	Desc bool
}

// HistoryFilter is the declarative filter request for the unified timeline.
type HistoryFilter struct {
	VehicleID *int64               `json:"vehicle_id,omitempty"`
	Type      RecordType           `json:"type"`
	Category  *MaintenanceCategory `json:"category,omitempty"`
	FuelType  *FuelType            `json:"fuel_type,omitempty"`
	StartDate *time.Time           `json:"start_date,omitempty"`
	EndDate   *time.Time           `json:"end_date,omitempty"`
	MinCost   *float64             `json:"min_cost,omitempty"`
	MaxCost   *float64             `json:"max_cost,omitempty"`
	SortBy    SortKey              `json:"sort_by"`
	SortOrder SortOrder            `json:"sort_order"`
	Limit     int                  `json:"limit"`
	Offset    int                  `json:"offset"`
}

// Normalized fills unset fields with their documented defaults.
func (f HistoryFilter) Normalized(defaultLimit int) HistoryFilter {
	if f.Type == "" {
		f.Type = RecordTypeAll
	}
	if f.SortBy == "" {
		f.SortBy = SortByDate
	}
	if f.SortOrder == "" {
		f.SortOrder = SortDesc
	}
	if f.Limit == 0 {
		f.Limit = defaultLimit
	}
	return f
}

// Validate rejects out-of-contract values outright; nothing is clamped.
func (f HistoryFilter) Validate(maxLimit int) error {
	if !f.Type.Valid() {
		return fmt.Errorf("type must be one of all, maintenance, fuel")
	}
	if f.Category != nil && !f.Category.Valid() {
		return fmt.Errorf("category %q is not a known maintenance category", *f.Category)
	}
	if f.FuelType != nil && !f.FuelType.Valid() {
		return fmt.Errorf("fuel_type %q is not a known fuel type", *f.FuelType)
	}
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return fmt.Errorf("start_date must not be after end_date")
	}
	if f.MinCost != nil && *f.MinCost < 0 {
		return fmt.Errorf("min_cost must not be negative")
	}
	if f.MinCost != nil && f.MaxCost != nil && *f.MinCost > *f.MaxCost {
		return fmt.Errorf("min_cost must not exceed max_cost")
	}
	if !f.SortBy.Valid() {
		return fmt.Errorf("sort_by must be one of date, km, cost")
	}
	if !f.SortOrder.Valid() {
		return fmt.Errorf("sort_order must be asc or desc")
	}
	if f.Limit < 1 || f.Limit > maxLimit {
		return fmt.Errorf("limit must be between 1 and %d", maxLimit)
	}
	if f.Offset < 0 {
		return fmt.Errorf("offset must not be negative")
	}
	return nil
}

func (f HistoryFilter) sharedPredicates() []Predicate {
	var preds []Predicate
	if f.VehicleID != nil {
		preds = append(preds, Predicate{Field: FieldVehicle, Op: "=", Value: *f.VehicleID})
	}
	if f.StartDate != nil {
		preds = append(preds, Predicate{Field: FieldDate, Op: ">=", Value: *f.StartDate})
	}
	if f.EndDate != nil {
		preds = append(preds, Predicate{Field: FieldDate, Op: "<=", Value: *f.EndDate})
	}
	if f.MinCost != nil {
		preds = append(preds, Predicate{Field: FieldCost, Op: ">=", Value: *f.MinCost})
	}
	if f.MaxCost != nil {
		preds = append(preds, Predicate{Field: FieldCost, Op: "<=", Value: *f.MaxCost})
	}
	return preds
}

// MaintenancePredicates compiles the filter for the maintenance source.
// The fuel_type filter never reaches this source.
func (f HistoryFilter) MaintenancePredicates() []Predicate {
	preds := f.sharedPredicates()
	if f.Category != nil {
		preds = append(preds, Predicate{Field: FieldCategory, Op: "=", Value: string(*f.Category)})
	}
	return preds
}

// FuelPredicates compiles the filter for the fuel source. The category
// filter never reaches this source.
func (f HistoryFilter) FuelPredicates() []Predicate {
	preds := f.sharedPredicates()
	if f.FuelType != nil {
		preds = append(preds, Predicate{Field: FieldFuelType, Op: "=", Value: string(*f.FuelType)})
	}
	return preds
}

func (f HistoryFilter) Order() OrderKey {
	return OrderKey{Key: f.SortBy, Desc: f.SortOrder == SortDesc}
}

func (f HistoryFilter) IncludesMaintenance() bool {
	return f.Type == RecordTypeAll || f.Type == RecordTypeMaintenance
}

func (f HistoryFilter) IncludesFuel() bool {
	return f.Type == RecordTypeAll || f.Type == RecordTypeFuel
}
