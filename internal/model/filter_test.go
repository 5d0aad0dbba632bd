package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrInt64(v int64) *int64        { return &v }
func ptrFloat64(v float64) *float64  { return &v }
func ptrTime(v time.Time) *time.Time { return &v }

func TestHistoryFilterNormalizedDefaults(t *testing.T) {
	f := HistoryFilter{}.Normalized(50)

	assert.Equal(t, RecordTypeAll, f.Type)
	assert.Equal(t, SortByDate, f.SortBy)
	assert.Equal(t, SortDesc, f.SortOrder)
	assert.Equal(t, 50, f.Limit)
	assert.Equal(t, 0, f.Offset)
}

func TestHistoryFilterNormalizedKeepsExplicitValues(t *testing.T) {
	f := HistoryFilter{
		Type:      RecordTypeFuel,
		SortBy:    SortByCost,
		SortOrder: SortAsc,
		Limit:     10,
	}.Normalized(50)

	assert.Equal(t, RecordTypeFuel, f.Type)
	assert.Equal(t, SortByCost, f.SortBy)
	assert.Equal(t, SortAsc, f.SortOrder)
	assert.Equal(t, 10, f.Limit)
}

func TestHistoryFilterValidateRejects(t *testing.T) {
	start := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	badCategory := MaintenanceCategory("detailing")
	badFuel := FuelType("plutonium")

	base := HistoryFilter{}.Normalized(50)

	cases := []struct {
		name   string
		mutate func(*HistoryFilter)
	}{
		{"unknown type", func(f *HistoryFilter) { f.Type = "charging" }},
		{"unknown category", func(f *HistoryFilter) { f.Category = &badCategory }},
		{"unknown fuel type", func(f *HistoryFilter) { f.FuelType = &badFuel }},
		{"start after end", func(f *HistoryFilter) { f.StartDate, f.EndDate = &start, &end }},
		{"negative min cost", func(f *HistoryFilter) { f.MinCost = ptrFloat64(-1) }},
		{"min cost above max cost", func(f *HistoryFilter) { f.MinCost, f.MaxCost = ptrFloat64(100), ptrFloat64(50) }},
		{"unknown sort key", func(f *HistoryFilter) { f.SortBy = "liters" }},
		{"unknown sort order", func(f *HistoryFilter) { f.SortOrder = "sideways" }},
		{"zero limit", func(f *HistoryFilter) { f.Limit = 0 }},
		{"limit above maximum", func(f *HistoryFilter) { f.Limit = 201 }},
		{"negative offset", func(f *HistoryFilter) { f.Offset = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := base
			tc.mutate(&f)
			assert.Error(t, f.Validate(200))
		})
	}
}

func TestHistoryFilterPredicateRouting(t *testing.T) {
	category := CategoryPreventive
	fuelType := FuelDiesel
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	f := HistoryFilter{
		VehicleID: ptrInt64(7),
		Category:  &category,
		FuelType:  &fuelType,
		StartDate: &start,
		MinCost:   ptrFloat64(100),
	}

	maint := f.MaintenancePredicates()
	fuel := f.FuelPredicates()

	// Shared predicates reach both sources; the category predicate reaches
	// only maintenance and the fuel_type predicate only fuel.
	assert.Equal(t, fieldSet(maint), map[PredicateField]bool{
		FieldVehicle: true, FieldDate: true, FieldCost: true, FieldCategory: true,
	})
	assert.Equal(t, fieldSet(fuel), map[PredicateField]bool{
		FieldVehicle: true, FieldDate: true, FieldCost: true, FieldFuelType: true,
	})

	for _, p := range maint {
		if p.Field == FieldCategory {
			assert.Equal(t, "=", p.Op)
			assert.Equal(t, "preventive", p.Value)
		}
	}
	for _, p := range fuel {
		if p.Field == FieldFuelType {
			assert.Equal(t, "diesel", p.Value)
		}
	}
}

func TestHistoryFilterPredicateOps(t *testing.T) {
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)

	f := HistoryFilter{
		StartDate: &start,
		EndDate:   &end,
		MinCost:   ptrFloat64(10),
		MaxCost:   ptrFloat64(500),
	}

	ops := make(map[string]int)
	for _, p := range f.MaintenancePredicates() {
		ops[string(p.Field)+p.Op]++
	}
	require.Equal(t, map[string]int{
		"date>=": 1,
		"date<=": 1,
		"cost>=": 1,
		"cost<=": 1,
	}, ops)
}

func TestHistoryFilterOrderAndInclusion(t *testing.T) {
	f := HistoryFilter{SortBy: SortByKm, SortOrder: SortDesc, Type: RecordTypeAll}
	assert.Equal(t, OrderKey{Key: SortByKm, Desc: true}, f.Order())
	assert.True(t, f.IncludesMaintenance())
	assert.True(t, f.IncludesFuel())

	f.Type = RecordTypeMaintenance
	assert.True(t, f.IncludesMaintenance())
	assert.False(t, f.IncludesFuel())

	f.Type = RecordTypeFuel
	assert.False(t, f.IncludesMaintenance())
	assert.True(t, f.IncludesFuel())
}

func fieldSet(preds []Predicate) map[PredicateField]bool {
	set := make(map[PredicateField]bool, len(preds))
	for _, p := range preds {
		set[p.Field] = true
	}
	return set
}
