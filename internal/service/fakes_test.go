package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"history-service/internal/model"
)

// In-memory sources that honor the same predicate/order/limit contract as
// the GORM repositories, so the merge and statistics logic is exercised
// without a database.

type fakeMaintenanceSource struct {
	events    []model.MaintenanceEvent
	err       error
	findCalls int
}

func (f *fakeMaintenanceSource) Find(_ context.Context, _ uuid.UUID, preds []model.Predicate, order model.OrderKey, limit int) ([]model.MaintenanceEvent, error) {
	f.findCalls++
	if f.err != nil {
		return nil, f.err
	}
	matched := f.filter(preds)
	sort.SliceStable(matched, func(i, j int) bool {
		return lessMaintenance(matched[i], matched[j], order)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeMaintenanceSource) Count(_ context.Context, _ uuid.UUID, preds []model.Predicate) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.filter(preds))), nil
}

func (f *fakeMaintenanceSource) InWindow(_ context.Context, _ uuid.UUID, vehicleID *int64, rng model.DateRange) ([]model.MaintenanceEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	var matched []model.MaintenanceEvent
	for _, e := range f.events {
		if vehicleID != nil && e.VehicleID != *vehicleID {
			continue
		}
		if !rng.From.IsZero() && e.ServiceDate.Before(rng.From) {
			continue
		}
		if e.ServiceDate.After(rng.To) {
			continue
		}
		matched = append(matched, e)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ServiceDate.Before(matched[j].ServiceDate)
	})
	return matched, nil
}

func (f *fakeMaintenanceSource) filter(preds []model.Predicate) []model.MaintenanceEvent {
	var matched []model.MaintenanceEvent
	for _, e := range f.events {
		ok := true
		for _, p := range preds {
			if !maintenanceMatches(e, p) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, e)
		}
	}
	return matched
}

func maintenanceMatches(e model.MaintenanceEvent, p model.Predicate) bool {
	switch p.Field {
	case model.FieldVehicle:
		return e.VehicleID == p.Value.(int64)
	case model.FieldDate:
		return compareTimes(e.ServiceDate, p.Value.(time.Time), p.Op)
	case model.FieldCost:
		return compareFloats(e.Cost, p.Value.(float64), p.Op)
	case model.FieldCategory:
		return string(e.Category) == p.Value.(string)
	}
	return true
}

func lessMaintenance(a, b model.MaintenanceEvent, order model.OrderKey) bool {
	var c int
	switch order.Key {
	case model.SortByKm:
		c = compareInt64(odoOrMax(a.OdometerAtService), odoOrMax(b.OdometerAtService))
	case model.SortByCost:
		c = compareFloat64(a.Cost, b.Cost)
	default:
		switch {
		case a.ServiceDate.Before(b.ServiceDate):
			c = -1
		case a.ServiceDate.After(b.ServiceDate):
			c = 1
		}
	}
	if c != 0 {
		if order.Desc {
			return c > 0
		}
		return c < 0
	}
	return a.ID < b.ID
}

type fakeFuelSource struct {
	events    []model.FuelEvent
	err       error
	findCalls int
}

func (f *fakeFuelSource) Find(_ context.Context, _ uuid.UUID, preds []model.Predicate, order model.OrderKey, limit int) ([]model.FuelEvent, error) {
	f.findCalls++
	if f.err != nil {
		return nil, f.err
	}
	matched := f.filter(preds)
	sort.SliceStable(matched, func(i, j int) bool {
		return lessFuel(matched[i], matched[j], order)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeFuelSource) Count(_ context.Context, _ uuid.UUID, preds []model.Predicate) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.filter(preds))), nil
}

func (f *fakeFuelSource) InWindow(_ context.Context, _ uuid.UUID, vehicleID *int64, rng model.DateRange) ([]model.FuelEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	var matched []model.FuelEvent
	for _, e := range f.events {
		if vehicleID != nil && e.VehicleID != *vehicleID {
			continue
		}
		if !rng.From.IsZero() && e.Date.Before(rng.From) {
			continue
		}
		if e.Date.After(rng.To) {
			continue
		}
		matched = append(matched, e)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.Before(matched[j].Date)
	})
	return matched, nil
}

func (f *fakeFuelSource) FullTankChain(_ context.Context, _ uuid.UUID, vehicleID int64) ([]model.FuelEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	var chain []model.FuelEvent
	for _, e := range f.events {
		if e.VehicleID == vehicleID && e.IsFullTank {
			chain = append(chain, e)
		}
	}
	sort.SliceStable(chain, func(i, j int) bool {
		return chain[i].Date.Before(chain[j].Date)
	})
	return chain, nil
}

func (f *fakeFuelSource) filter(preds []model.Predicate) []model.FuelEvent {
	var matched []model.FuelEvent
	for _, e := range f.events {
		ok := true
		for _, p := range preds {
			if !fuelMatches(e, p) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, e)
		}
	}
	return matched
}

func fuelMatches(e model.FuelEvent, p model.Predicate) bool {
	switch p.Field {
	case model.FieldVehicle:
		return e.VehicleID == p.Value.(int64)
	case model.FieldDate:
		return compareTimes(e.Date, p.Value.(time.Time), p.Op)
	case model.FieldCost:
		return compareFloats(e.TotalCost, p.Value.(float64), p.Op)
	case model.FieldFuelType:
		return string(e.FuelType) == p.Value.(string)
	}
	return true
}

func lessFuel(a, b model.FuelEvent, order model.OrderKey) bool {
	var c int
	switch order.Key {
	case model.SortByKm:
		c = compareInt64(a.Odometer, b.Odometer)
	case model.SortByCost:
		c = compareFloat64(a.TotalCost, b.TotalCost)
	default:
		switch {
		case a.Date.Before(b.Date):
			c = -1
		case a.Date.After(b.Date):
			c = 1
		}
	}
	if c != 0 {
		if order.Desc {
			return c > 0
		}
		return c < 0
	}
	return a.ID < b.ID
}

type fakeVehicleSource struct {
	vehicles    []model.Vehicle
	err         error
	getCalls    int
	verifyCalls int
}

func (f *fakeVehicleSource) VerifyOwnership(_ context.Context, userID uuid.UUID, ids []int64) ([]int64, error) {
	f.verifyCalls++
	if f.err != nil {
		return nil, f.err
	}
	var owned []int64
	for _, v := range f.vehicles {
		if v.UserID != userID {
			continue
		}
		for _, id := range ids {
			if v.ID == id {
				owned = append(owned, id)
			}
		}
	}
	return owned, nil
}

func (f *fakeVehicleSource) Get(_ context.Context, userID uuid.UUID, ids []int64) ([]model.Vehicle, error) {
	f.getCalls++
	if f.err != nil {
		return nil, f.err
	}
	var vehicles []model.Vehicle
	for _, v := range f.vehicles {
		if v.UserID != userID {
			continue
		}
		for _, id := range ids {
			if v.ID == id {
				vehicles = append(vehicles, v)
			}
		}
	}
	return vehicles, nil
}

func odoOrMax(odometer *int64) int64 {
	if odometer == nil {
		return math.MaxInt64
	}
	return *odometer
}

func compareTimes(a, b time.Time, op string) bool {
	switch op {
	case ">=":
		return !a.Before(b)
	case "<=":
		return !a.After(b)
	default:
		return a.Equal(b)
	}
}

func compareFloats(a, b float64, op string) bool {
	switch op {
	case ">=":
		return a >= b
	case "<=":
		return a <= b
	default:
		return a == b
	}
}

func ptrInt64(v int64) *int64          { return &v }
func ptrFloat64(v float64) *float64    { return &v }
func ptrTime(v time.Time) *time.Time   { return &v }
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
