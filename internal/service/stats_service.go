package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"history-service/internal/model"
)

// StatsService computes period statistics over both event streams.
type StatsService struct {
	maintenance  MaintenanceSource
	fuel         FuelSource
	vehicles     VehicleSource
	plausibleMax float64
	now          func() time.Time
}

func NewStatsService(maintenance MaintenanceSource, fuel FuelSource, vehicles VehicleSource, plausibleMax float64) *StatsService {
	return &StatsService{
		maintenance:  maintenance,
		fuel:         fuel,
		vehicles:     vehicles,
		plausibleMax: plausibleMax,
		now:          time.Now,
	}
}

func (s *StatsService) PeriodStatistics(ctx context.Context, principal model.Principal, req model.StatsRequest) (*model.PeriodStatistics, error) {
	window, err := req.ResolveWindow(s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, err)
	}

	if req.VehicleID != nil {
		owned, err := s.vehicles.VerifyOwnership(ctx, principal.UserID, []int64{*req.VehicleID})
		if err != nil {
			return nil, err
		}
		if len(owned) == 0 {
			return nil, fmt.Errorf("%w: vehicle", ErrNotFound)
		}
	}

	return s.computeForScope(ctx, principal, req.VehicleID, window)
}

// computeForScope fetches both streams for the window (concurrently, they
// are independent) and aggregates. Ownership must already be verified.
func (s *StatsService) computeForScope(ctx context.Context, principal model.Principal, vehicleID *int64, window model.DateRange) (*model.PeriodStatistics, error) {
	var (
		maintEvents []model.MaintenanceEvent
		fuelEvents  []model.FuelEvent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		events, err := s.maintenance.InWindow(gctx, principal.UserID, vehicleID, window)
		maintEvents = events
		return err
	})
	g.Go(func() error {
		events, err := s.fuel.InWindow(gctx, principal.UserID, vehicleID, window)
		fuelEvents = events
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	consumption, err := s.averageConsumption(ctx, principal, fuelEvents)
	if err != nil {
		return nil, err
	}

	stats := buildStatistics(window, maintEvents, fuelEvents, consumption)
	return &stats, nil
}

// averageConsumption derives the window's consumption from each vehicle's
// complete full-tank chain. Chains never cross vehicles, and the first
// in-window fill keeps its pre-window predecessor. Only segments anchored
// by an in-window fill enter the average.
func (s *StatsService) averageConsumption(ctx context.Context, principal model.Principal, fuelEvents []model.FuelEvent) (*float64, error) {
	inWindow := make(map[int64]bool)
	vehicleIDs := make(map[int64]bool)
	for _, e := range fuelEvents {
		if e.IsFullTank {
			inWindow[e.ID] = true
			vehicleIDs[e.VehicleID] = true
		}
	}
	if len(vehicleIDs) == 0 {
		return nil, nil
	}

	byEvent := make(map[int64]float64)
	for vehicleID := range vehicleIDs {
		chain, err := s.fuel.FullTankChain(ctx, principal.UserID, vehicleID)
		if err != nil {
			return nil, err
		}
		for id, value := range ConsumptionByEvent(chain) {
			if inWindow[id] {
				byEvent[id] = value
			}
		}
	}
	return AverageConsumption(byEvent, s.plausibleMax), nil
}

// buildStatistics is pure: everything is derived from the fetched records
// and the pre-resolved consumption average.
func buildStatistics(window model.DateRange, maintEvents []model.MaintenanceEvent, fuelEvents []model.FuelEvent, consumption *float64) model.PeriodStatistics {
	start := effectiveStart(window, maintEvents, fuelEvents)
	days := periodDays(start, window.To)

	distance := distanceTraveled(maintEvents, fuelEvents)

	var maintCost float64
	for _, e := range maintEvents {
		maintCost += e.Cost
	}
	var fuelCost float64
	for _, e := range fuelEvents {
		fuelCost += e.TotalCost
	}
	total := maintCost + fuelCost

	costs := model.CostSummary{
		Total:       round2(total),
		Maintenance: round2(maintCost),
		Fuel:        round2(fuelCost),
	}
	if total > 0 {
		costs.MaintenancePercent = round2(maintCost / total * 100)
		costs.FuelPercent = round2(fuelCost / total * 100)
	}

	var perDistance model.CostPerDistance
	if distance > 0 {
		perDistance = model.CostPerDistance{
			Total:       clamp(total / distance),
			Maintenance: clamp(maintCost / distance),
			Fuel:        clamp(fuelCost / distance),
		}
	}

	samples := make([]CostSample, 0, len(maintEvents)+len(fuelEvents))
	for _, e := range maintEvents {
		samples = append(samples, CostSample{Date: e.ServiceDate, Cost: e.Cost})
	}
	for _, e := range fuelEvents {
		samples = append(samples, CostSample{Date: e.Date, Cost: e.TotalCost})
	}

	return model.PeriodStatistics{
		Period: model.PeriodInfo{
			Start:            start,
			End:              window.To,
			Days:             days,
			DistanceTraveled: distance,
		},
		TotalCosts:       costs,
		CostPerDistance:  perDistance,
		MaintenanceStats: buildMaintenanceStats(maintEvents),
		FuelStats:        buildFuelStats(fuelEvents, consumption),
		Projections:      ComputeProjections(total, days),
		Trend:            ComputeTrend(start, window.To, samples),
	}
}

// effectiveStart narrows an open-ended (all_time) window to the oldest
// record so day counts and projections stay meaningful.
func effectiveStart(window model.DateRange, maintEvents []model.MaintenanceEvent, fuelEvents []model.FuelEvent) time.Time {
	if !window.From.IsZero() {
		return window.From
	}
	start := window.To
	for _, e := range maintEvents {
		if e.ServiceDate.Before(start) {
			start = e.ServiceDate
		}
	}
	for _, e := range fuelEvents {
		if e.Date.Before(start) {
			start = e.Date
		}
	}
	return start
}

// distanceTraveled pools odometer readings from both streams; either stream
// can carry the oldest or newest reading.
func distanceTraveled(maintEvents []model.MaintenanceEvent, fuelEvents []model.FuelEvent) float64 {
	var readings []int64
	for _, e := range maintEvents {
		if e.OdometerAtService != nil {
			readings = append(readings, *e.OdometerAtService)
		}
	}
	for _, e := range fuelEvents {
		readings = append(readings, e.Odometer)
	}
	if len(readings) < 2 {
		return 0
	}
	lowest, highest := readings[0], readings[0]
	for _, r := range readings[1:] {
		if r < lowest {
			lowest = r
		}
		if r > highest {
			highest = r
		}
	}
	return float64(highest - lowest)
}

func buildMaintenanceStats(events []model.MaintenanceEvent) model.MaintenanceStats {
	stats := model.MaintenanceStats{Count: int64(len(events))}
	if len(events) == 0 {
		return stats
	}

	type bucket struct {
		count int64
		cost  float64
	}
	byCategory := make(map[model.MaintenanceCategory]*bucket)

	var total float64
	var mostExpensive model.MaintenanceEvent
	for i, e := range events {
		total += e.Cost
		if i == 0 || e.Cost > mostExpensive.Cost {
			mostExpensive = e
		}
		b := byCategory[e.Category]
		if b == nil {
			b = &bucket{}
			byCategory[e.Category] = b
		}
		b.count++
		b.cost += e.Cost
	}

	stats.AverageCost = round2(total / float64(len(events)))
	stats.MostExpensive = &mostExpensive

	for category, b := range byCategory {
		stats.ByCategory = append(stats.ByCategory, model.CategoryCost{
			Category: category,
			Count:    b.count,
			Cost:     round2(b.cost),
		})
	}
	sort.Slice(stats.ByCategory, func(i, j int) bool {
		if stats.ByCategory[i].Cost != stats.ByCategory[j].Cost {
			return stats.ByCategory[i].Cost > stats.ByCategory[j].Cost
		}
		return stats.ByCategory[i].Category < stats.ByCategory[j].Category
	})

	return stats
}

func buildFuelStats(events []model.FuelEvent, consumption *float64) model.FuelStats {
	stats := model.FuelStats{Count: int64(len(events))}
	if len(events) == 0 {
		return stats
	}

	type bucket struct {
		count  int64
		liters float64
		cost   float64
	}
	byType := make(map[model.FuelType]*bucket)

	var liters, priceSum float64
	for _, e := range events {
		liters += e.Liters
		priceSum += e.PricePerLiter
		b := byType[e.FuelType]
		if b == nil {
			b = &bucket{}
			byType[e.FuelType] = b
		}
		b.count++
		b.liters += e.Liters
		b.cost += e.TotalCost
	}

	stats.TotalLiters = round2(liters)
	stats.AveragePricePerLiter = round2(priceSum / float64(len(events)))

	if consumption != nil {
		rounded := round2(*consumption)
		stats.AverageConsumption = &rounded
	}

	for fuelType, b := range byType {
		stats.ByFuelType = append(stats.ByFuelType, model.FuelTypeCost{
			FuelType: fuelType,
			Count:    b.count,
			Liters:   round2(b.liters),
			Cost:     round2(b.cost),
		})
	}
	sort.Slice(stats.ByFuelType, func(i, j int) bool {
		if stats.ByFuelType[i].Cost != stats.ByFuelType[j].Cost {
			return stats.ByFuelType[i].Cost > stats.ByFuelType[j].Cost
		}
		return stats.ByFuelType[i].FuelType < stats.ByFuelType[j].FuelType
	})

	return stats
}
