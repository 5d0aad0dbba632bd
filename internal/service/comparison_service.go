package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"history-service/internal/model"
)

const minCompareVehicles = 2

// ComparisonService ranks a caller's vehicles by cost per distance over a
// shared window.
type ComparisonService struct {
	stats       *StatsService
	vehicles    VehicleSource
	maxVehicles int
	now         func() time.Time
}

func NewComparisonService(stats *StatsService, vehicles VehicleSource, maxVehicles int) *ComparisonService {
	return &ComparisonService{
		stats:       stats,
		vehicles:    vehicles,
		maxVehicles: maxVehicles,
		now:         time.Now,
	}
}

func (s *ComparisonService) Compare(ctx context.Context, principal model.Principal, req model.ComparisonRequest) (*model.VehicleComparison, error) {
	// Cardinality and duplicates are rejected before any store access.
	if len(req.VehicleIDs) < minCompareVehicles {
		return nil, fmt.Errorf("%w: at least %d vehicle ids are required", ErrInvalidArgument, minCompareVehicles)
	}
	if len(req.VehicleIDs) > s.maxVehicles {
		return nil, fmt.Errorf("%w: at most %d vehicle ids are allowed", ErrInvalidArgument, s.maxVehicles)
	}
	seen := make(map[int64]bool, len(req.VehicleIDs))
	for _, id := range req.VehicleIDs {
		if seen[id] {
			return nil, fmt.Errorf("%w: vehicle id %d appears more than once", ErrInvalidArgument, id)
		}
		seen[id] = true
	}

	statsReq := model.StatsRequest{StartDate: req.StartDate, EndDate: req.EndDate, Period: req.Period}
	window, err := statsReq.ResolveWindow(s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, err)
	}

	owned, err := s.vehicles.Get(ctx, principal.UserID, req.VehicleIDs)
	if err != nil {
		return nil, err
	}
	// Any foreign id fails the whole request; the caller named the ids, so
	// "forbidden" does not leak anything "not found" would hide.
	if len(owned) != len(req.VehicleIDs) {
		return nil, fmt.Errorf("%w: one or more vehicles do not belong to the caller", ErrForbidden)
	}
	names := make(map[int64]string, len(owned))
	for _, v := range owned {
		names[v.ID] = v.Name
	}

	rows := make([]model.VehicleComparisonRow, len(req.VehicleIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, vehicleID := range req.VehicleIDs {
		g.Go(func() error {
			id := vehicleID
			stats, err := s.stats.computeForScope(gctx, principal, &id, window)
			if err != nil {
				return err
			}
			rows[i] = model.VehicleComparisonRow{
				VehicleID:          id,
				Name:               names[id],
				DistanceTraveled:   stats.Period.DistanceTraveled,
				TotalCost:          stats.TotalCosts.Total,
				CostPerDistance:    stats.CostPerDistance.Total,
				MaintenanceCost:    stats.TotalCosts.Maintenance,
				FuelCost:           stats.TotalCosts.Fuel,
				AverageConsumption: stats.FuelStats.AverageConsumption,
				ServicesCount:      stats.MaintenanceStats.Count,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Stable sort keeps ties in input order, which makes ranks deterministic.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CostPerDistance < rows[j].CostPerDistance
	})
	for i := range rows {
		rows[i].EfficiencyRank = i + 1
	}

	summary := model.ComparisonSummary{
		MostEconomical: model.ComparisonHighlight{
			VehicleID: rows[0].VehicleID,
			Name:      rows[0].Name,
			Value:     rows[0].CostPerDistance,
		},
		MostExpensive: model.ComparisonHighlight{
			VehicleID: rows[len(rows)-1].VehicleID,
			Name:      rows[len(rows)-1].Name,
			Value:     rows[len(rows)-1].CostPerDistance,
		},
	}
	for _, row := range rows {
		if row.AverageConsumption == nil {
			continue
		}
		if summary.BestConsumption == nil || *row.AverageConsumption > summary.BestConsumption.Value {
			summary.BestConsumption = &model.ComparisonHighlight{
				VehicleID: row.VehicleID,
				Name:      row.Name,
				Value:     *row.AverageConsumption,
			}
		}
	}

	return &model.VehicleComparison{
		Period:   window,
		Vehicles: rows,
		Summary:  summary,
	}, nil
}
