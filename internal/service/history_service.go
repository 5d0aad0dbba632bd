package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"history-service/internal/model"
)

// HistoryService merges the maintenance and fuel streams into one ordered,
// paginated timeline.
type HistoryService struct {
	maintenance MaintenanceSource
	fuel        FuelSource
	vehicles    VehicleSource
	defaultPage int
	maxPage     int
}

func NewHistoryService(maintenance MaintenanceSource, fuel FuelSource, vehicles VehicleSource, defaultPage, maxPage int) *HistoryService {
	return &HistoryService{
		maintenance: maintenance,
		fuel:        fuel,
		vehicles:    vehicles,
		defaultPage: defaultPage,
		maxPage:     maxPage,
	}
}

func (s *HistoryService) ListTimeline(ctx context.Context, principal model.Principal, filter model.HistoryFilter) (*model.TimelinePage, error) {
	filter = filter.Normalized(s.defaultPage)
	if err := filter.Validate(s.maxPage); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, err)
	}

	if filter.VehicleID != nil {
		owned, err := s.vehicles.VerifyOwnership(ctx, principal.UserID, []int64{*filter.VehicleID})
		if err != nil {
			return nil, err
		}
		// A vehicle the caller does not own is indistinguishable from one
		// that does not exist.
		if len(owned) == 0 {
			return nil, fmt.Errorf("%w: vehicle", ErrNotFound)
		}
	}

	order := filter.Order()
	// The top offset+limit rows of the union are always contained in the
	// top offset+limit rows of each source under the same ordering, so
	// merging those prefixes is equivalent to sorting the full union.
	fetchLimit := filter.Offset + filter.Limit

	var (
		maintEvents []model.MaintenanceEvent
		fuelEvents  []model.FuelEvent
		maintTotal  int64
		fuelTotal   int64
	)

	g, gctx := errgroup.WithContext(ctx)
	if filter.IncludesMaintenance() {
		preds := filter.MaintenancePredicates()
		g.Go(func() error {
			events, err := s.maintenance.Find(gctx, principal.UserID, preds, order, fetchLimit)
			maintEvents = events
			return err
		})
		g.Go(func() error {
			total, err := s.maintenance.Count(gctx, principal.UserID, preds)
			maintTotal = total
			return err
		})
	}
	if filter.IncludesFuel() {
		preds := filter.FuelPredicates()
		g.Go(func() error {
			events, err := s.fuel.Find(gctx, principal.UserID, preds, order, fetchLimit)
			fuelEvents = events
			return err
		})
		g.Go(func() error {
			total, err := s.fuel.Count(gctx, principal.UserID, preds)
			fuelTotal = total
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]model.TimelineItem, 0, len(maintEvents)+len(fuelEvents))
	for _, e := range maintEvents {
		items = append(items, model.NewMaintenanceItem(e))
	}
	for _, e := range fuelEvents {
		items = append(items, model.NewFuelItem(e))
	}
	sortTimeline(items, order)

	items = pageWindow(items, filter.Offset, filter.Limit)

	if err := s.attachConsumption(ctx, principal, items); err != nil {
		return nil, err
	}

	total := maintTotal + fuelTotal
	return &model.TimelinePage{
		Items: items,
		Pagination: model.Pagination{
			Total:   total,
			Limit:   filter.Limit,
			Offset:  filter.Offset,
			HasMore: int64(filter.Offset+filter.Limit) < total,
		},
		FiltersApplied: filter,
	}, nil
}

// attachConsumption resolves fill-to-fill consumption for the fuel items on
// the page from each vehicle's complete full-tank chain; the chain ignores
// the page's filters because a fill's predecessor may lie outside them.
func (s *HistoryService) attachConsumption(ctx context.Context, principal model.Principal, items []model.TimelineItem) error {
	vehicleIDs := make(map[int64]bool)
	for _, item := range items {
		if item.Fuel != nil && item.Fuel.IsFullTank {
			vehicleIDs[item.VehicleID] = true
		}
	}
	if len(vehicleIDs) == 0 {
		return nil
	}

	byEvent := make(map[int64]float64)
	for vehicleID := range vehicleIDs {
		chain, err := s.fuel.FullTankChain(ctx, principal.UserID, vehicleID)
		if err != nil {
			return err
		}
		for id, value := range ConsumptionByEvent(chain) {
			byEvent[id] = value
		}
	}

	for i := range items {
		if items[i].Fuel == nil {
			continue
		}
		if value, ok := byEvent[items[i].ID]; ok {
			v := round2(value)
			items[i].Consumption = &v
		}
	}
	return nil
}

// sortTimeline orders the merged union: shared key, direction, then record
// id and type for a deterministic total order. NULL odometers sort as in
// Postgres (last ascending, first descending).
func sortTimeline(items []model.TimelineItem, order model.OrderKey) {
	sort.SliceStable(items, func(i, j int) bool {
		c := compareTimelineKey(items[i], items[j], order.Key)
		if c != 0 {
			if order.Desc {
				return c > 0
			}
			return c < 0
		}
		if items[i].ID != items[j].ID {
			return items[i].ID < items[j].ID
		}
		return items[i].Type < items[j].Type
	})
}

func compareTimelineKey(a, b model.TimelineItem, key model.SortKey) int {
	switch key {
	case model.SortByKm:
		return compareInt64(odometerKey(a), odometerKey(b))
	case model.SortByCost:
		return compareFloat64(a.Cost, b.Cost)
	default:
		if a.Date.Before(b.Date) {
			return -1
		}
		if a.Date.After(b.Date) {
			return 1
		}
		return 0
	}
}

func odometerKey(item model.TimelineItem) int64 {
	if item.Odometer == nil {
		return math.MaxInt64
	}
	return *item.Odometer
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func pageWindow(items []model.TimelineItem, offset, limit int) []model.TimelineItem {
	if offset >= len(items) {
		return []model.TimelineItem{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
