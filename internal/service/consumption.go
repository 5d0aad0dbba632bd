package service

import (
	"sort"

	"history-service/internal/model"
)

// ConsumptionByEvent derives fill-to-fill consumption (distance per liter)
// for a single vehicle's full-tank fills. Only consecutive full tanks anchor
// a value: the fuel burned between two full fills equals exactly the volume
// of the second one, which does not hold across partial fills. Fills with a
// non-positive odometer delta or volume are skipped. Keys are record ids.
func ConsumptionByEvent(fullTanks []model.FuelEvent) map[int64]float64 {
	if len(fullTanks) < 2 {
		return nil
	}

	chain := make([]model.FuelEvent, len(fullTanks))
	copy(chain, fullTanks)
	sort.SliceStable(chain, func(i, j int) bool {
		if !chain[i].Date.Equal(chain[j].Date) {
			return chain[i].Date.Before(chain[j].Date)
		}
		return chain[i].ID < chain[j].ID
	})

	result := make(map[int64]float64)
	for i := 1; i < len(chain); i++ {
		prev, curr := chain[i-1], chain[i]
		if !curr.IsFullTank || !prev.IsFullTank {
			continue
		}
		distance := float64(curr.Odometer - prev.Odometer)
		if distance <= 0 || curr.Liters <= 0 {
			continue
		}
		result[curr.ID] = distance / curr.Liters
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// AverageConsumption is the mean of per-event values inside the plausible
// range (0, plausibleMax). Returns nil when nothing survives the filter.
func AverageConsumption(byEvent map[int64]float64, plausibleMax float64) *float64 {
	var sum float64
	var n int
	for _, v := range byEvent {
		if v <= 0 || v >= plausibleMax {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}
