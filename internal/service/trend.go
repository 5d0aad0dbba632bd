package service

import (
	"math"
	"time"

	"history-service/internal/model"
)

// trendMinimumSpan is the shortest window a trend is computed for; halves
// of anything shorter are too noisy to classify.
const trendMinimumSpan = 60 * 24 * time.Hour

// trendDeadbandPercent is the change below which spend counts as stable.
const trendDeadbandPercent = 10.0

type CostSample struct {
	Date time.Time
	Cost float64
}

// ComputeTrend splits the window at its midpoint, sums spend in each half
// and classifies the change. Returns nil for windows under 60 days. A zero
// first half is treated as no change rather than an infinite increase.
func ComputeTrend(start, end time.Time, samples []CostSample) *model.TrendInfo {
	if end.Sub(start) < trendMinimumSpan {
		return nil
	}

	midpoint := start.Add(end.Sub(start) / 2)

	var firstHalf, secondHalf float64
	for _, s := range samples {
		if s.Date.Before(start) || s.Date.After(end) {
			continue
		}
		if s.Date.Before(midpoint) {
			firstHalf += s.Cost
		} else {
			secondHalf += s.Cost
		}
	}

	change := 0.0
	if firstHalf > 0 {
		change = (secondHalf - firstHalf) / firstHalf * 100
	}

	direction := model.TrendStable
	if change > trendDeadbandPercent {
		direction = model.TrendIncreasing
	} else if change < -trendDeadbandPercent {
		direction = model.TrendDecreasing
	}

	return &model.TrendInfo{
		Direction:      direction,
		FirstHalfCost:  round2(firstHalf),
		SecondHalfCost: round2(secondHalf),
		ChangePercent:  round2(change),
	}
}

// ComputeProjections extrapolates spend from the period's monthly average.
func ComputeProjections(totalCost float64, days int) model.Projections {
	if days <= 0 || totalCost <= 0 {
		return model.Projections{}
	}
	monthly := totalCost / (float64(days) / 30)
	return model.Projections{
		MonthlyAverage: round2(monthly),
		Next3Months:    round2(monthly * 3),
		Next6Months:    round2(monthly * 6),
	}
}

// periodDays counts whole days in a window, never less than one.
func periodDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func clamp(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
