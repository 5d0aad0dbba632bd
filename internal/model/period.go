package model

import (
	"fmt"
	"time"
)

type PeriodPreset string

const (
	PeriodLastMonth   PeriodPreset = "last_month"
	PeriodLast3Months PeriodPreset = "last_3_months"
	PeriodLast6Months PeriodPreset = "last_6_months"
	PeriodLastYear    PeriodPreset = "last_year"
	PeriodAllTime     PeriodPreset = "all_time"
)

func (p PeriodPreset) Valid() bool {
	switch p {
	case PeriodLastMonth, PeriodLast3Months, PeriodLast6Months, PeriodLastYear, PeriodAllTime:
		return true
	}
	return false
}

// StatsRequest scopes a statistics computation. Explicit dates win over the
// preset; with neither, the window defaults to last_6_months.
type StatsRequest struct {
	VehicleID *int64       `json:"vehicle_id,omitempty"`
	StartDate *time.Time   `json:"start_date,omitempty"`
	EndDate   *time.Time   `json:"end_date,omitempty"`
	Period    PeriodPreset `json:"period,omitempty"`
}

// ResolveWindow turns a stats request into a concrete date range. all_time
// yields a zero From; callers narrow it to the oldest record on hand.
func (r StatsRequest) ResolveWindow(now time.Time) (DateRange, error) {
	if r.StartDate != nil || r.EndDate != nil {
		if r.StartDate == nil || r.EndDate == nil {
			return DateRange{}, fmt.Errorf("start_date and end_date must be supplied together")
		}
		if r.StartDate.After(*r.EndDate) {
			return DateRange{}, fmt.Errorf("start_date must not be after end_date")
		}
		return DateRange{From: *r.StartDate, To: *r.EndDate}, nil
	}

	preset := r.Period
	if preset == "" {
		preset = PeriodLast6Months
	}
	if !preset.Valid() {
		return DateRange{}, fmt.Errorf("period %q is not a known preset", preset)
	}

	switch preset {
	case PeriodLastMonth:
		return DateRange{From: now.AddDate(0, -1, 0), To: now}, nil
	case PeriodLast3Months:
		return DateRange{From: now.AddDate(0, -3, 0), To: now}, nil
	case PeriodLast6Months:
		return DateRange{From: now.AddDate(0, -6, 0), To: now}, nil
	case PeriodLastYear:
		return DateRange{From: now.AddDate(-1, 0, 0), To: now}, nil
	default:
		return DateRange{To: now}, nil
	}
}
