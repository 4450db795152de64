// Package occupancy keeps a property's occupancy-period list consistent
// as individual periods are edited, so the twelve months of the reporting
// year are always accounted for without the user balancing totals by hand.
package occupancy

import "github.com/casafile/api/internal/models"

// statusOrder is the search order used when synthesizing a trailing
// period: the first status not already used on the property wins.
var statusOrder = []models.OccupancyStatus{
	models.OccupancyLongTermRental,
	models.OccupancyShortTermRental,
	models.OccupancyOwnerOccupied,
	models.OccupancyVacant,
}

// Edit is one user change to a single occupancy period. Nil fields are
// left untouched.
type Edit struct {
	PeriodIndex int
	Status      *models.OccupancyStatus
	Months      *int
}

// TotalMonths sums the months of the given periods.
func TotalMonths(periods []models.OccupancyPeriod) int {
	total := 0
	for _, p := range periods {
		total += p.Months
	}
	return total
}

// AvailableStatuses lists the statuses selectable for the period at the
// given index: everything not used by another period on the property,
// which always includes the period's own current status. An index at or
// past the end of the list asks for statuses available to a new period.
func AvailableStatuses(periods []models.OccupancyPeriod, periodIndex int) []models.OccupancyStatus {
	used := make(map[models.OccupancyStatus]bool, len(periods))
	for i, p := range periods {
		if i != periodIndex {
			used[p.Status] = true
		}
	}

	var out []models.OccupancyStatus
	for _, status := range statusOrder {
		if !used[status] {
			out = append(out, status)
		}
	}
	return out
}

// Rebalance applies the edit and re-derives the period list so the year
// stays covered:
//
//  1. If the periods before the last already reach 12 months, the last
//     period is dropped.
//  2. Otherwise, if the grand total is still under 12 and the last
//     period's months is nonzero, a new trailing period is appended with
//     the first unused status and the remaining months.
//  3. Anything the year can no longer show is truncated: a period fully
//     shadowed by the 12 months before it is dropped, and a period
//     straddling the year boundary is cut down to the remainder. The
//     total therefore never exceeds 12 after an edit.
//
// The input slice is not modified.
func Rebalance(periods []models.OccupancyPeriod, edit Edit) []models.OccupancyPeriod {
	out := make([]models.OccupancyPeriod, len(periods))
	copy(out, periods)

	if len(out) == 0 {
		out = []models.OccupancyPeriod{{Status: models.OccupancyOwnerOccupied, Months: 12}}
	}

	if edit.PeriodIndex < 0 || edit.PeriodIndex >= len(out) {
		return out
	}
	if edit.Status != nil {
		out[edit.PeriodIndex].Status = *edit.Status
	}
	if edit.Months != nil {
		out[edit.PeriodIndex].Months = *edit.Months
	}

	if TotalMonths(out[:len(out)-1]) >= 12 {
		out = out[:len(out)-1]
	} else if TotalMonths(out) < 12 && out[len(out)-1].Months > 0 {
		if available := AvailableStatuses(out, len(out)); len(available) > 0 {
			out = append(out, models.OccupancyPeriod{
				Status: available[0],
				Months: 12 - TotalMonths(out),
			})
		}
	}

	for i := range out {
		used := TotalMonths(out[:i])
		if used >= 12 {
			out = out[:i]
			break
		}
		if used+out[i].Months > 12 {
			out[i].Months = 12 - used
		}
	}

	return out
}
