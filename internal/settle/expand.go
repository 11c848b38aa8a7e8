package settle

import "time"

const (
	minShift = -1
	maxShift = 29
)

func clampShift(n int) int {
	if n < minShift {
		return minShift
	}
	if n > maxShift {
		return maxShift
	}
	return n
}

func clampOffset(n int) int {
	if n < 0 {
		return 0
	}
	if n > maxShift {
		return maxShift
	}
	return n
}

// Expand produces the dated occurrences for one item inside the projection
// window. today must be midnight-aligned. Recurring and one-off cycles scan
// one day back so a just-missed occurrence is still represented for
// carry-forward; daily items cover [today, today+days) exactly. Items with
// an unknown cycle expand to nothing.
func Expand(item Item, today time.Time, days int, states map[string]State) []Occurrence {
	if item.Cycle == CycleNone {
		st := states[item.ID]
		shift := clampShift(st.DateShift)
		return []Occurrence{{
			Key:            item.ID,
			ItemID:         item.ID,
			Name:           item.Name,
			Amount:         item.Amount,
			Direction:      item.Direction,
			Date:           today.AddDate(0, 0, shift),
			Cycle:          CycleNone,
			Excluded:       st.Excluded,
			Status:         st.Status,
			ManualOverride: st.ManualOverride,
			IsBlock:        item.IsBlock,
			IsPending:      true,
		}}
	}

	lookBack := 0
	switch item.Cycle {
	case CycleWeekly, CycleMonthly, CycleOnce:
		lookBack = 1
	case CycleDaily:
	default:
		return nil
	}

	var out []Occurrence
	for i := -lookBack; i < days; i++ {
		d := today.AddDate(0, 0, i)
		if !cycleMatches(item, d) {
			continue
		}

		key := StateKey(item.ID, d)
		st := states[key]
		shift := clampShift(st.DateShift)
		// The per-occurrence shift moves the visible date but stays
		// bounded inside the window.
		adj := clampOffset(i + shift)

		out = append(out, Occurrence{
			Key:            key,
			ItemID:         item.ID,
			Name:           item.Name,
			Amount:         item.Amount,
			Direction:      item.Direction,
			Date:           today.AddDate(0, 0, adj),
			Cycle:          item.Cycle,
			Excluded:       st.Excluded,
			Status:         st.Status,
			ManualOverride: st.ManualOverride,
			IsBlock:        item.IsBlock,
		})
	}
	return out
}

func cycleMatches(item Item, d time.Time) bool {
	switch item.Cycle {
	case CycleOnce:
		return item.Date != "" && ISO(d) == item.Date
	case CycleDaily:
		return true
	case CycleWeekly:
		return int(d.Weekday()) == item.DayOfWeek
	case CycleMonthly:
		// Months without the configured day anchor to their last day
		// instead of skipping the month.
		dom := item.DayOfMonth
		if last := daysInMonth(d); dom > last {
			dom = last
		}
		return d.Day() == dom
	}
	return false
}

func daysInMonth(d time.Time) int {
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, d.Location()).Day()
}
