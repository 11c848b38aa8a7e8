package settle

import (
	"sort"
	"time"
)

// Project sorts occurrences (date ascending, excluded last, income before
// expense) and annotates each with the running balance, starting from the
// current ledger balance. Excluded occurrences do not perturb the balance but
// still carry the value at their position for display.
func Project(occs []Occurrence, currentBalance int64) []Occurrence {
	sort.SliceStable(occs, func(i, j int) bool {
		a, b := occs[i], occs[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Excluded != b.Excluded {
			return !a.Excluded
		}
		if a.Direction != b.Direction {
			return a.Direction == Income
		}
		return false
	})

	bal := currentBalance
	for i := range occs {
		if !occs[i].Excluded {
			bal += signed(occs[i])
		}
		occs[i].Balance = bal
	}
	return occs
}

func signed(o Occurrence) int64 {
	if o.Direction == Income {
		return o.Amount
	}
	return -o.Amount
}

// Summary aggregates today's and the full window's predicted balances.
type Summary struct {
	CurrentBalance  int64
	TodayPredicted  int64
	WindowPredicted int64
	ExcludedCount   int
}

// Summarize computes the view summary over projected occurrences.
func Summarize(occs []Occurrence, currentBalance int64, today time.Time) Summary {
	s := Summary{CurrentBalance: currentBalance}
	todayISO := ISO(today)
	var todayIn, todayOut, totalIn, totalOut int64
	for _, o := range occs {
		if o.Excluded {
			s.ExcludedCount++
			continue
		}
		if o.Direction == Income {
			totalIn += o.Amount
		} else {
			totalOut += o.Amount
		}
		if ISO(o.Date) == todayISO {
			if o.Direction == Income {
				todayIn += o.Amount
			} else {
				todayOut += o.Amount
			}
		}
	}
	s.TodayPredicted = currentBalance + todayIn - todayOut
	s.WindowPredicted = currentBalance + totalIn - totalOut
	return s
}
