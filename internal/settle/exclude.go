package settle

import "time"

// Auto-exclusion reasons surfaced on occurrences.
const (
	ReasonExpenseConfirmed  = "expense-confirmed"
	ReasonPastIncomeDropped = "past-income-dropped"
)

// ApplyExclusions enforces the two-tier auto-exclusion rule:
//
//   - a confirmed expense is already reflected in the ledger balance, so it
//     is excluded to prevent double counting;
//   - a past income occurrence is assumed realized and dropped;
//   - a past expense is never dropped — its displayed date rolls forward to
//     today so an unpaid bill stays due.
//
// Occurrences with ManualOverride set are never touched.
func ApplyExclusions(occs []Occurrence, today time.Time) {
	for i := range occs {
		o := &occs[i]
		if o.ManualOverride {
			continue
		}

		if o.Status == StatusConfirmed && o.Direction == Expense && !o.Excluded {
			o.Excluded = true
			o.ExcludeReason = ReasonExpenseConfirmed
		}

		if o.Date.Before(today) && !o.Excluded {
			if o.Direction == Income {
				o.Excluded = true
				o.ExcludeReason = ReasonPastIncomeDropped
			} else {
				o.Date = today
			}
		}
	}
}
