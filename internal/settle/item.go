package settle

import "time"

// Cycle is the recurrence kind of a settle item.
type Cycle string

const (
	CycleNone    Cycle = "none"
	CycleOnce    Cycle = "once"
	CycleDaily   Cycle = "daily"
	CycleWeekly  Cycle = "weekly"
	CycleMonthly Cycle = "monthly"
)

// KnownCycle reports whether c is one of the five recurrence kinds.
// Items with any other value expand to nothing; callers should log them
// as a data-integrity signal rather than fail.
func KnownCycle(c Cycle) bool {
	switch c {
	case CycleNone, CycleOnce, CycleDaily, CycleWeekly, CycleMonthly:
		return true
	}
	return false
}

// Direction of money movement relative to the accounts.
type Direction string

const (
	Income  Direction = "income"
	Expense Direction = "expense"
)

// Status of a single occurrence.
type Status string

const (
	StatusNone      Status = ""
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

// Item is a recurring or one-off settlement obligation.
// Amount is in minor currency units and is only ever changed through the
// pending-correction approval path, never by any automated matcher.
type Item struct {
	ID         string
	Name       string
	Amount     int64
	Direction  Direction
	Cycle      Cycle
	DayOfMonth int    // 1-31; months without that day clamp to their last day
	DayOfWeek  int    // 0=Sunday .. 6=Saturday
	Date       string // "2006-01-02", only meaningful when Cycle is once
	Source     string // manual / auto / ai
	IsBlock    bool   // amount comes from the daily block feed, never corrected
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// State is the mutable per-occurrence overlay. The key encodes the calendar
// date for recurring items (itemID_2006-01-02) so manual adjustments survive
// day rollovers; for cycle=none items the key is the bare item ID.
type State struct {
	Key            string
	Excluded       bool
	DateShift      int // clamped to [-1, 29]
	Status         Status
	ManualOverride bool // once true, automation must not touch this occurrence
	UpdatedAt      time.Time
}

// Occurrence is one dated instance of an item produced by expansion.
type Occurrence struct {
	Key            string
	ItemID         string
	Name           string
	Amount         int64
	Direction      Direction
	Date           time.Time
	Cycle          Cycle
	Excluded       bool
	Status         Status
	ManualOverride bool
	IsBlock        bool
	IsPending      bool // cycle=none, a one-shot awaiting resolution
	ExcludeReason  string
	Balance        int64 // running balance at this position after projection
}

const isoLayout = "2006-01-02"

// ISO formats t as a calendar date string.
func ISO(t time.Time) string { return t.Format(isoLayout) }

// ValidISO reports whether s is a well-formed calendar date. A once item
// with a malformed date can never match any scan day; callers should log it
// as a data-integrity signal rather than fail.
func ValidISO(s string) bool {
	_, err := time.Parse(isoLayout, s)
	return err == nil
}

// Midnight truncates t to the start of its day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// StateKey builds the overlay key for one occurrence of a recurring item.
func StateKey(itemID string, date time.Time) string {
	return itemID + "_" + ISO(date)
}
