package settle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandMonthlyClampsShortMonth(t *testing.T) {
	t.Parallel()

	item := Item{ID: "rent", Name: "임대료", Amount: 500000, Direction: Expense,
		Cycle: CycleMonthly, DayOfMonth: 31}

	// April has 30 days; day 31 must anchor to the 30th, not skip the month.
	occs := Expand(item, day(2024, time.April, 10), 30, nil)
	require.Len(t, occs, 1)
	require.Equal(t, "rent_2024-04-30", occs[0].Key)
	require.Equal(t, "2024-04-30", ISO(occs[0].Date))

	// Leap February anchors to the 29th. The look-back day is Jan 31, a real
	// day-31 due date, so it is carried forward alongside the February one.
	occs = Expand(item, day(2024, time.February, 1), 30, nil)
	require.Len(t, occs, 2)
	require.Equal(t, "rent_2024-01-31", occs[0].Key)
	require.Equal(t, "2024-02-01", ISO(occs[0].Date)) // pulled up to today
	require.Equal(t, "rent_2024-02-29", occs[1].Key)
	require.Equal(t, "2024-02-29", ISO(occs[1].Date))
}

func TestExpandMonthlyKeyUsesMatchedDate(t *testing.T) {
	t.Parallel()

	item := Item{ID: "ins", Name: "보험", Amount: 30000, Direction: Expense,
		Cycle: CycleMonthly, DayOfMonth: 15}
	today := day(2024, time.May, 10)

	occs := Expand(item, today, 30, nil)
	require.Len(t, occs, 1) // Jun 15 is past the scan's end
	require.Equal(t, "ins_2024-05-15", occs[0].Key)
	require.Equal(t, "2024-05-15", ISO(occs[0].Date))
}

func TestExpandMonthlyLookBackClampsToToday(t *testing.T) {
	t.Parallel()

	// The due day was yesterday; the look-back day still represents it, with
	// the displayed date pulled up to today.
	item := Item{ID: "a", Name: "통신", Amount: 40000, Direction: Expense,
		Cycle: CycleMonthly, DayOfMonth: 15}
	today := day(2024, time.May, 16)

	occs := Expand(item, today, 30, nil)
	require.Len(t, occs, 1)
	require.Equal(t, "a_2024-05-15", occs[0].Key)
	require.Equal(t, "2024-05-16", ISO(occs[0].Date)) // not yesterday
}

func TestExpandDailyCoversWindowExactly(t *testing.T) {
	t.Parallel()

	item := Item{ID: "d", Name: "커피", Amount: 4500, Direction: Expense, Cycle: CycleDaily}
	today := day(2024, time.May, 1)

	occs := Expand(item, today, 30, nil)
	require.Len(t, occs, 30)
	require.Equal(t, "2024-05-01", ISO(occs[0].Date))
	require.Equal(t, "2024-05-30", ISO(occs[29].Date))
}

func TestExpandWeekly(t *testing.T) {
	t.Parallel()

	// 2024-05-15 is a Wednesday (weekday 3).
	item := Item{ID: "w", Name: "주급", Amount: 100000, Direction: Income,
		Cycle: CycleWeekly, DayOfWeek: 3}
	today := day(2024, time.May, 15)

	occs := Expand(item, today, 30, nil)
	require.Len(t, occs, 5)
	require.Equal(t, "2024-05-15", ISO(occs[0].Date))
	require.Equal(t, "2024-06-12", ISO(occs[4].Date))
}

func TestExpandOnceWithinLookBack(t *testing.T) {
	t.Parallel()

	item := Item{ID: "o", Name: "단건", Amount: 9000, Direction: Expense,
		Cycle: CycleOnce, Date: "2024-05-14"}
	today := day(2024, time.May, 15)

	occs := Expand(item, today, 30, nil)
	require.Len(t, occs, 1)
	require.Equal(t, "o_2024-05-14", occs[0].Key)
	require.Equal(t, "2024-05-15", ISO(occs[0].Date)) // clamped forward

	// Outside the scan entirely.
	item.Date = "2024-05-13"
	require.Empty(t, Expand(item, today, 30, nil))

	// No date configured: nothing to anchor.
	item.Date = ""
	require.Empty(t, Expand(item, today, 30, nil))
}

func TestExpandNoneIsSinglePendingOccurrence(t *testing.T) {
	t.Parallel()

	item := Item{ID: "n", Name: "이체", Amount: 70000, Direction: Expense, Cycle: CycleNone}
	today := day(2024, time.May, 15)

	occs := Expand(item, today, 30, nil)
	require.Len(t, occs, 1)
	require.Equal(t, "n", occs[0].Key)
	require.True(t, occs[0].IsPending)
	require.Equal(t, "2024-05-15", ISO(occs[0].Date))

	states := map[string]State{"n": {Key: "n", DateShift: 5}}
	occs = Expand(item, today, 30, states)
	require.Equal(t, "2024-05-20", ISO(occs[0].Date))

	// Shift is clamped to [-1, 29].
	states["n"] = State{Key: "n", DateShift: -10}
	occs = Expand(item, today, 30, states)
	require.Equal(t, "2024-05-14", ISO(occs[0].Date))

	states["n"] = State{Key: "n", DateShift: 99}
	occs = Expand(item, today, 30, states)
	require.Equal(t, "2024-06-13", ISO(occs[0].Date))
}

func TestExpandRecurringShiftMovesDisplayedDate(t *testing.T) {
	t.Parallel()

	item := Item{ID: "m", Name: "렌탈", Amount: 25000, Direction: Expense,
		Cycle: CycleMonthly, DayOfMonth: 20}
	today := day(2024, time.May, 15)

	states := map[string]State{
		"m_2024-05-20": {Key: "m_2024-05-20", DateShift: 3},
	}
	occs := Expand(item, today, 30, states)
	require.Len(t, occs, 1)
	require.Equal(t, "m_2024-05-20", occs[0].Key) // key stays on the matched date
	require.Equal(t, "2024-05-23", ISO(occs[0].Date))
}

func TestExpandUnknownCycleProducesNothing(t *testing.T) {
	t.Parallel()

	item := Item{ID: "x", Name: "??", Cycle: Cycle("quarterly")}
	require.Empty(t, Expand(item, day(2024, time.May, 15), 30, nil))
	require.False(t, KnownCycle(Cycle("quarterly")))
}

func TestExpandOverlaysStateFlags(t *testing.T) {
	t.Parallel()

	item := Item{ID: "s", Name: "구독", Amount: 15000, Direction: Expense,
		Cycle: CycleMonthly, DayOfMonth: 16}
	today := day(2024, time.May, 15)

	states := map[string]State{
		"s_2024-05-16": {Key: "s_2024-05-16", Excluded: true, Status: StatusConfirmed, ManualOverride: true},
	}
	occs := Expand(item, today, 30, states)
	require.Len(t, occs, 1)
	require.True(t, occs[0].Excluded)
	require.Equal(t, StatusConfirmed, occs[0].Status)
	require.True(t, occs[0].ManualOverride)
}
