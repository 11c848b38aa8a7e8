package settle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDedupeRetainsOnePerSignature(t *testing.T) {
	t.Parallel()

	d := day(2024, time.May, 16)
	occs := []Occurrence{
		{Key: "a_1", Name: "통신", Direction: Expense, Date: d},
		{Key: "b", Name: "월급", Direction: Income, Date: d},
		{Key: "a_2", Name: "통신", Direction: Expense, Date: d},
	}
	out := Dedupe(occs)
	require.Len(t, out, 2)
	// The reverse scan keeps the last-encountered duplicate.
	require.Equal(t, "b", out[0].Key)
	require.Equal(t, "a_2", out[1].Key)
}

func TestDedupeDistinguishesDirectionAndDate(t *testing.T) {
	t.Parallel()

	d1 := day(2024, time.May, 16)
	d2 := day(2024, time.May, 17)
	occs := []Occurrence{
		{Key: "a", Name: "이체", Direction: Expense, Date: d1},
		{Key: "b", Name: "이체", Direction: Income, Date: d1},
		{Key: "c", Name: "이체", Direction: Expense, Date: d2},
	}
	require.Len(t, Dedupe(occs), 3)
}

func TestProjectRunningBalance(t *testing.T) {
	t.Parallel()

	d := day(2024, time.May, 16)
	occs := []Occurrence{
		{Key: "out", Name: "카드", Direction: Expense, Amount: 200000, Date: d},
		{Key: "in", Name: "환급", Direction: Income, Amount: 50000, Date: d},
	}
	out := Project(occs, 1000000)

	// Same date: income sorts before expense.
	require.Equal(t, "in", out[0].Key)
	require.Equal(t, int64(1050000), out[0].Balance)
	require.Equal(t, "out", out[1].Key)
	require.Equal(t, int64(850000), out[1].Balance)
}

func TestProjectExcludedContributesNothing(t *testing.T) {
	t.Parallel()

	d := day(2024, time.May, 16)
	occs := []Occurrence{
		{Key: "a", Name: "a", Direction: Expense, Amount: 30000, Date: d},
		{Key: "b", Name: "b", Direction: Expense, Amount: 99999, Date: d, Excluded: true},
		{Key: "c", Name: "c", Direction: Expense, Amount: 20000, Date: d.AddDate(0, 0, 1)},
	}
	out := Project(occs, 100000)

	require.Equal(t, int64(70000), out[0].Balance)
	// Excluded occurrence is annotated with the running value, unchanged.
	require.True(t, out[1].Excluded)
	require.Equal(t, int64(70000), out[1].Balance)
	require.Equal(t, int64(50000), out[2].Balance)
}

func TestProjectSortOrder(t *testing.T) {
	t.Parallel()

	d1 := day(2024, time.May, 16)
	d2 := day(2024, time.May, 17)
	occs := []Occurrence{
		{Key: "late", Date: d2, Direction: Expense},
		{Key: "excl", Date: d1, Direction: Income, Excluded: true},
		{Key: "exp", Date: d1, Direction: Expense},
		{Key: "inc", Date: d1, Direction: Income},
	}
	out := Project(occs, 0)

	keys := []string{out[0].Key, out[1].Key, out[2].Key, out[3].Key}
	require.Equal(t, []string{"inc", "exp", "excl", "late"}, keys)
}

func TestProjectIsDeterministic(t *testing.T) {
	t.Parallel()

	d := day(2024, time.May, 16)
	mk := func() []Occurrence {
		return []Occurrence{
			{Key: "a", Name: "a", Direction: Expense, Amount: 10, Date: d},
			{Key: "b", Name: "b", Direction: Expense, Amount: 20, Date: d},
			{Key: "c", Name: "c", Direction: Income, Amount: 30, Date: d},
		}
	}
	first := Project(mk(), 1000)
	second := Project(mk(), 1000)
	require.Equal(t, first, second)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	today := day(2024, time.May, 16)
	tomorrow := today.AddDate(0, 0, 1)
	occs := []Occurrence{
		{Key: "a", Direction: Income, Amount: 300000, Date: today},
		{Key: "b", Direction: Expense, Amount: 100000, Date: today},
		{Key: "c", Direction: Expense, Amount: 50000, Date: tomorrow},
		{Key: "d", Direction: Expense, Amount: 77777, Date: today, Excluded: true},
	}
	s := Summarize(occs, 1000000, today)

	require.Equal(t, int64(1000000), s.CurrentBalance)
	require.Equal(t, int64(1200000), s.TodayPredicted)
	require.Equal(t, int64(1150000), s.WindowPredicted)
	require.Equal(t, 1, s.ExcludedCount)
}

func TestApplyBlockAmounts(t *testing.T) {
	t.Parallel()

	today := day(2024, time.May, 16)
	amounts := map[string]int64{"2024-05-16": 120000}

	occs := []Occurrence{
		{Key: "sfa", Name: "SFA", IsBlock: true, Amount: 0, Date: today, Direction: Expense},
		{Key: "alias", Name: "물류", Amount: 1000, Date: today, Direction: Expense},
		{Key: "other", Name: "통신", Amount: 40000, Date: today, Direction: Expense},
		{Key: "missing", Name: "SFA", IsBlock: true, Amount: 5000, Date: today.AddDate(0, 0, 1), Direction: Expense},
	}
	ApplyBlockAmounts(occs, amounts, "SFA", []string{"물류"})

	require.Equal(t, int64(120000), occs[0].Amount)
	require.Equal(t, "SFA", occs[1].Name) // alias renamed to the canonical label
	require.Equal(t, int64(120000), occs[1].Amount)
	require.True(t, occs[1].IsBlock)
	require.Equal(t, int64(40000), occs[2].Amount) // untouched
	require.Equal(t, int64(5000), occs[3].Amount)  // no record for that date
}
