package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/junhokim/banksettle/internal/database/repository"
	"github.com/junhokim/banksettle/internal/settle"
)

func (f fixture) confirmer() *ConfirmService {
	return &ConfirmService{
		Items:    f.items,
		States:   f.states,
		MatchLog: f.matchLog,
		Locks:    f.locks,
		Loc:      time.UTC,
	}
}

func todayKey(itemID string) string {
	return settle.StateKey(itemID, settle.Midnight(time.Now(), time.UTC))
}

// monthlyDueToday seeds a monthly item due on today's day-of-month.
func monthlyDueToday(t *testing.T, f fixture, id, name string, amount int64) {
	t.Helper()
	require.NoError(t, f.items.Upsert(context.Background(), repository.SettleItem{
		ID: id, Name: name, Amount: amount, Direction: "expense",
		Cycle: "monthly", DayOfMonth: time.Now().UTC().Day(),
	}))
}

func TestAutoConfirmMatchesAndLogs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	monthlyDueToday(t, f, "chungho", "청호나이스", 30000)

	svc := f.confirmer()
	require.NoError(t, svc.AutoConfirm(ctx, "청호렌탈", 30000))

	st, err := f.states.Get(ctx, todayKey("chungho"))
	require.NoError(t, err)
	require.NotNil(t, st)
	require.Equal(t, "confirmed", st.Status)
	require.False(t, st.ManualOverride)

	logs, err := f.matchLog.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, "청호렌탈", logs[0].Counterparty)
	require.Equal(t, "청호나이스", logs[0].ItemName)
	require.Equal(t, int64(30000), logs[0].TxAmount)
	require.Equal(t, int64(30000), logs[0].SettleAmount)
	require.True(t, logs[0].IsAuto)
}

func TestAutoConfirmIsIdempotentPerDay(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	monthlyDueToday(t, f, "kt", "kt7710", 45000)

	svc := f.confirmer()
	require.NoError(t, svc.AutoConfirm(ctx, "KT7710872402", 45000))
	require.NoError(t, svc.AutoConfirm(ctx, "KT7710872402", 45000))

	n, err := f.matchLog.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n) // second pass sees confirmed state, no new log
}

func TestAutoConfirmPreservesPriorStateFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	monthlyDueToday(t, f, "ins", "보험료", 80000)

	key := todayKey("ins")
	require.NoError(t, f.states.Upsert(ctx, repository.OccurrenceState{
		Key: key, Excluded: true, DateShift: 2,
	}))

	require.NoError(t, f.confirmer().AutoConfirm(ctx, "보험료납부", 80000))

	st, err := f.states.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, "confirmed", st.Status)
	require.True(t, st.Excluded)
	require.Equal(t, 2, st.DateShift)
}

func TestAutoConfirmRespectsManualOverride(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	monthlyDueToday(t, f, "rent", "월세", 500000)

	key := todayKey("rent")
	require.NoError(t, f.states.Upsert(ctx, repository.OccurrenceState{
		Key: key, ManualOverride: true,
	}))

	require.NoError(t, f.confirmer().AutoConfirm(ctx, "월세입금", 500000))

	st, err := f.states.Get(ctx, key)
	require.NoError(t, err)
	require.Empty(t, st.Status) // untouched

	n, err := f.matchLog.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestAutoConfirmShortCounterpartyIsNoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	monthlyDueToday(t, f, "a", "청호나이스", 30000)

	require.NoError(t, f.confirmer().AutoConfirm(ctx, "청", 30000))

	st, err := f.states.Get(ctx, todayKey("a"))
	require.NoError(t, err)
	require.Nil(t, st)
}

func TestAutoConfirmIgnoresOtherCyclesAndDays(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	now := time.Now().UTC()

	// Weekly item with a matching name is not eligible.
	require.NoError(t, f.items.Upsert(ctx, repository.SettleItem{
		ID: "w", Name: "청호나이스", Amount: 30000, Direction: "expense",
		Cycle: "weekly", DayOfWeek: int(now.Weekday()),
	}))
	// Monthly item due a different day.
	require.NoError(t, f.items.Upsert(ctx, repository.SettleItem{
		ID: "m", Name: "청호나이스", Amount: 30000, Direction: "expense",
		Cycle: "monthly", DayOfMonth: now.Day()%28 + 1,
	}))

	require.NoError(t, f.confirmer().AutoConfirm(ctx, "청호렌탈", 30000))

	states, err := f.states.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, states)
}

func TestAutoConfirmOverMatchingConfirmsAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	monthlyDueToday(t, f, "p1", "청호나이스", 30000)
	monthlyDueToday(t, f, "p2", "청호렌탈", 25000)

	// One payment confirms both same-prefix items; documented behavior.
	require.NoError(t, f.confirmer().AutoConfirm(ctx, "청호", 30000))

	for _, id := range []string{"p1", "p2"} {
		st, err := f.states.Get(ctx, todayKey(id))
		require.NoError(t, err)
		require.NotNil(t, st, id)
		require.Equal(t, "confirmed", st.Status, id)
	}
}

func TestMatchLogTrimCap(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	for i := 0; i < matchLogCap+7; i++ {
		require.NoError(t, f.matchLog.Insert(ctx, repository.MatchLogEntry{
			ID:           fmt.Sprintf("log-%03d", i),
			Counterparty: "테스트",
			ItemName:     "항목",
			IsAuto:       true,
		}))
	}
	require.NoError(t, f.matchLog.TrimToRecent(ctx, matchLogCap))

	n, err := f.matchLog.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, matchLogCap, n)
}
