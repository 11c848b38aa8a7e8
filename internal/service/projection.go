package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/junhokim/banksettle/internal/database/repository"
	"github.com/junhokim/banksettle/internal/settle"
)

// DefaultWindowDays is the projection window used when none is configured.
const DefaultWindowDays = 30

// ProjectionService derives the settle view: it expands items, overlays
// state, substitutes block amounts, applies auto-exclusion, deduplicates and
// projects a running balance. GenerateView is read-only and idempotent; the
// state write paths go through the per-key locks.
type ProjectionService struct {
	Items       *repository.SettleItemRepo
	States      *repository.OccurrenceStateRepo
	Blocks      *repository.BlockAmountRepo
	Corrections *repository.CorrectionRepo
	Accounts    *repository.AccountRepo
	Locks       *KeyLocks

	Loc          *time.Location
	WindowDays   int
	BlockLabel   string
	BlockAliases []string
}

// View is one immutable projection result.
type View struct {
	Summary            settle.Summary
	Occurrences        []settle.Occurrence
	PendingCorrections []repository.PendingCorrection
}

// GenerateView builds the day-ordered projection over the next days days
// (0 means the configured window). Any store failure fails the whole call;
// a truncated financial view is worse than none.
func (s *ProjectionService) GenerateView(ctx context.Context, days int) (View, error) {
	if days <= 0 {
		days = s.WindowDays
	}
	if days <= 0 {
		days = DefaultWindowDays
	}

	items, err := s.Items.ListAll(ctx)
	if err != nil {
		return View{}, fmt.Errorf("list settle items: %w", err)
	}
	stateRows, err := s.States.ListAll(ctx)
	if err != nil {
		return View{}, fmt.Errorf("list occurrence states: %w", err)
	}
	balance, err := s.Accounts.SubtotalBalance(ctx)
	if err != nil {
		return View{}, fmt.Errorf("current balance: %w", err)
	}
	pending, err := s.Corrections.ListAll(ctx)
	if err != nil {
		return View{}, fmt.Errorf("list pending corrections: %w", err)
	}

	today := settle.Midnight(time.Now(), s.loc())
	blocks, err := s.Blocks.AmountsInRange(ctx,
		settle.ISO(today.AddDate(0, 0, -1)), settle.ISO(today.AddDate(0, 0, days)))
	if err != nil {
		return View{}, fmt.Errorf("block amounts: %w", err)
	}

	states := make(map[string]settle.State, len(stateRows))
	for _, st := range stateRows {
		states[st.Key] = toEngineState(st)
	}

	var occs []settle.Occurrence
	for _, it := range items {
		if !settle.KnownCycle(settle.Cycle(it.Cycle)) {
			log.Printf("settle: item %s has unknown cycle %q, skipped", it.ID, it.Cycle)
			continue
		}
		if settle.Cycle(it.Cycle) == settle.CycleOnce {
			if it.Date == nil || !settle.ValidISO(*it.Date) {
				date := "<nil>"
				if it.Date != nil {
					date = *it.Date
				}
				log.Printf("settle: once item %s has malformed date %q, skipped", it.ID, date)
				continue
			}
		}
		occs = append(occs, settle.Expand(toEngineItem(it), today, days, states)...)
	}

	settle.ApplyBlockAmounts(occs, blocks, s.BlockLabel, s.BlockAliases)
	settle.ApplyExclusions(occs, today)
	occs = settle.Dedupe(occs)
	occs = settle.Project(occs, balance)

	return View{
		Summary:            settle.Summarize(occs, balance, today),
		Occurrences:        occs,
		PendingCorrections: pending,
	}, nil
}

// SetOccurrenceState persists a full overlay record under the per-key lock.
func (s *ProjectionService) SetOccurrenceState(ctx context.Context, key string, st repository.OccurrenceState) error {
	st.Key = key
	unlock := s.Locks.Lock(key)
	defer unlock()
	return s.States.Upsert(ctx, st)
}

// GetOccurrenceState returns the stored overlay, or nil if none exists.
func (s *ProjectionService) GetOccurrenceState(ctx context.Context, key string) (*repository.OccurrenceState, error) {
	return s.States.Get(ctx, key)
}

// ToggleExclude flips the excluded flag for an occurrence. A manual toggle
// sets manualOverride so automation leaves the occurrence alone afterwards.
func (s *ProjectionService) ToggleExclude(ctx context.Context, key string) error {
	return s.mutateState(ctx, key, func(st *repository.OccurrenceState) {
		st.Excluded = !st.Excluded
	})
}

// SetStatus sets the occurrence status by hand, marking the override.
func (s *ProjectionService) SetStatus(ctx context.Context, key string, status settle.Status) error {
	return s.mutateState(ctx, key, func(st *repository.OccurrenceState) {
		st.Status = string(status)
	})
}

// ShiftDate adds delta days to the occurrence's date shift, clamped to the
// allowed range, marking the override.
func (s *ProjectionService) ShiftDate(ctx context.Context, key string, delta int) error {
	return s.mutateState(ctx, key, func(st *repository.OccurrenceState) {
		shift := st.DateShift + delta
		if shift < -1 {
			shift = -1
		}
		if shift > 29 {
			shift = 29
		}
		st.DateShift = shift
	})
}

func (s *ProjectionService) mutateState(ctx context.Context, key string, fn func(*repository.OccurrenceState)) error {
	unlock := s.Locks.Lock(key)
	defer unlock()

	existing, err := s.States.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("get state %s: %w", key, err)
	}
	st := repository.OccurrenceState{Key: key}
	if existing != nil {
		st = *existing
	}
	fn(&st)
	st.ManualOverride = true // user touched it; automation keeps out
	return s.States.Upsert(ctx, st)
}

// DeleteItem removes a settle item and cascades to its overlay state.
func (s *ProjectionService) DeleteItem(ctx context.Context, id string) error {
	if err := s.Items.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	if err := s.States.DeleteByItemPrefix(ctx, id); err != nil {
		return fmt.Errorf("delete states for %s: %w", id, err)
	}
	return nil
}

func (s *ProjectionService) loc() *time.Location {
	if s.Loc != nil {
		return s.Loc
	}
	return time.Local
}

func toEngineItem(it repository.SettleItem) settle.Item {
	date := ""
	if it.Date != nil {
		date = *it.Date
	}
	return settle.Item{
		ID:         it.ID,
		Name:       it.Name,
		Amount:     it.Amount,
		Direction:  settle.Direction(it.Direction),
		Cycle:      settle.Cycle(it.Cycle),
		DayOfMonth: it.DayOfMonth,
		DayOfWeek:  it.DayOfWeek,
		Date:       date,
		Source:     it.Source,
		IsBlock:    it.IsBlock,
		CreatedAt:  it.CreatedAt,
		UpdatedAt:  it.UpdatedAt,
	}
}

func toEngineState(st repository.OccurrenceState) settle.State {
	return settle.State{
		Key:            st.Key,
		Excluded:       st.Excluded,
		DateShift:      st.DateShift,
		Status:         settle.Status(st.Status),
		ManualOverride: st.ManualOverride,
		UpdatedAt:      st.UpdatedAt,
	}
}
