package service

import (
	"context"
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/junhokim/banksettle/internal/database/repository"
	"github.com/junhokim/banksettle/internal/settle"
)

// matchLogCap bounds the confirm audit trail; older entries are trimmed.
const matchLogCap = 200

// ConfirmService marks today's-due monthly items confirmed when an incoming
// expense transaction fuzzy-matches their name. It never touches an item's
// amount — confirmation is a state-overlay write plus an audit log entry.
type ConfirmService struct {
	Items    *repository.SettleItemRepo
	States   *repository.OccurrenceStateRepo
	MatchLog *repository.MatchLogRepo
	Locks    *KeyLocks

	Loc *time.Location
}

// AutoConfirm processes one observed expense transaction. Every monthly item
// due today whose name matches the counterparty gets confirmed — the scan
// deliberately does not stop at the first hit, so one payment can confirm
// several same-named bills at once; the audit log exists to make that
// visible.
func (s *ConfirmService) AutoConfirm(ctx context.Context, counterparty string, txAmount int64) error {
	if utf8.RuneCountInString(counterparty) < 2 {
		return nil
	}

	now := time.Now().In(s.loc())
	today := settle.Midnight(now, s.loc())
	dom := today.Day()

	items, err := s.Items.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list settle items: %w", err)
	}

	for _, it := range items {
		if settle.Cycle(it.Cycle) != settle.CycleMonthly || it.DayOfMonth != dom {
			continue
		}
		if !settle.NameMatch(counterparty, it.Name) {
			continue
		}

		key := settle.StateKey(it.ID, today)
		if err := s.confirmOne(ctx, key, counterparty, it, txAmount); err != nil {
			return err
		}
	}
	return nil
}

func (s *ConfirmService) confirmOne(ctx context.Context, key, counterparty string, it repository.SettleItem, txAmount int64) error {
	unlock := s.Locks.Lock(key)
	defer unlock()

	existing, err := s.States.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("get state %s: %w", key, err)
	}
	if existing != nil {
		if existing.Status == string(settle.StatusConfirmed) {
			return nil // already confirmed today
		}
		if existing.ManualOverride {
			return nil // user owns this occurrence
		}
	}

	st := repository.OccurrenceState{Key: key, Status: string(settle.StatusConfirmed)}
	if existing != nil {
		st.Excluded = existing.Excluded
		st.DateShift = existing.DateShift
		st.ManualOverride = existing.ManualOverride
		st.Status = string(settle.StatusConfirmed)
	}
	if err := s.States.Upsert(ctx, st); err != nil {
		return fmt.Errorf("confirm %s: %w", key, err)
	}

	log.Printf("[CONFIRM] auto: %s -> %s (tx %d, expected %d)", counterparty, it.Name, txAmount, it.Amount)

	entry := repository.MatchLogEntry{
		ID:           uuid.NewString(),
		Counterparty: counterparty,
		ItemName:     it.Name,
		TxAmount:     txAmount,
		SettleAmount: it.Amount,
		IsAuto:       true,
	}
	if err := s.MatchLog.Insert(ctx, entry); err != nil {
		return fmt.Errorf("match log insert: %w", err)
	}
	if err := s.MatchLog.TrimToRecent(ctx, matchLogCap); err != nil {
		return fmt.Errorf("match log trim: %w", err)
	}
	return nil
}

func (s *ConfirmService) loc() *time.Location {
	if s.Loc != nil {
		return s.Loc
	}
	return time.Local
}
