package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/junhokim/banksettle/internal/database"
	"github.com/junhokim/banksettle/internal/database/repository"
	"github.com/junhokim/banksettle/internal/settle"
)

// CorrectionService manages the pending-correction queue. Suggestions from
// any source land here and change nothing until a user approves them; an
// approval patches the amount and removes the record in one transaction.
type CorrectionService struct {
	DB          *sql.DB
	Items       *repository.SettleItemRepo
	Corrections *repository.CorrectionRepo
}

// Propose validates and enqueues a suggested amount change. Zero or missing
// amounts are rejected, block items are never correctable, and the
// counterparty must bear some name relevance to the target item — a matching
// amount alone is not evidence.
func (s *CorrectionService) Propose(ctx context.Context, c repository.PendingCorrection) error {
	if c.NewAmount == nil || *c.NewAmount == 0 {
		return ErrEmptyCorrection
	}
	item, err := s.Items.Get(ctx, c.SettleItemID)
	if err != nil {
		return fmt.Errorf("get item %s: %w", c.SettleItemID, err)
	}
	if item == nil {
		return ErrItemNotFound
	}
	if item.IsBlock {
		return ErrBlockNotCorrectable
	}
	if !nameRelevant(c.Counterparty, item.Name) {
		return ErrUnrelatedCorrection
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.ItemName = item.Name
	if err := s.Corrections.Insert(ctx, c); err != nil {
		return fmt.Errorf("insert correction: %w", err)
	}
	return nil
}

// Approve applies a pending correction to its item and deletes the record.
// If the item has been removed, the pending record stays put for the user to
// review and dismiss.
func (s *CorrectionService) Approve(ctx context.Context, id string) error {
	c, err := s.Corrections.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get correction %s: %w", id, err)
	}
	if c == nil {
		return ErrCorrectionNotFound
	}

	item, err := s.Items.Get(ctx, c.SettleItemID)
	if err != nil {
		return fmt.Errorf("get item %s: %w", c.SettleItemID, err)
	}
	if item == nil {
		return fmt.Errorf("approve %s: %w", id, ErrItemNotFound)
	}

	return database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if c.NewAmount != nil {
			if err := s.Items.UpdateAmount(ctx, tx, item.ID, *c.NewAmount); err != nil {
				return fmt.Errorf("patch amount: %w", err)
			}
		}
		if err := s.Corrections.DeleteByIDTx(ctx, tx, id); err != nil {
			return fmt.Errorf("delete correction: %w", err)
		}
		return nil
	})
}

// Pending lists queued corrections, newest first.
func (s *CorrectionService) Pending(ctx context.Context) ([]repository.PendingCorrection, error) {
	return s.Corrections.ListAll(ctx)
}

// Dismiss drops a pending correction without side effects.
func (s *CorrectionService) Dismiss(ctx context.Context, id string) error {
	return s.Corrections.DeleteByID(ctx, id)
}

// nameRelevant accepts the prefix match used for auto-confirmation, or a
// close edit distance between the folded strings.
func nameRelevant(counterparty, itemName string) bool {
	if settle.NameMatch(counterparty, itemName) {
		return true
	}
	a := strings.ToLower(counterparty)
	b := strings.ToLower(itemName)
	if a == "" || b == "" {
		return false
	}
	dist := levenshtein.ComputeDistance(a, b)
	maxlen := len([]rune(a))
	if l := len([]rune(b)); l > maxlen {
		maxlen = l
	}
	return float64(dist)/float64(maxlen) < 0.4
}
