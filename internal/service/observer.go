package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/junhokim/banksettle/internal/database/repository"
	"github.com/junhokim/banksettle/internal/settle"
)

// Transaction kinds produced by the upstream parser.
const (
	TxDeposit    = "deposit"
	TxWithdrawal = "withdrawal"
)

// ParsedTransaction is the normalized record an upstream SMS/notification
// parser produces. Parsing itself happens outside this module.
type ParsedTransaction struct {
	BankName      string
	AccountNumber string
	Balance       int64
	Type          string // TxDeposit or TxWithdrawal
	Amount        int64
	Counterparty  string
}

// ObserverService consumes parsed transactions: it mirrors the reported
// account balance and hands withdrawals to the auto-confirmer.
type ObserverService struct {
	Accounts *repository.AccountRepo
	Blocks   *repository.BlockAmountRepo
	Confirm  *ConfirmService

	Loc *time.Location
}

// ObserveTransaction records the account balance carried by one parsed
// transaction and, for withdrawals, runs auto-confirmation against today's
// due items.
func (s *ObserverService) ObserveTransaction(ctx context.Context, tx ParsedTransaction) error {
	acct := repository.Account{
		ID:            uuid.NewString(),
		BankName:      tx.BankName,
		AccountNumber: tx.AccountNumber,
		Balance:       tx.Balance,
		LastTxType:    tx.Type,
		LastTxAmount:  tx.Amount,
		IsActive:      true,
	}
	if err := s.Accounts.Upsert(ctx, acct); err != nil {
		return fmt.Errorf("upsert account %s %s: %w", tx.BankName, tx.AccountNumber, err)
	}

	if tx.Type == TxWithdrawal && s.Confirm != nil {
		if err := s.Confirm.AutoConfirm(ctx, tx.Counterparty, tx.Amount); err != nil {
			return fmt.Errorf("auto-confirm: %w", err)
		}
	}
	return nil
}

// ObserveBlockAmount records today's externally observed block amount. Only
// the first observation per date sticks.
func (s *ObserverService) ObserveBlockAmount(ctx context.Context, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("block amount must be positive, got %d", amount)
	}
	today := settle.Midnight(time.Now(), s.loc())
	return s.Blocks.Record(ctx, settle.ISO(today), amount)
}

func (s *ObserverService) loc() *time.Location {
	if s.Loc != nil {
		return s.Loc
	}
	return time.Local
}
