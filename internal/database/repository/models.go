package repository

import "time"

// SettleItem represents a settle_items row: a recurring or one-off
// obligation. The id is externally assigned and never regenerated, so
// backups and migrations preserve keys.
type SettleItem struct {
	ID         string
	Name       string
	Amount     int64 // minor currency units; changed only via correction approval
	Direction  string
	Cycle      string
	DayOfMonth int
	DayOfWeek  int
	Date       *string // "2006-01-02", cycle=once only
	Source     string
	IsBlock    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OccurrenceState represents a settle_item_states row. The key is the bare
// item id for one-shot items or "itemID_2006-01-02" for recurring ones —
// date-qualified so state survives day rollovers. Offset-based keys are
// disallowed; they desynchronize as today advances.
type OccurrenceState struct {
	Key            string
	Excluded       bool
	DateShift      int
	Status         string
	ManualOverride bool
	UpdatedAt      time.Time
}

// DailyBlockAmount represents a block_daily row: the first block amount
// observed for a date. Write-once; correction logic never alters it.
type DailyBlockAmount struct {
	Date            string
	Amount          int64
	FirstObservedAt time.Time
}

// PendingCorrection represents a pending_corrections row: a proposed change
// to a settle item awaiting explicit user approval. NewAmount is the only
// correctable field.
type PendingCorrection struct {
	ID           string
	SettleItemID string
	ItemName     string
	NewAmount    *int64
	Description  string
	Counterparty string
	TxAmount     int64
	CreatedAt    time.Time
}

// MatchLogEntry represents a match_logs row: an append-only audit record of
// a confirm decision.
type MatchLogEntry struct {
	ID           string
	Counterparty string
	ItemName     string
	TxAmount     int64
	SettleAmount int64
	IsAuto       bool
	CreatedAt    time.Time
}

// Account represents an accounts row mirrored from upstream parsed
// transactions. The projection only consumes the active-balance subtotal.
type Account struct {
	ID            string
	BankName      string
	AccountNumber string
	DisplayName   string
	Balance       int64
	LastTxType    string
	LastTxAmount  int64
	IsManual      bool
	IsActive      bool
	LastUpdated   time.Time
}
