package repository

import (
	"context"
	"database/sql"
)

// MatchLogRepo handles match_logs, the append-only audit trail of confirm
// decisions.
type MatchLogRepo struct {
	db *sql.DB
}

func NewMatchLogRepo(db *sql.DB) *MatchLogRepo { return &MatchLogRepo{db: db} }

func (r *MatchLogRepo) Insert(ctx context.Context, e MatchLogEntry) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO match_logs(id, counterparty, item_name, tx_amount, settle_amount, is_auto, created_at)
	VALUES(?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`, e.ID, e.Counterparty, e.ItemName, e.TxAmount, e.SettleAmount, e.IsAuto)
	return err
}

// TrimToRecent deletes everything but the n newest entries.
func (r *MatchLogRepo) TrimToRecent(ctx context.Context, n int) error {
	_, err := r.db.ExecContext(ctx, `
	DELETE FROM match_logs WHERE id NOT IN (
	 SELECT id FROM match_logs ORDER BY created_at DESC, id DESC LIMIT ?);
	`, n)
	return err
}

// Recent returns up to n entries, newest first.
func (r *MatchLogRepo) Recent(ctx context.Context, n int) ([]MatchLogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, counterparty, item_name, tx_amount, settle_amount, is_auto, created_at
	FROM match_logs ORDER BY created_at DESC, id DESC LIMIT ?;
	`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MatchLogEntry
	for rows.Next() {
		var e MatchLogEntry
		if err := rows.Scan(&e.ID, &e.Counterparty, &e.ItemName, &e.TxAmount,
			&e.SettleAmount, &e.IsAuto, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *MatchLogRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM match_logs`).Scan(&n)
	return n, err
}
