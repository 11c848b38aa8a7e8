package repository

import (
	"context"
	"database/sql"
)

// CorrectionRepo handles pending_corrections.
type CorrectionRepo struct {
	db *sql.DB
}

func NewCorrectionRepo(db *sql.DB) *CorrectionRepo { return &CorrectionRepo{db: db} }

func (r *CorrectionRepo) Insert(ctx context.Context, c PendingCorrection) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO pending_corrections(
	 id, settle_item_id, item_name, new_amount, description, counterparty, tx_amount, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`, c.ID, c.SettleItemID, c.ItemName, c.NewAmount, c.Description, c.Counterparty, c.TxAmount)
	return err
}

func (r *CorrectionRepo) Get(ctx context.Context, id string) (*PendingCorrection, error) {
	row := r.db.QueryRowContext(ctx, selectCorrections+` WHERE id = ?`, id)
	var c PendingCorrection
	err := row.Scan(&c.ID, &c.SettleItemID, &c.ItemName, &c.NewAmount, &c.Description,
		&c.Counterparty, &c.TxAmount, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CorrectionRepo) ListAll(ctx context.Context) ([]PendingCorrection, error) {
	rows, err := r.db.QueryContext(ctx, selectCorrections+` ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PendingCorrection
	for rows.Next() {
		var c PendingCorrection
		if err := rows.Scan(&c.ID, &c.SettleItemID, &c.ItemName, &c.NewAmount,
			&c.Description, &c.Counterparty, &c.TxAmount, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CorrectionRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pending_corrections WHERE id = ?`, id)
	return err
}

// DeleteByIDTx is the approval path's delete, sharing the item-patch
// transaction.
func (r *CorrectionRepo) DeleteByIDTx(ctx context.Context, tx *sql.Tx, id string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM pending_corrections WHERE id = ?`, id)
	return err
}

const selectCorrections = `SELECT id, settle_item_id, item_name, new_amount,
 description, counterparty, tx_amount, created_at FROM pending_corrections`
