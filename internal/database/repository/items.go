package repository

import (
	"context"
	"database/sql"
)

// SettleItemRepo handles settle_items.
type SettleItemRepo struct {
	db *sql.DB
}

func NewSettleItemRepo(db *sql.DB) *SettleItemRepo { return &SettleItemRepo{db: db} }

func (r *SettleItemRepo) Upsert(ctx context.Context, it SettleItem) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO settle_items(
	 id, name, amount, direction, cycle, day_of_month, day_of_week, date,
	 source, is_block, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 amount=excluded.amount,
	 direction=excluded.direction,
	 cycle=excluded.cycle,
	 day_of_month=excluded.day_of_month,
	 day_of_week=excluded.day_of_week,
	 date=excluded.date,
	 source=excluded.source,
	 is_block=excluded.is_block,
	 updated_at=CURRENT_TIMESTAMP;
	`,
		it.ID, it.Name, it.Amount, it.Direction, it.Cycle, it.DayOfMonth,
		it.DayOfWeek, it.Date, it.Source, it.IsBlock)
	return err
}

// UpdateAmount is the correction-approval write path; nothing else mutates
// an item's amount.
func (r *SettleItemRepo) UpdateAmount(ctx context.Context, tx *sql.Tx, id string, amount int64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE settle_items SET amount = ?, updated_at=CURRENT_TIMESTAMP WHERE id = ?`,
		amount, id)
	return err
}

func (r *SettleItemRepo) Get(ctx context.Context, id string) (*SettleItem, error) {
	row := r.db.QueryRowContext(ctx, selectItems+` WHERE id = ?`, id)
	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *SettleItemRepo) ListAll(ctx context.Context) ([]SettleItem, error) {
	rows, err := r.db.QueryContext(ctx, selectItems+` ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SettleItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *SettleItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM settle_items WHERE id = ?`, id)
	return err
}

const selectItems = `SELECT id, name, amount, direction, cycle, day_of_month,
 day_of_week, date, source, is_block, created_at, updated_at FROM settle_items`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (SettleItem, error) {
	var it SettleItem
	err := row.Scan(&it.ID, &it.Name, &it.Amount, &it.Direction, &it.Cycle,
		&it.DayOfMonth, &it.DayOfWeek, &it.Date, &it.Source, &it.IsBlock,
		&it.CreatedAt, &it.UpdatedAt)
	return it, err
}
