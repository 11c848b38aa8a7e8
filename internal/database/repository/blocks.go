package repository

import (
	"context"
	"database/sql"
)

// BlockAmountRepo handles block_daily: externally observed daily block
// deduction amounts.
type BlockAmountRepo struct {
	db *sql.DB
}

func NewBlockAmountRepo(db *sql.DB) *BlockAmountRepo { return &BlockAmountRepo{db: db} }

// Record stores the first observed amount for a date. Later observations on
// the same date are ignored; the initial value is preserved.
func (r *BlockAmountRepo) Record(ctx context.Context, date string, amount int64) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO block_daily(date, amount, first_observed_at)
	VALUES(?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(date) DO NOTHING;
	`, date, amount)
	return err
}

func (r *BlockAmountRepo) Get(ctx context.Context, date string) (*DailyBlockAmount, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT date, amount, first_observed_at FROM block_daily WHERE date = ?`, date)
	var b DailyBlockAmount
	err := row.Scan(&b.Date, &b.Amount, &b.FirstObservedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// AmountsInRange returns date -> amount for [from, to] inclusive, keyed by
// ISO date. The projection pre-fetches the whole window in one query.
func (r *BlockAmountRepo) AmountsInRange(ctx context.Context, from, to string) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, amount FROM block_daily WHERE date >= ? AND date <= ?`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var date string
		var amt int64
		if err := rows.Scan(&date, &amt); err != nil {
			return nil, err
		}
		out[date] = amt
	}
	return out, rows.Err()
}

// Recent returns the most recent n records, newest first.
func (r *BlockAmountRepo) Recent(ctx context.Context, n int) ([]DailyBlockAmount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, amount, first_observed_at FROM block_daily ORDER BY date DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DailyBlockAmount
	for rows.Next() {
		var b DailyBlockAmount
		if err := rows.Scan(&b.Date, &b.Amount, &b.FirstObservedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
