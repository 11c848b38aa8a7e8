package repository

import (
	"context"
	"database/sql"
)

// AccountRepo handles accounts. Balances arrive from the upstream
// transaction parser; the projection only reads the active subtotal.
type AccountRepo struct {
	db *sql.DB
}

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{db: db} }

func (r *AccountRepo) Upsert(ctx context.Context, a Account) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO accounts(
	 id, bank_name, account_number, display_name, balance, last_tx_type,
	 last_tx_amount, is_manual, is_active, last_updated)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(bank_name, account_number) DO UPDATE SET
	 display_name=excluded.display_name,
	 balance=excluded.balance,
	 last_tx_type=excluded.last_tx_type,
	 last_tx_amount=excluded.last_tx_amount,
	 last_updated=CURRENT_TIMESTAMP;
	`, a.ID, a.BankName, a.AccountNumber, a.DisplayName, a.Balance,
		a.LastTxType, a.LastTxAmount, a.IsManual, a.IsActive)
	return err
}

func (r *AccountRepo) List(ctx context.Context) ([]Account, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, bank_name, account_number, display_name, balance, last_tx_type,
	 last_tx_amount, is_manual, is_active, last_updated
	FROM accounts ORDER BY bank_name, account_number;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.BankName, &a.AccountNumber, &a.DisplayName,
			&a.Balance, &a.LastTxType, &a.LastTxAmount, &a.IsManual, &a.IsActive,
			&a.LastUpdated); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SubtotalBalance sums the balances of active accounts. This scalar is the
// starting point of every projection.
func (r *AccountRepo) SubtotalBalance(ctx context.Context) (int64, error) {
	var bal sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT SUM(balance) FROM accounts WHERE is_active = 1`).Scan(&bal)
	if err != nil {
		return 0, err
	}
	return bal.Int64, nil
}

func (r *AccountRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET is_active = ?, last_updated=CURRENT_TIMESTAMP WHERE id = ?`,
		active, id)
	return err
}
