package repository

import (
	"context"
	"database/sql"
)

// OccurrenceStateRepo handles settle_item_states.
type OccurrenceStateRepo struct {
	db *sql.DB
}

func NewOccurrenceStateRepo(db *sql.DB) *OccurrenceStateRepo {
	return &OccurrenceStateRepo{db: db}
}

func (r *OccurrenceStateRepo) Upsert(ctx context.Context, s OccurrenceState) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO settle_item_states(item_key, excluded, date_shift, status, manual_override, updated_at)
	VALUES(?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(item_key) DO UPDATE SET
	 excluded=excluded.excluded,
	 date_shift=excluded.date_shift,
	 status=excluded.status,
	 manual_override=excluded.manual_override,
	 updated_at=CURRENT_TIMESTAMP;
	`, s.Key, s.Excluded, s.DateShift, s.Status, s.ManualOverride)
	return err
}

func (r *OccurrenceStateRepo) Get(ctx context.Context, key string) (*OccurrenceState, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT item_key, excluded, date_shift, status, manual_override, updated_at
		 FROM settle_item_states WHERE item_key = ?`, key)
	var s OccurrenceState
	err := row.Scan(&s.Key, &s.Excluded, &s.DateShift, &s.Status, &s.ManualOverride, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *OccurrenceStateRepo) ListAll(ctx context.Context) ([]OccurrenceState, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_key, excluded, date_shift, status, manual_override, updated_at
		 FROM settle_item_states`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OccurrenceState
	for rows.Next() {
		var s OccurrenceState
		if err := rows.Scan(&s.Key, &s.Excluded, &s.DateShift, &s.Status, &s.ManualOverride, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *OccurrenceStateRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM settle_item_states WHERE item_key = ?`, key)
	return err
}

// DeleteByItemPrefix removes every state row belonging to one settle item,
// used when the item itself is deleted.
func (r *OccurrenceStateRepo) DeleteByItemPrefix(ctx context.Context, itemID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM settle_item_states WHERE item_key = ? OR item_key LIKE ? || '\_%' ESCAPE '\'`,
		itemID, itemID)
	return err
}
