package ticket

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Ticket) error {
	query := `
		INSERT INTO tickets (id, type, zone_id, gate_id, subscription_id, checkin_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query, t.ID, t.Type, t.ZoneID, t.GateID, t.SubscriptionID, t.CheckinAt)
	return err
}

func (r *repository) GetByID(ctx context.Context, id string) (*Ticket, error) {
	query := `
		SELECT id, type, zone_id, gate_id, subscription_id, checkin_at, checkout_at
		FROM tickets
		WHERE id = $1
	`

	var t Ticket
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *repository) Close(ctx context.Context, id string, checkoutAt time.Time) (int64, error) {
	query := `
		UPDATE tickets
		SET checkout_at = $2
		WHERE id = $1 AND checkout_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, id, checkoutAt)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
