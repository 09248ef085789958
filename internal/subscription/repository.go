package subscription

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Subscription, error) {
	query := `
		SELECT id, user_name, active, category_id, starts_at, expires_at
		FROM subscriptions
		WHERE id = $1
	`

	var sub Subscription
	err := r.db.GetContext(ctx, &sub, query, id)
	if err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *repository) GetCars(ctx context.Context, id string) ([]Car, error) {
	query := `
		SELECT plate, brand, model, color
		FROM subscription_cars
		WHERE subscription_id = $1
		ORDER BY plate
	`

	var cars []Car
	err := r.db.SelectContext(ctx, &cars, query, id)
	if err != nil {
		return nil, err
	}

	return cars, nil
}

func (r *repository) GetOpenCheckins(ctx context.Context, id string) ([]ActiveCheckin, error) {
	query := `
		SELECT id AS ticket_id, zone_id, checkin_at
		FROM tickets
		WHERE subscription_id = $1 AND checkout_at IS NULL
		ORDER BY checkin_at
	`

	var checkins []ActiveCheckin
	err := r.db.SelectContext(ctx, &checkins, query, id)
	if err != nil {
		return nil, err
	}

	return checkins, nil
}
