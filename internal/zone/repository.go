package zone

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

func (r *repository) GetAll(ctx context.Context) ([]Row, error) {
	query := `
		SELECT id, name, category_id, total_slots, visitor_holdback, open
		FROM zones
		ORDER BY id
	`

	var rows []Row
	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *repository) GetGateLinks(ctx context.Context) ([]GateLink, error) {
	query := `
		SELECT zone_id, gate_id
		FROM gate_zones
		ORDER BY zone_id, gate_id
	`

	var links []GateLink
	err := r.db.SelectContext(ctx, &links, query)
	if err != nil {
		return nil, err
	}

	return links, nil
}

func (r *repository) GetOpenTicketCounts(ctx context.Context) (map[string]Counts, error) {
	query := `
		SELECT zone_id,
		       COUNT(*) AS open_tickets,
		       COUNT(*) FILTER (WHERE type = 'subscriber') AS open_subscriber_tickets
		FROM tickets
		WHERE checkout_at IS NULL
		GROUP BY zone_id
	`

	var rows []struct {
		ZoneID                string `db:"zone_id"`
		OpenTickets           int    `db:"open_tickets"`
		OpenSubscriberTickets int    `db:"open_subscriber_tickets"`
	}
	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]Counts, len(rows))
	for _, row := range rows {
		counts[row.ZoneID] = Counts{Occupied: row.OpenTickets, Reserved: row.OpenSubscriberTickets}
	}
	return counts, nil
}

func (r *repository) GetRates(ctx context.Context) (map[string]Rates, error) {
	query := `
		SELECT id, rate_normal, rate_special
		FROM categories
	`

	var rows []struct {
		ID string `db:"id"`
		Rates
	}
	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, err
	}

	rates := make(map[string]Rates, len(rows))
	for _, row := range rows {
		rates[row.ID] = row.Rates
	}
	return rates, nil
}

func (r *repository) SetOpen(ctx context.Context, id string, open bool) error {
	query := `
		UPDATE zones
		SET open = $2
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, open)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrZoneNotFound
	}
	return nil
}

func (r *repository) CountActiveSubscribers(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT category_id, COUNT(*) AS subscribers
		FROM subscriptions
		WHERE active = true
		GROUP BY category_id
	`

	var rows []struct {
		CategoryID  string `db:"category_id"`
		Subscribers int    `db:"subscribers"`
	}
	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Subscribers
	}
	return counts, nil
}
