package zone

import "context"

type Repository interface {
	GetAll(ctx context.Context) ([]Row, error)
	GetGateLinks(ctx context.Context) ([]GateLink, error)
	GetOpenTicketCounts(ctx context.Context) (map[string]Counts, error)
	GetRates(ctx context.Context) (map[string]Rates, error)
	SetOpen(ctx context.Context, id string, open bool) error
	CountActiveSubscribers(ctx context.Context) (map[string]int, error)
}

// Rates is a category's pair of hourly rates, keyed by category id in
// Repository.GetRates.
type Rates struct {
	Normal  float64 `db:"rate_normal"`
	Special float64 `db:"rate_special"`
}
