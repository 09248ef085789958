package ticket

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id string) (*Ticket, error)

	// Close sets checkoutAt if and only if the ticket is still open.
	// Returns the number of rows updated, so concurrent checkouts of the
	// same ticket resolve to exactly one winner in the database.
	Close(ctx context.Context, id string, checkoutAt time.Time) (int64, error)
}
