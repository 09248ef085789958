package subscription

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (*Subscription, error)
	GetCars(ctx context.Context, id string) ([]Car, error)
	GetOpenCheckins(ctx context.Context, id string) ([]ActiveCheckin, error)
}
