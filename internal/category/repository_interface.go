package category

import "context"

type Repository interface {
	GetAll(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	UpdateRates(ctx context.Context, id string, rateNormal, rateSpecial float64) (*Category, error)
}
