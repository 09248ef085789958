package gate

import "context"

type Repository interface {
	GetAll(ctx context.Context) ([]Gate, error)
	GetByID(ctx context.Context, id string) (*Gate, error)
}
