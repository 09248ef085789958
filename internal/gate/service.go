package gate

import (
	"context"
	"errors"
)

var ErrGateNotFound = errors.New("gate not found")

type Service interface {
	GetAll(ctx context.Context) ([]Gate, error)
	GetByID(ctx context.Context, id string) (*Gate, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetAll(ctx context.Context) ([]Gate, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetByID(ctx context.Context, id string) (*Gate, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrGateNotFound
	}
	return g, nil
}
