package category

import (
	"context"
	"errors"

	"github.com/mohamedammar2729/Parking-System/internal/realtime"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrNegativeRate     = errors.New("rates cannot be negative")
)

type Service interface {
	GetAll(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	UpdateRates(ctx context.Context, adminID, id string, req UpdateRatesRequest) (*Category, error)
}

type service struct {
	repo      Repository
	publisher realtime.Publisher
}

func NewService(repo Repository, publisher realtime.Publisher) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *service) GetAll(ctx context.Context) ([]Category, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetByID(ctx context.Context, id string) (*Category, error) {
	cat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrCategoryNotFound
	}
	return cat, nil
}

// UpdateRates applies a partial rate change. Omitted fields keep their
// current value. Settled tickets are never recomputed; the new rates only
// affect checkouts performed after the change.
func (s *service) UpdateRates(ctx context.Context, adminID, id string, req UpdateRatesRequest) (*Category, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	rateNormal := current.RateNormal
	rateSpecial := current.RateSpecial
	if req.RateNormal != nil {
		rateNormal = *req.RateNormal
	}
	if req.RateSpecial != nil {
		rateSpecial = *req.RateSpecial
	}

	if rateNormal < 0 || rateSpecial < 0 {
		return nil, ErrNegativeRate
	}

	updated, err := s.repo.UpdateRates(ctx, id, rateNormal, rateSpecial)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishAdminUpdate(realtime.NewAdminUpdate(
		adminID,
		"category-rates-changed",
		"category",
		updated.ID,
		map[string]float64{
			"rateNormal":  updated.RateNormal,
			"rateSpecial": updated.RateSpecial,
		},
	))

	return updated, nil
}
