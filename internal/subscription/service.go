package subscription

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrSubscriptionInactive = errors.New("subscription is not active")
	ErrCategoryMismatch     = errors.New("subscription category does not match zone category")
	ErrAlreadyCheckedIn     = errors.New("subscription already has an open check-in")
)

type Service interface {
	Get(ctx context.Context, id string) (*Subscription, error)

	// Lock serializes all eligibility-then-reserve sequences for one
	// subscription id. The caller holds it across VerifyEligibility and
	// the ticket creation that follows, so two gates can never both pass
	// verification for the same subscription.
	Lock(id string)
	Unlock(id string)

	VerifyEligibility(ctx context.Context, id, zoneCategoryID string) (*Subscription, error)
}

type service struct {
	repo Repository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(repo Repository) Service {
	return &service{
		repo:  repo,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *service) lockFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func (s *service) Lock(id string)   { s.lockFor(id).Lock() }
func (s *service) Unlock(id string) { s.lockFor(id).Unlock() }

// Get assembles the full subscription view, cars and open check-ins
// included.
func (s *service) Get(ctx context.Context, id string) (*Subscription, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrSubscriptionNotFound
	}

	cars, err := s.repo.GetCars(ctx, id)
	if err != nil {
		return nil, err
	}
	sub.Cars = cars
	if sub.Cars == nil {
		sub.Cars = []Car{}
	}

	checkins, err := s.repo.GetOpenCheckins(ctx, id)
	if err != nil {
		return nil, err
	}
	sub.CurrentCheckins = checkins
	if sub.CurrentCheckins == nil {
		sub.CurrentCheckins = []ActiveCheckin{}
	}

	return sub, nil
}

// VerifyEligibility runs the admission checks in a fixed order and reports
// the first failure. Callers that go on to create a ticket must hold
// Lock(id) around both this call and the creation.
func (s *service) VerifyEligibility(ctx context.Context, id, zoneCategoryID string) (*Subscription, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrSubscriptionNotFound
	}

	if !sub.Active || time.Now().After(sub.ExpiresAt) {
		return nil, ErrSubscriptionInactive
	}

	if sub.CategoryID != zoneCategoryID {
		return nil, ErrCategoryMismatch
	}

	checkins, err := s.repo.GetOpenCheckins(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(checkins) > 0 {
		return nil, ErrAlreadyCheckedIn
	}

	return sub, nil
}
