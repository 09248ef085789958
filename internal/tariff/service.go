package tariff

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"

	"github.com/mohamedammar2729/Parking-System/internal/realtime"
)

var (
	ErrInvalidTimeFormat = errors.New("time must be HH:MM in 24-hour format")
	ErrInvalidTimeOrder  = errors.New("from must be strictly before to")
	ErrInvalidDateFormat = errors.New("date must be YYYY-MM-DD")
	ErrInvalidDateOrder  = errors.New("from date must not be after to date")
	ErrInvalidWeekDay    = errors.New("weekDay must be between 0 and 6")
)

type Service interface {
	// Snapshot returns the current immutable calendar view. Callers doing a
	// multi-step computation must take one snapshot and reuse it.
	Snapshot() *Snapshot

	ListRushWindows(ctx context.Context) ([]RushWindow, error)
	CreateRushWindow(ctx context.Context, adminID string, req CreateRushWindowRequest) (*RushWindow, error)
	ListVacations(ctx context.Context) ([]Vacation, error)
	CreateVacation(ctx context.Context, adminID string, req CreateVacationRequest) (*Vacation, error)

	Reload(ctx context.Context) error
}

type service struct {
	repo      Repository
	publisher realtime.Publisher
	snapshot  atomic.Pointer[Snapshot]
}

func NewService(repo Repository, publisher realtime.Publisher) Service {
	s := &service{
		repo:      repo,
		publisher: publisher,
	}
	s.snapshot.Store(buildSnapshot(nil, nil))
	return s
}

func (s *service) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Reload rebuilds the in-memory snapshot from storage. Called at boot and
// after every admin write.
func (s *service) Reload(ctx context.Context) error {
	windows, err := s.repo.GetRushWindows(ctx)
	if err != nil {
		return err
	}
	vacations, err := s.repo.GetVacations(ctx)
	if err != nil {
		return err
	}
	s.snapshot.Store(buildSnapshot(windows, vacations))
	return nil
}

func (s *service) ListRushWindows(ctx context.Context) ([]RushWindow, error) {
	return s.repo.GetRushWindows(ctx)
}

func (s *service) CreateRushWindow(ctx context.Context, adminID string, req CreateRushWindowRequest) (*RushWindow, error) {
	if req.WeekDay < 0 || req.WeekDay > 6 {
		return nil, ErrInvalidWeekDay
	}
	from, err := parseMinutes(req.From)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	to, err := parseMinutes(req.To)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	// A window that appears to wrap past midnight is invalid input, not a
	// wrap-around: split it into two windows instead.
	if from >= to {
		return nil, ErrInvalidTimeOrder
	}

	w, err := s.repo.CreateRushWindow(ctx, req.WeekDay, req.From, req.To)
	if err != nil {
		return nil, err
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}

	s.publisher.PublishAdminUpdate(realtime.NewAdminUpdate(
		adminID,
		"rush-updated",
		"rush-hour",
		strconv.FormatInt(w.ID, 10),
		map[string]any{"weekDay": w.WeekDay, "from": w.From, "to": w.To},
	))

	return w, nil
}

func (s *service) ListVacations(ctx context.Context) ([]Vacation, error) {
	return s.repo.GetVacations(ctx)
}

func (s *service) CreateVacation(ctx context.Context, adminID string, req CreateVacationRequest) (*Vacation, error) {
	if !validDate(req.From) || !validDate(req.To) {
		return nil, ErrInvalidDateFormat
	}
	if req.From > req.To {
		return nil, ErrInvalidDateOrder
	}

	v, err := s.repo.CreateVacation(ctx, req.Name, req.From, req.To)
	if err != nil {
		return nil, err
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}

	s.publisher.PublishAdminUpdate(realtime.NewAdminUpdate(
		adminID,
		"vacation-added",
		"vacation",
		strconv.FormatInt(v.ID, 10),
		map[string]string{"name": v.Name, "from": v.From, "to": v.To},
	))

	return v, nil
}
