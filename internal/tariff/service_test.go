package tariff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mohamedammar2729/Parking-System/internal/realtime"
)

type MockTariffRepo struct{ mock.Mock }

func (m *MockTariffRepo) GetRushWindows(ctx context.Context) ([]RushWindow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]RushWindow), args.Error(1)
}

func (m *MockTariffRepo) CreateRushWindow(ctx context.Context, weekDay int, from, to string) (*RushWindow, error) {
	args := m.Called(ctx, weekDay, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RushWindow), args.Error(1)
}

func (m *MockTariffRepo) GetVacations(ctx context.Context) ([]Vacation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Vacation), args.Error(1)
}

func (m *MockTariffRepo) CreateVacation(ctx context.Context, name, from, to string) (*Vacation, error) {
	args := m.Called(ctx, name, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Vacation), args.Error(1)
}

type fakePublisher struct {
	admin []realtime.AdminUpdate
	zones []any
}

func (f *fakePublisher) PublishZoneUpdate(gateIDs []string, zone any) { f.zones = append(f.zones, zone) }
func (f *fakePublisher) PublishAdminUpdate(u realtime.AdminUpdate)    { f.admin = append(f.admin, u) }

func TestCreateRushWindowValidation(t *testing.T) {
	repo := new(MockTariffRepo)
	pub := &fakePublisher{}
	svc := NewService(repo, pub)

	cases := []struct {
		name string
		req  CreateRushWindowRequest
		want error
	}{
		{"bad from format", CreateRushWindowRequest{WeekDay: 1, From: "8am", To: "10:00"}, ErrInvalidTimeFormat},
		{"bad to format", CreateRushWindowRequest{WeekDay: 1, From: "08:00", To: "1000"}, ErrInvalidTimeFormat},
		{"wraps midnight", CreateRushWindowRequest{WeekDay: 1, From: "22:00", To: "02:00"}, ErrInvalidTimeOrder},
		{"zero length", CreateRushWindowRequest{WeekDay: 1, From: "08:00", To: "08:00"}, ErrInvalidTimeOrder},
		{"weekday out of range", CreateRushWindowRequest{WeekDay: 7, From: "08:00", To: "10:00"}, ErrInvalidWeekDay},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateRushWindow(context.Background(), "admin_1", tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// No repo call and no broadcast on validation failure.
	repo.AssertNotCalled(t, "CreateRushWindow", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, pub.admin)
}

func TestCreateRushWindowReloadsAndBroadcasts(t *testing.T) {
	repo := new(MockTariffRepo)
	pub := &fakePublisher{}
	svc := NewService(repo, pub)

	created := &RushWindow{ID: 7, WeekDay: 1, From: "08:00", To: "10:00"}
	repo.On("CreateRushWindow", mock.Anything, 1, "08:00", "10:00").Return(created, nil)
	repo.On("GetRushWindows", mock.Anything).Return([]RushWindow{*created}, nil)
	repo.On("GetVacations", mock.Anything).Return([]Vacation{}, nil)

	w, err := svc.CreateRushWindow(context.Background(), "admin_1", CreateRushWindowRequest{WeekDay: 1, From: "08:00", To: "10:00"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), w.ID)

	// Snapshot now reflects the new window.
	assert.True(t, svc.Snapshot().IsSpecial(monday(9, 0)))

	require.Len(t, pub.admin, 1)
	assert.Equal(t, "rush-updated", pub.admin[0].Action)
	assert.Equal(t, "admin_1", pub.admin[0].AdminID)
	assert.Equal(t, "7", pub.admin[0].TargetID)
}

func TestCreateVacationValidation(t *testing.T) {
	repo := new(MockTariffRepo)
	svc := NewService(repo, &fakePublisher{})

	_, err := svc.CreateVacation(context.Background(), "admin_1", CreateVacationRequest{Name: "x", From: "06/01/2025", To: "2025-06-03"})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	_, err = svc.CreateVacation(context.Background(), "admin_1", CreateVacationRequest{Name: "x", From: "2025-06-05", To: "2025-06-03"})
	assert.ErrorIs(t, err, ErrInvalidDateOrder)
}

func TestCreateVacationSingleDayAllowed(t *testing.T) {
	repo := new(MockTariffRepo)
	pub := &fakePublisher{}
	svc := NewService(repo, pub)

	created := &Vacation{ID: 3, Name: "Eid", From: "2025-06-02", To: "2025-06-02"}
	repo.On("CreateVacation", mock.Anything, "Eid", "2025-06-02", "2025-06-02").Return(created, nil)
	repo.On("GetRushWindows", mock.Anything).Return([]RushWindow{}, nil)
	repo.On("GetVacations", mock.Anything).Return([]Vacation{*created}, nil)

	v, err := svc.CreateVacation(context.Background(), "admin_1", CreateVacationRequest{Name: "Eid", From: "2025-06-02", To: "2025-06-02"})
	require.NoError(t, err)
	assert.Equal(t, "Eid", v.Name)

	assert.True(t, svc.Snapshot().IsSpecial(monday(3, 0)))
	require.Len(t, pub.admin, 1)
	assert.Equal(t, "vacation-added", pub.admin[0].Action)
}
