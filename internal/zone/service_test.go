package zone

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mohamedammar2729/Parking-System/internal/realtime"
)

type MockZoneRepo struct {
	mock.Mock
}

func (m *MockZoneRepo) GetAll(ctx context.Context) ([]Row, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Row), args.Error(1)
}

func (m *MockZoneRepo) GetGateLinks(ctx context.Context) ([]GateLink, error) {
	args := m.Called(ctx)
	return args.Get(0).([]GateLink), args.Error(1)
}

func (m *MockZoneRepo) GetOpenTicketCounts(ctx context.Context) (map[string]Counts, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]Counts), args.Error(1)
}

func (m *MockZoneRepo) GetRates(ctx context.Context) (map[string]Rates, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]Rates), args.Error(1)
}

func (m *MockZoneRepo) SetOpen(ctx context.Context, id string, open bool) error {
	args := m.Called(ctx, id, open)
	return args.Error(0)
}

func (m *MockZoneRepo) CountActiveSubscribers(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int), args.Error(1)
}

type fakePublisher struct {
	admin []realtime.AdminUpdate
	zones []any
	gates [][]string
}

func (f *fakePublisher) PublishZoneUpdate(gateIDs []string, zone any) {
	f.gates = append(f.gates, gateIDs)
	f.zones = append(f.zones, zone)
}

func (f *fakePublisher) PublishAdminUpdate(update realtime.AdminUpdate) {
	f.admin = append(f.admin, update)
}

func seededService(t *testing.T) (*MockZoneRepo, *fakePublisher, Service) {
	t.Helper()

	repo := new(MockZoneRepo)
	repo.On("GetAll", mock.Anything).Return([]Row{
		{ID: "zone_a", Name: "Zone A", CategoryID: "cat_premium", TotalSlots: 10, VisitorHoldback: 2, Open: true},
		{ID: "zone_b", Name: "Zone B", CategoryID: "cat_regular", TotalSlots: 5, Open: true},
	}, nil)
	repo.On("GetOpenTicketCounts", mock.Anything).Return(map[string]Counts{"zone_a": {Occupied: 4, Reserved: 2}}, nil)
	repo.On("GetGateLinks", mock.Anything).Return([]GateLink{
		{ZoneID: "zone_a", GateID: "gate_1"},
		{ZoneID: "zone_a", GateID: "gate_2"},
		{ZoneID: "zone_b", GateID: "gate_1"},
	}, nil)
	repo.On("GetRates", mock.Anything).Return(map[string]Rates{
		"cat_premium": {Normal: 5, Special: 10},
		"cat_regular": {Normal: 2, Special: 4},
	}, nil)

	publisher := &fakePublisher{}
	svc := NewService(repo, NewLedger(), publisher)
	require.NoError(t, svc.Seed(context.Background()))
	return repo, publisher, svc
}

func TestServiceSeedAndList(t *testing.T) {
	_, _, svc := seededService(t)

	zones, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, zones, 2)

	a := zones[0]
	assert.Equal(t, "zone_a", a.ID)
	assert.Equal(t, 4, a.Occupied)
	assert.Equal(t, 6, a.Free)
	assert.Equal(t, 2, a.Reserved)
	assert.Equal(t, 4, a.AvailableForVisitors)
	assert.Equal(t, 6, a.AvailableForSubscribers)
	assert.Equal(t, []string{"gate_1", "gate_2"}, a.GateIDs)
	assert.Equal(t, 5.0, a.RateNormal)
	assert.Equal(t, 10.0, a.RateSpecial)
}

func TestServiceListByGate(t *testing.T) {
	_, _, svc := seededService(t)

	zones, err := svc.ListByGate(context.Background(), "gate_2")
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, "zone_a", zones[0].ID)

	zones, err = svc.ListByGate(context.Background(), "gate_1")
	require.NoError(t, err)
	assert.Len(t, zones, 2)

	zones, err = svc.ListByGate(context.Background(), "gate_unknown")
	require.NoError(t, err)
	assert.Empty(t, zones)
}

func TestServiceServesGate(t *testing.T) {
	_, _, svc := seededService(t)

	assert.True(t, svc.ServesGate("zone_a", "gate_1"))
	assert.True(t, svc.ServesGate("zone_b", "gate_1"))
	assert.False(t, svc.ServesGate("zone_b", "gate_2"))
	assert.False(t, svc.ServesGate("zone_unknown", "gate_1"))
}

func TestServiceReserveReturnsFreshView(t *testing.T) {
	_, publisher, svc := seededService(t)

	z, err := svc.Reserve(context.Background(), "zone_a", KindVisitor)
	require.NoError(t, err)
	assert.Equal(t, 5, z.Occupied)
	assert.Equal(t, 3, z.AvailableForVisitors)
	assert.Empty(t, publisher.zones, "reserve must not publish, caller owns the broadcast")

	z, err = svc.Release(context.Background(), "zone_a", KindVisitor)
	require.NoError(t, err)
	assert.Equal(t, 4, z.Occupied)
}

func TestServiceSetOpenBroadcasts(t *testing.T) {
	repo, publisher, svc := seededService(t)
	repo.On("SetOpen", mock.Anything, "zone_a", false).Return(nil)

	z, err := svc.SetOpen(context.Background(), "admin_1", "zone_a", false)
	require.NoError(t, err)
	assert.False(t, z.Open)

	require.Len(t, publisher.admin, 1)
	assert.Equal(t, "zone-closed", publisher.admin[0].Action)
	assert.Equal(t, "zone_a", publisher.admin[0].TargetID)
	assert.Equal(t, "admin_1", publisher.admin[0].AdminID)

	require.Len(t, publisher.zones, 1)
	assert.Equal(t, []string{"gate_1", "gate_2"}, publisher.gates[0])
}

func TestServiceSetOpenUnknownZone(t *testing.T) {
	repo, _, svc := seededService(t)
	repo.On("SetOpen", mock.Anything, "zone_x", true).Return(ErrZoneNotFound)

	_, err := svc.SetOpen(context.Background(), "admin_1", "zone_x", true)
	assert.ErrorIs(t, err, ErrZoneNotFound)
}

func TestServiceParkingState(t *testing.T) {
	repo, _, svc := seededService(t)
	repo.On("CountActiveSubscribers", mock.Anything).Return(map[string]int{"cat_premium": 7}, nil)

	report, err := svc.ParkingState(context.Background())
	require.NoError(t, err)
	require.Len(t, report, 2)
	assert.Equal(t, 7, report[0].SubscriberCount)
	assert.Equal(t, 0, report[1].SubscriberCount)
}
