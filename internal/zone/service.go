package zone

import (
	"context"
	"sort"
	"sync"

	"github.com/mohamedammar2729/Parking-System/internal/logger"
	"github.com/mohamedammar2729/Parking-System/internal/realtime"
)

type Service interface {
	// Seed loads zones, gate links and open-ticket counts into the ledger.
	// Must complete before the server starts accepting traffic.
	Seed(ctx context.Context) error

	List(ctx context.Context) ([]Zone, error)
	ListByGate(ctx context.Context, gateID string) ([]Zone, error)
	View(ctx context.Context, zoneID string) (*Zone, error)

	// Reserve and Release mutate occupancy and return the fresh zone view
	// for broadcasting. They do not publish anything themselves; the
	// caller owns the ticket transaction and decides when the change is
	// final.
	Reserve(ctx context.Context, zoneID, kind string) (*Zone, error)
	Release(ctx context.Context, zoneID, kind string) (*Zone, error)

	ServesGate(zoneID, gateID string) bool
	SetOpen(ctx context.Context, adminID, zoneID string, open bool) (*Zone, error)
	ParkingState(ctx context.Context) ([]ReportZone, error)
}

type service struct {
	repo      Repository
	ledger    *Ledger
	publisher realtime.Publisher

	linkMu      sync.RWMutex
	gatesByZone map[string][]string
	zonesByGate map[string][]string
}

func NewService(repo Repository, ledger *Ledger, publisher realtime.Publisher) Service {
	return &service{
		repo:        repo,
		ledger:      ledger,
		publisher:   publisher,
		gatesByZone: make(map[string][]string),
		zonesByGate: make(map[string][]string),
	}
}

func (s *service) Seed(ctx context.Context) error {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}

	counts, err := s.repo.GetOpenTicketCounts(ctx)
	if err != nil {
		return err
	}

	links, err := s.repo.GetGateLinks(ctx)
	if err != nil {
		return err
	}

	s.ledger.Seed(rows, counts)

	gatesByZone := make(map[string][]string)
	zonesByGate := make(map[string][]string)
	for _, link := range links {
		gatesByZone[link.ZoneID] = append(gatesByZone[link.ZoneID], link.GateID)
		zonesByGate[link.GateID] = append(zonesByGate[link.GateID], link.ZoneID)
	}

	s.linkMu.Lock()
	s.gatesByZone = gatesByZone
	s.zonesByGate = zonesByGate
	s.linkMu.Unlock()

	logger.Info("zone ledger seeded", "zones", len(rows), "gate_links", len(links))
	return nil
}

func (s *service) gateIDs(zoneID string) []string {
	s.linkMu.RLock()
	defer s.linkMu.RUnlock()
	gates := s.gatesByZone[zoneID]
	out := make([]string, len(gates))
	copy(out, gates)
	return out
}

func (s *service) ServesGate(zoneID, gateID string) bool {
	s.linkMu.RLock()
	defer s.linkMu.RUnlock()
	for _, g := range s.gatesByZone[zoneID] {
		if g == gateID {
			return true
		}
	}
	return false
}

func (s *service) view(st State, rates map[string]Rates) Zone {
	r := rates[st.Row.CategoryID]
	return Zone{
		ID:                      st.Row.ID,
		Name:                    st.Row.Name,
		CategoryID:              st.Row.CategoryID,
		GateIDs:                 s.gateIDs(st.Row.ID),
		TotalSlots:              st.Row.TotalSlots,
		Occupied:                st.Occupied,
		Free:                    st.Free,
		Reserved:                st.Reserved,
		AvailableForVisitors:    st.AvailableForVisitors,
		AvailableForSubscribers: st.AvailableForSubscribers,
		RateNormal:              r.Normal,
		RateSpecial:             r.Special,
		Open:                    st.Row.Open,
	}
}

func (s *service) List(ctx context.Context) ([]Zone, error) {
	rates, err := s.repo.GetRates(ctx)
	if err != nil {
		return nil, err
	}

	states := s.ledger.Snapshot()
	zones := make([]Zone, 0, len(states))
	for _, st := range states {
		zones = append(zones, s.view(st, rates))
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i].ID < zones[j].ID })
	return zones, nil
}

func (s *service) ListByGate(ctx context.Context, gateID string) ([]Zone, error) {
	rates, err := s.repo.GetRates(ctx)
	if err != nil {
		return nil, err
	}

	s.linkMu.RLock()
	zoneIDs := make([]string, len(s.zonesByGate[gateID]))
	copy(zoneIDs, s.zonesByGate[gateID])
	s.linkMu.RUnlock()

	zones := make([]Zone, 0, len(zoneIDs))
	for _, id := range zoneIDs {
		st, err := s.ledger.Get(id)
		if err != nil {
			continue
		}
		zones = append(zones, s.view(st, rates))
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i].ID < zones[j].ID })
	return zones, nil
}

func (s *service) View(ctx context.Context, zoneID string) (*Zone, error) {
	st, err := s.ledger.Get(zoneID)
	if err != nil {
		return nil, err
	}

	rates, err := s.repo.GetRates(ctx)
	if err != nil {
		return nil, err
	}

	z := s.view(st, rates)
	return &z, nil
}

func (s *service) Reserve(ctx context.Context, zoneID, kind string) (*Zone, error) {
	st, err := s.ledger.Reserve(zoneID, kind)
	if err != nil {
		return nil, err
	}

	rates, err := s.repo.GetRates(ctx)
	if err != nil {
		// The slot is taken either way; a rate lookup failure only
		// degrades the broadcast payload.
		logger.Error("rate lookup failed after reserve", "zone_id", zoneID, "error", err)
		rates = map[string]Rates{}
	}

	z := s.view(st, rates)
	return &z, nil
}

func (s *service) Release(ctx context.Context, zoneID, kind string) (*Zone, error) {
	st, err := s.ledger.Release(zoneID, kind)
	if err != nil {
		return nil, err
	}

	rates, err := s.repo.GetRates(ctx)
	if err != nil {
		logger.Error("rate lookup failed after release", "zone_id", zoneID, "error", err)
		rates = map[string]Rates{}
	}

	z := s.view(st, rates)
	return &z, nil
}

// SetOpen persists the flag, updates the ledger and notifies both the
// affected gates and the admin audit stream.
func (s *service) SetOpen(ctx context.Context, adminID, zoneID string, open bool) (*Zone, error) {
	if err := s.repo.SetOpen(ctx, zoneID, open); err != nil {
		return nil, err
	}

	st, err := s.ledger.SetOpen(zoneID, open)
	if err != nil {
		return nil, err
	}

	z, err := s.View(ctx, st.Row.ID)
	if err != nil {
		return nil, err
	}

	action := "zone-opened"
	if !open {
		action = "zone-closed"
	}
	s.publisher.PublishAdminUpdate(realtime.NewAdminUpdate(adminID, action, "zone", zoneID, nil))
	s.publisher.PublishZoneUpdate(z.GateIDs, z)

	return z, nil
}

func (s *service) ParkingState(ctx context.Context) ([]ReportZone, error) {
	zones, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	subscribers, err := s.repo.CountActiveSubscribers(ctx)
	if err != nil {
		return nil, err
	}

	report := make([]ReportZone, 0, len(zones))
	for _, z := range zones {
		report = append(report, ReportZone{
			Zone:            z,
			SubscriberCount: subscribers[z.CategoryID],
		})
	}
	return report, nil
}
