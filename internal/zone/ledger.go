package zone

import (
	"errors"
	"sync"

	"github.com/mohamedammar2729/Parking-System/internal/logger"
	"github.com/mohamedammar2729/Parking-System/internal/metrics"
)

const (
	KindVisitor    = "visitor"
	KindSubscriber = "subscriber"
)

var (
	ErrZoneNotFound = errors.New("zone not found")
	ErrZoneClosed   = errors.New("zone is closed")
	ErrZoneFull     = errors.New("no slot available")
	ErrZoneEmpty    = errors.New("release without matching reserve")
)

// State is a point-in-time copy of one zone's ledger entry.
type State struct {
	Row                     Row
	Occupied                int
	Free                    int
	Reserved                int
	AvailableForVisitors    int
	AvailableForSubscribers int
}

type entry struct {
	mu       sync.Mutex
	row      Row
	occupied int
	reserved int // subscriber-held subset of occupied
}

// state must be called with e.mu held.
func (e *entry) state() State {
	free := e.row.TotalSlots - e.occupied
	if free < 0 {
		free = 0
	}
	visitors, subscribers := Availability(free, e.row.VisitorHoldback)
	return State{
		Row:                     e.row,
		Occupied:                e.occupied,
		Free:                    free,
		Reserved:                e.reserved,
		AvailableForVisitors:    visitors,
		AvailableForSubscribers: subscribers,
	}
}

// Ledger is the authoritative in-memory occupancy state. Every admission
// decision is made under the owning zone's lock, so two concurrent
// check-ins can never both take the last slot.
type Ledger struct {
	mu    sync.RWMutex
	zones map[string]*entry
}

func NewLedger() *Ledger {
	return &Ledger{zones: make(map[string]*entry)}
}

// Counts carries the occupancy reconstructed from open tickets at startup.
type Counts struct {
	Occupied int
	Reserved int
}

// Seed replaces the ledger content. Called once at startup with the zone
// rows and the open-ticket counts per zone.
func (l *Ledger) Seed(rows []Row, counts map[string]Counts) {
	zones := make(map[string]*entry, len(rows))
	for _, row := range rows {
		c := counts[row.ID]
		zones[row.ID] = &entry{row: row, occupied: c.Occupied, reserved: c.Reserved}
		metrics.SetZoneOccupied(row.ID, c.Occupied)
	}

	l.mu.Lock()
	l.zones = zones
	l.mu.Unlock()
}

func (l *Ledger) lookup(zoneID string) (*entry, error) {
	l.mu.RLock()
	e, ok := l.zones[zoneID]
	l.mu.RUnlock()
	if !ok {
		return nil, ErrZoneNotFound
	}
	return e, nil
}

// Reserve admits one car of the given kind and increments occupancy,
// plus the reserved counter for subscribers. The availability check and
// the increments are atomic per zone.
func (l *Ledger) Reserve(zoneID, kind string) (State, error) {
	e, err := l.lookup(zoneID)
	if err != nil {
		return State{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.row.Open {
		return State{}, ErrZoneClosed
	}

	st := e.state()
	switch kind {
	case KindVisitor:
		if st.AvailableForVisitors <= 0 {
			return State{}, ErrZoneFull
		}
	default:
		if st.AvailableForSubscribers <= 0 {
			return State{}, ErrZoneFull
		}
	}

	e.occupied++
	if kind == KindSubscriber {
		e.reserved++
	}
	metrics.SetZoneOccupied(zoneID, e.occupied)
	return e.state(), nil
}

// Release returns one slot, following the kind of the original
// reservation so the reserved counter stays a subset of occupied. A
// release is always accepted for a closed zone, so cars already inside
// can leave, but a release on an empty zone is an invariant breach and
// is rejected rather than absorbed.
func (l *Ledger) Release(zoneID, kind string) (State, error) {
	e, err := l.lookup(zoneID)
	if err != nil {
		return State{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.occupied <= 0 || (kind == KindSubscriber && e.reserved <= 0) {
		logger.Error("release without matching reserve refused", "zone_id", zoneID, "kind", kind)
		return State{}, ErrZoneEmpty
	}
	e.occupied--
	if kind == KindSubscriber {
		e.reserved--
	}
	metrics.SetZoneOccupied(zoneID, e.occupied)
	return e.state(), nil
}

// SetOpen flips the admission flag. Occupancy is untouched.
func (l *Ledger) SetOpen(zoneID string, open bool) (State, error) {
	e, err := l.lookup(zoneID)
	if err != nil {
		return State{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.row.Open = open
	return e.state(), nil
}

// Get returns the current state of one zone.
func (l *Ledger) Get(zoneID string) (State, error) {
	e, err := l.lookup(zoneID)
	if err != nil {
		return State{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state(), nil
}

// Snapshot returns the state of every zone. Each entry is consistent with
// itself; the set as a whole is not a single atomic cut.
func (l *Ledger) Snapshot() []State {
	l.mu.RLock()
	entries := make([]*entry, 0, len(l.zones))
	for _, e := range l.zones {
		entries = append(entries, e)
	}
	l.mu.RUnlock()

	states := make([]State, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		states = append(states, e.state())
		e.mu.Unlock()
	}
	return states
}
