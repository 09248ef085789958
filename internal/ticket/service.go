package ticket

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mohamedammar2729/Parking-System/internal/billing"
	"github.com/mohamedammar2729/Parking-System/internal/logger"
	"github.com/mohamedammar2729/Parking-System/internal/metrics"
	"github.com/mohamedammar2729/Parking-System/internal/realtime"
	"github.com/mohamedammar2729/Parking-System/internal/subscription"
	"github.com/mohamedammar2729/Parking-System/internal/tariff"
	"github.com/mohamedammar2729/Parking-System/internal/zone"
)

var (
	ErrInvalidZoneForGate   = errors.New("zone is not reachable from this gate")
	ErrSubscriptionRequired = errors.New("subscriptionId is required for subscriber check-in")
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrAlreadyCheckedOut    = errors.New("ticket already checked out")
)

type Service interface {
	Checkin(ctx context.Context, req CheckinRequest) (*CheckinResult, error)
	Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)
	Get(ctx context.Context, id string) (*Ticket, error)
}

type service struct {
	repo      Repository
	zones     zone.Service
	subs      subscription.Service
	tariffs   tariff.Service
	publisher realtime.Publisher
}

func NewService(repo Repository, zones zone.Service, subs subscription.Service, tariffs tariff.Service, publisher realtime.Publisher) Service {
	return &service{
		repo:      repo,
		zones:     zones,
		subs:      subs,
		tariffs:   tariffs,
		publisher: publisher,
	}
}

func (s *service) Get(ctx context.Context, id string) (*Ticket, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrTicketNotFound
	}
	return t, nil
}

// Checkin admits a car. The ledger reservation is the commit point: once
// it succeeds the slot is taken, and a ticket-insert failure compensates
// by releasing the slot again.
func (s *service) Checkin(ctx context.Context, req CheckinRequest) (*CheckinResult, error) {
	if !s.zones.ServesGate(req.ZoneID, req.GateID) {
		metrics.RecordCheckin(req.Type, "rejected")
		return nil, ErrInvalidZoneForGate
	}

	var subID *string
	if req.Type == TypeSubscriber {
		if req.SubscriptionID == "" {
			metrics.RecordCheckin(req.Type, "rejected")
			return nil, ErrSubscriptionRequired
		}

		// Holding the subscription lock across eligibility check and
		// ticket insert closes the window where two gates could both
		// admit the same subscription. Lock order is always
		// subscription first, then zone.
		s.subs.Lock(req.SubscriptionID)
		defer s.subs.Unlock(req.SubscriptionID)

		zv, err := s.zones.View(ctx, req.ZoneID)
		if err != nil {
			metrics.RecordCheckin(req.Type, "rejected")
			return nil, err
		}
		if _, err := s.subs.VerifyEligibility(ctx, req.SubscriptionID, zv.CategoryID); err != nil {
			metrics.RecordCheckin(req.Type, "rejected")
			return nil, err
		}
		subID = &req.SubscriptionID
	}

	zState, err := s.zones.Reserve(ctx, req.ZoneID, req.Type)
	if err != nil {
		metrics.RecordCheckin(req.Type, "rejected")
		return nil, err
	}

	t := &Ticket{
		ID:             uuid.NewString(),
		Type:           req.Type,
		ZoneID:         req.ZoneID,
		GateID:         req.GateID,
		SubscriptionID: subID,
		CheckinAt:      time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, t); err != nil {
		// Give the slot back; the reservation must not outlive a ticket
		// that was never persisted.
		if _, relErr := s.zones.Release(ctx, req.ZoneID, req.Type); relErr != nil {
			logger.Error("compensating release failed", "zone_id", req.ZoneID, "error", relErr)
		}
		metrics.RecordCheckin(req.Type, "error")
		return nil, err
	}

	s.publisher.PublishZoneUpdate(zState.GateIDs, zState)
	metrics.RecordCheckin(req.Type, "ok")
	logger.Info("ticket checked in",
		"ticket_id", t.ID, "zone_id", t.ZoneID, "gate_id", t.GateID, "type", t.Type)

	return &CheckinResult{Ticket: *t, ZoneState: *zState}, nil
}

// Checkout closes a ticket and bills the elapsed time. The billed kind may
// be forced to visitor when plate verification fails at the gate, but the
// ledger always releases the slot under the ticket's original kind.
func (s *service) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	t, err := s.repo.GetByID(ctx, req.TicketID)
	if err != nil {
		return nil, ErrTicketNotFound
	}
	if t.CheckoutAt != nil {
		return nil, ErrAlreadyCheckedOut
	}

	zv, err := s.zones.View(ctx, t.ZoneID)
	if err != nil {
		return nil, err
	}

	billedAs := t.Type
	if t.Type == TypeSubscriber && req.ForceConvertToVisitor {
		billedAs = TypeVisitor
	}

	now := time.Now().UTC()
	amount, segments, err := billing.ComputeCharge(t.CheckinAt, now, zv.RateNormal, zv.RateSpecial, s.tariffs.Snapshot())
	if err != nil {
		return nil, err
	}

	// The conditional update is the race arbiter: of two concurrent
	// checkouts for the same ticket, exactly one closes the row.
	closed, err := s.repo.Close(ctx, t.ID, now)
	if err != nil {
		metrics.RecordCheckout(billedAs, "error", 0)
		return nil, err
	}
	if closed == 0 {
		return nil, ErrAlreadyCheckedOut
	}

	// The release follows the original reservation kind even when the
	// billing was forced to visitor rates.
	zState, err := s.zones.Release(ctx, t.ZoneID, t.Type)
	if err != nil {
		logger.Error("slot release failed after ticket close", "ticket_id", t.ID, "zone_id", t.ZoneID, "error", err)
		zState = zv
	}

	s.publisher.PublishZoneUpdate(zState.GateIDs, zState)
	metrics.RecordCheckout(billedAs, "ok", amount)
	logger.Info("ticket checked out",
		"ticket_id", t.ID, "zone_id", t.ZoneID, "billed_as", billedAs, "amount", amount)

	return &CheckoutResult{
		TicketID:      t.ID,
		CheckinAt:     t.CheckinAt,
		CheckoutAt:    now,
		DurationHours: now.Sub(t.CheckinAt).Hours(),
		Breakdown:     segments,
		Amount:        amount,
		ZoneState:     *zState,
	}, nil
}
