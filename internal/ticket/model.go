package ticket

import (
	"time"

	"github.com/mohamedammar2729/Parking-System/internal/billing"
	"github.com/mohamedammar2729/Parking-System/internal/zone"
)

const (
	TypeVisitor    = "visitor"
	TypeSubscriber = "subscriber"
)

// Ticket is immutable after creation except for CheckoutAt. No rate data is
// stored on it; checkout always bills against the rate configuration in
// force at checkout time.
type Ticket struct {
	ID             string     `db:"id" json:"id"`
	Type           string     `db:"type" json:"type"`
	ZoneID         string     `db:"zone_id" json:"zoneId"`
	GateID         string     `db:"gate_id" json:"gateId"`
	SubscriptionID *string    `db:"subscription_id" json:"subscriptionId,omitempty"`
	CheckinAt      time.Time  `db:"checkin_at" json:"checkinAt"`
	CheckoutAt     *time.Time `db:"checkout_at" json:"checkoutAt,omitempty"`
}

type CheckinRequest struct {
	GateID         string `json:"gateId" binding:"required"`
	ZoneID         string `json:"zoneId" binding:"required"`
	Type           string `json:"type" binding:"required,oneof=visitor subscriber"`
	SubscriptionID string `json:"subscriptionId"`
}

type CheckinResult struct {
	Ticket    Ticket    `json:"ticket"`
	ZoneState zone.Zone `json:"zoneState"`
}

type CheckoutRequest struct {
	TicketID              string `json:"ticketId" binding:"required"`
	ForceConvertToVisitor bool   `json:"forceConvertToVisitor"`
}

type CheckoutResult struct {
	TicketID      string            `json:"ticketId"`
	CheckinAt     time.Time         `json:"checkinAt"`
	CheckoutAt    time.Time         `json:"checkoutAt"`
	DurationHours float64           `json:"durationHours"`
	Breakdown     []billing.Segment `json:"breakdown"`
	Amount        float64           `json:"amount"`
	ZoneState     zone.Zone         `json:"zoneState"`
}
