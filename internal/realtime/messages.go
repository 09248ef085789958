package realtime

import "time"

const (
	MessageZoneUpdate  = "zone-update"
	MessageAdminUpdate = "admin-update"
	MessageSubscribe   = "subscribe"
	MessageUnsubscribe = "unsubscribe"
)

// Envelope is the wire frame for every websocket message, in both directions.
type Envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// SubscribePayload is the inbound payload for subscribe/unsubscribe frames.
type SubscribePayload struct {
	GateID string `json:"gateId"`
}

// AdminUpdate is the payload of an admin-update event. Delivered to every
// connected client regardless of gate subscriptions.
type AdminUpdate struct {
	AdminID    string    `json:"adminId"`
	Action     string    `json:"action"`
	TargetType string    `json:"targetType"`
	TargetID   string    `json:"targetId"`
	Details    any       `json:"details"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewAdminUpdate(adminID, action, targetType, targetID string, details any) AdminUpdate {
	return AdminUpdate{
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    details,
		Timestamp:  time.Now().UTC(),
	}
}

// Publisher is the fan-out contract the domain services depend on.
// Delivery is at-most-once and best-effort: there is no backlog, a client
// that connects after an event never sees it.
type Publisher interface {
	// PublishZoneUpdate delivers a zone snapshot to every client subscribed
	// to any of the given gate topics.
	PublishZoneUpdate(gateIDs []string, zone any)
	// PublishAdminUpdate delivers an admin event to all connected clients.
	PublishAdminUpdate(update AdminUpdate)
}
