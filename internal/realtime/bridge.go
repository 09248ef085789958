package realtime

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mohamedammar2729/Parking-System/internal/logger"
)

const bridgeChannel = "parking:realtime"

// busFrame is the cross-instance envelope. Origin lets an instance skip
// frames it published itself.
type busFrame struct {
	Origin  string          `json:"origin"`
	GateIDs []string        `json:"gateIds,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Bridge wraps a Hub and mirrors every published event over a redis
// pub/sub channel so that clients connected to other instances see it too.
// Without redis the Hub alone satisfies Publisher for a single instance.
type Bridge struct {
	hub    *Hub
	rdb    *redis.Client
	origin string
}

func NewBridge(hub *Hub, rdb *redis.Client) *Bridge {
	return &Bridge{
		hub:    hub,
		rdb:    rdb,
		origin: uuid.NewString(),
	}
}

func (b *Bridge) PublishZoneUpdate(gateIDs []string, zone any) {
	b.hub.PublishZoneUpdate(gateIDs, zone)
	b.forward(gateIDs, MessageZoneUpdate, zone)
}

func (b *Bridge) PublishAdminUpdate(update AdminUpdate) {
	b.hub.PublishAdminUpdate(update)
	b.forward(nil, MessageAdminUpdate, update)
}

func (b *Bridge) forward(gateIDs []string, msgType string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		logger.Error("bridge payload marshal failed", "type", msgType, "error", err)
		return
	}
	frame, err := json.Marshal(busFrame{
		Origin:  b.origin,
		GateIDs: gateIDs,
		Type:    msgType,
		Payload: raw,
	})
	if err != nil {
		logger.Error("bridge frame marshal failed", "type", msgType, "error", err)
		return
	}
	if err := b.rdb.Publish(context.Background(), bridgeChannel, frame).Err(); err != nil {
		// Local fan-out already happened; a bridge failure is logged, not fatal.
		logger.Error("bridge publish failed", "type", msgType, "error", err)
	}
}

// Run consumes remote frames until ctx is cancelled. Frames originating
// from this instance are skipped to avoid double delivery.
func (b *Bridge) Run(ctx context.Context) {
	sub := b.rdb.Subscribe(ctx, bridgeChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var frame busFrame
			if err := json.Unmarshal([]byte(msg.Payload), &frame); err != nil {
				logger.Error("bridge frame decode failed", "error", err)
				continue
			}
			if frame.Origin == b.origin {
				continue
			}
			b.deliverRemote(frame)
		}
	}
}

func (b *Bridge) deliverRemote(frame busFrame) {
	switch frame.Type {
	case MessageZoneUpdate:
		var zone map[string]any
		if err := json.Unmarshal(frame.Payload, &zone); err != nil {
			logger.Error("bridge zone payload decode failed", "error", err)
			return
		}
		b.hub.PublishZoneUpdate(frame.GateIDs, zone)
	case MessageAdminUpdate:
		var update AdminUpdate
		if err := json.Unmarshal(frame.Payload, &update); err != nil {
			logger.Error("bridge admin payload decode failed", "error", err)
			return
		}
		b.hub.PublishAdminUpdate(update)
	}
}
