package realtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(c *Client) []Envelope {
	var got []Envelope
	for {
		select {
		case msg := <-c.Messages():
			got = append(got, msg)
		default:
			return got
		}
	}
}

func TestZoneUpdateReachesOnlySubscribedGates(t *testing.T) {
	hub := NewHub()
	gateA := hub.Register("a")
	gateB := hub.Register("b")
	defer hub.Unregister(gateA)
	defer hub.Unregister(gateB)

	hub.Subscribe(gateA, "gate_1")
	hub.Subscribe(gateB, "gate_2")

	hub.PublishZoneUpdate([]string{"gate_1"}, map[string]any{"id": "zone_a"})

	require.Len(t, drain(gateA), 1)
	assert.Empty(t, drain(gateB))
}

func TestZoneUpdateToZoneOnMultipleGatesDeliveredOnce(t *testing.T) {
	hub := NewHub()
	c := hub.Register("c")
	defer hub.Unregister(c)

	hub.Subscribe(c, "gate_1")
	hub.Subscribe(c, "gate_2")

	// The zone is reachable from both gates the client follows; the client
	// must still get exactly one frame.
	hub.PublishZoneUpdate([]string{"gate_1", "gate_2"}, map[string]any{"id": "zone_a"})

	assert.Len(t, drain(c), 1)
}

func TestAdminUpdateReachesEveryone(t *testing.T) {
	hub := NewHub()
	subscribed := hub.Register("s")
	lurker := hub.Register("l")
	defer hub.Unregister(subscribed)
	defer hub.Unregister(lurker)

	hub.Subscribe(subscribed, "gate_1")

	hub.PublishAdminUpdate(NewAdminUpdate("admin_1", "zone-closed", "zone", "zone_a", map[string]bool{"open": false}))

	require.Len(t, drain(subscribed), 1)
	require.Len(t, drain(lurker), 1)
}

func TestSubscribeIdempotent(t *testing.T) {
	hub := NewHub()
	c := hub.Register("c")
	defer hub.Unregister(c)

	hub.Subscribe(c, "gate_1")
	hub.Subscribe(c, "gate_1")
	assert.Equal(t, 1, hub.SubscriberCount("gate_1"))

	hub.PublishZoneUpdate([]string{"gate_1"}, map[string]any{"id": "zone_a"})
	assert.Len(t, drain(c), 1)
}

func TestUnsubscribeWithoutSubscriptionIsNoop(t *testing.T) {
	hub := NewHub()
	c := hub.Register("c")
	defer hub.Unregister(c)

	assert.NotPanics(t, func() {
		hub.Unsubscribe(c, "gate_never_seen")
	})
	assert.Equal(t, 0, hub.SubscriberCount("gate_never_seen"))
}

func TestSlowClientDoesNotBlockOthers(t *testing.T) {
	hub := NewHub()
	slow := hub.Register("slow")
	fast := hub.Register("fast")
	defer hub.Unregister(slow)
	defer hub.Unregister(fast)

	hub.Subscribe(slow, "gate_1")
	hub.Subscribe(fast, "gate_1")

	// Overflow the slow client's buffer; publishes must keep returning.
	for i := 0; i < clientBufferSize+10; i++ {
		hub.PublishZoneUpdate([]string{"gate_1"}, map[string]any{"seq": i})
		drain(fast)
	}

	// The fast client kept receiving; the slow one capped at its buffer.
	assert.LessOrEqual(t, len(drain(slow)), clientBufferSize)
}

func TestUnregisterDuringPublish(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		c := hub.Register("c")
		hub.Subscribe(c, "gate_1")
		wg.Add(2)
		go func(c *Client) {
			defer wg.Done()
			hub.Unregister(c)
		}(c)
		go func() {
			defer wg.Done()
			hub.PublishZoneUpdate([]string{"gate_1"}, map[string]any{"id": "zone_a"})
		}()
	}
	wg.Wait()
}

func TestPublishAfterUnregisterDropsSilently(t *testing.T) {
	hub := NewHub()
	c := hub.Register("c")
	hub.Subscribe(c, "gate_1")
	hub.Unregister(c)

	assert.NotPanics(t, func() {
		hub.PublishZoneUpdate([]string{"gate_1"}, map[string]any{"id": "zone_a"})
	})
}
