package notify_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfstore/lojinha/internal/notify"
)

func TestBroadcaster_PublishReachesAllSubscribers(t *testing.T) {
	b := notify.NewBroadcaster()
	defer b.Close()

	ch1, cancel1 := b.Subscribe()
	defer cancel1()

	ch2, cancel2 := b.Subscribe()
	defer cancel2()

	ev := notify.PurchaseEvent{OwnerID: "u1", Item: "Red Bull", Qty: 2, Total: 1400, OccurredAt: time.Now()}
	b.Publish(ev)

	assert.Equal(t, ev, <-ch1)
	assert.Equal(t, ev, <-ch2)
}

func TestBroadcaster_CancelStopsDelivery(t *testing.T) {
	b := notify.NewBroadcaster()
	defer b.Close()

	ch, cancel := b.Subscribe()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Publishing after cancel must not panic.
	b.Publish(notify.PurchaseEvent{OwnerID: "u1"})
}

func TestBroadcaster_SlowSubscriberIsSkipped(t *testing.T) {
	b := notify.NewBroadcaster()
	defer b.Close()

	ch, cancel := b.Subscribe()
	defer cancel()

	// Overflow the buffer; extra events are dropped, Publish never blocks.
	for i := 0; i < 100; i++ {
		b.Publish(notify.PurchaseEvent{Qty: i})
	}

	drained := 0
	for {
		select {
		case <-ch:
			drained++
			continue
		default:
		}
		break
	}

	assert.Greater(t, drained, 0)
	assert.Less(t, drained, 100)
}

func TestBroadcaster_CloseIsIdempotentAndClosesChannels(t *testing.T) {
	b := notify.NewBroadcaster()

	ch, _ := b.Subscribe()

	b.Close()
	b.Close()

	_, open := <-ch
	assert.False(t, open)

	// Subscribing after close yields an already-closed channel.
	late, cancel := b.Subscribe()
	defer cancel()

	_, open = <-late
	require.False(t, open)
}
