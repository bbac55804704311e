package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	type payload struct {
		Reference string `json:"reference"`
	}

	ev, err := NewEvent("storefront.checkout.succeeded", "order-1", "checkout", "storefront", payload{Reference: "pi_123"})

	require.NoError(t, err)
	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, "storefront.checkout.succeeded", ev.EventType)
	assert.Equal(t, "order-1", ev.AggregateID)
	assert.Equal(t, "checkout", ev.AggregateType)
	assert.Equal(t, "storefront", ev.Source)
	assert.Equal(t, 1, ev.Version)
	assert.WithinDuration(t, time.Now().UTC(), ev.Timestamp, time.Minute)

	var got payload
	require.NoError(t, ev.UnmarshalData(&got))
	assert.Equal(t, "pi_123", got.Reference)
}

func TestEvent_MarshalRoundTrip(t *testing.T) {
	ev, err := NewEvent("storefront.cart.updated", "session-9", "cart", "storefront", map[string]int{"item_count": 3})
	require.NoError(t, err)
	ev.WithCorrelationID("corr-1")

	data, err := ev.Marshal()
	require.NoError(t, err)

	back, err := UnmarshalEvent(data)
	require.NoError(t, err)
	assert.Equal(t, ev.EventID, back.EventID)
	assert.Equal(t, "corr-1", back.CorrelationID)
	assert.Equal(t, ev.EventType, back.EventType)
}

func TestNewEvent_UnmarshalableData(t *testing.T) {
	_, err := NewEvent("bad", "id", "cart", "storefront", make(chan int))
	assert.Error(t, err)
}

func TestPingBrokers_NoBrokers(t *testing.T) {
	err := PingBrokers(context.Background(), nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no brokers configured")
}

func TestPingBrokers_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := PingBrokers(ctx, []string{"127.0.0.1:1"})
	assert.Error(t, err)
}
