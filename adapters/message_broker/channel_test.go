package message_broker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSubscribe(t *testing.T) {
	b := NewChannelMessageBroker()
	defer b.Close()

	ctx := context.Background()
	sub, err := b.Subscribe(ctx, "chat.replies", "")
	require.NoError(t, err)

	require.NoError(t, b.Publish(ctx, "chat.replies", "", []byte("payload")))

	select {
	case msg := <-sub:
		assert.Equal(t, "chat.replies", msg.Topic)
		assert.Equal(t, []byte("payload"), msg.Payload)
	case <-time.After(time.Second):
		t.Fatal("message never delivered")
	}
}

func TestRoutingKeysAreIsolated(t *testing.T) {
	b := NewChannelMessageBroker()
	defer b.Close()

	ctx := context.Background()
	sub, err := b.Subscribe(ctx, "topic", "a")
	require.NoError(t, err)

	require.NoError(t, b.Publish(ctx, "topic", "b", []byte("other key")))

	select {
	case msg := <-sub:
		t.Fatalf("unexpected delivery: %s", msg.Payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestClosedBrokerRejectsPublish(t *testing.T) {
	b := NewChannelMessageBroker()
	require.NoError(t, b.Close())
	require.NoError(t, b.Close(), "closing twice is a no-op")

	err := b.Publish(context.Background(), "topic", "", []byte("x"))
	assert.Error(t, err)

	_, err = b.Subscribe(context.Background(), "topic", "")
	assert.Error(t, err)
}
