package websocket

import (
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func TestSendMessageAfterClose(t *testing.T) {
	client, _ := wsPair(t)
	client.Close()
	client.Close() // idempotent

	err := client.SendMessage([]byte("late frame"))
	assert.ErrorIs(t, err, websocket.ErrCloseSent)
}

// A broadcast racing a disconnecting client must fail softly, never
// panic on the sender's goroutine.
func TestSendMessageDuringClose(t *testing.T) {
	client, _ := wsPair(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			client.SendMessage([]byte("frame"))
		}
	}()
	client.Close()
	<-done

	assert.True(t, client.IsClosed())
}
