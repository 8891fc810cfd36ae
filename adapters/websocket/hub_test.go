package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wsPair upgrades one connection against an httptest server and returns
// the server side wrapped in a Client plus the dialing side.
func wsPair(t *testing.T) (*Client, *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	serverConns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	dialer, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { dialer.Close() })

	client := NewClient("test-conn", <-serverConns, nil)
	t.Cleanup(client.Close)
	return client, dialer
}

func TestHubBroadcastDelivers(t *testing.T) {
	hub := NewHub()
	hub.Run()

	client, dialer := wsPair(t)
	client.Run()
	hub.Register(client)

	hub.Broadcast([]byte(`{"type":"turn"}`))

	dialer.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, message, err := dialer.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, `{"type":"turn"}`, string(message))
}

// Broadcasting while clients connect and disconnect must never touch
// the client map from two goroutines.
func TestHubBroadcastDuringMembershipChurn(t *testing.T) {
	hub := NewHub()
	hub.Run()

	clients := make([]*Client, 0, 8)
	for i := 0; i < 8; i++ {
		client, _ := wsPair(t)
		clients = append(clients, client)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, client := range clients {
			hub.Register(client)
		}
		for _, client := range clients[:4] {
			hub.Unregister(client)
		}
	}()

	for i := 0; i < 200; i++ {
		hub.Broadcast([]byte("turn completed"))
	}
	wg.Wait()

	assert.Eventually(t, func() bool { return hub.ClientCount() == 4 },
		time.Second, 10*time.Millisecond)
}
