package websocket

import (
	"sync/atomic"

	"github.com/guru-assistant/guru/utils/log"
)

const broadcastBuffer = 256

// Hub owns the set of connected clients. The run goroutine is the sole
// reader and writer of the client map; registration, removal and
// broadcast all funnel through its channels, so no other goroutine ever
// touches the map.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	count      atomic.Int64
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, broadcastBuffer),
	}
}

func (h *Hub) Run() {
	go h.run()
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.count.Add(1)
			log.WithCtx(client.ctx).Debug("client registered")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				h.count.Add(-1)
				client.Close()
				log.WithCtx(client.ctx).Debug("client unregistered")
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				if !client.IsClosed() {
					client.SendMessage(message)
				}
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast queues a frame for every connected client. Delivery happens
// on the hub goroutine; a full queue drops the frame rather than
// stalling the reply listener.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		log.With().Warn("broadcast queue full, dropping frame")
	}
}

func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}
