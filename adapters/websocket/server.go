package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/guru-assistant/guru/domain"
	"github.com/guru-assistant/guru/usecase"
	"github.com/guru-assistant/guru/utils/log"
	"github.com/guru-assistant/guru/voice"
)

// Server mirrors the conversation to websocket clients. Completed turns
// published on the reply topic are broadcast to everyone; inbound text
// frames are treated as transcript lines and only reach the relay when
// they start with the wake phrase.
type Server struct {
	upgrader websocket.Upgrader
	svc      *usecase.ChatService
	broker   domain.MessageBroker
	hasher   domain.Hasher
	detector *voice.Detector
	hub      *Hub
}

type feedFrame struct {
	Type      string    `json:"type"`
	UserText  string    `json:"user_text,omitempty"`
	ReplyText string    `json:"reply_text,omitempty"`
	Sentiment string    `json:"sentiment,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewServer(svc *usecase.ChatService, broker domain.MessageBroker, hasher domain.Hasher, detector *voice.Detector) *Server {
	server := &Server{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		svc:      svc,
		broker:   broker,
		hasher:   hasher,
		detector: detector,
		hub:      NewHub(),
	}

	go server.startReplyListener()

	return server
}

func (s *Server) RunWebsocketHub() {
	s.hub.Run()
}

func (s *Server) GetHub() *Hub {
	return s.hub
}

// startReplyListener relays completed chat turns from the broker onto
// every connected client.
func (s *Server) startReplyListener() {
	ctx := context.Background()

	messageChan, err := s.broker.Subscribe(ctx, usecase.ReplyTopic, "")
	if err != nil {
		log.WithCtx(ctx).Error("subscribing to reply topic", zap.Error(err))
		return
	}

	log.WithCtx(ctx).Info("websocket server listening for completed turns")

	for {
		select {
		case msg, ok := <-messageChan:
			if !ok {
				return
			}
			var event domain.ReplyEvent
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				log.WithCtx(ctx).Error("unmarshaling reply event", zap.Error(err))
				continue
			}

			frame, err := json.Marshal(feedFrame{
				Type:      "turn",
				UserText:  event.UserText,
				ReplyText: event.ReplyText,
				Sentiment: event.Sentiment,
				Timestamp: event.Timestamp,
			})
			if err != nil {
				log.WithCtx(ctx).Error("marshaling feed frame", zap.Error(err))
				continue
			}

			s.hub.Broadcast(frame)

		case <-ctx.Done():
			return
		}
	}
}

// handleInbound gates a transcript line on the wake phrase and, when it
// matches, answers over the same connection. The reply listener's
// broadcast covers the rest of the feed.
func (s *Server) handleInbound(ctx context.Context, client *Client, text string) {
	query, ok := s.detector.Match(text)
	if !ok || query == "" {
		log.WithCtx(ctx).Debug("transcript line ignored, no wake phrase")
		return
	}
	if s.svc == nil {
		s.sendError(client, "AI service is not available due to initialization issues.")
		return
	}

	reply := s.svc.Ask(ctx, query)

	frame, err := json.Marshal(feedFrame{
		Type:      "reply",
		UserText:  query,
		ReplyText: reply,
		Timestamp: time.Now(),
	})
	if err != nil {
		log.WithCtx(ctx).Error("marshaling reply frame", zap.Error(err))
		return
	}
	client.SendMessage(frame)
}

func (s *Server) sendError(client *Client, message string) {
	frame, err := json.Marshal(feedFrame{Type: "error", ReplyText: message, Timestamp: time.Now()})
	if err != nil {
		return
	}
	client.SendMessage(frame)
}

// connID derives a stable id for logging from the remote address and
// connect time.
func (s *Server) connID(r *http.Request) string {
	seed := fmt.Sprintf("%s|%d", r.RemoteAddr, time.Now().UnixNano())
	return s.hasher.Hash([]byte(seed))[:12]
}
