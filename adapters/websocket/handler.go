package websocket

import (
	"github.com/labstack/echo/v4"
)

// Handler upgrades GET /ws connections into live-feed clients.
func (s *Server) Handler(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := NewClient(s.connID(c.Request()), conn, s.handleInbound)
	s.hub.Register(client)
	client.Run()

	defer s.hub.Unregister(client)

	// Block until the connection is gone.
	<-client.Context().Done()

	return nil
}
