package http

import (
	"log"
	"net/http"
	"time"

	"festival-quiz/internal/domain"
	"festival-quiz/internal/festival"
	"github.com/gorilla/websocket"
)

const wsWriteWait = 10 * time.Second

// WSHandler streams ranking snapshots to scoreboard screens.
type WSHandler struct {
	service  *festival.Service
	upgrader websocket.Upgrader
}

func NewWSHandler(service *festival.Service) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// ServeWS upgrades the request and pushes a "ranking" message after every change.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	// the server's ReadTimeout would otherwise end long-lived streams
	_ = conn.SetReadDeadline(time.Time{})

	updates, cancel := h.service.Subscribe(r.Context())
	defer cancel()

	// The reader only exists to notice the peer going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ranking, ok := <-updates:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			msg := outboundMessage[[]domain.RankingEntry]{Type: "ranking", Payload: ranking}
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
