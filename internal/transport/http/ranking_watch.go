package http

import (
	"context"
	"fmt"
	"strings"

	"festival-quiz/internal/domain"
	"github.com/gorilla/websocket"
)

// WatchRanking follows /ws/ranking and calls fn with every snapshot until ctx is done
// or the server closes the stream.
func (c *Client) WatchRanking(ctx context.Context, fn func([]domain.RankingEntry)) error {
	url := wsURL(c.baseURL) + "/ws/ranking"
	dialer := websocket.Dialer{HandshakeTimeout: c.timeout}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-stop:
		}
	}()

	for {
		var msg outboundMessage[[]domain.RankingEntry]
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("%w: %v", domain.ErrTransport, err)
		}
		if msg.Type != "ranking" || msg.Payload == nil {
			continue
		}
		fn(msg.Payload)
	}
}

func wsURL(baseURL string) string {
	switch {
	case strings.HasPrefix(baseURL, "https://"):
		return "wss://" + strings.TrimPrefix(baseURL, "https://")
	case strings.HasPrefix(baseURL, "http://"):
		return "ws://" + strings.TrimPrefix(baseURL, "http://")
	default:
		return baseURL
	}
}
