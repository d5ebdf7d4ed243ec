package http

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"festival-quiz/internal/domain"
	"festival-quiz/internal/festival"
	"festival-quiz/internal/infra/memory"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocketRankingStream(t *testing.T) {
	board := festival.NewBoard()
	service := festival.NewService(memory.NewKVStore(), board, memory.NewDemoQuestionSource())
	server := httptest.NewServer(NewRouter(service))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server.URL)+"/ws/ranking", nil)
	require.NoError(t, err)
	defer conn.Close()

	first := readNext(t, conn)
	assert.Empty(t, first)

	board.Submit("Hana", 2)
	second := readNext(t, conn)
	assert.Equal(t, []domain.RankingEntry{{Name: "Hana", Score: 2}}, second)

	board.Reset()
	assert.Empty(t, readNext(t, conn))
}

func TestWatchRanking(t *testing.T) {
	board := festival.NewBoard()
	board.Submit("Ken", 1)
	service := festival.NewService(memory.NewKVStore(), board, memory.NewDemoQuestionSource())
	server := httptest.NewServer(NewRouter(service))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	seen := make(chan []domain.RankingEntry, 4)
	done := make(chan error, 1)
	go func() {
		done <- newTestClient(server.URL, 0).WatchRanking(ctx, func(entries []domain.RankingEntry) {
			seen <- entries
		})
	}()

	select {
	case entries := <-seen:
		assert.Equal(t, []domain.RankingEntry{{Name: "Ken", Score: 1}}, entries)
	case <-ctx.Done():
		t.Fatal("no snapshot received")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func readNext(t *testing.T, conn *websocket.Conn) []domain.RankingEntry {
	t.Helper()
	var msg outboundMessage[[]domain.RankingEntry]
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "ranking", msg.Type)
	return msg.Payload
}
