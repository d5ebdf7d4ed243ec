package app

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"festival-quiz/internal/domain"
	"golang.org/x/sync/singleflight"
)

var medals = [...]string{"🥇", "🥈", "🥉"}

// RankingRemote is the remote half of the score and ranking contract.
type RankingRemote interface {
	SubmitScore(ctx context.Context, userName string, score int) error
	Ranking(ctx context.Context) ([]domain.RankingEntry, error)
	ResetRanking(ctx context.Context) error
}

// Resetter discards local session state after a round reset.
type Resetter interface {
	Reset()
}

// RankingClient submits finished scores and fetches the shared leaderboard.
type RankingClient struct {
	remote RankingRemote
	sf     singleflight.Group
}

func NewRankingClient(remote RankingRemote) *RankingClient {
	return &RankingClient{remote: remote}
}

// SubmitScore sends the score once. Failures are reported as SubmitFailed and are not retried.
func (c *RankingClient) SubmitScore(ctx context.Context, userName string, score int) domain.SubmitOutcome {
	key := "submit:" + userName + "," + strconv.Itoa(score)
	_, err, _ := c.sf.Do(key, func() (interface{}, error) {
		return nil, c.remote.SubmitScore(ctx, userName, score)
	})
	if err != nil {
		log.Printf("ranking: submit failed for %q: %v", userName, err)
		return domain.SubmitFailed
	}
	return domain.SubmitOK
}

// FetchRanking returns the remote order untouched. Any failure is reported as ErrRankingUnavailable,
// never as an empty list.
func (c *RankingClient) FetchRanking(ctx context.Context) ([]domain.RankingEntry, error) {
	result, err, _ := c.sf.Do("ranking", func() (interface{}, error) {
		return c.remote.Ranking(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRankingUnavailable, err)
	}
	entries := result.([]domain.RankingEntry)
	if entries == nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRankingUnavailable, domain.ErrMalformedData)
	}
	out := make([]domain.RankingEntry, len(entries))
	copy(out, entries)
	return out, nil
}

// ResetRanking clears the remote round and then discards the local session.
// Callers must have obtained explicit confirmation first.
func (c *RankingClient) ResetRanking(ctx context.Context, session Resetter) error {
	if err := c.remote.ResetRanking(ctx); err != nil {
		return err
	}
	if session != nil {
		session.Reset()
	}
	return nil
}

// RenderRanking decorates entries for display. A row is marked Self when both name and
// score equal self's; two players sharing both are indistinguishable.
func RenderRanking(entries []domain.RankingEntry, self *domain.SessionResult) domain.RankingView {
	view := domain.RankingView{Rows: make([]domain.RankingRow, 0, len(entries))}
	for i, entry := range entries {
		row := domain.RankingRow{
			Rank:  i + 1,
			Name:  entry.Name,
			Score: entry.Score,
		}
		if i < len(medals) {
			row.Medal = medals[i]
		}
		if self != nil && entry.Name == self.UserName && entry.Score == self.Score {
			row.Self = true
		}
		view.Rows = append(view.Rows, row)
	}
	if len(entries) > 0 {
		view.Winner = entries[0].Name
	}
	return view
}
