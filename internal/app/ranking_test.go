package app_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"festival-quiz/internal/app"
	"festival-quiz/internal/domain"
)

func TestSubmitScoreOutcomes(t *testing.T) {
	ctx := context.Background()

	remote := &fakeRemote{}
	if got := app.NewRankingClient(remote).SubmitScore(ctx, "Alice", 2); got != domain.SubmitOK {
		t.Fatalf("expected ok, got %s", got)
	}
	if want := []domain.RankingEntry{{Name: "Alice", Score: 2}}; !reflect.DeepEqual(remote.submitted, want) {
		t.Fatalf("submitted %+v", remote.submitted)
	}

	if got := app.NewRankingClient(&fakeRemote{offline: true}).SubmitScore(ctx, "Alice", 2); got != domain.SubmitFailed {
		t.Fatalf("expected submission_failed, got %s", got)
	}
}

func TestFetchRankingKeepsRemoteOrder(t *testing.T) {
	remote := &fakeRemote{ranking: []domain.RankingEntry{
		{Name: "Bob", Score: 3},
		{Name: "Alice", Score: 2},
		{Name: "Zed", Score: 2},
	}}

	entries, err := app.NewRankingClient(remote).FetchRanking(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !reflect.DeepEqual(entries, remote.ranking) {
		t.Fatalf("order changed: %+v", entries)
	}
}

func TestFetchRankingEmptyIsNotAnError(t *testing.T) {
	entries, err := app.NewRankingClient(&fakeRemote{}).FetchRanking(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty ranking, got %+v", entries)
	}
}

func TestFetchRankingFailuresAreUnavailable(t *testing.T) {
	ctx := context.Background()

	if _, err := app.NewRankingClient(&fakeRemote{offline: true}).FetchRanking(ctx); !errors.Is(err, domain.ErrRankingUnavailable) {
		t.Fatalf("offline: %v", err)
	}

	malformed := &fakeRemote{rankingErr: fmt.Errorf("%w: unexpected end of JSON input", domain.ErrMalformedData)}
	entries, err := app.NewRankingClient(malformed).FetchRanking(ctx)
	if !errors.Is(err, domain.ErrRankingUnavailable) {
		t.Fatalf("malformed: %v", err)
	}
	if entries != nil {
		t.Fatalf("no entries expected on failure, got %+v", entries)
	}
}

func TestRenderRankingMarksMedalsAndSelf(t *testing.T) {
	entries := []domain.RankingEntry{
		{Name: "Bob", Score: 3},
		{Name: "Alice", Score: 2},
		{Name: "Carol", Score: 1},
		{Name: "Dave", Score: 0},
	}

	view := app.RenderRanking(entries, &domain.SessionResult{UserName: "Bob", Score: 3})

	want := []domain.RankingRow{
		{Rank: 1, Medal: "🥇", Name: "Bob", Score: 3, Self: true},
		{Rank: 2, Medal: "🥈", Name: "Alice", Score: 2},
		{Rank: 3, Medal: "🥉", Name: "Carol", Score: 1},
		{Rank: 4, Name: "Dave", Score: 0},
	}
	if !reflect.DeepEqual(view.Rows, want) {
		t.Fatalf("rows %+v, want %+v", view.Rows, want)
	}
	if !view.HasWinner() || view.Winner != "Bob" {
		t.Fatalf("expected Bob as winner, got %q", view.Winner)
	}
}

func TestRenderRankingSelfNeedsNameAndScore(t *testing.T) {
	entries := []domain.RankingEntry{{Name: "Bob", Score: 3}, {Name: "Alice", Score: 2}}

	for _, self := range []*domain.SessionResult{{UserName: "Bob", Score: 2}, nil} {
		for _, row := range app.RenderRanking(entries, self).Rows {
			if row.Self {
				t.Fatalf("row %+v wrongly marked self for %+v", row, self)
			}
		}
	}
}

func TestRenderRankingDuplicateIdentityHighlightsBoth(t *testing.T) {
	entries := []domain.RankingEntry{{Name: "Bob", Score: 3}, {Name: "Bob", Score: 3}}

	view := app.RenderRanking(entries, &domain.SessionResult{UserName: "Bob", Score: 3})
	if !view.Rows[0].Self || !view.Rows[1].Self {
		t.Fatalf("expected both rows marked, got %+v", view.Rows)
	}
}

func TestRenderRankingEmpty(t *testing.T) {
	view := app.RenderRanking([]domain.RankingEntry{}, nil)
	if len(view.Rows) != 0 || view.HasWinner() {
		t.Fatalf("expected empty view, got %+v", view)
	}
}

func TestResetRankingDiscardsSession(t *testing.T) {
	remote := &fakeRemote{ranking: []domain.RankingEntry{{Name: "Bob", Score: 3}}}
	engine := newTestEngine(t, remote)
	mustStart(t, engine, "Bob")

	if err := app.NewRankingClient(remote).ResetRanking(context.Background(), engine); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if remote.resets != 1 {
		t.Fatalf("expected one remote reset, got %d", remote.resets)
	}
	if engine.State() != domain.StateNotStarted {
		t.Fatalf("expected session discarded, got %s", engine.State())
	}
}

func TestResetRankingFailureKeepsSession(t *testing.T) {
	remote := &fakeRemote{offline: true}
	engine := newTestEngine(t, remote)
	mustStart(t, engine, "Bob")

	err := app.NewRankingClient(remote).ResetRanking(context.Background(), engine)
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if engine.State() != domain.StateInProgress {
		t.Fatalf("session must survive a failed reset, got %s", engine.State())
	}
}
