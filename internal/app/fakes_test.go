package app_test

import (
	"context"
	"errors"
	"fmt"

	"festival-quiz/internal/app"
	"festival-quiz/internal/domain"
	"festival-quiz/internal/infra/memory"
)

var errOffline = fmt.Errorf("%w: dial tcp: connection refused", domain.ErrTransport)

// fakeRemote implements ThemeRemote and RankingRemote in memory.
type fakeRemote struct {
	offline bool
	theme   string

	ranking    []domain.RankingEntry
	rankingErr error
	submitted  []domain.RankingEntry
	resets     int
}

func (f *fakeRemote) CurrentTheme(context.Context) (string, error) {
	if f.offline {
		return "", errOffline
	}
	return f.theme, nil
}

func (f *fakeRemote) SaveTheme(_ context.Context, theme string) error {
	if f.offline {
		return errOffline
	}
	f.theme = theme
	return nil
}

func (f *fakeRemote) SubmitScore(_ context.Context, userName string, score int) error {
	if f.offline {
		return errOffline
	}
	f.submitted = append(f.submitted, domain.RankingEntry{Name: userName, Score: score})
	return nil
}

func (f *fakeRemote) Ranking(context.Context) ([]domain.RankingEntry, error) {
	if f.offline {
		return nil, errOffline
	}
	if f.rankingErr != nil {
		return nil, f.rankingErr
	}
	if f.ranking == nil {
		return []domain.RankingEntry{}, nil
	}
	return f.ranking, nil
}

func (f *fakeRemote) ResetRanking(context.Context) error {
	if f.offline {
		return errOffline
	}
	f.resets++
	f.ranking = nil
	return nil
}

// failingStore rejects every write.
type failingStore struct {
	*memory.KVStore
}

func (failingStore) Set(context.Context, string, string) error {
	return errors.New("disk full")
}

// flakyStore fails writes while fail is set.
type flakyStore struct {
	*memory.KVStore
	fail bool
}

func (s *flakyStore) Set(ctx context.Context, key, value string) error {
	if s.fail {
		return errors.New("disk full")
	}
	return s.KVStore.Set(ctx, key, value)
}

func newCache() (*app.LocalCache, *memory.KVStore) {
	store := memory.NewKVStore()
	return app.NewLocalCache(store), store
}
