package app_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"festival-quiz/internal/app"
	"festival-quiz/internal/domain"
)

func TestLocalCacheGetListMissingKey(t *testing.T) {
	cache, _ := newCache()

	list := cache.GetList(context.Background(), app.QuestionsKey)
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", list)
	}
}

func TestLocalCacheGetListMalformedValue(t *testing.T) {
	ctx := context.Background()
	cache, store := newCache()

	for _, raw := range []string{`[{"id": 1, "text": `, `{"id": 1}`} {
		if err := store.Set(ctx, app.QuestionsKey, raw); err != nil {
			t.Fatalf("set: %v", err)
		}
		if list := cache.GetList(ctx, app.QuestionsKey); len(list) != 0 {
			t.Fatalf("expected empty list for %q, got %+v", raw, list)
		}
	}
}

func TestLocalCacheSetListRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache, store := newCache()

	record := domain.QuestionRecord{
		ID:         1,
		Theme:      "Edo farming",
		Text:       "What was this tool mainly used for?",
		Supplement: "Manual sample question.",
		Choices: []domain.Choice{
			{ID: "a", Text: "Tilling fields"},
			{ID: "b", Text: "Currency"},
		},
		CorrectID: "a",
		Source:    domain.SourceManual,
	}
	if err := cache.SetList(ctx, app.QuestionsKey, []domain.QuestionRecord{record}); err != nil {
		t.Fatalf("set list: %v", err)
	}

	raw, ok, err := store.Get(ctx, app.QuestionsKey)
	if err != nil || !ok {
		t.Fatalf("get raw: ok=%v err=%v", ok, err)
	}
	for _, field := range []string{`"correctId":"a"`, `"source":"createQuiz"`} {
		if !strings.Contains(raw, field) {
			t.Fatalf("expected %s in %s", field, raw)
		}
	}

	reloaded := app.NewLocalCache(store).GetList(ctx, app.QuestionsKey)
	if len(reloaded) != 1 || !reflect.DeepEqual(reloaded[0], record) {
		t.Fatalf("round trip changed the record: %+v", reloaded)
	}
}

func TestLocalCacheSetListIsDeterministic(t *testing.T) {
	ctx := context.Background()
	cache, store := newCache()
	list := []domain.QuestionRecord{{ID: 1, Text: "Q", Choices: []domain.Choice{{ID: "a"}, {ID: "b"}}}}

	if err := cache.SetList(ctx, app.QuestionsKey, list); err != nil {
		t.Fatalf("set list: %v", err)
	}
	first, _, _ := store.Get(ctx, app.QuestionsKey)
	if err := cache.SetList(ctx, app.QuestionsKey, list); err != nil {
		t.Fatalf("set list: %v", err)
	}
	second, _, _ := store.Get(ctx, app.QuestionsKey)

	if first != second {
		t.Fatalf("serialization differs: %s vs %s", first, second)
	}
}

func TestLocalCacheBlankThemeIsAbsent(t *testing.T) {
	ctx := context.Background()
	cache, _ := newCache()
	if err := cache.SetTheme(ctx, "   "); err != nil {
		t.Fatalf("set theme: %v", err)
	}

	if _, ok := cache.Theme(ctx); ok {
		t.Fatalf("blank theme should read as absent")
	}
	if got := cache.ThemeOrPlaceholder(ctx); got != domain.ThemePlaceholder {
		t.Fatalf("expected placeholder, got %q", got)
	}
}
