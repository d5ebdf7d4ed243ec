package app

import (
	"context"
	"encoding/json"
	"log"

	"festival-quiz/internal/domain"
)

const (
	// ThemeKey holds the last known theme string.
	ThemeKey = "quizapp.theme"
	// QuestionsKey holds the JSON array of drafted question records.
	QuestionsKey = "quizapp.questions"
)

// KeyValueStore abstracts the device-scoped storage behind the local cache (memory, SQLite, Redis).
type KeyValueStore interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// LocalCache is a typed accessor over a KeyValueStore.
type LocalCache struct {
	store KeyValueStore
}

func NewLocalCache(store KeyValueStore) *LocalCache {
	return &LocalCache{store: store}
}

// Get returns the stored value. Backend failures are logged and reported as absent.
func (c *LocalCache) Get(ctx context.Context, key string) (string, bool) {
	value, ok, err := c.store.Get(ctx, key)
	if err != nil {
		log.Printf("local cache: read %s: %v", key, err)
		return "", false
	}
	return value, ok
}

func (c *LocalCache) Set(ctx context.Context, key, value string) error {
	return c.store.Set(ctx, key, value)
}

// GetList decodes the record list stored under key. Missing or malformed data yields an empty list.
func (c *LocalCache) GetList(ctx context.Context, key string) []domain.QuestionRecord {
	raw, ok := c.Get(ctx, key)
	if !ok || raw == "" {
		return []domain.QuestionRecord{}
	}
	var list []domain.QuestionRecord
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		log.Printf("local cache: %s: %v: %v", key, domain.ErrMalformedData, err)
		return []domain.QuestionRecord{}
	}
	if list == nil {
		return []domain.QuestionRecord{}
	}
	return list
}

// SetList overwrites key with the JSON encoding of list.
func (c *LocalCache) SetList(ctx context.Context, key string, list []domain.QuestionRecord) error {
	if list == nil {
		list = []domain.QuestionRecord{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, key, string(data))
}

// Theme returns the cached theme; blank values count as absent.
func (c *LocalCache) Theme(ctx context.Context) (string, bool) {
	theme, ok := c.Get(ctx, ThemeKey)
	if !ok || isBlank(theme) {
		return "", false
	}
	return theme, true
}

func (c *LocalCache) SetTheme(ctx context.Context, theme string) error {
	return c.Set(ctx, ThemeKey, theme)
}

// ThemeOrPlaceholder returns the cached theme or domain.ThemePlaceholder.
func (c *LocalCache) ThemeOrPlaceholder(ctx context.Context) string {
	if theme, ok := c.Theme(ctx); ok {
		return theme
	}
	return domain.ThemePlaceholder
}

func (c *LocalCache) Drafts(ctx context.Context) []domain.QuestionRecord {
	return c.GetList(ctx, QuestionsKey)
}

func (c *LocalCache) SetDrafts(ctx context.Context, list []domain.QuestionRecord) error {
	return c.SetList(ctx, QuestionsKey, list)
}
