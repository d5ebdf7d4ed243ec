package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"festival-quiz/internal/domain"
	"golang.org/x/sync/singleflight"
)

// ThemeRemote is the remote half of the theme contract.
type ThemeRemote interface {
	CurrentTheme(ctx context.Context) (string, error)
	SaveTheme(ctx context.Context, theme string) error
}

// ThemeSync reconciles the theme between the local cache and the remote service.
// Precedence on read: remote, then local, then the placeholder.
type ThemeSync struct {
	cache  *LocalCache
	remote ThemeRemote
	sf     singleflight.Group
}

func NewThemeSync(cache *LocalCache, remote ThemeRemote) *ThemeSync {
	return &ThemeSync{cache: cache, remote: remote}
}

// ResolveTheme never fails; remote problems degrade to the cached value or the placeholder.
func (s *ThemeSync) ResolveTheme(ctx context.Context) string {
	result, _, _ := s.sf.Do("resolve", func() (interface{}, error) {
		remote, err := s.remote.CurrentTheme(ctx)
		if err != nil {
			log.Printf("theme: remote fetch failed, using local cache: %v", err)
		} else if theme := strings.TrimSpace(remote); theme != "" {
			if err := s.cache.SetTheme(ctx, theme); err != nil {
				log.Printf("theme: cache write failed: %v", err)
			}
			return theme, nil
		}
		return s.cache.ThemeOrPlaceholder(ctx), nil
	})
	return result.(string)
}

// PublishTheme stores theme locally and then remotely. A remote failure is reported
// as PublishLocalOnly; the local write is kept.
func (s *ThemeSync) PublishTheme(ctx context.Context, theme string) (domain.PublishOutcome, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return domain.PublishLocalOnly, fmt.Errorf("%w: theme is required", domain.ErrValidation)
	}
	if err := s.cache.SetTheme(ctx, theme); err != nil {
		return domain.PublishLocalOnly, fmt.Errorf("save theme locally: %w", err)
	}

	_, err, _ := s.sf.Do("publish:"+theme, func() (interface{}, error) {
		return nil, s.remote.SaveTheme(ctx, theme)
	})
	if err != nil {
		log.Printf("theme: saved locally only: %v", err)
		return domain.PublishLocalOnly, nil
	}
	return domain.PublishSynced, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
