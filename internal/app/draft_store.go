package app

import (
	"context"
	"fmt"

	"festival-quiz/internal/domain"
)

const previewRunes = 20

// DraftFields are the authored parts of a question record; the store assigns the id.
type DraftFields struct {
	Theme      string
	Text       string
	Supplement string
	Choices    []domain.Choice
	CorrectID  string
	Source     domain.DraftSource
}

// DraftStore is an append-only list of drafted questions persisted through the local cache.
// Ids are assigned as len(list)+1 and are only unique within one device's list.
type DraftStore struct {
	cache  *LocalCache
	drafts []domain.QuestionRecord
}

// NewDraftStore loads the persisted list once; later ids continue from its length.
func NewDraftStore(ctx context.Context, cache *LocalCache) *DraftStore {
	return &DraftStore{
		cache:  cache,
		drafts: cache.Drafts(ctx),
	}
}

// AppendDraft stores fields as-is; only an empty theme is filled from the cache.
// A draft that could not be persisted is not kept.
func (s *DraftStore) AppendDraft(ctx context.Context, fields DraftFields) (domain.QuestionRecord, error) {
	theme := fields.Theme
	if isBlank(theme) {
		theme = s.cache.ThemeOrPlaceholder(ctx)
	}

	choices := make([]domain.Choice, len(fields.Choices))
	copy(choices, fields.Choices)

	record := domain.QuestionRecord{
		ID:         len(s.drafts) + 1,
		Theme:      theme,
		Text:       fields.Text,
		Supplement: fields.Supplement,
		Choices:    choices,
		CorrectID:  fields.CorrectID,
		Source:     fields.Source,
	}
	s.drafts = append(s.drafts, record)

	if err := s.cache.SetDrafts(ctx, s.drafts); err != nil {
		s.drafts = s.drafts[:len(s.drafts)-1]
		return domain.QuestionRecord{}, fmt.Errorf("persist drafts: %w", err)
	}
	return record, nil
}

// ListDraftSummaries always returns at least one entry.
func (s *DraftStore) ListDraftSummaries() []domain.DraftSummary {
	if len(s.drafts) == 0 {
		return []domain.DraftSummary{domain.NoDraftsSummary}
	}
	summaries := make([]domain.DraftSummary, 0, len(s.drafts))
	for _, d := range s.drafts {
		summaries = append(summaries, domain.DraftSummary{
			ID:      d.ID,
			Preview: preview(d.Text),
			Source:  d.Source,
		})
	}
	return summaries
}

func (s *DraftStore) Drafts() []domain.QuestionRecord {
	out := make([]domain.QuestionRecord, len(s.drafts))
	copy(out, s.drafts)
	return out
}

func (s *DraftStore) Len() int {
	return len(s.drafts)
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewRunes {
		return text
	}
	return string(runes[:previewRunes]) + "..."
}
