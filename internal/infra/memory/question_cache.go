package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"festival-quiz/internal/app"
	"festival-quiz/internal/domain"
	"golang.org/x/sync/singleflight"
)

// QuestionCache caches question sets with TTL to avoid repeated loader hits.
type QuestionCache struct {
	loader app.QuestionSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedSet
}

type cachedSet struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewQuestionCache(loader app.QuestionSource, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedSet),
	}
}

func (c *QuestionCache) LoadQuestions(ctx context.Context, setID string) ([]domain.Question, error) {
	if questions, ok := c.lookup(setID); ok {
		return questions, nil
	}

	result, err, _ := c.sf.Do(setID, func() (interface{}, error) {
		if questions, ok := c.lookup(setID); ok {
			return questions, nil
		}

		questions, err := c.loader.LoadQuestions(ctx, setID)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cache[setID] = cachedSet{
			questions: questions,
			expiresAt: c.clock().Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *QuestionCache) lookup(setID string) ([]domain.Question, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[setID]
	if !ok || !entry.expiresAt.After(c.clock()) {
		return nil, false
	}
	return entry.questions, true
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
