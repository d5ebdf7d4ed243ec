package redis

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"time"

	"festival-quiz/internal/app"
	"festival-quiz/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// QuestionCache caches question sets in Redis as JSON and falls back to a loader on cache miss.
// Sets are stored as: SET quiz:questions:{setID} <json array>
type QuestionCache struct {
	client *redis.Client
	loader app.QuestionSource
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuestionCache(client *redis.Client, loader app.QuestionSource, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuestionCache) LoadQuestions(ctx context.Context, setID string) ([]domain.Question, error) {
	if questions, ok := c.cached(ctx, setID); ok {
		return questions, nil
	}

	result, err, _ := c.sf.Do(setID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if questions, ok := c.cached(ctx, setID); ok {
			return questions, nil
		}

		questions, err := c.loader.LoadQuestions(ctx, setID)
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(questions)
		if err != nil {
			return nil, err
		}
		if err := c.client.Set(ctx, c.key(setID), data, c.ttlWithJitter()).Err(); err != nil {
			log.Printf("question cache: store %s: %v", setID, err)
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *QuestionCache) cached(ctx context.Context, setID string) ([]domain.Question, bool) {
	raw, err := c.client.Get(ctx, c.key(setID)).Bytes()
	if err != nil {
		return nil, false
	}
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil || len(questions) == 0 {
		return nil, false
	}
	return questions, true
}

func (c *QuestionCache) key(setID string) string {
	return "quiz:questions:" + setID
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
