package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

// AnswerCache holds recent query answers keyed by question, language and
// query type. Strictly best-effort: a cold or unreachable redis just means
// the pipeline runs.
type AnswerCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAnswerCache(client *redis.Client, ttl time.Duration) *AnswerCache {
	return &AnswerCache{client: client, ttl: ttl}
}

func answerKey(question, language, queryType string) string {
	sum := sha256.Sum256([]byte(queryType + "\x00" + language + "\x00" + question))
	return "answer:" + hex.EncodeToString(sum[:])
}

func (c *AnswerCache) Get(ctx context.Context, question, language, queryType string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, answerKey(question, language, queryType)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *AnswerCache) Set(ctx context.Context, question, language, queryType, answer string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(ctx, answerKey(question, language, queryType), answer, c.ttl)
}
