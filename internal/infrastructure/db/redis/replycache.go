package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/loopdesk/chat-api/internal/core/ports"
)

const replyTTL = time.Hour

// ReplyCache decorates a ReplyGenerator with a Redis cache keyed by a digest
// of the message content. Cache failures are logged and fall through to the
// inner generator; a degraded cache never fails message creation.
type ReplyCache struct {
	client *redis.Client
	inner  ports.ReplyGenerator
	log    zerolog.Logger
}

// NewReplyCache wraps inner with caching backed by client.
func NewReplyCache(client *redis.Client, inner ports.ReplyGenerator, log zerolog.Logger) *ReplyCache {
	return &ReplyCache{client: client, inner: inner, log: log}
}

func (c *ReplyCache) Reply(ctx context.Context, content string) (string, error) {
	key := c.key(content)

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		return cached, nil
	}
	if err != redis.Nil {
		c.log.Warn().Err(err).Msg("reply cache read failed")
	}

	reply, err := c.inner.Reply(ctx, content)
	if err != nil {
		return "", err
	}

	if err := c.client.Set(ctx, key, reply, replyTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("reply cache write failed")
	}
	return reply, nil
}

func (c *ReplyCache) key(content string) string {
	sum := sha256.Sum256([]byte(content))
	return "reply:" + hex.EncodeToString(sum[:])
}
