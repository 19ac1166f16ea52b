package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"otc-signal-bot/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisPersister snapshots sessions into Redis as JSON with a TTL.
type RedisPersister struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPersister(client *redis.Client, ttl time.Duration) *RedisPersister {
	return &RedisPersister{client: client, ttl: ttl}
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("session:%d", userID)
}

func (p *RedisPersister) Load(ctx context.Context, userID int64) (*domain.Session, error) {
	raw, err := p.client.Get(ctx, sessionKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session %d: %w", userID, err)
	}
	return &sess, nil
}

func (p *RedisPersister) Save(ctx context.Context, sess *domain.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %d: %w", sess.UserID, err)
	}
	return p.client.Set(ctx, sessionKey(sess.UserID), raw, p.ttl).Err()
}

func (p *RedisPersister) Delete(ctx context.Context, userID int64) error {
	return p.client.Del(ctx, sessionKey(userID)).Err()
}
