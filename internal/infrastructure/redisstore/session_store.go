package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/auth"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
)

var _ auth.SessionStore = (*SessionStore)(nil)

// SessionStore sesiones de staff serializadas en JSON con TTL.
type SessionStore struct {
	rdb redis.Cmdable
}

func NewSessionStore(rdb redis.Cmdable) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func (s *SessionStore) Save(ctx context.Context, key string, sess auth.Session, ttl time.Duration) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return domain.Internal(err, "encode session")
	}
	if err := s.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
		return domain.Internal(err, "save session")
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context, key string) (*auth.Session, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Internal(err, "load session")
	}
	var sess auth.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, domain.Internal(err, "decode session")
	}
	return &sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return domain.Internal(err, "delete session")
	}
	return nil
}
