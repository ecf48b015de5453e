package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/alpho07/mnch-mentorship-sub006/internal/export"
	"github.com/alpho07/mnch-mentorship-sub006/internal/logger"
)

const previewKeyPrefix = "export:preview:"

type previewStore struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewPreviewStore returns a Redis-backed preview session store. Session
// expiry is the Redis TTL; a key that has lapsed surfaces to the caller as
// SessionExpiredError.
func NewPreviewStore(log *logger.Logger, ttl time.Duration) (export.SessionStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &previewStore{
		log: log.With("service", "RedisPreviewStore"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func (p *previewStore) Save(ctx context.Context, s *export.PreviewSession) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return p.rdb.Set(ctx, previewKeyPrefix+s.ID, raw, p.ttl).Err()
}

func (p *previewStore) Get(ctx context.Context, id string) (*export.PreviewSession, error) {
	raw, err := p.rdb.Get(ctx, previewKeyPrefix+id).Bytes()
	if err == goredis.Nil {
		return nil, &export.SessionExpiredError{SessionID: id}
	}
	if err != nil {
		return nil, err
	}
	var session export.PreviewSession
	if err := json.Unmarshal(raw, &session); err != nil {
		p.log.Warn("Discarding undecodable preview session", "session_id", id, "error", err)
		return nil, &export.SessionExpiredError{SessionID: id}
	}
	return &session, nil
}

func (p *previewStore) Delete(ctx context.Context, id string) error {
	return p.rdb.Del(ctx, previewKeyPrefix+id).Err()
}
