package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"ai-resume-be/internal/pkg/logger"
	"ai-resume-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "resume_session:"

// SessionRepository is the Redis-backed session store. Every save refreshes
// the TTL so active sessions never expire mid-conversation.
type SessionRepository struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.ILogger
}

func NewSessionRepository(rdb *redis.Client, ttl time.Duration, log logger.ILogger) *SessionRepository {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &SessionRepository{rdb: rdb, ttl: ttl, logger: log}
}

func (r *SessionRepository) Save(session *store.Session) {
	data, err := json.Marshal(session)
	if err != nil {
		r.logger.Error("SessionStore", "Failed to marshal session", map[string]interface{}{
			"session_id": session.ID, "error": err.Error(),
		})
		return
	}
	if err := r.rdb.Set(context.Background(), keyPrefix+session.ID, data, r.ttl).Err(); err != nil {
		r.logger.Error("SessionStore", "Failed to save session", map[string]interface{}{
			"session_id": session.ID, "error": err.Error(),
		})
	}
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	data, err := r.rdb.Get(context.Background(), keyPrefix+sessionID).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Error("SessionStore", "Failed to load session", map[string]interface{}{
				"session_id": sessionID, "error": err.Error(),
			})
		}
		return nil, false
	}

	var session store.Session
	if err := json.Unmarshal(data, &session); err != nil {
		r.logger.Error("SessionStore", "Failed to unmarshal session", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
		return nil, false
	}
	return &session, true
}

func (r *SessionRepository) Delete(sessionID string) {
	r.rdb.Del(context.Background(), keyPrefix+sessionID)
}
