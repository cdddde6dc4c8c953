package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/namhkse/recomending-system/pkg/store"
)

type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository keeps sessions in-process with a sliding TTL.
// Expired sessions are purged every 10 minutes.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		// refresh the TTL on access so active conversations don't expire
		r.cache.Set(sessionID, x, cache.DefaultExpiration)
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
