package memory

import (
	"time"

	"legal-intake-be/pkg/session"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Entry couples a live runtime with the user who owns it.
type Entry struct {
	Runtime *session.Runtime
	OwnerId uuid.UUID
}

// SessionRepository keeps the live intake runtimes in memory, keyed by case
// id. An evicted runtime is closed so its timers and media subscriptions
// are released.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Create a cache with a default expiration time of 2 hours, and which
	// purges expired items every 10 minutes
	c := cache.New(2*time.Hour, 10*time.Minute)
	c.OnEvicted(func(caseId string, x interface{}) {
		if entry, ok := x.(*Entry); ok {
			entry.Runtime.Close()
		}
	})
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(caseId string, rt *session.Runtime, ownerId uuid.UUID) {
	r.cache.Set(caseId, &Entry{Runtime: rt, OwnerId: ownerId}, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(caseId string) (*Entry, bool) {
	if x, found := r.cache.Get(caseId); found {
		return x.(*Entry), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(caseId string) {
	r.cache.Delete(caseId)
}
