package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// RunStampRepository memoizes the completion time of the most recent
// reflection run per user, so staleness checks inside the same process
// do not hit the database on every scheduler tick.
type RunStampRepository struct {
	cache *cache.Cache
}

func NewRunStampRepository() *RunStampRepository {
	// Stamps expire after a day, purged every hour.
	c := cache.New(24*time.Hour, 1*time.Hour)
	return &RunStampRepository{
		cache: c,
	}
}

func (r *RunStampRepository) Stamp(userId uuid.UUID, completedAt time.Time) {
	r.cache.Set(userId.String(), completedAt, cache.DefaultExpiration)
}

func (r *RunStampRepository) Last(userId uuid.UUID) (time.Time, bool) {
	if x, found := r.cache.Get(userId.String()); found {
		return x.(time.Time), true
	}
	return time.Time{}, false
}

func (r *RunStampRepository) Forget(userId uuid.UUID) {
	r.cache.Delete(userId.String())
}
