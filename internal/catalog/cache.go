// internal/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pmis-recommender/internal/common/logger"
	"pmis-recommender/internal/common/metrics"
	"pmis-recommender/internal/models"
)

// CachedStudentStore is a read-through Redis cache in front of a
// StudentStore. Cache keys carry the snapshot version so a model swap
// naturally invalidates everything. Cache failures degrade to the
// underlying store, never to an error.
type CachedStudentStore struct {
	inner           StudentStore
	redis           *redis.Client
	ttl             time.Duration
	snapshotVersion string
	logger          logger.Logger
}

func NewCachedStudentStore(inner StudentStore, rdb *redis.Client, ttl time.Duration, snapshotVersion string, log logger.Logger) *CachedStudentStore {
	return &CachedStudentStore{
		inner:           inner,
		redis:           rdb,
		ttl:             ttl,
		snapshotVersion: snapshotVersion,
		logger:          log,
	}
}

func (s *CachedStudentStore) GetStudent(ctx context.Context, studentID string) (*models.StudentProfile, error) {
	key := s.profileKey(studentID)

	if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
		var student models.StudentProfile
		if err := json.Unmarshal([]byte(cached), &student); err == nil {
			metrics.SignalCacheHits.WithLabelValues("profile_hit").Inc()
			return &student, nil
		}
		// Corrupt entry: drop it and fall through to the store.
		s.redis.Del(ctx, key)
	}
	metrics.SignalCacheHits.WithLabelValues("profile_miss").Inc()

	student, err := s.inner.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(student); err == nil {
		if err := s.redis.Set(ctx, key, payload, s.ttl).Err(); err != nil {
			s.logger.Warn("student profile cache write failed", map[string]interface{}{
				"studentId": studentID,
				"error":     err.Error(),
			})
		}
	}
	return student, nil
}

func (s *CachedStudentStore) ListStudents(ctx context.Context, limit int) ([]*models.StudentProfile, error) {
	return s.inner.ListStudents(ctx, limit)
}

func (s *CachedStudentStore) profileKey(studentID string) string {
	return fmt.Sprintf("pmis:profile:%s:%s", s.snapshotVersion, studentID)
}

// PairSignalCache memoizes computed pair signals. Signals are pure
// functions of (student revision, internship revision, model snapshot), so
// writes are idempotent and a hit is always byte-equivalent to a
// recompute. All three revisions are part of the key: editing a profile or
// a listing changes its version token and orphans the stale entry.
type PairSignalCache struct {
	redis           *redis.Client
	ttl             time.Duration
	snapshotVersion string
}

func NewPairSignalCache(rdb *redis.Client, ttl time.Duration, snapshotVersion string) *PairSignalCache {
	return &PairSignalCache{redis: rdb, ttl: ttl, snapshotVersion: snapshotVersion}
}

func (c *PairSignalCache) Get(ctx context.Context, student *models.StudentProfile, internship *models.InternshipListing) (*models.PairSignal, bool) {
	cached, err := c.redis.Get(ctx, c.key(student, internship)).Result()
	if err != nil {
		metrics.SignalCacheHits.WithLabelValues("signal_miss").Inc()
		return nil, false
	}

	var signal models.PairSignal
	if err := json.Unmarshal([]byte(cached), &signal); err != nil {
		metrics.SignalCacheHits.WithLabelValues("signal_miss").Inc()
		return nil, false
	}
	metrics.SignalCacheHits.WithLabelValues("signal_hit").Inc()
	return &signal, true
}

func (c *PairSignalCache) Put(ctx context.Context, signal *models.PairSignal, student *models.StudentProfile, internship *models.InternshipListing) {
	payload, err := json.Marshal(signal)
	if err != nil {
		return
	}
	c.redis.Set(ctx, c.key(student, internship), payload, c.ttl)
}

func (c *PairSignalCache) key(student *models.StudentProfile, internship *models.InternshipListing) string {
	return fmt.Sprintf("pmis:signal:%s:%s@%s:%s@%s",
		c.snapshotVersion,
		student.StudentID, student.VersionToken(),
		internship.InternshipID, internship.VersionToken())
}
