package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terraguide_api/config"
	"terraguide_api/models"
)

// fakeCache 内存版推荐缓存，按创建时间实现真实的过期清理语义
type fakeCache struct {
	rows       []models.CachedRecommendation
	gotTTL     time.Duration
	purgeCalls int
}

func (f *fakeCache) ReplaceRecommendations(userID string, items []models.RecommendationItem, modelVersion string) error {
	return nil
}

func (f *fakeCache) GetCachedRecommendations(userID string) ([]models.CachedRecommendation, error) {
	return f.rows, nil
}

func (f *fakeCache) PurgeExpiredRecommendations(ttl time.Duration) (int64, error) {
	f.purgeCalls++
	f.gotTTL = ttl

	cutoff := time.Now().Add(-ttl)
	kept := f.rows[:0]
	var deleted int64
	for _, row := range f.rows {
		if row.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	f.rows = kept
	return deleted, nil
}

func schedulerTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Recommender.CacheTTLHours = 24
	cfg.Scheduler.PurgeHour = 3
	cfg.Scheduler.PurgeMin = 0
	return cfg
}

func cachedRow(courseID string, age time.Duration) models.CachedRecommendation {
	return models.CachedRecommendation{
		UserID:    "user-1",
		CourseID:  courseID,
		Score:     0.9,
		CreatedAt: time.Now().Add(-age),
	}
}

func TestPurgeTaskDeletesOnlyExpiredRows(t *testing.T) {
	cache := &fakeCache{
		rows: []models.CachedRecommendation{
			cachedRow("Introduction to Park Guiding", 48*time.Hour),
			cachedRow("Nature Guide Fundamentals", time.Hour),
		},
	}

	s := NewScheduler(schedulerTestConfig(), cache)
	s.initTasks()
	s.runTask(TaskCachePurge, time.Now())

	// 用配置的TTL清理，只删过期行，新行保留
	assert.Equal(t, 1, cache.purgeCalls)
	assert.Equal(t, 24*time.Hour, cache.gotTTL)
	require.Len(t, cache.rows, 1)
	assert.Equal(t, "Nature Guide Fundamentals", cache.rows[0].CourseID)
}

func TestPurgeTaskDefaultTTL(t *testing.T) {
	cfg := schedulerTestConfig()
	cfg.Recommender.CacheTTLHours = 0 // 未配置时用24小时默认值

	cache := &fakeCache{}
	s := NewScheduler(cfg, cache)
	s.initTasks()
	s.runTask(TaskCachePurge, time.Now())

	assert.Equal(t, 24*time.Hour, cache.gotTTL)
}

func TestPurgeTaskReschedulesNextRun(t *testing.T) {
	cache := &fakeCache{}
	s := NewScheduler(schedulerTestConfig(), cache)
	s.initTasks()

	now := time.Now()
	s.runTask(TaskCachePurge, now)

	status := s.tasks[TaskCachePurge]
	assert.False(t, status.IsRunning)
	assert.Equal(t, now, status.LastRun)
	assert.True(t, status.NextRun.After(now), "执行完成后必须排到下一个时间点")
}

func TestGetNextTimePoint(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	// 当天时间点未过：排到当天
	next := getNextTimePoint(now, 15, 30)
	assert.Equal(t, time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC), next)

	// 当天时间点已过：排到次日
	next = getNextTimePoint(now, 3, 0)
	assert.Equal(t, time.Date(2026, 8, 29, 3, 0, 0, 0, time.UTC), next)
}

func TestValidateHourMinute(t *testing.T) {
	cfg := schedulerTestConfig()
	cfg.Scheduler.DefaultHour = 2
	cfg.Scheduler.DefaultMinute = 30

	hour, minute := validateHourMinute(cfg, 25, -1)
	assert.Equal(t, 2, hour)
	assert.Equal(t, 30, minute)

	hour, minute = validateHourMinute(cfg, 23, 59)
	assert.Equal(t, 23, hour)
	assert.Equal(t, 59, minute)
}
