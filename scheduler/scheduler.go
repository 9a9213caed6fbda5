package scheduler

import (
	"fmt"
	"sync"
	"time"

	"terraguide_api/config"
	"terraguide_api/logger"
	"terraguide_api/services"
)

// 验证小时和分钟是否有效
func validateHourMinute(cfg *config.Config, hour, minute int) (int, int) {
	defaultHour := cfg.Scheduler.DefaultHour
	defaultMinute := cfg.Scheduler.DefaultMinute

	if hour < 0 || hour > 23 {
		logger.Warn("无效的小时值", "hour", hour, "default", defaultHour)
		hour = defaultHour
	}
	if minute < 0 || minute > 59 {
		logger.Warn("无效的分钟值", "minute", minute, "default", defaultMinute)
		minute = defaultMinute
	}
	return hour, minute
}

// 计算下一个指定时间点
func getNextTimePoint(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if next.Before(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// 任务类型
type TaskType int

const (
	TaskCachePurge TaskType = iota
)

// 任务状态
type TaskStatus struct {
	LastRun     time.Time
	NextRun     time.Time
	IsRunning   bool
	Description string
}

// 任务调度器
type Scheduler struct {
	cfg   *config.Config
	cache services.CacheStore
	tasks map[TaskType]*TaskStatus
	mutex sync.Mutex
}

// 创建新的调度器
func NewScheduler(cfg *config.Config, cache services.CacheStore) *Scheduler {
	return &Scheduler{
		cfg:   cfg,
		cache: cache,
		tasks: make(map[TaskType]*TaskStatus),
	}
}

// 启动调度器
func Start(cfg *config.Config, cache services.CacheStore) {
	scheduler := NewScheduler(cfg, cache)

	// 初始化任务
	scheduler.initTasks()

	// 启动主循环
	go scheduler.run()

	checkInterval := cfg.Scheduler.CheckIntervalSec
	if checkInterval <= 0 {
		checkInterval = 60 // 默认值
	}
	logger.Info("调度器已启动", "check_interval_sec", checkInterval)
}

// 初始化任务
func (s *Scheduler) initTasks() {
	now := time.Now()

	// 推荐缓存清理任务 - 根据debug模式决定运行频率
	if s.cfg.Debug.Enabled {
		// Debug模式：按配置的秒数间隔清理一次
		freqSeconds := s.cfg.Debug.PurgeFreqSec
		if freqSeconds <= 0 {
			freqSeconds = 1800
		}
		purgeInterval := time.Duration(freqSeconds) * time.Second

		s.tasks[TaskCachePurge] = &TaskStatus{
			LastRun:     now.Add(-purgeInterval),
			NextRun:     now.Add(purgeInterval),
			IsRunning:   false,
			Description: fmt.Sprintf("推荐缓存清理 (Debug模式: 每%d秒)", freqSeconds),
		}
		logger.Info("Debug模式已启用", "purge_frequency_seconds", freqSeconds)
	} else {
		// 正常模式：每天在指定时间点清理
		hour, minute := validateHourMinute(s.cfg, s.cfg.Scheduler.PurgeHour, s.cfg.Scheduler.PurgeMin)
		nextRun := getNextTimePoint(now, hour, minute)

		s.tasks[TaskCachePurge] = &TaskStatus{
			LastRun:     nextRun.Add(-24 * time.Hour),
			NextRun:     nextRun,
			IsRunning:   false,
			Description: fmt.Sprintf("推荐缓存清理 (%02d:%02d)", hour, minute),
		}
		logger.Info("正常模式", "purge_time", fmt.Sprintf("%02d:%02d", hour, minute))
	}

	logger.Info("定时任务初始化完成", "task_count", len(s.tasks))
}

// 主循环
func (s *Scheduler) run() {
	checkInterval := s.cfg.Scheduler.CheckIntervalSec
	if checkInterval <= 0 {
		checkInterval = 60 // 默认值
	}
	ticker := time.NewTicker(time.Duration(checkInterval) * time.Second)
	defer ticker.Stop()

	for now := range ticker.C {
		s.checkTasks(now)
	}
}

// 检查任务
func (s *Scheduler) checkTasks(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for taskType, status := range s.tasks {
		// 如果任务正在运行，跳过
		if status.IsRunning {
			continue
		}

		// 如果任务的NextRun为零值，跳过（表示不需要定期调度）
		if status.NextRun.IsZero() {
			continue
		}

		// 如果到达或超过下次运行时间，执行任务
		if now.After(status.NextRun) || now.Equal(status.NextRun) {
			status.IsRunning = true
			go s.runTask(taskType, now)
		}
	}
}

// 运行任务
func (s *Scheduler) runTask(taskType TaskType, now time.Time) {
	defer func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()

		status := s.tasks[taskType]
		status.IsRunning = false
		status.LastRun = now

		// 更新下次运行时间
		switch taskType {
		case TaskCachePurge:
			if s.cfg.Debug.Enabled {
				freqSeconds := s.cfg.Debug.PurgeFreqSec
				if freqSeconds <= 0 {
					freqSeconds = 1800
				}
				status.NextRun = now.Add(time.Duration(freqSeconds) * time.Second)
			} else {
				hour, minute := validateHourMinute(s.cfg, s.cfg.Scheduler.PurgeHour, s.cfg.Scheduler.PurgeMin)
				status.NextRun = getNextTimePoint(now, hour, minute)
			}
		}

		logger.Info("任务执行完成", "task", status.Description, "next_run", status.NextRun.Format("2006-01-02 15:04:05"))
	}()

	switch taskType {
	case TaskCachePurge:
		// 清理超过TTL的推荐缓存，避免过期缓存无限堆积
		ttl := time.Duration(s.cfg.Recommender.CacheTTLHours) * time.Hour
		if ttl <= 0 {
			ttl = 24 * time.Hour
		}

		logger.Info("开始清理过期推荐缓存", "ttl_hours", int(ttl.Hours()))
		deleted, err := s.cache.PurgeExpiredRecommendations(ttl)
		if err != nil {
			logger.Error("清理过期推荐缓存失败", "error", err)
			return
		}
		logger.Info("过期推荐缓存清理完成", "deleted", deleted)
	}
}
