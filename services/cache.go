package services

import (
	"sync"
	"time"
)

// 缓存键在启动时固定，不支持动态创建
const (
	CacheKeyLeagues    = "leagues"
	CacheKeyTeams      = "teams"
	CacheKeyLiveScores = "liveScores"
	CacheKeyFixtures   = "fixtures"
)

const (
	// DefaultCacheTTL 默认缓存有效期
	DefaultCacheTTL = 900 * time.Second

	// DefaultSweepInterval 默认过期清理周期
	DefaultSweepInterval = 120 * time.Second
)

// CacheEntry 缓存条目
type CacheEntry struct {
	Data      interface{}
	StoredAt  time.Time
	ExpiresAt time.Time
}

// Store 资源缓存，刷新任务写入，请求处理并发读取。
// 条目整体替换，读取方不会观察到部分写入的数据。
type Store struct {
	entries map[string]*CacheEntry
	mu      sync.RWMutex
	ttl     time.Duration

	// now 可在测试中替换以控制过期判断
	now func() time.Time
}

// NewStore 创建缓存并启动后台清理协程
func NewStore(ttl, sweepInterval time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}

	store := &Store{
		entries: make(map[string]*CacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}

	// 启动清理协程
	go store.sweepLoop(sweepInterval)

	return store
}

// Get 获取缓存值。键不存在或条目已过期时返回 false，
// 过期判断不依赖后台清理的执行时机。
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.entries[key]
	if !exists {
		return nil, false
	}

	// 检查是否过期
	if !s.now().Before(entry.ExpiresAt) {
		return nil, false
	}

	return entry.Data, true
}

// Set 写入缓存值，无条件覆盖已有条目
func (s *Store) Set(key string, data interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.entries[key] = &CacheEntry{
		Data:      data,
		StoredAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}
}

// Size 获取当前缓存条目数
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Stats 返回每个未过期条目的写入时间，用于健康检查
func (s *Store) Stats() map[string]time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[string]time.Time, len(s.entries))
	now := s.now()
	for key, entry := range s.entries {
		if now.Before(entry.ExpiresAt) {
			stats[key] = entry.StoredAt
		}
	}
	return stats
}

// sweepLoop 定期清理过期条目
func (s *Store) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		s.sweep()
	}
}

// sweep 清理过期条目，回收内存
func (s *Store) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, entry := range s.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(s.entries, key)
		}
	}
}
