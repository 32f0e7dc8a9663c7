package services

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"football-data-service/config"
	"football-data-service/logger"
	"football-data-service/sportmonks"
)

// RefreshService 周期性从上游拉取数据并写入缓存。
// 四个刷新任务相互独立，任一任务失败只记录日志，保留已缓存的旧值。
type RefreshService struct {
	config *config.Config
	client *sportmonks.Client
	store  *Store
	cron   *cron.Cron

	// onLiveScores 在直播比分刷新成功后回调（用于 WebSocket 推送）
	onLiveScores func([]ShapedMatch)
}

// NewRefreshService 创建刷新服务
func NewRefreshService(cfg *config.Config, client *sportmonks.Client, store *Store) *RefreshService {
	return &RefreshService{
		config: cfg,
		client: client,
		store:  store,
	}
}

// SetLiveScoresHandler 设置直播比分刷新成功后的回调
func (s *RefreshService) SetLiveScoresHandler(handler func([]ShapedMatch)) {
	s.onLiveScores = handler
}

// Start 启动刷新服务：先按固定顺序同步执行一轮，再开始周期调度。
// 首轮执行让最早的请求尽可能命中缓存。
func (s *RefreshService) Start() error {
	logger.Println("[Refresh] Starting refresh service...")

	if !s.client.HasToken() {
		// 没有令牌时任务全部静默跳过，接口降级为空列表
		logger.Errorln("[Refresh] ⚠️  SPORTMONKS_API_TOKEN not set, refresh tasks will be skipped")
	}

	// 启动时立即执行一轮：leagues → teams → liveScores → fixtures
	s.RefreshLeagues()
	s.RefreshTeams()
	s.RefreshLiveScores()
	s.RefreshFixtures()

	// 周期调度。SkipIfStillRunning 防止上游延迟导致同一任务并发执行
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.PrintfLogger(logger.Info)),
	))

	jobs := []struct {
		name string
		spec string
		run  func()
	}{
		{"refreshLeagues", fmt.Sprintf("@every %s", s.config.LeaguesInterval), s.RefreshLeagues},
		{"refreshTeams", fmt.Sprintf("@every %s", s.config.TeamsInterval), s.RefreshTeams},
		{"refreshLiveScores", fmt.Sprintf("@every %s", s.config.LiveScoresInterval), s.RefreshLiveScores},
		{"refreshFixtures", fmt.Sprintf("@every %s", s.config.FixturesInterval), s.RefreshFixtures},
	}

	for _, job := range jobs {
		if _, err := c.AddFunc(job.spec, job.run); err != nil {
			return fmt.Errorf("failed to schedule %s: %w", job.name, err)
		}
	}

	c.Start()
	s.cron = c

	logger.Printf("[Refresh] ✅ Refresh service started (livescores every %s, fixtures every %s)",
		s.config.LiveScoresInterval, s.config.FixturesInterval)
	return nil
}

// Stop 停止周期调度，已在执行的任务跑完为止
func (s *RefreshService) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	logger.Println("[Refresh] Refresh service stopped")
}

// RefreshLeagues 刷新联赛列表，投影后缓存
func (s *RefreshService) RefreshLeagues() {
	if !s.client.HasToken() {
		return
	}

	leagues, err := s.client.GetLeagues()
	if err != nil {
		logger.Errorf("[Refresh] ❌ refreshLeagues failed: %v", err)
		return
	}

	summaries := make([]LeagueSummary, 0, len(leagues))
	for _, league := range leagues {
		summaries = append(summaries, ProjectLeague(league))
	}

	s.store.Set(CacheKeyLeagues, summaries)
	logger.Printf("[Refresh] ✅ refreshLeagues cached %d leagues", len(summaries))
}

// RefreshTeams 刷新球队列表，投影后缓存
func (s *RefreshService) RefreshTeams() {
	if !s.client.HasToken() {
		return
	}

	teams, err := s.client.GetTeams()
	if err != nil {
		logger.Errorf("[Refresh] ❌ refreshTeams failed: %v", err)
		return
	}

	summaries := make([]TeamSummary, 0, len(teams))
	for _, team := range teams {
		summaries = append(summaries, ProjectTeam(team))
	}

	s.store.Set(CacheKeyTeams, summaries)
	logger.Printf("[Refresh] ✅ refreshTeams cached %d teams", len(summaries))
}

// RefreshLiveScores 刷新直播比分，原始记录整体缓存，读取时再转换
func (s *RefreshService) RefreshLiveScores() {
	if !s.client.HasToken() {
		return
	}

	matches, err := s.client.GetLiveScores()
	if err != nil {
		logger.Errorf("[Refresh] ❌ refreshLiveScores failed: %v", err)
		return
	}
	if matches == nil {
		matches = []sportmonks.RawMatch{}
	}

	s.store.Set(CacheKeyLiveScores, matches)
	logger.Printf("[Refresh] ✅ refreshLiveScores cached %d matches", len(matches))

	if s.onLiveScores != nil {
		shaped := make([]ShapedMatch, 0, len(matches))
		for _, match := range matches {
			shaped = append(shaped, ShapeMatch(match))
		}
		s.onLiveScores(shaped)
	}
}

// RefreshFixtures 刷新赛程，原始记录整体缓存，读取时再转换
func (s *RefreshService) RefreshFixtures() {
	if !s.client.HasToken() {
		return
	}

	fixtures, err := s.client.GetFixtures()
	if err != nil {
		logger.Errorf("[Refresh] ❌ refreshFixtures failed: %v", err)
		return
	}
	if fixtures == nil {
		fixtures = []sportmonks.RawFixture{}
	}

	s.store.Set(CacheKeyFixtures, fixtures)
	logger.Printf("[Refresh] ✅ refreshFixtures cached %d fixtures", len(fixtures))
}
