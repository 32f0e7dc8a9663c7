package web

import (
	"encoding/json"
	"net/http"
	"time"

	"football-data-service/services"
	"football-data-service/sportmonks"
)

// writeData 统一响应包装 { "data": ... }。
// 四个数据接口只读缓存，缓存缺失一律返回空列表而不是错误。
func writeData(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": payload,
	})
}

// handlePing 存活探测，不经过缓存
// GET /api/ping
func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("pong"))
}

// handleHealth 健康检查，附带各缓存键的写入时间
// GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	freshness := make(map[string]int64)
	for key, storedAt := range s.store.Stats() {
		freshness[key] = storedAt.Unix()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Unix(),
		"cache":  freshness,
	})
}

// handleLiveScores 直播比分，读取缓存的原始记录并逐条转换
// GET /api/football/livescores
func (s *Server) handleLiveScores(w http.ResponseWriter, r *http.Request) {
	shaped := []services.ShapedMatch{}
	if cached, ok := s.store.Get(services.CacheKeyLiveScores); ok {
		if matches, ok := cached.([]sportmonks.RawMatch); ok {
			for _, match := range matches {
				shaped = append(shaped, services.ShapeMatch(match))
			}
		}
	}
	writeData(w, shaped)
}

// handleFixtures 赛程，读取缓存的原始记录并逐条转换
// GET /api/football/fixtures
func (s *Server) handleFixtures(w http.ResponseWriter, r *http.Request) {
	shaped := []services.ShapedFixture{}
	if cached, ok := s.store.Get(services.CacheKeyFixtures); ok {
		if fixtures, ok := cached.([]sportmonks.RawFixture); ok {
			for _, fixture := range fixtures {
				shaped = append(shaped, services.ShapeFixture(fixture))
			}
		}
	}
	writeData(w, shaped)
}

// handleTeams 球队列表，刷新时已投影，直接返回
// GET /api/football/teams
func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	teams := []services.TeamSummary{}
	if cached, ok := s.store.Get(services.CacheKeyTeams); ok {
		if summaries, ok := cached.([]services.TeamSummary); ok {
			teams = summaries
		}
	}
	writeData(w, teams)
}

// handleLeagues 联赛列表，刷新时已投影，直接返回
// GET /api/football/leagues
func (s *Server) handleLeagues(w http.ResponseWriter, r *http.Request) {
	leagues := []services.LeagueSummary{}
	if cached, ok := s.store.Get(services.CacheKeyLeagues); ok {
		if summaries, ok := cached.([]services.LeagueSummary); ok {
			leagues = summaries
		}
	}
	writeData(w, leagues)
}
