package services

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"football-data-service/config"
	"football-data-service/sportmonks"
)

func newRefreshFixture(t *testing.T, handler http.Handler) (*RefreshService, *Store, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := sportmonks.NewClientWithConfig(sportmonks.Config{
		BaseURL:  server.URL,
		APIToken: "test_token",
	})

	now := time.Now()
	store := newTestStore(900*time.Second, &now)
	cfg := &config.Config{
		LeaguesInterval:    time.Hour,
		TeamsInterval:      time.Hour,
		LiveScoresInterval: 15 * time.Second,
		FixturesInterval:   15 * time.Minute,
	}

	return NewRefreshService(cfg, client, store), store, server
}

func TestRefreshLeagues_ProjectsAndCaches(t *testing.T) {
	refresh, store, _ := newRefreshFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/leagues" {
			t.Errorf("Expected path /leagues, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"data":[
			{"id":501,"sport_id":1,"country_id":1161,"name":"Premiership","short_code":"SCO P","image_path":"https://cdn.example.com/501.png","type":"league"},
			{"id":271,"sport_id":1,"country_id":320,"name":"Superliga","image_path":"https://cdn.example.com/271.png","type":"league"}
		]}`))
	}))

	refresh.RefreshLeagues()

	cached, ok := store.Get(CacheKeyLeagues)
	if !ok {
		t.Fatal("Expected leagues to be cached after refresh")
	}

	want := []LeagueSummary{
		{ID: 501, Name: "Premiership", ImagePath: "https://cdn.example.com/501.png"},
		{ID: 271, Name: "Superliga", ImagePath: "https://cdn.example.com/271.png"},
	}
	if diff := cmp.Diff(want, cached); diff != "" {
		t.Errorf("Cached leagues mismatch (-want +got):\n%s", diff)
	}
}

func TestRefreshTeams_ProjectsAndCaches(t *testing.T) {
	refresh, store, _ := newRefreshFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams" {
			t.Errorf("Expected path /teams, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"data":[{"id":62,"name":"Rangers","image_path":"https://cdn.example.com/62.png","founded":1873}]}`))
	}))

	refresh.RefreshTeams()

	cached, ok := store.Get(CacheKeyTeams)
	if !ok {
		t.Fatal("Expected teams to be cached after refresh")
	}

	want := []TeamSummary{{ID: 62, Name: "Rangers", ImagePath: "https://cdn.example.com/62.png"}}
	if diff := cmp.Diff(want, cached); diff != "" {
		t.Errorf("Cached teams mismatch (-want +got):\n%s", diff)
	}
}

func TestRefreshFailure_KeepsPreviousValue(t *testing.T) {
	var fail atomic.Bool
	refresh, store, _ := newRefreshFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"code":500,"message":"upstream exploded","status":"error"}`))
			return
		}
		w.Write([]byte(`{"data":[{"id":62,"name":"Rangers","image_path":"https://cdn.example.com/62.png"}]}`))
	}))

	refresh.RefreshTeams()
	if _, ok := store.Get(CacheKeyTeams); !ok {
		t.Fatal("Expected first refresh to populate the cache")
	}

	fail.Store(true)
	refresh.RefreshTeams()

	cached, ok := store.Get(CacheKeyTeams)
	if !ok {
		t.Fatal("Expected previous value to survive a failed refresh")
	}
	teams := cached.([]TeamSummary)
	if len(teams) != 1 || teams[0].Name != "Rangers" {
		t.Errorf("Expected previous value untouched, got %+v", teams)
	}
}

func TestRefreshFailure_MissingDataField(t *testing.T) {
	refresh, store, _ := newRefreshFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"subscription":[]}`))
	}))

	refresh.RefreshFixtures()

	if _, ok := store.Get(CacheKeyFixtures); ok {
		t.Error("Expected no cache write when response has no data field")
	}
}

func TestRefresh_SkipsWithoutToken(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := sportmonks.NewClientWithConfig(sportmonks.Config{BaseURL: server.URL})
	now := time.Now()
	store := newTestStore(900*time.Second, &now)
	refresh := NewRefreshService(&config.Config{}, client, store)

	refresh.RefreshLeagues()
	refresh.RefreshTeams()
	refresh.RefreshLiveScores()
	refresh.RefreshFixtures()

	if hits.Load() != 0 {
		t.Errorf("Expected no upstream calls without a token, got %d", hits.Load())
	}
	if store.Size() != 0 {
		t.Errorf("Expected cache to stay empty without a token, size = %d", store.Size())
	}
}

func TestRefreshLiveScores_CachesRawAndNotifies(t *testing.T) {
	refresh, store, _ := newRefreshFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{
			"id": 18535517,
			"league_id": 501,
			"participants": [
				{"id":10,"meta":{"location":"home"}},
				{"id":20,"meta":{"location":"away"}}
			],
			"scores": [{"participant_id":10,"goals":2},{"participant_id":20,"goals":1}],
			"state": {"state":"live"}
		}]}`))
	}))

	var notified []ShapedMatch
	refresh.SetLiveScoresHandler(func(matches []ShapedMatch) {
		notified = matches
	})

	refresh.RefreshLiveScores()

	cached, ok := store.Get(CacheKeyLiveScores)
	if !ok {
		t.Fatal("Expected live scores to be cached after refresh")
	}
	matches := cached.([]sportmonks.RawMatch)
	if len(matches) != 1 || matches[0].ID != 18535517 {
		t.Fatalf("Expected 1 raw match cached, got %+v", matches)
	}

	if len(notified) != 1 {
		t.Fatalf("Expected handler to receive 1 shaped match, got %d", len(notified))
	}
	if !notified[0].Live || notified[0].Status != "LIVE" {
		t.Errorf("Expected shaped live match in notification, got %+v", notified[0])
	}
}

func TestRefreshLiveScores_EmptyList(t *testing.T) {
	refresh, store, _ := newRefreshFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))

	refresh.RefreshLiveScores()

	cached, ok := store.Get(CacheKeyLiveScores)
	if !ok {
		t.Fatal("Expected empty list to be cached, not skipped")
	}
	matches := cached.([]sportmonks.RawMatch)
	if len(matches) != 0 {
		t.Errorf("Expected empty match list, got %d entries", len(matches))
	}
}

func TestRefreshFixtures_CachesRaw(t *testing.T) {
	refresh, store, _ := newRefreshFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fixtures" {
			t.Errorf("Expected path /fixtures, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"data":[{
			"id": 18535520,
			"league_id": 501,
			"starting_at": "2026-09-05 14:00:00",
			"participants": [{"id":10,"meta":{"location":"home"}},{"id":20,"meta":{"location":"away"}}],
			"state": {"state":"NS"},
			"round": {"id":339273,"name":"4"}
		}]}`))
	}))

	refresh.RefreshFixtures()

	cached, ok := store.Get(CacheKeyFixtures)
	if !ok {
		t.Fatal("Expected fixtures to be cached after refresh")
	}
	fixtures := cached.([]sportmonks.RawFixture)
	if len(fixtures) != 1 || fixtures[0].ID != 18535520 {
		t.Fatalf("Expected 1 raw fixture cached, got %+v", fixtures)
	}
	if fixtures[0].Round == nil {
		t.Error("Expected round relation to be carried through raw caching")
	}
}
