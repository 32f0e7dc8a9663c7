package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	// SportMonks 配置
	APIToken   string
	APIBaseURL string
	APITimeout time.Duration

	// 缓存配置
	CacheTTL      time.Duration
	SweepInterval time.Duration

	// 刷新间隔配置
	LeaguesInterval    time.Duration
	TeamsInterval      time.Duration
	LiveScoresInterval time.Duration
	FixturesInterval   time.Duration

	// 服务器配置
	Port           string
	AllowedOrigins []string

	// 其他配置
	Environment string
}

func Load() *Config {
	return &Config{
		// SportMonks 配置
		APIToken:   getEnv("SPORTMONKS_API_TOKEN", ""),
		APIBaseURL: getEnv("SPORTMONKS_BASE_URL", "https://api.sportmonks.com/v3/football"),
		APITimeout: getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),

		// 缓存配置
		CacheTTL:      getEnvDuration("CACHE_TTL", 900*time.Second),
		SweepInterval: getEnvDuration("CACHE_SWEEP_INTERVAL", 120*time.Second),

		// 刷新间隔配置
		LeaguesInterval:    getEnvDuration("LEAGUES_REFRESH_INTERVAL", time.Hour),
		TeamsInterval:      getEnvDuration("TEAMS_REFRESH_INTERVAL", time.Hour),
		LiveScoresInterval: getEnvDuration("LIVESCORES_REFRESH_INTERVAL", 15*time.Second),
		FixturesInterval:   getEnvDuration("FIXTURES_REFRESH_INTERVAL", 15*time.Minute),

		// 服务器配置
		Port:           getEnv("PORT", "5000"),
		AllowedOrigins: getAllowedOrigins(),

		// 其他配置
		Environment: getEnv("ENVIRONMENT", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func getAllowedOrigins() []string {
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000,https://football.dashboard.local")
	return strings.Split(origins, ",")
}
