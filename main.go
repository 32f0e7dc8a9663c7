package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"football-data-service/config"
	"football-data-service/logger"
	"football-data-service/services"
	"football-data-service/sportmonks"
	"football-data-service/web"
)

func main() {
	logger.Println("Starting Football Data Service...")

	// 加载配置
	cfg := config.Load()

	// 创建缓存
	store := services.NewStore(cfg.CacheTTL, cfg.SweepInterval)

	// 创建上游客户端
	client := sportmonks.NewClientWithConfig(sportmonks.Config{
		BaseURL:  cfg.APIBaseURL,
		APIToken: cfg.APIToken,
		Timeout:  cfg.APITimeout,
	})

	// 创建WebSocket Hub
	wsHub := web.NewHub()
	go wsHub.Run()

	// 创建刷新服务，直播比分刷新成功后推送给WebSocket客户端
	refresh := services.NewRefreshService(cfg, client, store)
	refresh.SetLiveScoresHandler(wsHub.BroadcastLiveScores)

	if err := refresh.Start(); err != nil {
		logger.Fatalf("Failed to start refresh service: %v", err)
	}

	// 启动Web服务器
	server := web.NewServer(cfg, store, wsHub)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Web server error: %v", err)
		}
	}()

	logger.Printf("Web server started on port %s", cfg.Port)
	logger.Println("Service is running. Press Ctrl+C to stop.")

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Println("Shutting down service...")

	// 清理资源
	refresh.Stop()
	server.Stop()

	logger.Println("Service stopped")
}
