package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"football-data-service/config"
	"football-data-service/logger"
	"football-data-service/services"
)

type Server struct {
	config     *config.Config
	store      *services.Store
	wsHub      *Hub
	httpServer *http.Server
	upgrader   websocket.Upgrader
}

func NewServer(cfg *config.Config, store *services.Store, hub *Hub) *Server {
	return &Server{
		config: cfg,
		store:  store,
		wsHub:  hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(r.Header.Get("Origin"), cfg.AllowedOrigins)
			},
		},
	}
}

// Router 构建路由，测试中直接使用
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()

	// API路由
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/ping", s.handlePing).Methods("GET")
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	football := api.PathPrefix("/football").Subrouter()
	football.HandleFunc("/livescores", s.handleLiveScores).Methods("GET")
	football.HandleFunc("/fixtures", s.handleFixtures).Methods("GET")
	football.HandleFunc("/teams", s.handleTeams).Methods("GET")
	football.HandleFunc("/leagues", s.handleLeagues).Methods("GET")

	// WebSocket路由
	router.HandleFunc("/ws/livescores", s.handleWebSocket)

	// CORS配置：固定来源白名单，跨域仅允许 GET
	c := cors.New(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET"},
		AllowedHeaders: []string{"*"},
	})

	return c.Handler(router)
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown error: %v", err)
	}
}

// handleWebSocket 升级连接并注册到Hub
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Errorf("[WS] Upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  s.wsHub,
		conn: conn,
		send: make(chan []byte, 64),
	}
	s.wsHub.register <- client

	go client.writePump()
	go client.readPump()
}

func originAllowed(origin string, allowed []string) bool {
	if origin == "" {
		return true
	}
	for _, o := range allowed {
		if o == origin {
			return true
		}
	}
	return false
}
