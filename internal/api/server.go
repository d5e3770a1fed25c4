package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Server は観測用のAPIサーバーを表す構造体。
// 読み取り専用のエンドポイントのみを提供する
type Server struct {
	server  *http.Server
	service *PadService
	port    int
}

// NewServer は新しいAPIサーバーを作成する
func NewServer(service *PadService, port int) *Server {
	return &Server{
		service: service,
		port:    port,
	}
}

// Start はAPIサーバーを開始する
func (s *Server) Start() error {
	// ルーターの設定
	router := http.NewServeMux()
	s.setupRoutes(router)

	// HTTPサーバーの設定
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: router,
	}

	log.Printf("APIサーバーを開始します: http://localhost:%d", s.port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("APIサーバーの起動に失敗しました: %w", err)
	}
	return nil
}

// Stop はAPIサーバーを停止する
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
