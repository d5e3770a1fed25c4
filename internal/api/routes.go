package api

import (
	"encoding/json"
	"net/http"
)

// ルートの設定
func (s *Server) setupRoutes(router *http.ServeMux) {
	// サービス状態のエンドポイント
	router.HandleFunc("GET /api/status", s.handleStatus)

	// ストリーミング中デバイスのエンドポイント
	router.HandleFunc("GET /api/devices", s.handleGetDevices)

	// ヘルスチェック用エンドポイント
	router.HandleFunc("GET /api/health", s.handleHealthCheck)
}

// サービス状態を返す
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"running":  s.service.Running(),
		"sessions": s.service.SessionCount(),
	}
	writeJSON(w, status)
}

// ストリーミング中のデバイス一覧を返す
func (s *Server) handleGetDevices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.Sessions())
}

// ヘルスチェック
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
