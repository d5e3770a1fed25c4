package features

import (
	"sort"
	"sync"
	"time"
)

// SessionInfo はストリーミング中のセッション1件の情報
type SessionInfo struct {
	Path  string    `json:"path"`
	Name  string    `json:"name"`
	Since time.Time `json:"since"`
}

// SessionRegistry はストリーミング中のセッション一覧を保持する構造体。
// 観測専用で、パイプラインの動作には関与しない
type SessionRegistry struct {
	mutex    sync.RWMutex
	sessions map[string]SessionInfo
}

// NewSessionRegistry は新しいSessionRegistryを作成する
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]SessionInfo),
	}
}

func (r *SessionRegistry) add(path, name string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.sessions[path] = SessionInfo{Path: path, Name: name, Since: time.Now()}
}

func (r *SessionRegistry) remove(path string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.sessions, path)
}

// Active は現在ストリーミング中のセッションをパス順で返す
func (r *SessionRegistry) Active() []SessionInfo {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	sessions := make([]SessionInfo, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Path < sessions[j].Path
	})
	return sessions
}

// Count は現在ストリーミング中のセッション数を返す
func (r *SessionRegistry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.sessions)
}
