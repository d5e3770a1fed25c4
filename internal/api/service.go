package api

import (
	"fmt"
	"log"
	"sync"

	"github.com/karei-dev/padmux/internal/config"
	"github.com/karei-dev/padmux/internal/device"
	"github.com/karei-dev/padmux/internal/features"
	"github.com/karei-dev/padmux/internal/types"
)

// PadService は正規化パイプライン全体を管理する構造体。
// 仮想ゲームパッドの作成、ホットプラグ監視の起動、
// 共有チャネルから仮想デバイスへの書き込みループを束ねる
type PadService struct {
	cfg         *config.Config
	stopChan    chan struct{}
	running     bool
	statusMutex sync.RWMutex
	sessions    *features.SessionRegistry

	// テストで差し替えるためのフック
	createPad func(path string) (device.GamePad, error)
	fatalf    func(format string, v ...any)
}

// NewPadService は新しいPadServiceを作成する
func NewPadService(cfg *config.Config) *PadService {
	return &PadService{
		cfg:       cfg,
		sessions:  features.NewSessionRegistry(),
		createPad: device.CreateGamePad,
		fatalf:    log.Fatalf,
	}
}

// Start は正規化パイプラインを開始する。
// 仮想デバイスの作成に失敗した場合はエラーを返す（出力先なしでは動けない）
func (s *PadService) Start() error {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	if s.running {
		return fmt.Errorf("サービスは既に実行中です")
	}

	// 仮想ゲームパッドデバイスの作成
	gamePad, err := s.createPad(s.cfg.Device.UinputPath)
	if err != nil {
		return fmt.Errorf("仮想ゲームパッドの作成に失敗しました: %w", err)
	}

	s.stopChan = make(chan struct{})

	// 全ワーカーが書き込む共有チャネル。
	// 消費者は下のdrainただ1つで、到着順がそのまま注入順になる
	out := make(chan types.Event, s.cfg.Watcher.ChannelDepth)

	watcher := &features.Watcher{
		InputDir: s.cfg.Device.InputDir,
		Interval: s.cfg.Watcher.RescanInterval,
		Out:      out,
		Stop:     s.stopChan,
		Blocked:  s.cfg.Filter.BlockedNamePrefixes,
		Sessions: s.sessions,
	}
	go watcher.Run()

	// 仮想デバイスのハンドルはドレインゴルーチンだけが触る。
	// クローズも含めて所有させることで、停止経路との競合を無くす
	go s.drain(gamePad, s.stopChan, out)

	s.running = true
	log.Printf("正規化パイプラインを開始しました: %s", s.cfg.Device.InputDir)
	return nil
}

// 共有チャネルの唯一の消費者。
// 正規化済みイベントを到着順に仮想デバイスへ注入する
func (s *PadService) drain(pad device.GamePad, stop <-chan struct{}, out <-chan types.Event) {
	defer pad.Close()

	for {
		select {
		case <-stop:
			return
		case ev := <-out:
			if err := pad.WriteEvent(ev); err != nil {
				// 出力先を失ったら縮退運転はできない
				s.fatalf("仮想デバイスへの書き込みに失敗しました: %v", err)
				return
			}
		}
	}
}

// Stop は正規化パイプラインを停止する
func (s *PadService) Stop() {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	if !s.running {
		return
	}

	close(s.stopChan)
	s.running = false
	log.Println("正規化パイプラインを停止しました")
}

// Running はサービスが実行中かどうかを返す
func (s *PadService) Running() bool {
	s.statusMutex.RLock()
	defer s.statusMutex.RUnlock()
	return s.running
}

// Sessions は現在ストリーミング中のセッション一覧を返す
func (s *PadService) Sessions() []features.SessionInfo {
	return s.sessions.Active()
}

// SessionCount は現在ストリーミング中のセッション数を返す
func (s *PadService) SessionCount() int {
	return s.sessions.Count()
}
