package features

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/karei-dev/padmux/internal/device"
	"github.com/karei-dev/padmux/internal/types"
)

// Watcher はデバイスの出現を監視し、デバイスごとにワーカーを起動する構造体。
// どのデバイスにワーカーが付いているかは記録しない。
// 既に専有済みのデバイスへの二重スポーンはワーカーの専有失敗で
// 無害に弾かれるため、状態を持たない再スキャンだけで自己修復する
type Watcher struct {
	InputDir string             // 入力デバイスのディレクトリ（通常は/dev/input）
	Interval time.Duration      // 再スキャンの間隔
	Out      chan<- types.Event // ワーカーに渡す共有チャネル
	Stop     <-chan struct{}    // サービス停止の通知
	Blocked  []string           // フィルタに追加する除外名プレフィックス
	Sessions *SessionRegistry   // ストリーミング中セッションの登録先
}

// Run は監視ループを実行する。停止が通知されるまで戻らない
func (w *Watcher) Run() {
	// ファイルシステムイベントは即時再スキャンの補助として使う。
	// 監視に失敗しても周期的な再スキャンが正として機能する
	var fsEvents chan fsnotify.Event
	var fsErrors chan error
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("ファイルシステム監視の初期化に失敗しました: %v", err)
	} else {
		defer fsWatcher.Close()
		if err := fsWatcher.Add(w.InputDir); err != nil {
			log.Printf("ディレクトリの監視に失敗しました: %s - %v", w.InputDir, err)
		} else {
			fsEvents = fsWatcher.Events
			fsErrors = fsWatcher.Errors
		}
	}

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.Stop:
			return

		case <-ticker.C:
			w.scan()

		case event, ok := <-fsEvents:
			if !ok {
				fsEvents = nil
				continue
			}
			// デバイスノードが増えたら次の周期を待たずに拾う
			if event.Op&fsnotify.Create == fsnotify.Create {
				w.scan()
			}

		case err, ok := <-fsErrors:
			if !ok {
				fsErrors = nil
				continue
			}
			log.Printf("ファイルシステム監視エラー: %v", err)
		}
	}
}

// 現在見えている全デバイスに対してワーカーを起動する
func (w *Watcher) scan() {
	entries, err := os.ReadDir(w.InputDir)
	if err != nil {
		log.Printf("デバイス一覧の取得に失敗しました: %v", err)
		return
	}

	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "event") {
			continue
		}
		path := filepath.Join(w.InputDir, entry.Name())
		go w.spawn(path)
	}
}

func (w *Watcher) spawn(path string) {
	// 権限不足などで開けないデバイスは対象外として無視する
	pad, err := device.OpenPad(path)
	if err != nil {
		return
	}

	worker := &Worker{
		Path:     path,
		Pad:      pad,
		Out:      w.Out,
		Stop:     w.Stop,
		Blocked:  w.Blocked,
		Sessions: w.Sessions,
	}
	worker.Run()
}
