package features

import (
	"log"

	"github.com/karei-dev/padmux/internal/consts"
	"github.com/karei-dev/padmux/internal/device"
	"github.com/karei-dev/padmux/internal/types"
)

// Worker は1台の物理デバイスを正規化するワーカーを表す構造体。
// 評価 → 専有 → 校正 → ストリーミングの順に進み、
// 不適格・専有失敗・読み取り失敗のいずれかで静かに終了する
type Worker struct {
	Path     string             // デバイスファイルのパス（観測用）
	Pad      device.Pad         // 物理デバイス
	Out      chan<- types.Event // 正規化済みイベントの共有チャネル
	Stop     <-chan struct{}    // サービス停止の通知
	Blocked  []string           // フィルタに追加する除外名プレフィックス
	Sessions *SessionRegistry   // ストリーミング中セッションの登録先（省略可）
}

// Run はワーカーを実行する。呼び出し元のゴルーチンを専有する
func (w *Worker) Run() {
	defer w.Pad.Close()

	name := w.Pad.Name()

	// 評価：対象外のデバイスは黙って終了する
	if !Suitable(w.Pad, w.Pad.Identity(), name, w.Blocked) {
		return
	}

	// 専有：他の専有者に負けるのは想定内の競合なので、これも黙って終了する。
	// 同じデバイスへの二重スポーンもここで無害に弾かれる
	if err := w.Pad.Grab(); err != nil {
		return
	}

	log.Printf("デバイスを専有しました: %s", name)

	// 校正：6軸の生レンジのスナップショットから倍率表を作る。
	// アナログ軸を持たないデバイスは全て0のレンジになり、校正済みとして扱われる
	var minimums, maximums [consts.PadAxisCount]int32
	for axis := uint16(0); axis < consts.PadAxisCount; axis++ {
		minimums[axis], maximums[axis] = w.Pad.AbsRange(axis)
	}
	cal := BuildCalibration(minimums, maximums)

	quirk := ResolveQuirk(w.Pad.Identity(), w.Pad)
	if quirk != QuirkNone {
		log.Printf("リマップを適用します: %s (%s)", quirk, name)
	}

	if w.Sessions != nil {
		w.Sessions.add(w.Path, name)
		defer w.Sessions.remove(w.Path)
	}

	// ストリーミング：読み取りに失敗するまで（＝デバイスが抜かれるまで）回り続ける
	for {
		ev, err := w.Pad.ReadEvent()
		if err != nil {
			log.Printf("デバイスを解放します: %s (%v)", name, err)
			return
		}

		switch ev.Type {
		case consts.Abs:
			switch ev.Code {
			case consts.AbsHat0X, consts.AbsHat0Y:
				// ハット軸は-1〜1で報告される前提なのでそのまま通す
			default:
				if ev.Code >= consts.PadAxisCount {
					// 出力契約に無い軸は捨てる
					continue
				}
				ev.Value = cal.Apply(ev.Code, ev.Value)
			}
			if !w.send(ev) {
				return
			}
		case consts.Key:
			// リマップの有無に関わらずキーイベントは必ず転送する
			if !w.send(quirk.Apply(ev)) {
				return
			}
		default:
			// 同期イベントなどは捨てる
		}
	}
}

// 共有チャネルへ送信する。サービスが停止していたらfalseを返す
func (w *Worker) send(ev types.Event) bool {
	select {
	case w.Out <- ev:
		return true
	case <-w.Stop:
		return false
	}
}
