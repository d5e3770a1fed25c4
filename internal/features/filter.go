package features

import (
	"strings"

	"github.com/karei-dev/padmux/internal/consts"
	"github.com/karei-dev/padmux/internal/types"
)

// Capabilities はデバイスがサポートするキーの集合を表すインターフェース
type Capabilities interface {
	HasKey(code uint16) bool
}

// 入力リダイレクトレイヤーが複製するデバイス名のプレフィックス。
// 末尾の空白が本物の仮想デバイス名との区別になっている
const clonedPadPrefix = consts.VirtualPadName + " "

// Suitable は正規化の対象とすべきデバイスかどうかを判定する。
// 判定は順序付きで、後のルールが前のルールを上書きする：
// ゲームパッドらしければ採用し、タッチスクリーン・自分自身の出力・
// リダイレクトレイヤーの複製はゲームパッドらしくても必ず除外する
func Suitable(caps Capabilities, id types.InputID, name string, extraBlocked []string) bool {
	useful := false

	// ゲームパッド
	if caps.HasKey(consts.BtnSouth) {
		useful = true
	}

	// タッチスクリーン（ドライバによってはゲームパッドと能力が重なる）
	if caps.HasKey(consts.BtnTouch) {
		useful = false
	}

	// 自分自身が作成した仮想デバイス
	if id.Version == consts.VirtualPadVersion {
		useful = false
	}

	// リダイレクトレイヤーの複製。名前が読めなかったデバイスも同様に除外する
	if name == "" || strings.HasPrefix(name, clonedPadPrefix) {
		useful = false
	}

	// 設定で追加された除外プレフィックス
	for _, prefix := range extraBlocked {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			useful = false
		}
	}

	return useful
}
