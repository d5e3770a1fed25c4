package features

import (
	"github.com/karei-dev/padmux/internal/consts"
	"github.com/karei-dev/padmux/internal/types"
)

// 既知の問題デバイス：Anbernic RG351M（ボタン配置がドライバレベルで崩れている）
const (
	rg351mVendor  = 0x1209
	rg351mProduct = 0x3100
)

// Quirk はデバイス固有の変換の種類を表す閉じた列挙型。
// セッション開始時に一度だけ解決され、以後不変
type Quirk uint8

const (
	// 変換なし
	QuirkNone Quirk = iota
	// 十字キーボタンをハット軸に、トリガーボタンをトリガー軸に合成する汎用リマップ
	QuirkDPadToHat
	// RG351M固有のボタン配置補正
	QuirkRG351M
)

func (q Quirk) String() string {
	switch q {
	case QuirkDPadToHat:
		return "dpad-to-hat"
	case QuirkRG351M:
		return "rg351m"
	default:
		return "none"
	}
}

// ResolveQuirk はデバイスの識別子と能力から適用すべき変換を選択する。
// 固有テーブルの完全一致が最優先で、次に十字キーをボタンとして
// 報告するデバイス向けの汎用リマップ。最初に一致したルールのみ適用される
func ResolveQuirk(id types.InputID, caps Capabilities) Quirk {
	if id.Vendor == rg351mVendor && id.Product == rg351mProduct {
		return QuirkRG351M
	}
	if caps.HasKey(consts.BtnDpadLeft) {
		return QuirkDPadToHat
	}
	return QuirkNone
}

// Apply はキーイベントに変換を適用する。
// 一致しないイベントはそのまま返す
func (q Quirk) Apply(ev types.Event) types.Event {
	switch q {
	case QuirkDPadToHat:
		return dpadToHat(ev)
	case QuirkRG351M:
		return rg351m(ev)
	default:
		return ev
	}
}

// ボタンとして報告された十字キーをハット軸イベントへ、
// トリガーボタンをトリガー軸イベントへ合成する
func dpadToHat(ev types.Event) types.Event {
	if ev.Type != consts.Key {
		return ev
	}

	pressed := ev.Value != 0

	var code uint16
	var value int32
	switch ev.Code {
	case consts.BtnDpadUp:
		code, value = consts.AbsHat0Y, hatValue(pressed, -1)
	case consts.BtnDpadDown:
		code, value = consts.AbsHat0Y, hatValue(pressed, 1)
	case consts.BtnDpadLeft:
		code, value = consts.AbsHat0X, hatValue(pressed, -1)
	case consts.BtnDpadRight:
		code, value = consts.AbsHat0X, hatValue(pressed, 1)
	case consts.BtnTL2:
		code, value = consts.AbsZ, trigValue(pressed)
	case consts.BtnTR2:
		code, value = consts.AbsRZ, trigValue(pressed)
	default:
		return ev
	}

	return types.Event{Time: ev.Time, Type: consts.Abs, Code: code, Value: value}
}

func hatValue(pressed bool, direction int32) int32 {
	if !pressed {
		return 0
	}
	return direction
}

func trigValue(pressed bool) int32 {
	if !pressed {
		return consts.MinOutTrig
	}
	return consts.MaxOutTrig
}

// RG351Mのハードウェアバグ補正テーブル。
// 実機のボタン配置がこうなっている。再導出せず、固定データとして扱うこと
func rg351m(ev types.Event) types.Event {
	if ev.Type != consts.Key {
		return ev
	}

	remapped := types.Event{Time: ev.Time, Type: consts.Key, Value: ev.Value}
	switch ev.Code {
	// ABXY
	case consts.BtnEast:
		remapped.Code = consts.BtnSouth
	case consts.BtnSouth:
		remapped.Code = consts.BtnEast
	case consts.BtnNorth:
		remapped.Code = consts.BtnWest
	case consts.BtnC:
		remapped.Code = consts.BtnNorth
	// スティック押し込み
	case consts.BtnTL2:
		remapped.Code = consts.BtnThumbL
	case consts.BtnTR2:
		remapped.Code = consts.BtnThumbR
	// ショルダー
	case consts.BtnWest:
		remapped.Code = consts.BtnTL
	case consts.BtnZ:
		remapped.Code = consts.BtnTR
	// トリガー（デジタルボタンをフルスケールのトリガー軸に変換する）
	case consts.BtnSelect:
		remapped.Type = consts.Abs
		remapped.Code = consts.AbsZ
		remapped.Value = ev.Value * consts.MaxOutTrig
	case consts.BtnStart:
		remapped.Type = consts.Abs
		remapped.Code = consts.AbsRZ
		remapped.Value = ev.Value * consts.MaxOutTrig
	// セレクト・スタート
	case consts.BtnTR:
		remapped.Code = consts.BtnSelect
	case consts.BtnTL:
		remapped.Code = consts.BtnStart
	default:
		return ev
	}

	return remapped
}
