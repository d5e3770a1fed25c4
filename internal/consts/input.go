package consts

// イベントタイプの定数（input-event-codes.hより）
const (
	Syn = 0x00 // 同期イベント
	Key = 0x01 // キーイベント
	Abs = 0x03 // 絶対座標イベント

	SynReport = 0 // イベント報告の同期
)

// ゲームパッドのボタンコード
const (
	BtnSouth  = 0x130 // Aボタン（下側）
	BtnEast   = 0x131 // Bボタン（右側）
	BtnC      = 0x132 // Cボタン
	BtnNorth  = 0x133 // Xボタン（上側）
	BtnWest   = 0x134 // Yボタン（左側）
	BtnZ      = 0x135 // Zボタン
	BtnTL     = 0x136 // 左ショルダー
	BtnTR     = 0x137 // 右ショルダー
	BtnTL2    = 0x138 // 左トリガーボタン
	BtnTR2    = 0x139 // 右トリガーボタン
	BtnSelect = 0x13a // セレクト
	BtnStart  = 0x13b // スタート
	BtnMode   = 0x13c // ガイドボタン
	BtnThumbL = 0x13d // 左スティック押し込み
	BtnThumbR = 0x13e // 右スティック押し込み

	BtnDpadUp    = 0x220 // 十字キー上
	BtnDpadDown  = 0x221 // 十字キー下
	BtnDpadLeft  = 0x222 // 十字キー左
	BtnDpadRight = 0x223 // 十字キー右

	BtnTouch = 0x14a // タッチ検出（タッチスクリーン）
)

// 絶対座標軸のコード
const (
	AbsX     = 0x00 // 左スティックX軸
	AbsY     = 0x01 // 左スティックY軸
	AbsZ     = 0x02 // 左トリガー軸
	AbsRX    = 0x03 // 右スティックX軸
	AbsRY    = 0x04 // 右スティックY軸
	AbsRZ    = 0x05 // 右トリガー軸
	AbsHat0X = 0x10 // ハットスイッチX軸（十字キー）
	AbsHat0Y = 0x11 // ハットスイッチY軸（十字キー）

	PadAxisCount = 6 // 校正対象の軸数（スティック4軸＋トリガー2軸）
)

// 正規化後の出力レンジ
const (
	MinOutAnalog = -32768 // スティック軸の最小値
	MaxOutAnalog = 32767  // スティック軸の最大値
	MinOutTrig   = 0      // トリガー軸の最小値
	MaxOutTrig   = 255    // トリガー軸の最大値
	MinOutHat    = -1     // ハット軸の最小値
	MaxOutHat    = 1      // ハット軸の最大値
)

// 仮想デバイスの識別情報
const (
	VirtualPadName    = "Microsoft X-Box 360 pad" // 仮想デバイスの表示名
	VirtualPadVendor  = 0x045e                    // ベンダーID
	VirtualPadProduct = 0x028e                    // 製品ID
	VirtualPadVersion = 0x2137                    // 自己識別用のバージョンタグ
)
