package consts

// UIInput デバイスの定数（uinput.hから）
const (
	MaxNameSize = 80         // デバイス名の最大サイズ
	DevCreate   = 0x5501     // デバイス作成用のIOCTL
	DevDestroy  = 0x5502     // デバイス破棄用のIOCTL
	SetEvBit    = 0x40045564 // イベントビット設定用のIOCTL
	SetKeyBit   = 0x40045565 // キービット設定用のIOCTL
	SetAbsBit   = 0x40045567 // 絶対座標ビット設定用のIOCTL
	BusUsb      = 0x03       // USBバスタイプ
)

// evdev デバイスの取得系IOCTL（input.hから）
const (
	AbsSize    = 64         // 絶対座標の配列サイズ
	EVIOCGRAB  = 0x40044590 // デバイスの排他制御用のIOCTL
	EVIOCGID   = 0x80084502 // デバイス識別子取得用のIOCTL
	EVIOCGNAME = 0x81004506 // デバイス名取得用のIOCTL（256バイト）
	EVIOCGABS  = 0x80184540 // 絶対座標軸情報取得用のIOCTL（これに軸コードを加算する）
	EVIOCGBIT  = 0x80604521 // EV_KEYの能力ビットマップ取得用のIOCTL（96バイト）
	KeyMax     = 0x2ff      // キーコードの最大値
	KeyBitsLen = KeyMax/8 + 1
)
