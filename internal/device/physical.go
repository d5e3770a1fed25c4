package device

import (
	"encoding/binary"
	"fmt"
	"os"
	"syscall"
	"unsafe"

	"github.com/karei-dev/padmux/internal/consts"
	"github.com/karei-dev/padmux/internal/types"
	"github.com/karei-dev/padmux/internal/utils"
)

// Pad は物理コントローラーデバイスとの境界を表すインターフェース
type Pad interface {
	// デバイスの表示名を取得する（取得できなかった場合は空文字列）
	Name() string
	// デバイスの識別子を取得する
	Identity() types.InputID
	// 指定されたキーコードをサポートしているか判定する
	HasKey(code uint16) bool
	// 指定された絶対座標軸の生レンジを取得する（軸が無い場合は0, 0）
	AbsRange(axis uint16) (min int32, max int32)
	// デバイスを排他制御する（他プロセスが既に専有している場合は失敗する）
	Grab() error
	// 次の生イベントを読み取る（ブロッキング）
	ReadEvent() (types.Event, error)
	Close() error
}

type physicalPad struct {
	file    *os.File
	name    string
	id      types.InputID
	keyBits [consts.KeyBitsLen]byte
	absInfo [consts.PadAxisCount]types.AbsInfo
	grabbed bool
}

// OpenPad は指定されたパスの物理デバイスを開き、
// 識別子・名前・能力ビット・絶対座標レンジのスナップショットを取得する
func OpenPad(path string) (Pad, error) {
	f, err := os.OpenFile(path, syscall.O_RDONLY, 0660)
	if err != nil {
		return nil, fmt.Errorf("デバイスファイルを開くのに失敗しました: %w", err)
	}

	p := &physicalPad{file: f}

	// デバイス識別子の取得
	if err := utils.IOCtl(f, consts.EVIOCGID, uintptr(unsafe.Pointer(&p.id))); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("デバイス識別子の取得に失敗しました: %w", err)
	}

	// デバイス名の取得（失敗しても続行する。名前はフィルタ側で扱う）
	var nameBuf [256]byte
	if err := utils.IOCtl(f, consts.EVIOCGNAME, uintptr(unsafe.Pointer(&nameBuf[0]))); err == nil {
		p.name = cString(nameBuf[:])
	}

	// EV_KEYの能力ビットマップの取得
	if err := utils.IOCtl(f, consts.EVIOCGBIT, uintptr(unsafe.Pointer(&p.keyBits[0]))); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("能力ビットマップの取得に失敗しました: %w", err)
	}

	// 校正対象の6軸の生レンジを取得する。
	// アナログ軸を持たないデバイスではioctlが失敗するため、その軸は0のままとする
	for axis := uint16(0); axis < consts.PadAxisCount; axis++ {
		var info types.AbsInfo
		if err := utils.IOCtl(f, consts.EVIOCGABS+uintptr(axis), uintptr(unsafe.Pointer(&info))); err == nil {
			p.absInfo[axis] = info
		}
	}

	return p, nil
}

func (p *physicalPad) Name() string {
	return p.name
}

func (p *physicalPad) Identity() types.InputID {
	return p.id
}

func (p *physicalPad) HasKey(code uint16) bool {
	if code > consts.KeyMax {
		return false
	}
	return p.keyBits[code/8]&(1<<(code%8)) != 0
}

func (p *physicalPad) AbsRange(axis uint16) (int32, int32) {
	if axis >= consts.PadAxisCount {
		return 0, 0
	}
	return p.absInfo[axis].Minimum, p.absInfo[axis].Maximum
}

func (p *physicalPad) Grab() error {
	if p.grabbed {
		return nil
	}
	if err := utils.IOCtl(p.file, consts.EVIOCGRAB, 1); err != nil {
		return fmt.Errorf("デバイスの排他制御に失敗しました: %w", err)
	}
	p.grabbed = true
	return nil
}

func (p *physicalPad) ReadEvent() (types.Event, error) {
	var e types.Event
	buf := make([]byte, binary.Size(e))

	// デバイスが抜かれた場合はここの読み取りが失敗する
	if _, err := p.file.Read(buf); err != nil {
		return e, err
	}

	e.Time.Sec = int64(binary.LittleEndian.Uint64(buf[0:8]))
	e.Time.Usec = int64(binary.LittleEndian.Uint64(buf[8:16]))
	e.Type = binary.LittleEndian.Uint16(buf[16:18])
	e.Code = binary.LittleEndian.Uint16(buf[18:20])
	e.Value = int32(binary.LittleEndian.Uint32(buf[20:24]))

	return e, nil
}

func (p *physicalPad) Close() error {
	if p.grabbed {
		_ = utils.IOCtl(p.file, consts.EVIOCGRAB, 0)
		p.grabbed = false
	}
	return p.file.Close()
}

// NUL終端されたバイト列を文字列に変換する
func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
