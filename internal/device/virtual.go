package device

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/karei-dev/padmux/internal/consts"
	"github.com/karei-dev/padmux/internal/types"
	"github.com/karei-dev/padmux/internal/utils"
)

// GamePad は仮想ゲームパッドデバイスを表現するインターフェース
type GamePad interface {
	// 正規化済みイベントを1件注入する
	WriteEvent(ev types.Event) error
	io.Closer
}

type virtualGamePad struct {
	deviceFile *os.File
}

// 仮想デバイスが提供するデジタルボタン（11個）
var padButtons = []int{
	consts.BtnSouth,
	consts.BtnEast,
	consts.BtnNorth,
	consts.BtnWest,
	consts.BtnTL,
	consts.BtnTR,
	consts.BtnSelect,
	consts.BtnStart,
	consts.BtnMode,
	consts.BtnThumbL,
	consts.BtnThumbR,
}

// 仮想デバイスが提供する絶対座標軸
var padAxes = []int{
	consts.AbsX,
	consts.AbsY,
	consts.AbsZ,
	consts.AbsRX,
	consts.AbsRY,
	consts.AbsRZ,
	consts.AbsHat0X,
	consts.AbsHat0Y,
}

// CreateGamePad は正規化出力先となる仮想ゲームパッドデバイスを作成する。
// スティック4軸は[-32768, 32767]、トリガー2軸は[0, 255]、
// ハット2軸は[-1, 1]のレンジを広告する
func CreateGamePad(path string) (GamePad, error) {
	deviceFile, err := createDeviceFile(path)
	if err != nil {
		return nil, fmt.Errorf("仮想ゲームパッドデバイスの作成に失敗しました: %w", err)
	}

	// キー入力イベント(EV_KEY)を登録する
	if err := registerDevice(deviceFile, uintptr(consts.Key)); err != nil {
		_ = deviceFile.Close()
		return nil, fmt.Errorf("キー入力イベント(EV_KEY)の登録に失敗しました: %w", err)
	}

	// ゲームパッドのボタンを登録する
	for _, btn := range padButtons {
		if err := utils.IOCtl(deviceFile, consts.SetKeyBit, uintptr(btn)); err != nil {
			_ = deviceFile.Close()
			return nil, fmt.Errorf("ボタンの登録に失敗しました %#x: %w", btn, err)
		}
	}

	// 絶対座標入力イベント(EV_ABS)を登録する
	if err := registerDevice(deviceFile, uintptr(consts.Abs)); err != nil {
		_ = deviceFile.Close()
		return nil, fmt.Errorf("絶対座標入力イベント(EV_ABS)の登録に失敗しました: %w", err)
	}

	// スティック・トリガー・ハットの各軸を登録する
	for _, axis := range padAxes {
		if err := utils.IOCtl(deviceFile, consts.SetAbsBit, uintptr(axis)); err != nil {
			_ = deviceFile.Close()
			return nil, fmt.Errorf("座標軸の登録に失敗しました %#x: %w", axis, err)
		}
	}

	var absMin [consts.AbsSize]int32
	var absMax [consts.AbsSize]int32
	var absFuzz [consts.AbsSize]int32
	var absFlat [consts.AbsSize]int32

	// スティック軸
	for _, axis := range []int{consts.AbsX, consts.AbsY, consts.AbsRX, consts.AbsRY} {
		absMin[axis] = consts.MinOutAnalog
		absMax[axis] = consts.MaxOutAnalog
		absFuzz[axis] = 16
		absFlat[axis] = 256
	}

	// トリガー軸
	for _, axis := range []int{consts.AbsZ, consts.AbsRZ} {
		absMin[axis] = consts.MinOutTrig
		absMax[axis] = consts.MaxOutTrig
	}

	// ハット軸（十字キー）
	for _, axis := range []int{consts.AbsHat0X, consts.AbsHat0Y} {
		absMin[axis] = consts.MinOutHat
		absMax[axis] = consts.MaxOutHat
	}

	userDev := types.UserDev{
		Name: ToUinputName([]byte(consts.VirtualPadName)),
		ID: types.InputID{
			Bustype: consts.BusUsb,
			Vendor:  consts.VirtualPadVendor,
			Product: consts.VirtualPadProduct,
			// 自分自身の出力を再取り込みしないためのバージョンタグ
			Version: consts.VirtualPadVersion,
		},
		Absmin:  absMin,
		Absmax:  absMax,
		Absfuzz: absFuzz,
		Absflat: absFlat,
	}

	fd, err := createUsbDevice(deviceFile, userDev)
	if err != nil {
		return nil, fmt.Errorf("USBデバイスの作成に失敗しました: %w", err)
	}

	return &virtualGamePad{deviceFile: fd}, nil
}

// 正規化済みイベントを書き込み、続けて同期イベントで報告を確定する
func (vg *virtualGamePad) WriteEvent(ev types.Event) error {
	events := []types.Event{
		ev,
		{Type: consts.Syn, Code: consts.SynReport, Value: 0},
	}
	return writeEvents(vg.deviceFile, events)
}

func (vg *virtualGamePad) Close() error {
	_ = releaseDevice(vg.deviceFile)
	return vg.deviceFile.Close()
}

// デバイスファイルを作成する
func createDeviceFile(path string) (*os.File, error) {
	deviceFile, err := os.OpenFile(path, syscall.O_WRONLY|syscall.O_NONBLOCK, 0660)
	if err != nil {
		return nil, fmt.Errorf("デバイスファイルを開くのに失敗しました: %w", err)
	}
	return deviceFile, nil
}

// デバイスを解放する
func releaseDevice(deviceFile *os.File) error {
	return utils.IOCtl(deviceFile, consts.DevDestroy, uintptr(0))
}

// デバイスにイベントタイプを登録する
func registerDevice(deviceFile *os.File, evType uintptr) error {
	if err := utils.IOCtl(deviceFile, consts.SetEvBit, evType); err != nil {
		return fmt.Errorf("イベントタイプの登録に失敗しました %v: %w", evType, err)
	}
	return nil
}

// USBデバイスを作成する
func createUsbDevice(deviceFile *os.File, dev types.UserDev) (*os.File, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, dev); err != nil {
		_ = deviceFile.Close()
		return nil, fmt.Errorf("ユーザーデバイスバッファの書き込みに失敗しました: %w", err)
	}
	if _, err := deviceFile.Write(buf.Bytes()); err != nil {
		_ = deviceFile.Close()
		return nil, fmt.Errorf("デバイス構造体をデバイスファイルに書き込むのに失敗しました: %w", err)
	}

	if err := utils.IOCtl(deviceFile, consts.DevCreate, uintptr(0)); err != nil {
		_ = deviceFile.Close()
		return nil, fmt.Errorf("デバイスの作成に失敗しました: %w", err)
	}

	return deviceFile, nil
}

// イベントを書き込む
func writeEvents(deviceFile *os.File, events []types.Event) error {
	for _, ev := range events {
		buf := new(bytes.Buffer)
		if err := binary.Write(buf, binary.LittleEndian, ev); err != nil {
			return fmt.Errorf("イベントをバッファに書き込むのに失敗しました: %w", err)
		}
		if _, err := deviceFile.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("イベントの書き込みに失敗しました: %w", err)
		}
	}
	return nil
}

// ToUinputName は名前をuinput用の固定長配列に変換する
func ToUinputName(name []byte) [consts.MaxNameSize]byte {
	var fixedSizeName [consts.MaxNameSize]byte
	copy(fixedSizeName[:], name)
	return fixedSizeName
}
