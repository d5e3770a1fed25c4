package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karei-dev/padmux/internal/consts"
	"github.com/karei-dev/padmux/internal/types"
)

func keyEv(code uint16, value int32) types.Event {
	return types.Event{Type: consts.Key, Code: code, Value: value}
}

func TestResolveQuirk(t *testing.T) {
	rg351mID := types.InputID{Vendor: rg351mVendor, Product: rg351mProduct}
	dpadCaps := fakeCaps{consts.BtnSouth: true, consts.BtnDpadLeft: true}
	plainCaps := fakeCaps{consts.BtnSouth: true}

	// 固有テーブルの完全一致が汎用ルールより優先される
	assert.Equal(t, QuirkRG351M, ResolveQuirk(rg351mID, dpadCaps))
	assert.Equal(t, QuirkDPadToHat, ResolveQuirk(types.InputID{}, dpadCaps))
	assert.Equal(t, QuirkNone, ResolveQuirk(types.InputID{}, plainCaps))
}

func TestDPadToHatDirections(t *testing.T) {
	tests := []struct {
		name    string
		in      uint16
		axis    uint16
		pressed int32
	}{
		{"up", consts.BtnDpadUp, consts.AbsHat0Y, -1},
		{"down", consts.BtnDpadDown, consts.AbsHat0Y, 1},
		{"left", consts.BtnDpadLeft, consts.AbsHat0X, -1},
		{"right", consts.BtnDpadRight, consts.AbsHat0X, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			press := QuirkDPadToHat.Apply(keyEv(tt.in, 1))
			assert.Equal(t, uint16(consts.Abs), press.Type)
			assert.Equal(t, tt.axis, press.Code)
			assert.Equal(t, tt.pressed, press.Value)

			release := QuirkDPadToHat.Apply(keyEv(tt.in, 0))
			assert.Equal(t, tt.axis, release.Code)
			assert.Equal(t, int32(0), release.Value)

			// -1/0/1以外の値を出さないこと
			for _, v := range []int32{0, 1, 2} {
				out := QuirkDPadToHat.Apply(keyEv(tt.in, v))
				assert.Contains(t, []int32{-1, 0, 1}, out.Value)
			}
		})
	}
}

func TestDPadToHatTriggers(t *testing.T) {
	press := QuirkDPadToHat.Apply(keyEv(consts.BtnTL2, 1))
	assert.Equal(t, uint16(consts.Abs), press.Type)
	assert.Equal(t, uint16(consts.AbsZ), press.Code)
	assert.Equal(t, int32(consts.MaxOutTrig), press.Value)

	release := QuirkDPadToHat.Apply(keyEv(consts.BtnTR2, 0))
	assert.Equal(t, uint16(consts.AbsRZ), release.Code)
	assert.Equal(t, int32(consts.MinOutTrig), release.Value)
}

func TestDPadToHatLeavesOtherKeys(t *testing.T) {
	ev := keyEv(consts.BtnSouth, 1)
	assert.Equal(t, ev, QuirkDPadToHat.Apply(ev))
}

func TestRG351MTableTotality(t *testing.T) {
	// 宣言されたボタン集合の全コードに対して、出力がちょうど1つ定義されている
	expected := map[uint16]types.Event{
		consts.BtnEast:   keyEv(consts.BtnSouth, 1),
		consts.BtnSouth:  keyEv(consts.BtnEast, 1),
		consts.BtnNorth:  keyEv(consts.BtnWest, 1),
		consts.BtnC:      keyEv(consts.BtnNorth, 1),
		consts.BtnTL2:    keyEv(consts.BtnThumbL, 1),
		consts.BtnTR2:    keyEv(consts.BtnThumbR, 1),
		consts.BtnWest:   keyEv(consts.BtnTL, 1),
		consts.BtnZ:      keyEv(consts.BtnTR, 1),
		consts.BtnSelect: {Type: consts.Abs, Code: consts.AbsZ, Value: consts.MaxOutTrig},
		consts.BtnStart:  {Type: consts.Abs, Code: consts.AbsRZ, Value: consts.MaxOutTrig},
		consts.BtnTR:     keyEv(consts.BtnSelect, 1),
		consts.BtnTL:     keyEv(consts.BtnStart, 1),
	}

	for in, want := range expected {
		got := QuirkRG351M.Apply(keyEv(in, 1))
		assert.Equal(t, want, got, "input code %#x", in)
	}
}

func TestRG351MSwapInvolution(t *testing.T) {
	// A↔Bの入れ替えは2回適用すると元に戻る
	for _, code := range []uint16{consts.BtnEast, consts.BtnSouth} {
		once := QuirkRG351M.Apply(keyEv(code, 1))
		twice := QuirkRG351M.Apply(once)
		assert.Equal(t, code, twice.Code)
	}
}

func TestRG351MReleaseValues(t *testing.T) {
	release := QuirkRG351M.Apply(keyEv(consts.BtnSelect, 0))
	require.Equal(t, uint16(consts.Abs), release.Type)
	assert.Equal(t, int32(0), release.Value)

	press := QuirkRG351M.Apply(keyEv(consts.BtnStart, 1))
	assert.Equal(t, int32(consts.MaxOutTrig), press.Value)
}

func TestQuirkNoneIsIdentity(t *testing.T) {
	ev := keyEv(consts.BtnSouth, 1)
	assert.Equal(t, ev, QuirkNone.Apply(ev))
}
