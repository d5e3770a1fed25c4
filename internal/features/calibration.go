package features

import "github.com/karei-dev/padmux/internal/consts"

// 生レンジと正規化レンジの差がこの値未満なら校正済みとみなす
const calibrationTolerance = 100

// Calibration は軸ごとの整数倍率表を表す構造体。
// 負方向の生値には最小値由来の倍率を、非負の生値には最大値由来の
// 倍率を適用する。セッション開始時に一度だけ計算され、以後不変
type Calibration struct {
	Min [consts.PadAxisCount]int32 // 最小値由来の倍率
	Max [consts.PadAxisCount]int32 // 最大値由来の倍率
}

// BuildCalibration はデバイスが報告した6軸の生レンジから倍率表を計算する
func BuildCalibration(minimums, maximums [consts.PadAxisCount]int32) Calibration {
	var cal Calibration
	for axis := 0; axis < consts.PadAxisCount; axis++ {
		minTarget := int32(consts.MinOutAnalog)
		maxTarget := int32(consts.MaxOutAnalog)
		if axis == consts.AbsZ || axis == consts.AbsRZ {
			minTarget = consts.MinOutTrig
			maxTarget = consts.MaxOutTrig
		}
		cal.Min[axis] = multiplier(minimums[axis], minTarget)
		cal.Max[axis] = multiplier(maximums[axis], maxTarget)
	}
	return cal
}

// 生レンジの境界値から正規化レンジの境界値への整数倍率を計算する
func multiplier(bound, target int32) int32 {
	// アナログ軸を持たないデバイスはレンジが全て0になる。
	// ゼロ除算を避け、校正済みとして扱う
	if bound == 0 {
		return 1
	}
	diff := bound - target
	if diff < 0 {
		diff = -diff
	}
	if diff < calibrationTolerance {
		return 1
	}
	return target / bound
}

// Apply は生のサンプル値に符号に応じた倍率を適用する。
// ハット軸は校正の対象外なので、呼び出し側で素通しすること
func (c Calibration) Apply(axis uint16, value int32) int32 {
	if axis >= consts.PadAxisCount {
		return value
	}
	if value < 0 {
		return value * c.Min[axis]
	}
	return value * c.Max[axis]
}
