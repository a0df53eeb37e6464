// Package tenmon builds the kanagi / kotodama reading layered on top of a
// mansion triple.
package tenmon

import (
	"fmt"

	"sukuyo/domain/mansion"
)

// KanagiModes are the four rotations, selected by primary index mod 4.
var KanagiModes = [4]string{"左旋内集", "左旋外発", "右旋内集", "右旋外発"}

// Gotai maps each of the five vowels to its reading.
var Gotai = map[string]string{
	"ア": "天の水火の根源・開闢の息",
	"イ": "正中の火・一点凝縮",
	"ウ": "下降水火・地の生成",
	"エ": "外発・放射の強火",
	"オ": "統合・母胎の円環",
}

// UnknownResonance is returned when no vowel can be read from the name.
const UnknownResonance = "霊的響き：解析可能"

// Reading is the three-part core text.
type Reading struct {
	Core    string `json:"core"`
	Karma   string `json:"karma"`
	Destiny string `json:"destiny"`
}

// KanagiMode returns the rotation for a mansion index.
func KanagiMode(index int) string {
	return KanagiModes[((index%4)+4)%4]
}

// Kotodama interprets the first sound of a kana reading.
func Kotodama(reading string) string {
	vowel, ok := FirstVowel(reading)
	if !ok {
		return UnknownResonance
	}
	return Gotai[vowel]
}

// Core renders the three sentences for a triple.
func Core(t mansion.Triple) Reading {
	hon := t.PrimaryMansion().Name
	mei := t.KarmaMansion().Name
	tai := t.OriginMansion().Name
	return Reading{
		Core:    fmt.Sprintf("あなたの霊核は「%s → %s → %s」の三位が巡る中心構文", hon, mei, tai),
		Karma:   fmt.Sprintf("命業宿「%s」が示す因果の流れが、胎宿「%s」で潜在意識に格納されています。", mei, tai),
		Destiny: fmt.Sprintf("本命宿「%s」があなたの天命方向（外界）、胎宿「%s」が魂の原型を示します。", hon, tai),
	}
}
