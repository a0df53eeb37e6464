package tenmon

import "strings"

var vowelRows = map[string]string{
	"ア": "あかさたなはまやらわがざだばぱ",
	"イ": "いきしちにひみりぎじぢびぴ",
	"ウ": "うくすつぬふむゆるぐずづぶぷ",
	"エ": "えけせてねへめれげぜでべぺ",
	"オ": "おこそとのほもよろをごぞどぼぽ",
}

// contracted sounds take the vowel of the small kana: きょ is "kyo".
var smallKana = map[rune]string{
	'ゃ': "ア",
	'ゅ': "ウ",
	'ょ': "オ",
}

// FirstVowel returns the vowel of the first mora of a hiragana (or
// katakana) reading.
func FirstVowel(reading string) (string, bool) {
	runes := []rune(toHiragana(strings.TrimSpace(reading)))
	if len(runes) == 0 {
		return "", false
	}
	if len(runes) > 1 {
		if v, ok := smallKana[runes[1]]; ok {
			return v, true
		}
	}
	for vowel, row := range vowelRows {
		if strings.ContainsRune(row, runes[0]) {
			return vowel, true
		}
	}
	return "", false
}

func toHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'ァ' && r <= 'ヶ' {
			return r - ('ァ' - 'ぁ')
		}
		return r
	}, s)
}
