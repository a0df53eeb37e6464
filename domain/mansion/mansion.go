// Package mansion maps an angular lunar longitude onto the 28-mansion
// cycle and derives the karma and origin mansions from the primary one.
package mansion

import "fmt"

// CycleLength is the number of mansions in the cycle.
const CycleLength = 28

// Width is the arc in degrees covered by one mansion.
const Width = 360.0 / CycleLength

// Offsets of the derived mansions relative to the primary.
const (
	KarmaOffset  = 9
	OriginOffset = -3
)

// Mansion is one entry of the cycle.
type Mansion struct {
	Index   int    `json:"index" yaml:"index"`
	Name    string `json:"name" yaml:"name"`
	Reading string `json:"reading" yaml:"reading"`
}

// String renders the mansion as 名前（よみ）.
func (m Mansion) String() string {
	return fmt.Sprintf("%s（%s）", m.Name, m.Reading)
}

// cycle starts at 角 (index 0) and ends at 軫 (index 27).
var cycle = [CycleLength]Mansion{
	{0, "角宿", "かくしゅく"},
	{1, "亢宿", "こうしゅく"},
	{2, "氐宿", "ていしゅく"},
	{3, "房宿", "ぼうしゅく"},
	{4, "心宿", "しんしゅく"},
	{5, "尾宿", "びしゅく"},
	{6, "箕宿", "きしゅく"},
	{7, "斗宿", "としゅく"},
	{8, "牛宿", "ぎゅうしゅく"},
	{9, "女宿", "じょしゅく"},
	{10, "虚宿", "きょしゅく"},
	{11, "危宿", "きしゅく"},
	{12, "室宿", "しつしゅく"},
	{13, "壁宿", "へきしゅく"},
	{14, "奎宿", "けいしゅく"},
	{15, "婁宿", "ろうしゅく"},
	{16, "胃宿", "いしゅく"},
	{17, "昴宿", "ぼうしゅく"},
	{18, "畢宿", "ひっしゅく"},
	{19, "觜宿", "ししゅく"},
	{20, "参宿", "しんしゅく"},
	{21, "井宿", "せいしゅく"},
	{22, "鬼宿", "きしゅく"},
	{23, "柳宿", "りゅうしゅく"},
	{24, "星宿", "せいしゅく"},
	{25, "張宿", "ちょうしゅく"},
	{26, "翼宿", "よくしゅく"},
	{27, "軫宿", "しんしゅく"},
}

// At returns the mansion at index i. Any integer is accepted and reduced
// modulo the cycle length.
func At(i int) Mansion {
	return cycle[Mod(i)]
}

// All returns a copy of the full cycle in order.
func All() []Mansion {
	out := make([]Mansion, CycleLength)
	copy(out, cycle[:])
	return out
}

// Mod reduces i into [0, CycleLength), also for negative i.
func Mod(i int) int {
	m := i % CycleLength
	if m < 0 {
		m += CycleLength
	}
	return m
}
