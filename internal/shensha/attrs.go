package shensha

import (
	"strings"

	"baziEngine/internal/model"
)

// Kind 神煞吉凶类型。
type Kind string

const (
	Auspicious      Kind = "auspicious"
	NeutralPositive Kind = "neutral-positive"
	NeutralNegative Kind = "neutral-negative"
	Inauspicious    Kind = "inauspicious"
	Neutral         Kind = "neutral"
)

// Attr 神煞属性：类型、重要程度 1~5、简述。
type Attr struct {
	Kind  Kind
	Level int
	Desc  string
}

// 表外神煞按关键字判断时的默认属性
var (
	fallbackAuspicious   = Attr{Kind: Auspicious, Level: 3, Desc: "贵人吉神"}
	fallbackInauspicious = Attr{Kind: Inauspicious, Level: 3, Desc: "凶神恶煞"}
	fallbackNeutral      = Attr{Kind: Neutral, Level: 2, Desc: "中性神煞"}
)

// 关键字：先吉后凶
var (
	auspiciousKeywords   = []string{"贵", "德", "禄", "喜", "福", "文", "恩"}
	inauspiciousKeywords = []string{"刃", "煞", "亡", "劫", "灾", "刑", "冲", "破", "耗", "网", "勾", "绞", "丧", "吊", "披麻", "孤", "寡", "空", "败"}
)

var attrs = map[string]Attr{
	// 吉神
	"天乙":     {Auspicious, 5, "最强吉神，逢凶化吉"},
	"太极":     {Auspicious, 4, "聪明好学，正直有为"},
	"天官":     {Auspicious, 4, "官星，有掌权之能"},
	"天厨":     {Auspicious, 3, "食禄丰厚"},
	"福星":     {Auspicious, 4, "福气满盈"},
	"文昌":     {Auspicious, 4, "聪明好学，近贵利"},
	"国印":     {Auspicious, 3, "掌印符，老实可靠"},
	"德秀":     {Auspicious, 4, "内涵充实，温厚和气"},
	"三奇(天上)": {Auspicious, 5, "天上三奇，勋业超群"},
	"三奇(地下)": {Auspicious, 4, "地下三奇，贵不可言"},
	"三奇(人中)": {Auspicious, 4, "人中三奇，奇特异能"},
	"天赦":     {Auspicious, 5, "逢凶化吉，最吉之神"},
	"天德":     {Auspicious, 5, "日月会照，恺悌慈爱"},
	"天德合":    {Auspicious, 4, "天德相合，福气倍增"},
	"月德":     {Auspicious, 4, "太阴之德，化煞为权"},
	"月德合":    {Auspicious, 3, "月德相合，诸事顺遂"},
	"天医":     {Auspicious, 3, "健康平安，宜从医"},
	"禄神":     {Auspicious, 5, "养命之源，爵禄丰厚"},
	"暗禄":     {Auspicious, 2, "暗藏之禄，潜在福源"},
	"金舆":     {Auspicious, 4, "富贵之征，出入有车"},
	"将星":     {Auspicious, 4, "权力之星，把握权柄"},
	"学堂":     {Auspicious, 3, "好学上进，学业大展"},
	"词馆":     {Auspicious, 3, "文章出众，才学过人"},
	"十灵":     {Auspicious, 4, "聪明灵异，技艺出众"},

	// 中性偏吉
	"驿马": {NeutralPositive, 3, "动态之星，主奔波劳碌"},
	"桃花": {NeutralPositive, 3, "人缘魅力，情感丰富"},
	"咸池": {NeutralPositive, 3, "魅力异性，感情活跃"},
	"红艳": {NeutralPositive, 2, "多情重义，异性缘佳"},
	"红鸾": {NeutralPositive, 3, "婚姻喜庆，情缘美满"},
	"天喜": {NeutralPositive, 3, "喜庆快乐，婚嫁适宜"},

	// 中性偏凶
	"华盖": {NeutralNegative, 2, "艺术天分，但主孤独"},
	"魁罡": {NeutralNegative, 3, "刚强果断，掌权有威"},
	"金神": {NeutralNegative, 3, "刚断明敏，需火乡发越"},

	// 凶煞
	"羊刃":   {Inauspicious, 5, "刚强暴戾，刑克六亲"},
	"飞刃":   {Inauspicious, 4, "羊刃对冲，更加凶猛"},
	"流霞":   {Inauspicious, 4, "血光之灾，易遭意外"},
	"劫煞":   {Inauspicious, 5, "破财损耗，大耗又名"},
	"大耗":   {Inauspicious, 4, "元辰大耗，破财失利"},
	"亡神":   {Inauspicious, 4, "精神散漫，虚浮不实"},
	"灾煞":   {Inauspicious, 5, "血光横死，水火防焚"},
	"孤辰":   {Inauspicious, 3, "形孤肉露，不利六亲"},
	"寡宿":   {Inauspicious, 3, "婚姻不顺，晚景凄凉"},
	"元辰":   {Inauspicious, 3, "执拗自是，多遭挫折"},
	"空亡":   {Inauspicious, 4, "力量减弱，福力减少"},
	"十恶大败": {Inauspicious, 5, "无禄日，遇之不吉"},
	"阴阳差错": {Inauspicious, 4, "婚姻不顺，与妻家不合"},
	"孤鸾":   {Inauspicious, 4, "婚姻坎坷，晚景凄凉"},
	"四废":   {Inauspicious, 3, "身弱多病，做事无成"},
	"天罗地网": {Inauspicious, 4, "牢狱灾伤，官司口舌"},
	"勾绞煞":  {Inauspicious, 4, "刑狱缠身，口舌是非"},
	"丧门":   {Inauspicious, 4, "孝丧之事，刑伤六亲"},
	"吊客":   {Inauspicious, 4, "孝丧之事，不利健康"},
	"披麻":   {Inauspicious, 3, "孝丧之痛，奔波劳碌"},
	"岁破":   {Inauspicious, 4, "冲克年支，易生破财"},
	"三刑":   {Inauspicious, 4, "刑克太重，官府狱讼"},
}

// Resolve 查神煞属性：先按全名，再按括号前的基名（暗禄(甲) → 暗禄），
// 表外名称按关键字粗分吉凶，都不中则为中性。
func Resolve(name string) Attr {
	if a, ok := attrs[name]; ok {
		return a
	}
	if i := strings.Index(name, "("); i > 0 {
		if a, ok := attrs[name[:i]]; ok {
			return a
		}
	}
	return classify(name)
}

// Known 名称（或其基名）是否在属性表中。
func Known(name string) bool {
	if _, ok := attrs[name]; ok {
		return true
	}
	if i := strings.Index(name, "("); i > 0 {
		_, ok := attrs[name[:i]]
		return ok
	}
	return false
}

func classify(name string) Attr {
	for _, k := range auspiciousKeywords {
		if strings.Contains(name, k) {
			return fallbackAuspicious
		}
	}
	for _, k := range inauspiciousKeywords {
		if strings.Contains(name, k) {
			return fallbackInauspicious
		}
	}
	return fallbackNeutral
}

// Records 把神煞名称列表转成带属性的明细。
func Records(names []string) []model.ShenSha {
	out := make([]model.ShenSha, 0, len(names))
	for _, n := range names {
		a := Resolve(n)
		out = append(out, model.ShenSha{Name: n, Kind: string(a.Kind), Level: a.Level, Desc: a.Desc})
	}
	return out
}
