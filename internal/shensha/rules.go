package shensha

import (
	"fmt"

	"baziEngine/internal/ganzhi"
)

// Rule 一条神煞规则。Noble 为贵人类：命中地支落旬空时不取。
type Rule struct {
	Name  string
	Match Criterion
	Noble bool
}

// Family 参数化神煞：名称带上所命中的干或组名，如 暗禄(甲)、三奇(天上)，可同时出现多个。
type Family struct {
	Name   string
	Expand func(ref *Reference, t Target) []string
}

// 以日干/年干查地支（天干顺序 甲乙丙丁戊己庚辛壬癸）
var (
	tianYi = stemBranchSets("丑未", "子申", "亥酉", "亥酉", "丑未", "子申", "丑未", "午寅", "巳卯", "巳卯")
	taiJi  = stemBranchSets("子午", "子午", "酉卯", "酉卯", "辰戌丑未", "辰戌丑未", "寅亥", "寅亥", "巳申", "巳申")
	fuXing = stemBranchSets("寅子", "卯丑", "寅子", "亥", "申", "未", "午", "巳", "辰", "卯丑")

	tianGuan = stemBranchRow("未辰巳寅卯酉亥申酉午")
	tianChu  = stemBranchRow("巳午子巳午申寅午酉亥")
	wenChang = stemBranchRow("巳午申酉申酉亥子寅卯")
	guoYin   = stemBranchRow("戌亥丑寅丑寅辰巳未申")
	luShen   = stemBranchRow("寅卯巳午巳午申酉亥子")
	jinYu    = stemBranchRow("辰巳未申未申戌亥丑寅")
	hongYan  = stemBranchRow("午申寅未辰辰戌酉子申")
	yangRen  = stemBranchRow("卯辰午未午未酉戌子丑")
	feiRen   = opposite(yangRen)
	liuXia   = stemBranchRow("酉戌未申巳午辰卯亥寅")
	xueTang  = stemBranchRow("亥午寅酉寅酉巳子申卯")
	ciGuan   = stemBranchRow("寅卯巳午巳午申酉亥子")
)

// 以年支/日支查地支（地支顺序 子丑寅卯辰巳午未申酉戌亥），三合局同组取值相同
var (
	yiMa      = branchRow("寅亥申巳寅亥申巳寅亥申巳")
	taoHua    = branchRow("酉午卯子酉午卯子酉午卯子")
	jieSha    = branchRow("巳寅亥申巳寅亥申巳寅亥申")
	wangShen  = branchRow("亥申巳寅亥申巳寅亥申巳寅")
	zaiSha    = branchRow("午卯子酉午卯子酉午卯子酉")
	huaGai    = branchRow("辰丑戌未辰丑戌未辰丑戌未")
	jiangXing = branchRow("子酉午卯子酉午卯子酉午卯")
	yuanChen  = branchRow("未申酉戌亥子丑寅卯辰巳午")
	hongLuan  = branchRow("卯寅丑子亥戌酉申未午巳辰")
	tianXi    = oppositeBranches(hongLuan)
)

// 以月支查（地支顺序 子丑寅卯辰巳午未申酉戌亥）
var (
	tianDe   = markRow("巳庚丁申壬辛亥甲癸寅丙乙")
	tianDeHe = combineMarks(tianDe)
	yueDe    = stemRow("壬庚丙甲壬庚丙甲壬庚丙甲")
	yueDeHe  = combineStems(yueDe)
)

// 按年支方位（北、东、南、西）
var (
	guChen = [4]ganzhi.Branch{ganzhi.ZhiYin, ganzhi.ZhiSi, ganzhi.ZhiShen, ganzhi.ZhiHai}
	guaSu  = [4]ganzhi.Branch{ganzhi.ZhiXu, ganzhi.ZhiChou, ganzhi.ZhiChen, ganzhi.ZhiWei}
)

// 按月令季节（春、夏、秋、冬）
var (
	tianShe = [4][]ganzhi.Pair{pairs("戊寅"), pairs("甲午"), pairs("戊申"), pairs("甲子")}
	siFei   = [4][]ganzhi.Pair{pairs("庚申", "辛酉"), pairs("壬子", "癸亥"), pairs("甲寅", "乙卯"), pairs("丙午", "丁巳")}
)

// 德秀：月支三合局（申子辰、巳酉丑、寅午戌、亥卯未）→ 天干
var deXiu = [4][]ganzhi.Stem{stems("壬癸戊己"), stems("庚辛乙"), stems("丙丁戊癸"), stems("甲乙丁壬")}

// 三刑组
var sanXing = [][]ganzhi.Branch{branches("寅巳申"), branches("丑未戌"), branches("子午卯")}

// 日柱专用
var (
	kuiGang   = pairs("壬辰", "庚戌", "庚辰", "戊戌")
	yinYangCa = pairs("丙子", "丁丑", "戊寅", "辛卯", "壬辰", "癸巳", "丙午", "丁未", "戊申", "辛酉", "壬戌", "癸亥")
	shiEDaBai = pairs("甲辰", "乙巳", "丙申", "丁亥", "戊戌", "己丑", "庚辰", "辛巳", "壬申", "癸亥")
	guLuan    = pairs("乙巳", "丁巳", "辛亥", "戊申", "甲寅", "戊午", "壬子", "丙午")
	shiLing   = pairs("甲辰", "乙亥", "丙辰", "丁酉", "戊午", "庚戌", "庚寅", "辛亥", "壬寅", "癸未")
	jinShen   = pairs("乙丑", "己巳", "癸酉")
)

var tianLuoDiWang = branches("辰戌")

var registry = []Rule{
	{Name: "空亡", Match: inVoid},

	// 贵人
	{Name: "天乙", Match: Or(branchesOfStem(dayStem, tianYi), branchesOfStem(yearStem, tianYi)), Noble: true},
	{Name: "太极", Match: Or(branchesOfStem(dayStem, taiJi), branchesOfStem(yearStem, taiJi))},
	{Name: "天官", Match: branchOfStem(dayStem, tianGuan)},
	{Name: "天厨", Match: branchOfStem(dayStem, tianChu)},
	{Name: "福星", Match: branchesOfStem(dayStem, fuXing)},
	{Name: "文昌", Match: Or(branchOfStem(dayStem, wenChang), branchOfStem(yearStem, wenChang))},
	{Name: "国印", Match: branchOfStem(dayStem, guoYin)},
	{Name: "天赦", Match: pairBySeason(tianShe)},
	{Name: "德秀", Match: stemsByTrine(deXiu)},

	// 禄马桃花
	{Name: "禄神", Match: branchOfStem(dayStem, luShen)},
	{Name: "金舆", Match: branchOfStem(dayStem, jinYu)},
	{Name: "驿马", Match: Or(branchOfBranch(yearBranch, yiMa), branchOfBranch(dayBranch, yiMa))},
	{Name: "桃花", Match: Or(branchOfBranch(yearBranch, taoHua), branchOfBranch(dayBranch, taoHua))},
	{Name: "咸池", Match: Or(branchOfBranch(yearBranch, taoHua), branchOfBranch(dayBranch, taoHua))},
	{Name: "红艳", Match: branchOfStem(dayStem, hongYan)},
	{Name: "红鸾", Match: branchOfBranch(yearBranch, hongLuan)},
	{Name: "天喜", Match: branchOfBranch(yearBranch, tianXi)},

	// 刃煞
	{Name: "羊刃", Match: branchOfStem(dayStem, yangRen)},
	{Name: "飞刃", Match: branchOfStem(dayStem, feiRen)},
	{Name: "流霞", Match: branchOfStem(dayStem, liuXia)},
	{Name: "劫煞", Match: Or(branchOfBranch(yearBranch, jieSha), branchOfBranch(dayBranch, jieSha))},
	{Name: "亡神", Match: Or(branchOfBranch(yearBranch, wangShen), branchOfBranch(dayBranch, wangShen))},
	{Name: "灾煞", Match: branchOfBranch(yearBranch, zaiSha)},
	{Name: "孤辰", Match: byQuadrant(yearBranch, guChen)},
	{Name: "寡宿", Match: byQuadrant(yearBranch, guaSu)},
	{Name: "华盖", Match: Or(branchOfBranch(yearBranch, huaGai), branchOfBranch(dayBranch, huaGai))},
	{Name: "将星", Match: Or(branchOfBranch(yearBranch, jiangXing), branchOfBranch(dayBranch, jiangXing))},
	{Name: "元辰", Match: branchOfBranch(yearBranch, yuanChen)},
	{Name: "大耗", Match: branchOfBranch(yearBranch, yuanChen)},

	// 天月德
	{Name: "天德", Match: markOfBranch(monthBranch, tianDe)},
	// 天德合、月德合各自查合表，不要求同盘先见天德、月德
	{Name: "天德合", Match: markOfBranch(monthBranch, tianDeHe)},
	{Name: "月德", Match: stemOfBranch(monthBranch, yueDe)},
	// 同天德合，独立成条
	{Name: "月德合", Match: stemOfBranch(monthBranch, yueDeHe)},
	{Name: "天医", Match: offset(monthBranch, -1)},

	// 日柱
	{Name: "魁罡", Match: And(isDay, pairIn(kuiGang...))},
	{Name: "阴阳差错", Match: And(isDay, pairIn(yinYangCa...))},
	{Name: "十恶大败", Match: And(isDay, pairIn(shiEDaBai...))},
	{Name: "孤鸾", Match: And(isDay, pairIn(guLuan...))},
	{Name: "四废", Match: And(isDay, pairBySeason(siFei))},
	{Name: "十灵", Match: And(isDay, pairIn(shiLing...))},
	{Name: "金神", Match: And(isDay, pairIn(jinShen...))},

	{Name: "学堂", Match: branchOfStem(dayStem, xueTang)},
	{Name: "词馆", Match: branchOfStem(dayStem, ciGuan)},

	// 年支位置
	{Name: "天罗地网", Match: And(Or(refBranchIn(yearBranch, tianLuoDiWang...), refBranchIn(dayBranch, tianLuoDiWang...)), branchIn(tianLuoDiWang...))},
	{Name: "勾绞煞", Match: Or(offset(yearBranch, 3), offset(yearBranch, -3))},
	{Name: "丧门", Match: offset(yearBranch, 2)},
	{Name: "吊客", Match: offset(yearBranch, -2)},
	{Name: "披麻", Match: offset(yearBranch, -3)},
	{Name: "岁破", Match: offset(yearBranch, 6)},
	// 以年支为参照，年柱与自身同组恒成立，故年柱不标三刑
	{Name: "三刑", Match: And(Not(isYear), sameGroup(yearBranch, sanXing))},
}

// 三奇：天上 乙丙丁、地下 甲戊庚、人中 壬癸辛
var sanQiGroups = []struct {
	name  string
	stems []ganzhi.Stem
}{
	{"天上", stems("乙丙丁")},
	{"地下", stems("甲戊庚")},
	{"人中", stems("壬癸辛")},
}

var families = []Family{
	{Name: "暗禄", Expand: hiddenLu},
	{Name: "三奇", Expand: sanQi},
}

// hiddenLu 当前地支藏干中每见一干，记 暗禄(该干)，按天干顺序。
func hiddenLu(_ *Reference, t Target) []string {
	hidden := t.Pair.Branch.Hidden()
	var out []string
	for _, s := range ganzhi.Stems() {
		for _, h := range hidden {
			if h == s {
				out = append(out, fmt.Sprintf("暗禄(%s)", s))
				break
			}
		}
	}
	return out
}

// sanQi 日干、年干、当前柱天干凑齐一组三奇。
func sanQi(ref *Reference, t Target) []string {
	have := [ganzhi.StemCount]bool{}
	have[ref.Day.Stem] = true
	have[ref.Year.Stem] = true
	have[t.Pair.Stem] = true
	var out []string
	for _, g := range sanQiGroups {
		all := true
		for _, s := range g.stems {
			if !have[s] {
				all = false
				break
			}
		}
		if all {
			out = append(out, fmt.Sprintf("三奇(%s)", g.name))
		}
	}
	return out
}

// Rules 返回规则表副本，供核对古籍表格与测试使用。
func Rules() []Rule { return append([]Rule(nil), registry...) }

// Families 返回参数化神煞表副本。
func Families() []Family { return append([]Family(nil), families...) }

// 以下为表格构造辅助，数据为编译期常量，解析失败即程序错误

func stems(s string) []ganzhi.Stem {
	var out []ganzhi.Stem
	for _, r := range s {
		v, err := ganzhi.ParseStem(string(r))
		if err != nil {
			panic(err)
		}
		out = append(out, v)
	}
	return out
}

func branches(s string) []ganzhi.Branch {
	var out []ganzhi.Branch
	for _, r := range s {
		v, err := ganzhi.ParseBranch(string(r))
		if err != nil {
			panic(err)
		}
		out = append(out, v)
	}
	return out
}

func pairs(ss ...string) []ganzhi.Pair {
	out := make([]ganzhi.Pair, 0, len(ss))
	for _, s := range ss {
		p, err := ganzhi.ParsePair(s)
		if err != nil {
			panic(err)
		}
		out = append(out, p)
	}
	return out
}

func stemBranchSets(rows ...string) [ganzhi.StemCount][]ganzhi.Branch {
	if len(rows) != ganzhi.StemCount {
		panic(fmt.Sprintf("shensha: stem table needs %d rows, got %d", ganzhi.StemCount, len(rows)))
	}
	var out [ganzhi.StemCount][]ganzhi.Branch
	for i, r := range rows {
		out[i] = branches(r)
	}
	return out
}

func stemBranchRow(s string) [ganzhi.StemCount]ganzhi.Branch {
	bs := branches(s)
	if len(bs) != ganzhi.StemCount {
		panic(fmt.Sprintf("shensha: stem row %q needs %d branches", s, ganzhi.StemCount))
	}
	var out [ganzhi.StemCount]ganzhi.Branch
	copy(out[:], bs)
	return out
}

func branchRow(s string) [ganzhi.BranchCount]ganzhi.Branch {
	bs := branches(s)
	if len(bs) != ganzhi.BranchCount {
		panic(fmt.Sprintf("shensha: branch row %q needs %d branches", s, ganzhi.BranchCount))
	}
	var out [ganzhi.BranchCount]ganzhi.Branch
	copy(out[:], bs)
	return out
}

func stemRow(s string) [ganzhi.BranchCount]ganzhi.Stem {
	ss := stems(s)
	if len(ss) != ganzhi.BranchCount {
		panic(fmt.Sprintf("shensha: month row %q needs %d stems", s, ganzhi.BranchCount))
	}
	var out [ganzhi.BranchCount]ganzhi.Stem
	copy(out[:], ss)
	return out
}

// markRow 每个字可为天干或地支。
func markRow(s string) [ganzhi.BranchCount]mark {
	var out [ganzhi.BranchCount]mark
	i := 0
	for _, r := range s {
		if i >= ganzhi.BranchCount {
			panic(fmt.Sprintf("shensha: mark row %q too long", s))
		}
		if st, err := ganzhi.ParseStem(string(r)); err == nil {
			out[i] = stemMark(st)
		} else if b, err := ganzhi.ParseBranch(string(r)); err == nil {
			out[i] = branchMark(b)
		} else {
			panic(fmt.Sprintf("shensha: %q is neither stem nor branch", r))
		}
		i++
	}
	if i != ganzhi.BranchCount {
		panic(fmt.Sprintf("shensha: mark row %q needs %d entries", s, ganzhi.BranchCount))
	}
	return out
}

func combineMarks(in [ganzhi.BranchCount]mark) [ganzhi.BranchCount]mark {
	var out [ganzhi.BranchCount]mark
	for i, m := range in {
		out[i] = m.combine()
	}
	return out
}

func combineStems(in [ganzhi.BranchCount]ganzhi.Stem) [ganzhi.BranchCount]ganzhi.Stem {
	var out [ganzhi.BranchCount]ganzhi.Stem
	for i, s := range in {
		out[i] = s.Combine()
	}
	return out
}
