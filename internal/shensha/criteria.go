// Package shensha 神煞规则引擎：每条规则是“参照点选择 + 查表 + 神煞名”的小记录，
// 由 Evaluate 统一遍历；And/Or/Not 用于组合条件。
package shensha

import "baziEngine/internal/ganzhi"

// Reference 全盘参照点。Void 由日柱推出，只算一次，四柱共用。
type Reference struct {
	Day   ganzhi.Pair
	Year  ganzhi.Pair
	Month ganzhi.Branch
	Void  ganzhi.VoidPair
}

// NewReference 由年、月、日三柱构造参照点，旬空按日柱推算。
func NewReference(year, month, day ganzhi.Pair) Reference {
	return Reference{Day: day, Year: year, Month: month.Branch, Void: ganzhi.VoidOf(day)}
}

// Target 当前被标注的一柱。
type Target struct {
	Pair   ganzhi.Pair
	IsDay  bool
	IsYear bool
}

// Criterion 单条判定：参照全盘与当前柱，返回是否命中。
type Criterion func(ref *Reference, t Target) bool

func And(cs ...Criterion) Criterion {
	return func(ref *Reference, t Target) bool {
		for _, c := range cs {
			if c == nil {
				continue
			}
			if !c(ref, t) {
				return false
			}
		}
		return true
	}
}

func Or(cs ...Criterion) Criterion {
	return func(ref *Reference, t Target) bool {
		for _, c := range cs {
			if c == nil {
				continue
			}
			if c(ref, t) {
				return true
			}
		}
		return false
	}
}

func Not(c Criterion) Criterion {
	return func(ref *Reference, t Target) bool { return !c(ref, t) }
}

// 参照点选择器
type (
	stemKey   func(*Reference) ganzhi.Stem
	branchKey func(*Reference) ganzhi.Branch
)

var (
	dayStem     stemKey   = func(r *Reference) ganzhi.Stem { return r.Day.Stem }
	yearStem    stemKey   = func(r *Reference) ganzhi.Stem { return r.Year.Stem }
	dayBranch   branchKey = func(r *Reference) ganzhi.Branch { return r.Day.Branch }
	yearBranch  branchKey = func(r *Reference) ganzhi.Branch { return r.Year.Branch }
	monthBranch branchKey = func(r *Reference) ganzhi.Branch { return r.Month }
)

// branchOfStem 天干 → 单个地支，如 禄神 甲禄在寅。
func branchOfStem(key stemKey, table [ganzhi.StemCount]ganzhi.Branch) Criterion {
	return func(ref *Reference, t Target) bool { return t.Pair.Branch == table[key(ref)] }
}

// branchesOfStem 天干 → 若干地支，如 天乙 甲戊庚牛羊。
func branchesOfStem(key stemKey, table [ganzhi.StemCount][]ganzhi.Branch) Criterion {
	return func(ref *Reference, t Target) bool { return containsBranch(table[key(ref)], t.Pair.Branch) }
}

// branchOfBranch 地支 → 地支的十二位映射（三合局类神煞共用此形）。
func branchOfBranch(key branchKey, table [ganzhi.BranchCount]ganzhi.Branch) Criterion {
	return func(ref *Reference, t Target) bool { return t.Pair.Branch == table[key(ref)] }
}

// stemOfBranch 地支 → 天干，如 月德 寅午戌月见丙。
func stemOfBranch(key branchKey, table [ganzhi.BranchCount]ganzhi.Stem) Criterion {
	return func(ref *Reference, t Target) bool { return t.Pair.Stem == table[key(ref)] }
}

// markOfBranch 地支 → 干或支，如 天德 寅月见丁、卯月见申。
func markOfBranch(key branchKey, table [ganzhi.BranchCount]mark) Criterion {
	return func(ref *Reference, t Target) bool { return table[key(ref)].hit(t) }
}

// offset 参照地支顺行 n 位，如 丧门 年支前二位。
func offset(key branchKey, n int) Criterion {
	return func(ref *Reference, t Target) bool { return t.Pair.Branch == key(ref).Shift(n) }
}

// opposite 把另一条规则的地支表整体冲开六位，如 飞刃 为羊刃对冲。
func opposite(table [ganzhi.StemCount]ganzhi.Branch) [ganzhi.StemCount]ganzhi.Branch {
	var out [ganzhi.StemCount]ganzhi.Branch
	for i, b := range table {
		out[i] = b.Opposite()
	}
	return out
}

// oppositeBranches 同 opposite，用于地支 → 地支表。
func oppositeBranches(table [ganzhi.BranchCount]ganzhi.Branch) [ganzhi.BranchCount]ganzhi.Branch {
	var out [ganzhi.BranchCount]ganzhi.Branch
	for i, b := range table {
		out[i] = b.Opposite()
	}
	return out
}

// quadrant 地支所在方位（北 亥子丑、东 寅卯辰、南 巳午未、西 申酉戌）。
func quadrant(b ganzhi.Branch) int { return int(b.Shift(1)) / 3 }

// season 月支所在季节（春 寅卯辰、夏 巳午未、秋 申酉戌、冬 亥子丑）。
func season(b ganzhi.Branch) int { return int(b.Shift(-2)) / 3 }

// trine 三合局编号：申子辰 0、巳酉丑 1、寅午戌 2、亥卯未 3。
func trine(b ganzhi.Branch) int { return int(b) % 4 }

// byQuadrant 参照地支所在方位 → 地支，如 孤辰 寡宿。
func byQuadrant(key branchKey, table [4]ganzhi.Branch) Criterion {
	return func(ref *Reference, t Target) bool { return t.Pair.Branch == table[quadrant(key(ref))] }
}

// refBranchIn 参照地支属于集合。
func refBranchIn(key branchKey, set ...ganzhi.Branch) Criterion {
	return func(ref *Reference, _ Target) bool { return containsBranch(set, key(ref)) }
}

// branchIn 当前地支属于集合。
func branchIn(set ...ganzhi.Branch) Criterion {
	return func(_ *Reference, t Target) bool { return containsBranch(set, t.Pair.Branch) }
}

// inVoid 当前地支落旬空。
func inVoid(ref *Reference, t Target) bool { return ref.Void.Contains(t.Pair.Branch) }

func isDay(_ *Reference, t Target) bool { return t.IsDay }

func isYear(_ *Reference, t Target) bool { return t.IsYear }

// pairIn 当前柱干支属于固定列表（日柱专用神煞配合 isDay 使用）。
func pairIn(pairs ...ganzhi.Pair) Criterion {
	return func(_ *Reference, t Target) bool {
		for _, p := range pairs {
			if p == t.Pair {
				return true
			}
		}
		return false
	}
}

// pairBySeason 按月令季节取固定干支列表，如 天赦 四废。
func pairBySeason(table [4][]ganzhi.Pair) Criterion {
	return func(ref *Reference, t Target) bool { return pairIn(table[season(ref.Month)]...)(ref, t) }
}

// stemsByTrine 按月支三合局取天干集合，如 德秀。
func stemsByTrine(table [4][]ganzhi.Stem) Criterion {
	return func(ref *Reference, t Target) bool {
		for _, s := range table[trine(ref.Month)] {
			if s == t.Pair.Stem {
				return true
			}
		}
		return false
	}
}

// sameGroup 参照地支与当前地支同属一组（三刑）。
func sameGroup(key branchKey, groups [][]ganzhi.Branch) Criterion {
	return func(ref *Reference, t Target) bool {
		k := key(ref)
		for _, g := range groups {
			if containsBranch(g, k) && containsBranch(g, t.Pair.Branch) {
				return true
			}
		}
		return false
	}
}

// mark 规则目标：天干或地支。
type mark struct {
	isStem bool
	stem   ganzhi.Stem
	branch ganzhi.Branch
}

func stemMark(s ganzhi.Stem) mark     { return mark{isStem: true, stem: s} }
func branchMark(b ganzhi.Branch) mark { return mark{branch: b} }

func (m mark) hit(t Target) bool {
	if m.isStem {
		return t.Pair.Stem == m.stem
	}
	return t.Pair.Branch == m.branch
}

// combine 干取五合、支取六合。
func (m mark) combine() mark {
	if m.isStem {
		return stemMark(m.stem.Combine())
	}
	return branchMark(m.branch.Combine())
}

func containsBranch(set []ganzhi.Branch, b ganzhi.Branch) bool {
	for _, x := range set {
		if x == b {
			return true
		}
	}
	return false
}
