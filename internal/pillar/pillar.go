// Package pillar 把一对干支补全为完整的一柱：五行、藏干、十神、星运、空亡、神煞。
package pillar

import (
	"baziEngine/internal/ganzhi"
	"baziEngine/internal/model"
	"baziEngine/internal/shensha"
)

// Role 柱位。
type Role int

const (
	Year Role = iota
	Month
	Day
	Hour
)

var roleNames = [...]string{"年柱", "月柱", "日柱", "时柱"}

func (r Role) String() string {
	if r < Year || r > Hour {
		return "?"
	}
	return roleNames[r]
}

// Build 以 ref.Day 的天干为日主补全一柱。日柱十神记为日主，其余查十神表；
// 星运取日主在本柱地支的长生位；空亡按 ref.Void 判定。
func Build(pair ganzhi.Pair, ref shensha.Reference, role Role, nayin string) model.Pillar {
	dm := ref.Day.Stem
	hidden := pair.Branch.Hidden()
	hiddenGods := make([]ganzhi.TenGod, len(hidden))
	for i, h := range hidden {
		hiddenGods[i] = ganzhi.TenGodOf(dm, h)
	}

	god := ganzhi.DayMaster
	if role != Day {
		god = ganzhi.TenGodOf(dm, pair.Stem)
	}

	names := shensha.Evaluate(ref, shensha.Target{Pair: pair, IsDay: role == Day, IsYear: role == Year})
	return model.Pillar{
		Stem:          pair.Stem,
		Branch:        pair.Branch,
		StemElement:   pair.Stem.Element(),
		BranchElement: pair.Branch.Element(),
		HiddenStems:   hidden,
		TenGod:        god,
		HiddenTenGods: hiddenGods,
		Nayin:         nayin,
		LifeStage:     ganzhi.LifeStageOf(dm, pair.Branch),
		Void:          ref.Void.Contains(pair.Branch),
		ShenSha:       names,
		ShenShaInfo:   shensha.Records(names),
	}
}
