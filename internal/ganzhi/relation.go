package ganzhi

import (
	"fmt"
	"unicode/utf8"
)

// TenGod 十神，相对日干而言。
type TenGod string

const (
	BiJian    TenGod = "比肩"
	JieCai    TenGod = "劫财"
	ShiShen   TenGod = "食神"
	ShangGuan TenGod = "伤官"
	PianCai   TenGod = "偏财"
	ZhengCai  TenGod = "正财"
	QiSha     TenGod = "七杀"
	ZhengGuan TenGod = "正官"
	PianYin   TenGod = "偏印"
	ZhengYin  TenGod = "正印"

	// DayMaster 日柱天干本身不取十神。
	DayMaster TenGod = "日主"
)

// LifeStage 十二长生。
type LifeStage string

const (
	StageChangSheng LifeStage = "长生"
	StageMuYu       LifeStage = "沐浴"
	StageGuanDai    LifeStage = "冠带"
	StageLinGuan    LifeStage = "临官"
	StageDiWang     LifeStage = "帝旺"
	StageShuai      LifeStage = "衰"
	StageBing       LifeStage = "病"
	StageSi         LifeStage = "死"
	StageMu         LifeStage = "墓"
	StageJue        LifeStage = "绝"
	StageTai        LifeStage = "胎"
	StageYang       LifeStage = "养"
)

var lifeStages = [BranchCount]LifeStage{
	StageChangSheng, StageMuYu, StageGuanDai, StageLinGuan, StageDiWang, StageShuai,
	StageBing, StageSi, StageMu, StageJue, StageTai, StageYang,
}

// 藏干表（本气在前）
var hiddenStems = [BranchCount][]Stem{
	ZhiZi:   {GanGui},
	ZhiChou: {GanJi, GanGui, GanXin},
	ZhiYin:  {GanJia, GanBing, GanWu},
	ZhiMao:  {GanYi},
	ZhiChen: {GanWu, GanYi, GanGui},
	ZhiSi:   {GanBing, GanWu, GanGeng},
	ZhiWu:   {GanDing, GanJi},
	ZhiWei:  {GanJi, GanDing, GanYi},
	ZhiShen: {GanGeng, GanRen, GanWu},
	ZhiYou:  {GanXin},
	ZhiXu:   {GanWu, GanXin, GanDing},
	ZhiHai:  {GanRen, GanJia},
}

// 十神矩阵：行为日干，列为目标天干（甲乙丙丁戊己庚辛壬癸）
var tenGodMatrix = [StemCount][StemCount]TenGod{
	GanJia:  {BiJian, JieCai, ShiShen, ShangGuan, PianCai, ZhengCai, QiSha, ZhengGuan, PianYin, ZhengYin},
	GanYi:   {JieCai, BiJian, ShangGuan, ShiShen, ZhengCai, PianCai, ZhengGuan, QiSha, ZhengYin, PianYin},
	GanBing: {PianYin, ZhengYin, BiJian, JieCai, ShiShen, ShangGuan, PianCai, ZhengCai, QiSha, ZhengGuan},
	GanDing: {ZhengYin, PianYin, JieCai, BiJian, ShangGuan, ShiShen, ZhengCai, PianCai, ZhengGuan, QiSha},
	GanWu:   {QiSha, ZhengGuan, PianYin, ZhengYin, BiJian, JieCai, ShiShen, ShangGuan, PianCai, ZhengCai},
	GanJi:   {ZhengGuan, QiSha, ZhengYin, PianYin, JieCai, BiJian, ShangGuan, ShiShen, ZhengCai, PianCai},
	GanGeng: {PianCai, ZhengCai, QiSha, ZhengGuan, PianYin, ZhengYin, BiJian, JieCai, ShiShen, ShangGuan},
	GanXin:  {ZhengCai, PianCai, ZhengGuan, QiSha, ZhengYin, PianYin, JieCai, BiJian, ShangGuan, ShiShen},
	GanRen:  {ShiShen, ShangGuan, PianCai, ZhengCai, QiSha, ZhengGuan, PianYin, ZhengYin, BiJian, JieCai},
	GanGui:  {ShangGuan, ShiShen, ZhengCai, PianCai, ZhengGuan, QiSha, ZhengYin, PianYin, JieCai, BiJian},
}

// 各天干长生起点：阳干顺行，阴干逆行
var lifeStartBranch = [StemCount]Branch{
	GanJia:  ZhiHai,
	GanYi:   ZhiWu,
	GanBing: ZhiYin,
	GanDing: ZhiYou,
	GanWu:   ZhiYin,
	GanJi:   ZhiYou,
	GanGeng: ZhiSi,
	GanXin:  ZhiZi,
	GanRen:  ZhiShen,
	GanGui:  ZhiMao,
}

// Hidden 返回地支藏干（副本，调用方可随意修改）。
func (b Branch) Hidden() []Stem {
	return append([]Stem(nil), hiddenStems[b]...)
}

// TenGodOf 查十神矩阵。
func TenGodOf(day, target Stem) TenGod {
	return tenGodMatrix[day][target]
}

// LifeStageOf 日干在某地支所处的十二长生阶段。
func LifeStageOf(s Stem, b Branch) LifeStage {
	start := int(lifeStartBranch[s])
	var diff int
	if s.Yang() {
		diff = int(b) - start
	} else {
		diff = start - int(b)
	}
	return lifeStages[(diff%BranchCount+BranchCount)%BranchCount]
}

// Combine 天干五合：甲己、乙庚、丙辛、丁壬、戊癸。
func (s Stem) Combine() Stem { return (s + 5) % StemCount }

// Combine 地支六合：子丑、寅亥、卯戌、辰酉、巳申、午未。
func (b Branch) Combine() Branch { return ZhiChou.Shift(-int(b)) }

// VoidPair 旬空（空亡）两支。
type VoidPair [2]Branch

// VoidOf 由日柱推旬空：所在旬的第十一、十二位地支，如甲子旬空戌亥。
func VoidOf(day Pair) VoidPair {
	head := int(day.Branch) - int(day.Stem)
	return VoidPair{ZhiZi.Shift(head + 10), ZhiZi.Shift(head + 11)}
}

// ParseVoid 解析历法库给出的两字旬空串，如 "戌亥"。
func ParseVoid(s string) (VoidPair, error) {
	if utf8.RuneCountInString(s) != 2 {
		return VoidPair{}, fmt.Errorf("ganzhi: void %q must be two branches", s)
	}
	var out VoidPair
	i := 0
	for _, r := range s {
		b, err := ParseBranch(string(r))
		if err != nil {
			return VoidPair{}, err
		}
		out[i] = b
		i++
	}
	return out, nil
}

func (v VoidPair) Contains(b Branch) bool { return v[0] == b || v[1] == b }

func (v VoidPair) String() string { return v[0].String() + v[1].String() }

func (v VoidPair) MarshalText() ([]byte, error) { return []byte(v.String()), nil }
