package pillar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baziEngine/internal/ganzhi"
	"baziEngine/internal/shensha"
)

func pair(t *testing.T, s string) ganzhi.Pair {
	t.Helper()
	p, err := ganzhi.ParsePair(s)
	require.NoError(t, err)
	return p
}

func TestBuildDayPillarIsDayMaster(t *testing.T) {
	ref := shensha.NewReference(pair(t, "庚午"), pair(t, "戊寅"), pair(t, "甲子"))
	p := Build(pair(t, "甲子"), ref, Day, "海中金")

	assert.Equal(t, ganzhi.DayMaster, p.TenGod)
	assert.Equal(t, ganzhi.Wood, p.StemElement)
	assert.Equal(t, ganzhi.Water, p.BranchElement)
	assert.Equal(t, []ganzhi.Stem{ganzhi.GanGui}, p.HiddenStems)
	assert.Equal(t, []ganzhi.TenGod{ganzhi.ZhengYin}, p.HiddenTenGods)
	assert.Equal(t, ganzhi.StageMuYu, p.LifeStage)
	assert.Equal(t, "海中金", p.Nayin)
	assert.False(t, p.Void)
	assert.Equal(t, "甲子", p.Pair().String())
}

func TestBuildRelativeToDayStem(t *testing.T) {
	ref := shensha.NewReference(pair(t, "庚午"), pair(t, "戊寅"), pair(t, "甲子"))

	y := Build(pair(t, "庚午"), ref, Year, "")
	assert.Equal(t, ganzhi.QiSha, y.TenGod)
	assert.Equal(t, []ganzhi.TenGod{ganzhi.ShangGuan, ganzhi.ZhengCai}, y.HiddenTenGods)
	assert.Equal(t, ganzhi.StageSi, y.LifeStage)

	h := Build(pair(t, "乙亥"), ref, Hour, "")
	assert.Equal(t, ganzhi.JieCai, h.TenGod)
	assert.Equal(t, ganzhi.StageChangSheng, h.LifeStage)
	assert.True(t, h.Void)
	assert.Contains(t, h.ShenSha, "空亡")
}

func TestBuildAlignsHiddenLists(t *testing.T) {
	ref := shensha.NewReference(pair(t, "甲子"), pair(t, "丙寅"), pair(t, "丁卯"))
	for _, b := range ganzhi.Branches() {
		s := ganzhi.Stem(int(b) % 2)
		p := Build(ganzhi.Pair{Stem: s, Branch: b}, ref, Month, "")
		require.NotEmpty(t, p.HiddenStems, b.String())
		assert.Len(t, p.HiddenTenGods, len(p.HiddenStems), b.String())
		assert.Len(t, p.ShenShaInfo, len(p.ShenSha), b.String())
		for i, n := range p.ShenSha {
			assert.Equal(t, n, p.ShenShaInfo[i].Name)
		}
	}
}

func TestBuildVoidFollowsReference(t *testing.T) {
	ref := shensha.NewReference(pair(t, "甲子"), pair(t, "丙寅"), pair(t, "甲子"))
	// 调用方可用外部给出的旬空覆盖
	ref.Void = ganzhi.VoidPair{ganzhi.ZhiYin, ganzhi.ZhiMao}
	assert.True(t, Build(pair(t, "丙寅"), ref, Month, "").Void)
	assert.False(t, Build(pair(t, "乙亥"), ref, Hour, "").Void)
}

func TestDayOnlyMarkersNeedDayRole(t *testing.T) {
	ref := shensha.NewReference(pair(t, "甲子"), pair(t, "丙寅"), pair(t, "庚戌"))
	assert.Contains(t, Build(pair(t, "庚戌"), ref, Day, "").ShenSha, "魁罡")
	assert.NotContains(t, Build(pair(t, "庚戌"), ref, Hour, "").ShenSha, "魁罡")
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "年柱", Year.String())
	assert.Equal(t, "时柱", Hour.String())
	assert.Equal(t, "?", Role(9).String())
}
