// Package wuxing 统计八字五行：八个干支各记一次五行，给出缺失与最旺。
package wuxing

import (
	"baziEngine/internal/ganzhi"
	"baziEngine/internal/model"
)

// tallyOrder 统计与并列取舍的顺序：金木水火土。并列最旺时取先出现者。
var tallyOrder = [ganzhi.ElementCount]ganzhi.Element{
	ganzhi.Metal, ganzhi.Wood, ganzhi.Water, ganzhi.Fire, ganzhi.Earth,
}

// Order 返回统计顺序副本。
func Order() []ganzhi.Element { return append([]ganzhi.Element(nil), tallyOrder[:]...) }

// Balance 汇总四柱天干、地支的五行。Counts 五行俱全（含 0），合计恒为 8。
func Balance(c model.Chart) model.ElementBalance {
	counts := make(map[ganzhi.Element]int, ganzhi.ElementCount)
	for _, e := range tallyOrder {
		counts[e] = 0
	}
	for _, p := range c.Pillars() {
		counts[p.StemElement]++
		counts[p.BranchElement]++
	}

	missing := make([]ganzhi.Element, 0, ganzhi.ElementCount)
	dominant, best := tallyOrder[0], -1
	for _, e := range tallyOrder {
		n := counts[e]
		if n == 0 {
			missing = append(missing, e)
		}
		if n > best {
			dominant, best = e, n
		}
	}
	return model.ElementBalance{Counts: counts, Missing: missing, Dominant: dominant}
}
