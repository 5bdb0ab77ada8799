// Package fortune 排大运流年：向历法库要前 N 步大运，逐步展开流年。
package fortune

import (
	"context"
	"fmt"
	"time"

	"baziEngine/internal/calendar"
	"baziEngine/internal/ganzhi"
	"baziEngine/internal/model"
	"baziEngine/internal/trace"
)

// MaxPeriods 最多排八步大运
const MaxPeriods = 8

// Project 返回至多 count 步大运（count 超出 1~MaxPeriods 时截到边界）。
// 取大运失败或大运干支不合法直接返回错误；某一步的流年失败只记日志，该步流年为空。
func Project(ctx context.Context, cal calendar.Adapter, birth time.Time, gender model.Gender, count int) ([]model.FortunePeriod, error) {
	count = clamp(count)
	raw, err := cal.FortunePeriods(birth, gender, count)
	if err != nil {
		return nil, fmt.Errorf("fortune: periods: %w", err)
	}
	if len(raw) > count {
		raw = raw[:count]
	}

	out := make([]model.FortunePeriod, 0, len(raw))
	for i, p := range raw {
		pair, err := ganzhi.ParsePair(p.GanZhi)
		if err != nil {
			return nil, fmt.Errorf("fortune: period %d: %w", i+1, err)
		}
		out = append(out, model.FortunePeriod{
			StartYear: p.StartYear,
			EndYear:   p.EndYear,
			StartAge:  p.StartAge,
			Pillar:    pair,
			Annual:    annual(ctx, i+1, p),
		})
	}
	trace.Debug(ctx, "fortune: projected", "periods", len(out))
	return out, nil
}

func annual(ctx context.Context, index int, p calendar.Period) []model.AnnualPeriod {
	out := []model.AnnualPeriod{}
	if p.Annual == nil {
		return out
	}
	list, err := p.Annual()
	if err != nil {
		trace.Warn(ctx, "fortune: liunian failed", "period", index, "err", err)
		return out
	}
	for _, a := range list {
		pair, err := ganzhi.ParsePair(a.GanZhi)
		if err != nil {
			trace.Warn(ctx, "fortune: bad liunian ganzhi", "period", index, "year", a.Year, "err", err)
			return []model.AnnualPeriod{}
		}
		out = append(out, model.AnnualPeriod{Year: a.Year, Age: a.Age, Pillar: pair})
	}
	return out
}

func clamp(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxPeriods {
		return MaxPeriods
	}
	return n
}
