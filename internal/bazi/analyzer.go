// Package bazi 排盘入口：校验请求 → 真太阳时修正 → 历法转换 → 四柱补全与神煞 →
// 五行统计 → 大运流年，组装成一次性只读的 ChartResult。
package bazi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"baziEngine/internal/calendar"
	"baziEngine/internal/fortune"
	"baziEngine/internal/ganzhi"
	"baziEngine/internal/model"
	"baziEngine/internal/pillar"
	"baziEngine/internal/shensha"
	"baziEngine/internal/solartime"
	"baziEngine/internal/trace"
	"baziEngine/internal/wuxing"
)

var (
	// ErrInvalidInput 请求字段不合法，不产出任何命盘。
	ErrInvalidInput = errors.New("invalid birth request")
	// ErrCalendar 历法转换失败或返回了无法解析的干支。
	ErrCalendar = errors.New("calendar conversion failed")
)

// 输出时间格式
const timeLayout = "2006-01-02 15:04:05"

// Locator 出生地 → 经度，geo.Gazetteer 即是一个实现。
type Locator interface {
	Longitude(place string) (float64, error)
}

type Option func(*Analyzer)

// WithLocator 设置出生地查询；未设置时只认请求里的经度。
func WithLocator(l Locator) Option { return func(a *Analyzer) { a.loc = l } }

// WithFortunePeriods 设置大运步数（1~8）。
func WithFortunePeriods(n int) Option { return func(a *Analyzer) { a.periods = n } }

// Analyzer 无可变状态，可被多个 goroutine 共用。
type Analyzer struct {
	cal     calendar.Adapter
	loc     Locator
	periods int
}

func New(cal calendar.Adapter, opts ...Option) *Analyzer {
	if cal == nil {
		panic("bazi: calendar adapter must not be nil")
	}
	a := &Analyzer{cal: cal, periods: fortune.MaxPeriods}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Analyze 完成一次排盘。输入非法、历法失败或 ctx 结束时返回错误且无命盘；
// 经度查询失败只跳过修正，某步流年失败只清空该步流年。
func (a *Analyzer) Analyze(ctx context.Context, req model.BirthRequest) (*model.ChartResult, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	birth := time.Date(req.Year, time.Month(req.Month), req.Day, req.Hour, req.Minute, req.Second, 0, time.UTC)
	trace.Log(ctx, "bazi: analyze start", "birth", birth.Format(timeLayout), "gender", req.Gender, "place", req.BirthPlace)

	at := birth
	var corr *model.Correction
	if lon, ok := a.longitude(ctx, req); ok {
		c := solartime.Correct(birth, lon)
		at = c.Corrected
		corr = &model.Correction{
			Longitude:       c.Longitude,
			LongitudeOffset: c.LongitudeOffset,
			EquationOfTime:  c.EquationOfTime,
			Total:           c.Total,
		}
		trace.Debug(ctx, "bazi: true solar time", "lon_offset", c.LongitudeOffset.String(),
			"eot", c.EquationOfTime, "corrected", at.Format(timeLayout))
	}

	sx, err := a.cal.Convert(at)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCalendar, err)
	}
	var pairs [4]ganzhi.Pair
	for i, s := range []string{sx.Year, sx.Month, sx.Day, sx.Hour} {
		if pairs[i], err = ganzhi.ParsePair(s); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCalendar, pillar.Role(i), err)
		}
	}
	trace.Debug(ctx, "bazi: pillars", "year", sx.Year, "month", sx.Month, "day", sx.Day, "hour", sx.Hour)

	ref := shensha.NewReference(pairs[pillar.Year], pairs[pillar.Month], pairs[pillar.Day])
	if v, err := ganzhi.ParseVoid(sx.Void); err == nil {
		ref.Void = v
	} else {
		trace.Warn(ctx, "bazi: unparsable void, derived from day pillar", "void", sx.Void, "err", err)
	}

	chart := model.Chart{
		Year:  pillar.Build(pairs[pillar.Year], ref, pillar.Year, sx.Nayin[pillar.Year]),
		Month: pillar.Build(pairs[pillar.Month], ref, pillar.Month, sx.Nayin[pillar.Month]),
		Day:   pillar.Build(pairs[pillar.Day], ref, pillar.Day, sx.Nayin[pillar.Day]),
		Hour:  pillar.Build(pairs[pillar.Hour], ref, pillar.Hour, sx.Nayin[pillar.Hour]),
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	periods, err := fortune.Project(ctx, a.cal, at, req.Gender, a.periods)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCalendar, err)
	}

	res := &model.ChartResult{
		SolarDate: birth.Format(timeLayout),
		LunarDate: sx.Lunar,
		Gender:    req.Gender,
		Void:      ref.Void,
		Chart:     chart,
		Balance:   wuxing.Balance(chart),
		Fortune:   periods,
	}
	if corr != nil {
		res.TrueSolarTime = at.Format(timeLayout)
		res.Correction = corr
	}
	trace.Log(ctx, "bazi: analyze done", "day_master", chart.Day.Stem.String(), "periods", len(periods))
	return res, nil
}

// longitude 决定修正用的经度：调用方声明已是真太阳时则不修正；显式经度优先于地名。
func (a *Analyzer) longitude(ctx context.Context, req model.BirthRequest) (float64, bool) {
	if req.TrueSolarTime {
		return 0, false
	}
	if req.Longitude != nil {
		return *req.Longitude, true
	}
	if req.BirthPlace == "" || a.loc == nil {
		return 0, false
	}
	lon, err := a.loc.Longitude(req.BirthPlace)
	if err != nil {
		trace.Warn(ctx, "bazi: longitude lookup failed, skip correction", "place", req.BirthPlace, "err", err)
		return 0, false
	}
	return lon, true
}
