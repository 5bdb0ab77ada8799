package bazi

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baziEngine/internal/calendar"
	"baziEngine/internal/ganzhi"
	"baziEngine/internal/geo"
	"baziEngine/internal/model"
)

// stubCalendar 固定返回 己巳 丙子 丙寅 戊子，并记下 Convert 收到的时刻。
type stubCalendar struct {
	sx         calendar.Sexagenary
	convertErr error
	periodErr  error
	got        []time.Time
}

func newStub() *stubCalendar {
	return &stubCalendar{sx: calendar.Sexagenary{
		Year: "己巳", Month: "丙子", Day: "丙寅", Hour: "戊子",
		Nayin: [4]string{"大林木", "涧下水", "炉中火", "霹雳火"},
		Void:  "戌亥",
		Lunar: "一九八九年冬月初五",
	}}
}

func (s *stubCalendar) Convert(t time.Time) (*calendar.Sexagenary, error) {
	s.got = append(s.got, t)
	if s.convertErr != nil {
		return nil, s.convertErr
	}
	out := s.sx
	return &out, nil
}

func (s *stubCalendar) FortunePeriods(birth time.Time, _ model.Gender, count int) ([]calendar.Period, error) {
	if s.periodErr != nil {
		return nil, s.periodErr
	}
	seq := []string{"乙亥", "甲戌", "癸酉", "壬申", "辛未", "庚午", "己巳", "戊辰"}
	var out []calendar.Period
	for i := 0; i < count && i < len(seq); i++ {
		start := birth.Year() + 8 + i*10
		gz := seq[i]
		out = append(out, calendar.Period{
			StartYear: start, EndYear: start + 9, StartAge: 8 + i*10, GanZhi: gz,
			Annual: func() ([]calendar.Annual, error) {
				return []calendar.Annual{{Year: start, Age: 0, GanZhi: gz}}, nil
			},
		})
	}
	return out, nil
}

func request() model.BirthRequest {
	return model.BirthRequest{Gender: model.Male, Year: 1990, Month: 1, Day: 1}
}

func lonPtr(v float64) *float64 { return &v }

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func TestAnalyzeWithoutPlaceSkipsCorrection(t *testing.T) {
	cal := newStub()
	res, err := New(cal).Analyze(context.Background(), request())
	require.NoError(t, err)

	require.Len(t, cal.got, 1)
	assert.Equal(t, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), cal.got[0])
	assert.Equal(t, "1990-01-01 00:00:00", res.SolarDate)
	assert.Empty(t, res.TrueSolarTime)
	assert.Nil(t, res.Correction)

	for _, p := range res.Chart.Pillars() {
		assert.NotEmpty(t, p.HiddenStems)
		assert.Len(t, p.HiddenTenGods, len(p.HiddenStems))
	}
	assert.Equal(t, ganzhi.DayMaster, res.Chart.Day.TenGod)
	assert.Equal(t, "炉中火", res.Chart.Day.Nayin)
	assert.Equal(t, "戌亥", res.Void.String())
	assert.Len(t, res.Fortune, 8)
	assert.Equal(t, "一九八九年冬月初五", res.LunarDate)
}

func TestAnalyzeLongitudeCorrection(t *testing.T) {
	cal := newStub()
	req := request()
	req.Hour = 12
	req.Longitude = lonPtr(116.4)

	res, err := New(cal).Analyze(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res.Correction)

	assert.True(t, res.Correction.LongitudeOffset.Equal(decimal.RequireFromString("-14.4")))
	want := res.Correction.LongitudeOffset.Add(decimal.NewFromFloat(res.Correction.EquationOfTime))
	assert.True(t, res.Correction.Total.Equal(want))

	birth := time.Date(1990, 1, 1, 12, 0, 0, 0, time.UTC)
	offset := time.Duration(res.Correction.Total.Mul(decimal.NewFromInt(int64(time.Minute))).Round(0).IntPart())
	assert.Equal(t, birth.Add(offset), cal.got[0])
	assert.Equal(t, cal.got[0].Format(timeLayout), res.TrueSolarTime)
	assert.Equal(t, "1990-01-01 12:00:00", res.SolarDate)
}

func TestAnalyzeBirthPlace(t *testing.T) {
	cal := newStub()
	req := request()
	req.BirthPlace = "北京市朝阳区"
	res, err := New(cal, WithLocator(geo.Default())).Analyze(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res.Correction)
	assert.InDelta(t, 116.4, res.Correction.Longitude, 1e-9)

	// 显式经度优先于地名
	req.Longitude = lonPtr(120)
	res, err = New(newStub(), WithLocator(geo.Default())).Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.Correction.LongitudeOffset.IsZero())
}

func TestAnalyzeUnknownPlaceDegrades(t *testing.T) {
	cal := newStub()
	req := request()
	req.BirthPlace = "火星基地"
	res, err := New(cal, WithLocator(geo.Default())).Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, res.Correction)
	assert.Equal(t, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), cal.got[0])
}

func TestAnalyzeTrueSolarTimeFlag(t *testing.T) {
	cal := newStub()
	req := request()
	req.Longitude = lonPtr(87.6)
	req.TrueSolarTime = true
	res, err := New(cal).Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, res.Correction)
	assert.Equal(t, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), cal.got[0])
}

func TestAnalyzeInvalidInput(t *testing.T) {
	cases := map[string]func(*model.BirthRequest){
		"gender":        func(r *model.BirthRequest) { r.Gender = "other" },
		"year0":         func(r *model.BirthRequest) { r.Year = 0 },
		"year10000":     func(r *model.BirthRequest) { r.Year = 10000 },
		"month13":       func(r *model.BirthRequest) { r.Month = 13 },
		"feb30":         func(r *model.BirthRequest) { r.Month, r.Day = 2, 30 },
		"feb29":         func(r *model.BirthRequest) { r.Year, r.Month, r.Day = 1900, 2, 29 },
		"apr31":         func(r *model.BirthRequest) { r.Month, r.Day = 4, 31 },
		"hour24":        func(r *model.BirthRequest) { r.Hour = 24 },
		"minute-1":      func(r *model.BirthRequest) { r.Minute = -1 },
		"second60":      func(r *model.BirthRequest) { r.Second = 60 },
		"longitude":     func(r *model.BirthRequest) { r.Longitude = lonPtr(181) },
		"longitude-nan": func(r *model.BirthRequest) { r.Longitude = lonPtr(math.NaN()) },
		"longitude-inf": func(r *model.BirthRequest) { r.Longitude = lonPtr(math.Inf(-1)) },
	}
	for name, mut := range cases {
		t.Run(name, func(t *testing.T) {
			cal := newStub()
			req := request()
			mut(&req)
			res, err := New(cal).Analyze(context.Background(), req)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, cal.got)
		})
	}

	req := request()
	req.Year, req.Month, req.Day = 2000, 2, 29
	assert.NoError(t, Validate(req))
}

func TestAnalyzeStopsOnDoneContext(t *testing.T) {
	cal := newStub()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := New(cal).Analyze(ctx, request())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, cal.got)

	ctx, cancel = context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()
	_, err = New(newStub()).Analyze(ctx, request())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAnalyzeCalendarFailure(t *testing.T) {
	boom := errors.New("boom")
	cal := newStub()
	cal.convertErr = boom
	_, err := New(cal).Analyze(context.Background(), request())
	assert.ErrorIs(t, err, ErrCalendar)
	assert.ErrorIs(t, err, boom)

	cal = newStub()
	cal.sx.Day = "丙丑"
	_, err = New(cal).Analyze(context.Background(), request())
	assert.ErrorIs(t, err, ErrCalendar)

	cal = newStub()
	cal.periodErr = boom
	_, err = New(cal).Analyze(context.Background(), request())
	assert.ErrorIs(t, err, ErrCalendar)
}

func TestAnalyzeVoidFallback(t *testing.T) {
	cal := newStub()
	cal.sx.Void = "?"
	res, err := New(cal).Analyze(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, ganzhi.VoidOf(res.Chart.Day.Pair()), res.Void)
}

func TestAnalyzeFortunePeriodsOption(t *testing.T) {
	res, err := New(newStub(), WithFortunePeriods(3)).Analyze(context.Background(), request())
	require.NoError(t, err)
	assert.Len(t, res.Fortune, 3)
}

func TestAnalyzeDeterministic(t *testing.T) {
	req := request()
	req.Longitude = lonPtr(104.07)
	a := New(newStub())
	r1, err := a.Analyze(context.Background(), req)
	require.NoError(t, err)
	r2, err := a.Analyze(context.Background(), req)
	require.NoError(t, err)
	if diff := cmp.Diff(r1, r2, decimalEqual); diff != "" {
		t.Fatalf("analyze not deterministic (-first +second):\n%s", diff)
	}
}

func TestNewPanicsWithoutCalendar(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}

// 真实历法库端到端：1990-01-01 00:00 男，无出生地
func TestAnalyzeEndToEndLunar(t *testing.T) {
	res, err := New(calendar.NewLunar()).Analyze(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, "1990-01-01 00:00:00", res.SolarDate)
	assert.Empty(t, res.TrueSolarTime)
	ps := res.Chart.Pillars()
	require.Len(t, ps, 4)
	for _, p := range ps {
		assert.NotEmpty(t, p.HiddenStems)
	}
	assert.Equal(t, "己巳", res.Chart.Year.Pair().String())
	assert.Equal(t, "丙寅", res.Chart.Day.Pair().String())
	assert.Equal(t, ganzhi.DayMaster, res.Chart.Day.TenGod)

	sum := 0
	for _, n := range res.Balance.Counts {
		sum += n
	}
	assert.Equal(t, 8, sum)
	assert.Len(t, res.Fortune, 8)
	for i := 1; i < len(res.Fortune); i++ {
		assert.Equal(t, res.Fortune[i-1].StartAge+10, res.Fortune[i].StartAge)
	}
}
