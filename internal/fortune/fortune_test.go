package fortune

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baziEngine/internal/calendar"
	"baziEngine/internal/ganzhi"
	"baziEngine/internal/model"
)

// fakeCalendar 生成从 甲子 起、每步十年的大运，failAt 指定哪一步流年出错（从 1 计）。
type fakeCalendar struct {
	periods int
	failAt  int
	err     error
	asked   int
}

func (f *fakeCalendar) Convert(time.Time) (*calendar.Sexagenary, error) {
	return nil, errors.New("not used")
}

func (f *fakeCalendar) FortunePeriods(birth time.Time, _ model.Gender, count int) ([]calendar.Period, error) {
	f.asked = count
	if f.err != nil {
		return nil, f.err
	}
	var out []calendar.Period
	for i := 0; i < f.periods; i++ {
		start := birth.Year() + 3 + i*10
		age := 3 + i*10
		gz := pairAt(i).String()
		fail := i+1 == f.failAt
		out = append(out, calendar.Period{
			StartYear: start,
			EndYear:   start + 9,
			StartAge:  age,
			GanZhi:    gz,
			Annual: func() ([]calendar.Annual, error) {
				if fail {
					return nil, errors.New("liunian table missing")
				}
				var as []calendar.Annual
				for y := 0; y < 10; y++ {
					as = append(as, calendar.Annual{Year: start + y, Age: age + y, GanZhi: pairAt(start + y - 4).String()})
				}
				return as, nil
			},
		})
	}
	return out, nil
}

func pairAt(i int) ganzhi.Pair {
	i = ((i % 60) + 60) % 60
	return ganzhi.Pair{Stem: ganzhi.Stem(i % 10), Branch: ganzhi.Branch(i % 12)}
}

var birth = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)

func TestProjectContiguousPeriods(t *testing.T) {
	cal := &fakeCalendar{periods: 8}
	ps, err := Project(context.Background(), cal, birth, model.Male, 8)
	require.NoError(t, err)
	require.Len(t, ps, 8)
	for i := 1; i < len(ps); i++ {
		assert.Equal(t, ps[i-1].StartAge+10, ps[i].StartAge)
		assert.Greater(t, ps[i].StartYear, ps[i-1].EndYear)
	}
	for _, p := range ps {
		assert.Len(t, p.Annual, 10)
	}
	// 1993 为癸酉年
	assert.Equal(t, "癸酉", ps[0].Annual[0].Pillar.String())
	assert.Equal(t, "甲子", ps[0].Pillar.String())
}

func TestProjectAnnualFailureIsLocal(t *testing.T) {
	cal := &fakeCalendar{periods: 8, failAt: 3}
	ps, err := Project(context.Background(), cal, birth, model.Female, 8)
	require.NoError(t, err)
	require.Len(t, ps, 8)
	assert.NotNil(t, ps[2].Annual)
	assert.Empty(t, ps[2].Annual)
	assert.Len(t, ps[1].Annual, 10)
	assert.Len(t, ps[3].Annual, 10)
}

func TestProjectClampsCount(t *testing.T) {
	cal := &fakeCalendar{periods: 10}
	ps, err := Project(context.Background(), cal, birth, model.Male, 20)
	require.NoError(t, err)
	assert.Len(t, ps, MaxPeriods)
	assert.Equal(t, MaxPeriods, cal.asked)

	ps, err = Project(context.Background(), cal, birth, model.Male, 0)
	require.NoError(t, err)
	assert.Len(t, ps, 1)
}

func TestProjectCalendarFailureIsFatal(t *testing.T) {
	boom := errors.New("boom")
	_, err := Project(context.Background(), &fakeCalendar{err: boom}, birth, model.Male, 8)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestProjectBadPeriodGanZhi(t *testing.T) {
	cal := &badCalendar{}
	_, err := Project(context.Background(), cal, birth, model.Male, 8)
	assert.Error(t, err)
}

type badCalendar struct{ fakeCalendar }

func (b *badCalendar) FortunePeriods(time.Time, model.Gender, int) ([]calendar.Period, error) {
	return []calendar.Period{{StartYear: 1993, EndYear: 2002, StartAge: 3, GanZhi: "甲丑"}}, nil
}
