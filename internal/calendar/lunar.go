package calendar

import (
	"errors"
	"fmt"
	"time"

	lunar "github.com/6tail/lunar-go/calendar"

	"baziEngine/internal/model"
)

// 八字流派：2 为晚子时日柱算当天
const sect = 2

// Lunar 基于 6tail/lunar-go 的 Adapter 实现，无状态，可并发使用。
type Lunar struct{}

func NewLunar() *Lunar { return &Lunar{} }

var _ Adapter = (*Lunar)(nil)

func (l *Lunar) Convert(t time.Time) (out *Sexagenary, err error) {
	defer recoverInto(&err, "convert")

	solar := lunar.NewSolar(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
	lu := solar.GetLunar()
	ec := lu.GetEightChar()
	ec.SetSect(sect)

	return &Sexagenary{
		Year:  ec.GetYearGan() + ec.GetYearZhi(),
		Month: ec.GetMonthGan() + ec.GetMonthZhi(),
		Day:   ec.GetDayGan() + ec.GetDayZhi(),
		Hour:  ec.GetTimeGan() + ec.GetTimeZhi(),
		Nayin: [4]string{ec.GetYearNaYin(), ec.GetMonthNaYin(), ec.GetDayNaYin(), ec.GetTimeNaYin()},
		Void:  ec.GetDayXunKong(),
		Lunar: lu.String(),
	}, nil
}

func (l *Lunar) FortunePeriods(birth time.Time, gender model.Gender, count int) (out []Period, err error) {
	defer recoverInto(&err, "fortune periods")

	g, err := genderCode(gender)
	if err != nil {
		return nil, err
	}
	solar := lunar.NewSolar(birth.Year(), int(birth.Month()), birth.Day(), birth.Hour(), birth.Minute(), birth.Second())
	ec := solar.GetLunar().GetEightChar()
	ec.SetSect(sect)

	all := ec.GetYun(g).GetDaYun()
	// 下标 0 为起运前，不计
	for i := 1; i < len(all) && len(out) < count; i++ {
		dy := all[i]
		out = append(out, Period{
			StartYear: dy.GetStartYear(),
			EndYear:   dy.GetEndYear(),
			StartAge:  dy.GetStartAge(),
			GanZhi:    dy.GetGanZhi(),
			Annual:    annualOf(dy, i),
		})
	}
	return out, nil
}

func annualOf(dy *lunar.DaYun, index int) func() ([]Annual, error) {
	return func() (out []Annual, err error) {
		defer recoverInto(&err, fmt.Sprintf("liunian of period %d", index))
		for _, ln := range dy.GetLiuNian() {
			out = append(out, Annual{Year: ln.GetYear(), Age: ln.GetAge(), GanZhi: ln.GetGanZhi()})
		}
		return out, nil
	}
}

// genderCode 历法库约定：1 男、0 女。
func genderCode(g model.Gender) (int, error) {
	switch g {
	case model.Male:
		return 1, nil
	case model.Female:
		return 0, nil
	}
	return 0, fmt.Errorf("calendar: unknown gender %q", g)
}

// ErrLibrary 历法库内部 panic 转成的错误。
var ErrLibrary = errors.New("calendar library failure")

func recoverInto(err *error, op string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("calendar: %s: %w: %v", op, ErrLibrary, r)
	}
}
