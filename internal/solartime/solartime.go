// Package solartime 把钟表时间（东八区平太阳时）修正为出生地真太阳时：
// 经度差修正 + 均时差（Meeus《天文算法》低阶公式）。纯函数，无状态。
package solartime

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// 参考子午线与换算
const (
	ReferenceMeridian = 120.0 // 东八区标准经线
	minutesPerDegree  = 4
	daysPerCentury    = 36525.0
	julianDayJ2000    = 2451545.0
)

var (
	refMeridianDec = decimal.NewFromFloat(ReferenceMeridian)
	minPerDegDec   = decimal.NewFromInt(minutesPerDegree)
	nanosPerMinute = decimal.NewFromInt(int64(time.Minute))
)

// Correction 一次真太阳时修正的明细。
type Correction struct {
	Original        time.Time
	Corrected       time.Time
	Longitude       float64
	LongitudeOffset decimal.Decimal // 分钟
	EquationOfTime  float64         // 分钟
	Total           decimal.Decimal // 分钟
}

// Offset 修正量（精确到纳秒，不截断到整分钟）。
func (c Correction) Offset() time.Duration {
	return time.Duration(c.Total.Mul(nanosPerMinute).Round(0).IntPart())
}

// LongitudeOffset 经度修正（分钟）：(经度 − 120) × 4，十进制运算保证 116.4° 得到精确的 −14.4。
func LongitudeOffset(longitude float64) decimal.Decimal {
	return decimal.NewFromFloat(longitude).Sub(refMeridianDec).Mul(minPerDegDec)
}

// JulianDay 儒略日（格里历，月份 ≤ 2 时视为上一年的 13、14 月）。
func JulianDay(t time.Time) float64 {
	year, month, day := t.Year(), int(t.Month()), t.Day()
	if month <= 2 {
		year--
		month += 12
	}
	a := math.Floor(float64(year) / 100)
	b := 2 - a + math.Floor(a/4)
	jd := math.Floor(365.25*float64(year+4716)) + math.Floor(30.6001*float64(month+1)) + float64(day) + b - 1524.5

	frac := float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
	return jd + frac/24
}

// EquationOfTime 均时差（分钟），真太阳时 = 平太阳时 + 均时差。
func EquationOfTime(t time.Time) float64 {
	T := (JulianDay(t) - julianDayJ2000) / daysPerCentury

	// 太阳几何平黄经、平近点角、地球轨道偏心率
	l0 := math.Mod(280.46646+36000.76983*T+0.0003032*T*T, 360)
	m := 357.52911 + 35999.05029*T - 0.0001537*T*T
	e := 0.016708634 - 0.000042037*T - 0.0000001267*T*T
	mRad := rad(m)

	// 黄赤交角（平 + 月球升交点章动修正）
	omega := rad(125.04 - 1934.136*T)
	eps0 := 23 + 26.0/60 + 21.448/3600 - (46.8150*T+0.00059*T*T-0.001813*T*T*T)/3600
	eps := rad(eps0 + 0.00256*math.Cos(omega))

	y := math.Pow(math.Tan(eps/2), 2)
	l0Rad := rad(l0)
	eRad := y*math.Sin(2*l0Rad) -
		2*e*math.Sin(mRad) +
		4*e*y*math.Sin(mRad)*math.Cos(2*l0Rad) -
		0.5*y*y*math.Sin(4*l0Rad) -
		1.25*e*e*math.Sin(2*mRad)

	return deg(eRad) * minutesPerDegree
}

// Correct 计算真太阳时：原时刻 + 经度修正 + 均时差。
func Correct(t time.Time, longitude float64) Correction {
	lon := LongitudeOffset(longitude)
	eot := EquationOfTime(t)
	c := Correction{
		Original:        t,
		Longitude:       longitude,
		LongitudeOffset: lon,
		EquationOfTime:  eot,
		Total:           lon.Add(decimal.NewFromFloat(eot)),
	}
	c.Corrected = t.Add(c.Offset())
	return c
}

func rad(d float64) float64 { return d * math.Pi / 180 }

func deg(r float64) float64 { return r * 180 / math.Pi }
