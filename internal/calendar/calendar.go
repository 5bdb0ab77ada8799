// Package calendar 是外部历法库的边界：公历时刻 → 四柱干支、纳音、旬空、农历日期，
// 以及按性别排出的大运流年。引擎只依赖 Adapter 接口，测试用假实现替换。
package calendar

import (
	"time"

	"baziEngine/internal/model"
)

// Sexagenary 历法库给出的原始结果，干支均为两字字符串，由调用方解析。
type Sexagenary struct {
	Year, Month, Day, Hour string
	// Nayin 依次为年、月、日、时柱纳音
	Nayin [4]string
	// Void 日柱旬空，两字，如 "戌亥"
	Void  string
	Lunar string
}

// Annual 一个流年。
type Annual struct {
	Year   int
	Age    int
	GanZhi string
}

// Period 一步大运。Annual 延迟计算，单步失败不影响其他大运。
type Period struct {
	StartYear int
	EndYear   int
	StartAge  int
	GanZhi    string
	Annual    func() ([]Annual, error)
}

// Adapter 历法库边界。
type Adapter interface {
	Convert(t time.Time) (*Sexagenary, error)
	// FortunePeriods 返回起运后的前 count 步大运（不含起运前的童限）。
	FortunePeriods(birth time.Time, gender model.Gender, count int) ([]Period, error)
}
