// Package model 定义排盘请求、四柱命盘、五行统计、大运流年等结构，构建后只读。
package model

import (
	"github.com/shopspring/decimal"

	"baziEngine/internal/ganzhi"
)

// Gender 性别，决定大运顺逆。
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// BirthRequest 排盘请求：公历出生时间 + 可选出生地（经度或地名）。
type BirthRequest struct {
	ID         string   `json:"id,omitempty"`
	Name       string   `json:"name,omitempty"`
	Gender     Gender   `json:"gender"`
	Year       int      `json:"birth_year"`
	Month      int      `json:"birth_month"`
	Day        int      `json:"birth_day"`
	Hour       int      `json:"birth_hour"`
	Minute     int      `json:"birth_minute"`
	Second     int      `json:"birth_second,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`   // 东经为正
	BirthPlace string   `json:"birth_place,omitempty"` // 无经度时按地名查经度
	// TrueSolarTime 调用方已给出真太阳时，不再修正
	TrueSolarTime bool `json:"is_true_solar_time"`
}

// ShenSha 神煞明细：名称、吉凶类型、重要程度 1~5、简述。
type ShenSha struct {
	Name  string `json:"name"`
	Kind  string `json:"type"`
	Level int    `json:"level"`
	Desc  string `json:"desc"`
}

// Pillar 一柱：干支、五行、藏干、十神、星运（十二长生）、空亡、纳音、神煞。
// HiddenStems 与 HiddenTenGods 等长且一一对应。
type Pillar struct {
	Stem          ganzhi.Stem      `json:"gan"`
	Branch        ganzhi.Branch    `json:"zhi"`
	StemElement   ganzhi.Element   `json:"gan_wuxing"`
	BranchElement ganzhi.Element   `json:"zhi_wuxing"`
	HiddenStems   []ganzhi.Stem    `json:"hidden_gan"`
	TenGod        ganzhi.TenGod    `json:"shishen"`
	HiddenTenGods []ganzhi.TenGod  `json:"hidden_shishen"`
	Nayin         string           `json:"nayin"`
	LifeStage     ganzhi.LifeStage `json:"xingyun"`
	Void          bool             `json:"kongwang"`
	ShenSha       []string         `json:"shensha"`
	ShenShaInfo   []ShenSha        `json:"shensha_info"`
}

func (p Pillar) Pair() ganzhi.Pair { return ganzhi.Pair{Stem: p.Stem, Branch: p.Branch} }

// Chart 四柱，顺序固定为年、月、日、时；日柱天干为日主。
type Chart struct {
	Year  Pillar `json:"year_pillar"`
	Month Pillar `json:"month_pillar"`
	Day   Pillar `json:"day_pillar"`
	Hour  Pillar `json:"hour_pillar"`
}

func (c Chart) Pillars() [4]Pillar { return [4]Pillar{c.Year, c.Month, c.Day, c.Hour} }

// ElementBalance 八字五行统计：八个干支五行计数（合计 8）、缺失五行、最旺五行。
type ElementBalance struct {
	Counts   map[ganzhi.Element]int `json:"scores"`
	Missing  []ganzhi.Element       `json:"missing"`
	Dominant ganzhi.Element         `json:"strongest"`
}

// AnnualPeriod 流年。
type AnnualPeriod struct {
	Year   int         `json:"year"`
	Age    int         `json:"age"`
	Pillar ganzhi.Pair `json:"gan_zhi"`
}

// FortunePeriod 大运：约十年一步，内含逐年流年；流年取数失败时 Annual 为空。
type FortunePeriod struct {
	StartYear int            `json:"start_year"`
	EndYear   int            `json:"end_year"`
	StartAge  int            `json:"start_age"`
	Pillar    ganzhi.Pair    `json:"gan_zhi"`
	Annual    []AnnualPeriod `json:"liunian_list"`
}

// Correction 真太阳时修正明细（分钟）。
type Correction struct {
	Longitude       float64         `json:"longitude"`
	LongitudeOffset decimal.Decimal `json:"longitude_offset_minutes"`
	EquationOfTime  float64         `json:"equation_of_time_minutes"`
	Total           decimal.Decimal `json:"total_minutes"`
}

// ChartResult 一次排盘的完整输出。TrueSolarTime 仅在实际做了修正时非空。
type ChartResult struct {
	SolarDate     string          `json:"solar_date"`
	TrueSolarTime string          `json:"true_solar_time,omitempty"`
	LunarDate     string          `json:"lunar_date"`
	Gender        Gender          `json:"gender"`
	Void          ganzhi.VoidPair `json:"xunkong"`
	Chart         Chart           `json:"chart"`
	Balance       ElementBalance  `json:"wuxing"`
	Fortune       []FortunePeriod `json:"dayun"`
	Correction    *Correction     `json:"correction,omitempty"`
}
