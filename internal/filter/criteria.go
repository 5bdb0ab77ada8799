// Package filter 定义命盘筛选条件（Criterion）与组合方式（And/Or/Not），批量排盘时只输出通过的命盘。
package filter

import (
	"strings"

	"baziEngine/internal/ganzhi"
	"baziEngine/internal/model"
)

// Criterion 单条条件：入参为排好的命盘，返回是否通过。
type Criterion func(*model.ChartResult) bool

func And(cs ...Criterion) Criterion {
	return func(r *model.ChartResult) bool {
		if r == nil {
			return false
		}
		for _, c := range cs {
			if c == nil {
				continue
			}
			if !c(r) {
				return false
			}
		}
		return true
	}
}

func Or(cs ...Criterion) Criterion {
	return func(r *model.ChartResult) bool {
		if r == nil {
			return false
		}
		for _, c := range cs {
			if c == nil {
				continue
			}
			if c(r) {
				return true
			}
		}
		return false
	}
}

func Not(c Criterion) Criterion {
	return func(r *model.ChartResult) bool { return r != nil && !c(r) }
}

// All 不筛选。
func All(r *model.ChartResult) bool { return r != nil }

// HasMarker 任一柱带有该神煞。不带括号的名称同时匹配参数化名称，如 暗禄 匹配 暗禄(甲)。
func HasMarker(name string) Criterion {
	name = strings.TrimSpace(name)
	return func(r *model.ChartResult) bool {
		for _, p := range r.Chart.Pillars() {
			for _, n := range p.ShenSha {
				if n == name || strings.HasPrefix(n, name+"(") {
					return true
				}
			}
		}
		return false
	}
}

// MissingElement 八字缺该五行。
func MissingElement(e ganzhi.Element) Criterion {
	return func(r *model.ChartResult) bool {
		for _, m := range r.Balance.Missing {
			if m == e {
				return true
			}
		}
		return false
	}
}

// DominantElement 最旺五行为 e。
func DominantElement(e ganzhi.Element) Criterion {
	return func(r *model.ChartResult) bool { return r.Balance.Dominant == e }
}

// DayMaster 日主为 s。
func DayMaster(s ganzhi.Stem) Criterion {
	return func(r *model.ChartResult) bool { return r.Chart.Day.Stem == s }
}

// HasVoid 四柱中有地支落旬空。
func HasVoid(r *model.ChartResult) bool {
	for _, p := range r.Chart.Pillars() {
		if p.Void {
			return true
		}
	}
	return false
}
