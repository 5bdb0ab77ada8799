package bazi

import (
	"fmt"
	"math"
	"time"

	"baziEngine/internal/model"
)

// 公历年份范围（历法库可处理的区间）
const (
	minYear = 1
	maxYear = 9999
)

// Validate 检查请求各字段，违规时返回包裹 ErrInvalidInput 的错误。
func Validate(req model.BirthRequest) error {
	if req.Gender != model.Male && req.Gender != model.Female {
		return fmt.Errorf("%w: gender %q", ErrInvalidInput, req.Gender)
	}
	if req.Year < minYear || req.Year > maxYear {
		return fmt.Errorf("%w: year %d", ErrInvalidInput, req.Year)
	}
	if req.Month < 1 || req.Month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidInput, req.Month)
	}
	if req.Day < 1 || req.Day > daysIn(req.Year, time.Month(req.Month)) {
		return fmt.Errorf("%w: day %d of %04d-%02d", ErrInvalidInput, req.Day, req.Year, req.Month)
	}
	if req.Hour < 0 || req.Hour > 23 {
		return fmt.Errorf("%w: hour %d", ErrInvalidInput, req.Hour)
	}
	if req.Minute < 0 || req.Minute > 59 {
		return fmt.Errorf("%w: minute %d", ErrInvalidInput, req.Minute)
	}
	if req.Second < 0 || req.Second > 59 {
		return fmt.Errorf("%w: second %d", ErrInvalidInput, req.Second)
	}
	if lng := req.Longitude; lng != nil && (math.IsNaN(*lng) || *lng < -180 || *lng > 180) {
		return fmt.Errorf("%w: longitude %v", ErrInvalidInput, *req.Longitude)
	}
	return nil
}

// daysIn 当月天数：下月零日即本月最后一天。
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
