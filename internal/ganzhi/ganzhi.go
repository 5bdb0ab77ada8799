// Package ganzhi 定义十天干、十二地支、五行，以及干支的解析与循环运算。
// 所有表均为编译期常量，只读，可被任意多个 goroutine 同时使用。
package ganzhi

import (
	"fmt"
	"unicode/utf8"
)

// 干支数量
const (
	StemCount    = 10
	BranchCount  = 12
	ElementCount = 5
)

// Stem 天干，取值按甲乙丙丁戊己庚辛壬癸的自然顺序 0~9。
type Stem int

const (
	GanJia Stem = iota
	GanYi
	GanBing
	GanDing
	GanWu
	GanJi
	GanGeng
	GanXin
	GanRen
	GanGui
)

// Branch 地支，取值按子丑寅卯辰巳午未申酉戌亥的自然顺序 0~11。
type Branch int

const (
	ZhiZi Branch = iota
	ZhiChou
	ZhiYin
	ZhiMao
	ZhiChen
	ZhiSi
	ZhiWu
	ZhiWei
	ZhiShen
	ZhiYou
	ZhiXu
	ZhiHai
)

// Element 五行。枚举顺序为相生顺序：木火土金水。
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

var stemNames = [StemCount]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

var branchNames = [BranchCount]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

var elementNames = [ElementCount]string{"木", "火", "土", "金", "水"}

// 天干五行：甲乙木、丙丁火、戊己土、庚辛金、壬癸水
var stemElements = [StemCount]Element{Wood, Wood, Fire, Fire, Earth, Earth, Metal, Metal, Water, Water}

// 地支五行：子水 丑土 寅木 卯木 辰土 巳火 午火 未土 申金 酉金 戌土 亥水
var branchElements = [BranchCount]Element{Water, Earth, Wood, Wood, Earth, Fire, Fire, Earth, Metal, Metal, Earth, Water}

// Stems 十天干（自然顺序）。
func Stems() []Stem {
	out := make([]Stem, StemCount)
	for i := range out {
		out[i] = Stem(i)
	}
	return out
}

// Branches 十二地支（自然顺序）。
func Branches() []Branch {
	out := make([]Branch, BranchCount)
	for i := range out {
		out[i] = Branch(i)
	}
	return out
}

// Elements 五行（枚举顺序）。
func Elements() []Element {
	return []Element{Wood, Fire, Earth, Metal, Water}
}

func (s Stem) Valid() bool { return s >= 0 && s < StemCount }

func (s Stem) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stem(%d)", int(s))
	}
	return stemNames[s]
}

func (s Stem) Element() Element { return stemElements[s] }

// Yang 甲丙戊庚壬为阳干。
func (s Stem) Yang() bool { return s%2 == 0 }

func (s Stem) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("ganzhi: invalid stem %d", int(s))
	}
	return []byte(stemNames[s]), nil
}

func (s *Stem) UnmarshalText(b []byte) error {
	v, err := ParseStem(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (b Branch) Valid() bool { return b >= 0 && b < BranchCount }

func (b Branch) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchNames[b]
}

func (b Branch) Element() Element { return branchElements[b] }

// Shift 沿十二支顺行 n 位（n 可为负）。
func (b Branch) Shift(n int) Branch {
	return Branch(((int(b)+n)%BranchCount + BranchCount) % BranchCount)
}

// Opposite 六冲位，即顺行六位。
func (b Branch) Opposite() Branch { return b.Shift(6) }

func (b Branch) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("ganzhi: invalid branch %d", int(b))
	}
	return []byte(branchNames[b]), nil
}

func (b *Branch) UnmarshalText(p []byte) error {
	v, err := ParseBranch(string(p))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func (e Element) Valid() bool { return e >= 0 && e < ElementCount }

func (e Element) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementNames[e]
}

func (e Element) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("ganzhi: invalid element %d", int(e))
	}
	return []byte(elementNames[e]), nil
}

func (e *Element) UnmarshalText(b []byte) error {
	v, err := ParseElement(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// ParseStem 解析单个天干汉字。
func ParseStem(s string) (Stem, error) {
	for i, name := range stemNames {
		if name == s {
			return Stem(i), nil
		}
	}
	return 0, fmt.Errorf("ganzhi: unknown stem %q", s)
}

// ParseBranch 解析单个地支汉字。
func ParseBranch(s string) (Branch, error) {
	for i, name := range branchNames {
		if name == s {
			return Branch(i), nil
		}
	}
	return 0, fmt.Errorf("ganzhi: unknown branch %q", s)
}

// ParseElement 解析五行汉字（木火土金水）。
func ParseElement(s string) (Element, error) {
	for i, name := range elementNames {
		if name == s {
			return Element(i), nil
		}
	}
	return 0, fmt.Errorf("ganzhi: unknown element %q", s)
}

// Pair 一柱干支。
type Pair struct {
	Stem   Stem
	Branch Branch
}

func (p Pair) String() string { return p.Stem.String() + p.Branch.String() }

func (p Pair) MarshalText() ([]byte, error) {
	if !p.Stem.Valid() || !p.Branch.Valid() {
		return nil, fmt.Errorf("ganzhi: invalid pair %d/%d", int(p.Stem), int(p.Branch))
	}
	return []byte(p.String()), nil
}

func (p *Pair) UnmarshalText(b []byte) error {
	v, err := ParsePair(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParsePair 解析两字干支，如 "甲子"。
func ParsePair(s string) (Pair, error) {
	if utf8.RuneCountInString(s) != 2 {
		return Pair{}, fmt.Errorf("ganzhi: pair %q must be two characters", s)
	}
	r, size := utf8.DecodeRuneInString(s)
	stem, err := ParseStem(string(r))
	if err != nil {
		return Pair{}, err
	}
	branch, err := ParseBranch(s[size:])
	if err != nil {
		return Pair{}, err
	}
	// 六十甲子中干支阴阳必须一致
	if int(stem)%2 != int(branch)%2 {
		return Pair{}, fmt.Errorf("ganzhi: %q is not a sexagenary pair", s)
	}
	return Pair{Stem: stem, Branch: branch}, nil
}
