package filter

import (
	"fmt"
	"strings"

	"baziEngine/internal/ganzhi"
)

// Spec 命令行给出的筛选参数：不同项之间为“且”，同一项的多个值之间为“或”。零值即不筛选。
type Spec struct {
	Markers   []string
	Missing   []string
	Dominant  string
	DayMaster string
	Void      bool
}

// Criterion 把 Spec 组合成一条条件；五行或天干写错时报错。
func (s Spec) Criterion() (Criterion, error) {
	cs := []Criterion{All}

	var markers []Criterion
	for _, m := range s.Markers {
		if m = strings.TrimSpace(m); m != "" {
			markers = append(markers, HasMarker(m))
		}
	}
	if len(markers) > 0 {
		cs = append(cs, Or(markers...))
	}

	var missing []Criterion
	for _, m := range s.Missing {
		e, err := ganzhi.ParseElement(strings.TrimSpace(m))
		if err != nil {
			return nil, fmt.Errorf("filter: missing element: %w", err)
		}
		missing = append(missing, MissingElement(e))
	}
	if len(missing) > 0 {
		cs = append(cs, Or(missing...))
	}

	if d := strings.TrimSpace(s.Dominant); d != "" {
		e, err := ganzhi.ParseElement(d)
		if err != nil {
			return nil, fmt.Errorf("filter: dominant element: %w", err)
		}
		cs = append(cs, DominantElement(e))
	}
	if d := strings.TrimSpace(s.DayMaster); d != "" {
		st, err := ganzhi.ParseStem(d)
		if err != nil {
			return nil, fmt.Errorf("filter: day master: %w", err)
		}
		cs = append(cs, DayMaster(st))
	}
	if s.Void {
		cs = append(cs, HasVoid)
	}
	return And(cs...), nil
}
