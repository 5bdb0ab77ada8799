// Package geo 离线地名库：出生地名称 → 经度，供真太阳时修正使用。
package geo

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

//go:embed places.json
var embedded []byte

// ErrPlaceNotFound 地名库中查不到该地名。
var ErrPlaceNotFound = errors.New("geo: place not found")

// Place 一条地名记录，经度东经为正。
type Place struct {
	Name      string   `json:"name"`
	Longitude float64  `json:"lng"`
	Latitude  float64  `json:"lat"`
	Aliases   []string `json:"aliases,omitempty"`
}

// Gazetteer 只读地名库，构建后可并发查询。
type Gazetteer struct {
	places []Place
	index  map[string]int // 名称与别名 → places 下标
}

var (
	defaultOnce sync.Once
	defaultGaz  *Gazetteer
)

// Default 内置地名库。内置数据解析失败属于程序错误。
func Default() *Gazetteer {
	defaultOnce.Do(func() {
		g, err := Parse(embedded)
		if err != nil {
			panic(err)
		}
		defaultGaz = g
	})
	return defaultGaz
}

// Load 从文件读取地名库，格式同内置 places.json。
func Load(path string) (*Gazetteer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("geo: read %s: %w", path, err)
	}
	return Parse(b)
}

// Parse 解析 {"places":[{"name","lng","lat","aliases"}]}；无名称或经度越界的条目跳过。
func Parse(body []byte) (*Gazetteer, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("geo: invalid json")
	}
	arr := gjson.GetBytes(body, "places")
	if !arr.Exists() || !arr.IsArray() {
		return nil, fmt.Errorf("geo: no places array")
	}
	g := &Gazetteer{index: make(map[string]int)}
	for _, v := range arr.Array() {
		name := strings.TrimSpace(v.Get("name").String())
		lng := v.Get("lng")
		if name == "" || !lng.Exists() || lng.Float() < -180 || lng.Float() > 180 {
			continue
		}
		p := Place{Name: name, Longitude: lng.Float(), Latitude: v.Get("lat").Float()}
		for _, a := range v.Get("aliases").Array() {
			if s := strings.TrimSpace(a.String()); s != "" {
				p.Aliases = append(p.Aliases, s)
			}
		}
		g.add(p)
	}
	if len(g.places) == 0 {
		return nil, fmt.Errorf("geo: empty gazetteer")
	}
	return g, nil
}

// add 同名先到先得。
func (g *Gazetteer) add(p Place) {
	i := len(g.places)
	g.places = append(g.places, p)
	for _, k := range append([]string{p.Name}, p.Aliases...) {
		k = normalize(k)
		if _, dup := g.index[k]; !dup {
			g.index[k] = i
		}
	}
}

// Lookup 依次按 名称/别名 全等、去掉行政后缀后全等、包含的最长名称 匹配，
// 如 "北京市朝阳区" → 北京。等长时取库中靠前者。
func (g *Gazetteer) Lookup(place string) (Place, error) {
	q := normalize(place)
	if q == "" {
		return Place{}, fmt.Errorf("%w: empty name", ErrPlaceNotFound)
	}
	if i, ok := g.index[q]; ok {
		return g.places[i], nil
	}
	if i, ok := g.index[trimSuffix(q)]; ok {
		return g.places[i], nil
	}

	best, bestLen := -1, 0
	for k, i := range g.index {
		n := utf8.RuneCountInString(k)
		if n < 2 || !strings.Contains(q, k) {
			continue
		}
		if n > bestLen || (n == bestLen && i < best) {
			best, bestLen = i, n
		}
	}
	if best < 0 {
		return Place{}, fmt.Errorf("%w: %q", ErrPlaceNotFound, place)
	}
	return g.places[best], nil
}

// Longitude 地名 → 经度。
func (g *Gazetteer) Longitude(place string) (float64, error) {
	p, err := g.Lookup(place)
	if err != nil {
		return 0, err
	}
	return p.Longitude, nil
}

// Places 返回全部记录副本（库中顺序）。
func (g *Gazetteer) Places() []Place {
	out := make([]Place, len(g.places))
	for i, p := range g.places {
		p.Aliases = append([]string(nil), p.Aliases...)
		out[i] = p
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

var adminSuffixes = []string{"特别行政区", "自治区", "市", "省", "区", "县"}

func trimSuffix(s string) string {
	for _, suf := range adminSuffixes {
		if t := strings.TrimSuffix(s, suf); t != s && t != "" {
			return t
		}
	}
	return s
}
