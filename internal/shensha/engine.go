package shensha

// Evaluate 对一柱跑完整张规则表，返回按名称去重后的神煞列表（规则表顺序）。
// 贵人类规则命中的地支若落旬空则不取。
func Evaluate(ref Reference, t Target) []string {
	out := make([]string, 0, 8)
	seen := make(map[string]struct{}, 8)
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	for _, r := range registry {
		if !r.Match(&ref, t) {
			continue
		}
		if r.Noble && inVoid(&ref, t) {
			continue
		}
		add(r.Name)
	}
	for _, f := range families {
		for _, name := range f.Expand(&ref, t) {
			add(name)
		}
	}
	return out
}
