package combine

import "sort"

// Group returns a copy of players with Group set from the detailed position.
func Group(players []Player, tabs Tables) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		p.Group = tabs.GroupOf(p.Pos)
		out[i] = p
	}
	return out
}

// Positions lists the distinct detailed codes, sorted.
func Positions(players []Player) []string {
	set := make(map[string]struct{})
	for _, p := range players {
		set[p.Pos] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
