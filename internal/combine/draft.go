package combine

import (
	"regexp"
	"strconv"
)

// picksPerRound converts (round, pick) into an overall order. Forfeited and
// compensatory picks shift the real order; not every drafted player attends
// the combine either, so this stays an approximation.
const picksPerRound = 32

// e.g. "Pittsburgh Steelers / 1st / 10th pick / 2010"
var reDrafted = regexp.MustCompile(`(?P<tm>.+) / (?P<rnd>\d+).+ / (?P<pick>\d+).+ / (?P<yr>.+)`)

// ParseDraft extracts team, round, pick and year from the draft cell.
// Text that does not match yields the zero DraftInfo (undrafted).
func ParseDraft(text string) DraftInfo {
	m := reDrafted.FindStringSubmatch(text)
	if m == nil {
		return DraftInfo{}
	}
	rnd, err := strconv.Atoi(m[reDrafted.SubexpIndex("rnd")])
	if err != nil {
		return DraftInfo{}
	}
	pick, err := strconv.Atoi(m[reDrafted.SubexpIndex("pick")])
	if err != nil {
		return DraftInfo{}
	}
	return DraftInfo{
		Drafted: true,
		Team:    m[reDrafted.SubexpIndex("tm")],
		Round:   rnd,
		Pick:    pick,
		Year:    m[reDrafted.SubexpIndex("yr")],
		Order:   DraftOrder(rnd, pick),
	}
}

// DraftOrder is pick + 32*(round-1).
func DraftOrder(round, pick int) float64 {
	return float64(pick) + float64(picksPerRound*(round-1))
}

// ParseDrafts returns a copy of players with Draft derived from DraftText.
func ParseDrafts(players []Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		p.Draft = ParseDraft(p.DraftText)
		out[i] = p
	}
	return out
}
