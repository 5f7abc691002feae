package pfr

import (
	"regexp"
	"strings"
)

const ua = "Mozilla/5.0 (compatible; PFRCombineBot/1.0; +https://example.com/bot)"

const baseWWW = "https://www.pro-football-reference.com"

// RawTable is one year's combine table exactly as the page lays it out:
// header labels from the header row and the text of every body row,
// including the header rows PFR repeats every few dozen players.
type RawTable struct {
	Year   int
	Header []string
	Rows   [][]string
}

// Column returns the index of the header label, matched case- and
// whitespace-insensitively, or -1.
func (t RawTable) Column(label string) int {
	want := normHeader(label)
	for i, h := range t.Header {
		if normHeader(h) == want {
			return i
		}
	}
	return -1
}

// Cell returns the trimmed text at row/col, or "" when the row is short.
func (t RawTable) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}

var wsRe = regexp.MustCompile(`\s+`)

func cleanText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", " ")
	return wsRe.ReplaceAllString(s, " ")
}

func normHeader(s string) string {
	s = strings.ToLower(cleanText(s))
	s = strings.ReplaceAll(s, ".", "")
	return strings.TrimSpace(s)
}
