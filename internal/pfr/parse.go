package pfr

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoTable is returned when a page carries no combine table.
var ErrNoTable = errors.New("combine table not found")

// DumpTablesForDebug lists tables with ids and first header row at debug level.
func DumpTablesForDebug(logger *slog.Logger, doc *goquery.Document, pageTag string) {
	if logger == nil || !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	doc.Find("table").Each(func(i int, t *goquery.Selection) {
		id, _ := t.Attr("id")
		var heads []string
		t.Find("thead tr").First().Find("th,td").Each(func(_ int, h *goquery.Selection) {
			if txt := normHeader(h.Text()); txt != "" {
				heads = append(heads, txt)
			}
		})
		logger.Debug("table", "index", i, "id", id, "class", t.AttrOr("class", ""),
			"headers", strings.Join(heads, "|"), "page", pageTag)
	})
}

// ParseCombineTable reads the combine table out of a page. Every body row is
// kept, repeated header rows included; the normalizer strips those.
func ParseCombineTable(html string, year int) (RawTable, error) {
	return ParseCombineTableWithLogger(nil, html, year)
}

// ParseCombineTableWithLogger is ParseCombineTable, dumping the page's tables
// to logger when it is enabled at debug level.
func ParseCombineTableWithLogger(logger *slog.Logger, html string, year int) (RawTable, error) {
	// PFR often comments tables
	clean := strings.ReplaceAll(html, "<!--", "")
	clean = strings.ReplaceAll(clean, "-->", "")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(clean))
	if err != nil {
		return RawTable{}, err
	}
	DumpTablesForDebug(logger, doc, "combine")

	table := findCombineTable(doc)
	if table.Length() == 0 {
		return RawTable{}, ErrNoTable
	}

	out := RawTable{Year: year}
	table.Find("thead tr").Last().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
		out.Header = append(out.Header, cleanText(cell.Text()))
	})
	if len(out.Header) == 0 {
		return RawTable{}, ErrNoTable
	}

	rows := table.Find("tbody tr")
	if rows.Length() == 0 {
		rows = table.Find("tr").Slice(1, goquery.ToEnd)
	}
	rows.Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("th,td")
		if cells.Length() == 0 {
			return
		}
		row := make([]string, 0, cells.Length())
		cells.Each(func(_ int, td *goquery.Selection) {
			row = append(row, cleanText(td.Text()))
		})
		out.Rows = append(out.Rows, row)
	})
	return out, nil
}

func hasPlayerHeader(t *goquery.Selection) bool {
	found := false
	t.Find("thead tr").Last().Find("th,td").EachWithBreak(func(_ int, c *goquery.Selection) bool {
		if normHeader(c.Text()) == "player" {
			found = true
			return false
		}
		return true
	})
	return found
}

func findCombineTable(doc *goquery.Document) *goquery.Selection {
	if t := doc.Find(`table#combine`); t.Length() > 0 {
		return t.First()
	}
	var chosen *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		if hasPlayerHeader(t) {
			chosen = t
			return false
		}
		return true
	})
	if chosen != nil {
		return chosen
	}
	return doc.Find("table").Slice(0, 0)
}
