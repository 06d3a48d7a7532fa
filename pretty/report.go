// Package pretty renders catalog summaries as terminal tables.
package pretty

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fwojciec/appcat"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Summary describes a catalog.
type Summary struct {
	Total           int
	WithDescription int
	WithWebsite     int

	// Platforms counts records per platform tag, most common first.
	Platforms []PlatformCount
}

// PlatformCount is the number of records listing a platform.
type PlatformCount struct {
	Platform string
	Count    int
}

// Summarize counts records, those with a description, those with an
// official website and the records per platform tag.
func Summarize(records []*appcat.Record) *Summary {
	s := &Summary{Total: len(records)}
	counts := make(map[string]int)

	for _, r := range records {
		if strings.TrimSpace(r.Description) != "" {
			s.WithDescription++
		}
		if strings.HasPrefix(r.OfficialWebsite, "http") {
			s.WithWebsite++
		}
		for _, p := range appcat.SplitPlatforms(r.Platforms) {
			counts[p]++
		}
	}

	for p, n := range counts {
		s.Platforms = append(s.Platforms, PlatformCount{Platform: p, Count: n})
	}
	sort.Slice(s.Platforms, func(i, j int) bool {
		if s.Platforms[i].Count != s.Platforms[j].Count {
			return s.Platforms[i].Count > s.Platforms[j].Count
		}
		return s.Platforms[i].Platform < s.Platforms[j].Platform
	})

	return s
}

// Render writes the summary to w as two tables.
func Render(w io.Writer, s *Summary) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Metric", "Count"})
	t.AppendRow(table.Row{"Apps", s.Total})
	t.AppendRow(table.Row{"With description", ratio(s.WithDescription, s.Total)})
	t.AppendRow(table.Row{"With website", ratio(s.WithWebsite, s.Total)})
	t.Render()

	if len(s.Platforms) == 0 {
		return
	}

	t = newTable(w)
	t.AppendHeader(table.Row{"Platform", "Apps"})
	for _, p := range s.Platforms {
		t.AppendRow(table.Row{p.Platform, p.Count})
	}
	t.Render()
}

// Rows renders an arbitrary table with header to w.
func Rows(w io.Writer, header []string, rows [][]string) {
	t := newTable(w)
	h := make(table.Row, len(header))
	for i, v := range header {
		h[i] = v
	}
	t.AppendHeader(h)
	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, v := range row {
			r[i] = v
		}
		t.AppendRow(r)
	}
	t.Render()
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func ratio(n, total int) string {
	return strconv.Itoa(n) + "/" + strconv.Itoa(total)
}
