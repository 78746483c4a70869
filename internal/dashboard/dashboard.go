// File path: internal/dashboard/dashboard.go
package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/nicodishanthj/lqa-insight/internal/locale"
	"github.com/nicodishanthj/lqa-insight/internal/report"
)

// Tab names one dashboard section.
type Tab string

const (
	TabOverview     Tab = "overview"
	TabFixes        Tab = "fixes"
	TabContext      Tab = "context"
	TabImprovements Tab = "improvements"
)

var tabs = []struct {
	tab   Tab
	label string
}{
	{TabOverview, "nav_overview"},
	{TabFixes, "nav_fix_list"},
	{TabContext, "nav_needs_context"},
	{TabImprovements, "nav_improvements"},
}

// ParseTab maps a query value onto a tab, defaulting to the overview.
func ParseTab(value string) Tab {
	switch Tab(strings.ToLower(strings.TrimSpace(value))) {
	case TabFixes:
		return TabFixes
	case TabContext:
		return TabContext
	case TabImprovements:
		return TabImprovements
	}
	return TabOverview
}

type NavItem struct {
	Tab    Tab
	Label  string
	Count  int
	Badge  bool
	Active bool
}

type Card struct {
	Label string
	Value int
	Class string
}

type Bar struct {
	Name    string
	Value   int
	Percent int
	Class   string
}

// FixRow is one fix list entry with its display fallbacks applied.
type FixRow struct {
	ID            string
	Item          report.FixItem
	PriorityClass string
	Source        string
	Target        string
	Location      string
	Occurrences   int
}

type ContextCard struct {
	Item    report.NeedsContextItem
	Missing string
}

// View is everything the dashboard template renders for one tab.
type View struct {
	Locale       locale.Locale
	Tab          Tab
	Nav          []NavItem
	GeneratedOn  string
	Cards        []Card
	Summary      string
	Bars         []Bar
	TopRisks     []string
	FixCount     int
	Fixes        []FixRow
	NeedsContext []ContextCard
	Improvements []report.ProcessImprovement
}

// Build prepares the view of rep for tab. Only the sections the tab shows are
// filled in.
func Build(rep *report.AuditReport, tab Tab, loc locale.Locale) View {
	loc = loc.Or(locale.Default)
	v := View{Locale: loc, Tab: tab}
	if rep == nil {
		return v
	}
	v.GeneratedOn = FormatGenerated(rep.Meta.GeneratedAt, loc)
	v.FixCount = len(rep.FixList)
	for _, t := range tabs {
		item := NavItem{Tab: t.tab, Label: loc.T(t.label), Active: t.tab == tab}
		switch t.tab {
		case TabFixes:
			item.Count, item.Badge = len(rep.FixList), true
		case TabContext:
			item.Count = len(rep.NeedsContext)
			item.Badge = item.Count > 0
		}
		v.Nav = append(v.Nav, item)
	}

	switch tab {
	case TabFixes:
		v.Fixes = fixRows(rep.FixList, loc)
	case TabContext:
		for _, item := range rep.NeedsContext {
			v.NeedsContext = append(v.NeedsContext, ContextCard{Item: item, Missing: strings.Join(item.WhatIsMissing, ", ")})
		}
	case TabImprovements:
		v.Improvements = rep.ProcessImprovements
	default:
		overview := rep.QualityOverview
		v.Cards = []Card{
			{Label: loc.T("card_critical"), Value: int(overview.P0Count), Class: "card-p0"},
			{Label: loc.T("card_high"), Value: int(overview.P1Count), Class: "card-p1"},
			{Label: loc.T("card_context"), Value: int(overview.NeedsContextCount), Class: "card-context"},
			{Label: loc.T("card_files"), Value: len(rep.Meta.ReportFiles), Class: "card-files"},
		}
		v.Summary = overview.OverallAssessment
		v.Bars = Bars(report.CategoryCounts(rep.FixList))
		v.TopRisks = overview.TopRiskAreas
	}
	return v
}

// Bars scales category counts relative to the largest one.
func Bars(counts []report.CategoryCount) []Bar {
	peak := 0
	for _, c := range counts {
		if c.Value > peak {
			peak = c.Value
		}
	}
	out := make([]Bar, 0, len(counts))
	for i, c := range counts {
		bar := Bar{Name: c.Name, Value: c.Value, Class: "bar-even"}
		if peak > 0 {
			bar.Percent = c.Value * 100 / peak
		}
		if i%2 == 1 {
			bar.Class = "bar-odd"
		}
		out = append(out, bar)
	}
	return out
}

func fixRows(items []report.FixItem, loc locale.Locale) []FixRow {
	na := loc.T("not_available")
	orNA := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return na
		}
		return s
	}
	rows := make([]FixRow, 0, len(items))
	for i, item := range items {
		rows = append(rows, FixRow{
			ID:            fmt.Sprintf("fix-%d", i),
			Item:          item,
			PriorityClass: PriorityClass(item.Priority),
			Source:        orNA(item.Evidence.SourceText),
			Target:        orNA(item.Evidence.TargetText),
			Location:      orNA(item.Evidence.Location),
			Occurrences:   item.Occurrences(),
		})
	}
	return rows
}

// PriorityClass is the badge style for a priority.
func PriorityClass(p report.Priority) string {
	switch p {
	case report.P0:
		return "priority-p0"
	case report.P1:
		return "priority-p1"
	default:
		return "priority-other"
	}
}

var generatedLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// FormatGenerated renders the report timestamp as a short local date. Values
// that do not parse are shown unchanged.
func FormatGenerated(value string, loc locale.Locale) string {
	value = strings.TrimSpace(value)
	for _, layout := range generatedLayouts {
		ts, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		if loc == locale.Chinese {
			return ts.Format("2006/1/2")
		}
		return ts.Format("1/2/2006")
	}
	return value
}
