// File path: internal/dashboard/dashboard_test.go
package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicodishanthj/lqa-insight/internal/locale"
	"github.com/nicodishanthj/lqa-insight/internal/report"
)

func sample() *report.AuditReport {
	return &report.AuditReport{
		Meta: report.Meta{
			GeneratedAt: "2026-10-17T09:30:00Z",
			ReportFiles: []report.FileSummary{{FileName: "de.html"}, {FileName: "fr.html"}},
		},
		QualityOverview: report.QualityOverview{
			OverallAssessment: "Mostly fine.",
			P0Count:           1,
			P1Count:           2,
			NeedsContextCount: 1,
			TopRiskAreas:      []string{"Checkout"},
		},
		FixList: []report.FixItem{
			{Priority: report.P0, Category: "Terminology", Summary: "a", ProposedFix: "x", Evidence: report.Evidence{SourceText: "Save"}},
			{Priority: report.P1, Category: "UI", Summary: "b", ProposedFix: "y", Dedup: &report.Dedup{Occurrences: 4}},
			{Priority: report.P2, Category: "Terminology", Summary: "c", ProposedFix: "z"},
		},
		NeedsContext: []report.NeedsContextItem{{Summary: "n", WhatIsMissing: []string{"screenshot", "width"}}},
		ProcessImprovements: []report.ProcessImprovement{{Area: "Termbase", Recommendation: "r"}},
	}
}

func TestParseTab(t *testing.T) {
	assert.Equal(t, TabFixes, ParseTab("fixes"))
	assert.Equal(t, TabContext, ParseTab(" Context "))
	assert.Equal(t, TabImprovements, ParseTab("improvements"))
	assert.Equal(t, TabOverview, ParseTab(""))
	assert.Equal(t, TabOverview, ParseTab("bogus"))
}

func TestBuildOverview(t *testing.T) {
	v := Build(sample(), TabOverview, locale.English)

	require.Len(t, v.Cards, 4)
	assert.Equal(t, []int{1, 2, 1, 2}, []int{v.Cards[0].Value, v.Cards[1].Value, v.Cards[2].Value, v.Cards[3].Value})
	assert.Equal(t, "Mostly fine.", v.Summary)
	assert.Equal(t, "10/17/2026", v.GeneratedOn)
	assert.Equal(t, []Bar{
		{Name: "Terminology", Value: 2, Percent: 100, Class: "bar-even"},
		{Name: "UI", Value: 1, Percent: 50, Class: "bar-odd"},
	}, v.Bars)
	assert.Nil(t, v.Fixes)

	require.Len(t, v.Nav, 4)
	assert.True(t, v.Nav[0].Active)
	assert.Equal(t, 3, v.Nav[1].Count)
	assert.True(t, v.Nav[2].Badge)
}

func TestBuildFixRows(t *testing.T) {
	v := Build(sample(), TabFixes, locale.English)
	require.Len(t, v.Fixes, 3)

	first := v.Fixes[0]
	assert.Equal(t, "fix-0", first.ID)
	assert.Equal(t, "priority-p0", first.PriorityClass)
	assert.Equal(t, "Save", first.Source)
	assert.Equal(t, locale.English.T("not_available"), first.Target)
	assert.Equal(t, 1, first.Occurrences)
	assert.Equal(t, 4, v.Fixes[1].Occurrences)
	assert.Equal(t, "priority-other", v.Fixes[2].PriorityClass)
	assert.Empty(t, v.Cards)
}

func TestBuildContextAndImprovements(t *testing.T) {
	v := Build(sample(), TabContext, locale.Chinese)
	require.Len(t, v.NeedsContext, 1)
	assert.Equal(t, "screenshot, width", v.NeedsContext[0].Missing)
	assert.Equal(t, "2026/10/17", v.GeneratedOn)
	assert.Equal(t, locale.Chinese.T("nav_overview"), v.Nav[0].Label)

	v = Build(sample(), TabImprovements, locale.English)
	assert.Len(t, v.Improvements, 1)
}

func TestBuildWithoutReport(t *testing.T) {
	v := Build(nil, TabFixes, locale.Locale("xx"))
	assert.Equal(t, locale.English, v.Locale)
	assert.Empty(t, v.Nav)
}

func TestBarsWithoutCounts(t *testing.T) {
	assert.Empty(t, Bars(nil))
}

func TestFormatGenerated(t *testing.T) {
	assert.Equal(t, "1/5/2026", FormatGenerated("2026-01-05", locale.English))
	assert.Equal(t, "yesterday", FormatGenerated("yesterday", locale.English))
}
