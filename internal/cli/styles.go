// File path: internal/cli/styles.go
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nicodishanthj/lqa-insight/internal/dashboard"
	"github.com/nicodishanthj/lqa-insight/internal/locale"
	"github.com/nicodishanthj/lqa-insight/internal/report"
)

// Color palette.
var (
	colorRed    = lipgloss.Color("#ff5555")
	colorOrange = lipgloss.Color("#ffb86c")
	colorYellow = lipgloss.Color("#f1fa8c")
	colorBlue   = lipgloss.Color("#8be9fd")
	colorPurple = lipgloss.Color("#bd93f9")
	colorDim    = lipgloss.Color("#6272a4")
	colorBorder = lipgloss.Color("#44475a")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPurple)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue).
			MarginTop(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	barStyle = lipgloss.NewStyle().
			Foreground(colorBlue)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRed)
)

const barWidth = 24

func priorityStyle(p report.Priority) lipgloss.Style {
	switch p {
	case report.P0:
		return lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	case report.P1:
		return lipgloss.NewStyle().Bold(true).Foreground(colorOrange)
	default:
		return lipgloss.NewStyle().Foreground(colorYellow)
	}
}

// renderSummary is the terminal rendition of the overview tab followed by the
// fix list headlines.
func renderSummary(rep *report.AuditReport, loc locale.Locale) string {
	view := dashboard.Build(rep, dashboard.TabOverview, loc)
	var b strings.Builder

	b.WriteString(titleStyle.Render(loc.T("app_name")))
	if view.GeneratedOn != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %s %s", loc.T("generated_on"), view.GeneratedOn)))
	}
	b.WriteString("\n")

	cards := make([]string, 0, len(view.Cards))
	for _, card := range view.Cards {
		cards = append(cards, cardStyle.Render(fmt.Sprintf("%s\n%d", card.Label, card.Value)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n")

	if view.Summary != "" {
		b.WriteString(sectionStyle.Render(loc.T("title_exec_summary")))
		b.WriteString("\n")
		b.WriteString(view.Summary)
		b.WriteString("\n")
	}

	if len(view.Bars) > 0 {
		b.WriteString(sectionStyle.Render(loc.T("title_issues_category")))
		b.WriteString("\n")
		for _, bar := range view.Bars {
			filled := bar.Percent * barWidth / 100
			if filled == 0 && bar.Value > 0 {
				filled = 1
			}
			fmt.Fprintf(&b, "%-24s %s %d\n", bar.Name, barStyle.Render(strings.Repeat("█", filled)), bar.Value)
		}
	}

	if len(view.TopRisks) > 0 {
		b.WriteString(sectionStyle.Render(loc.T("title_top_risk")))
		b.WriteString("\n")
		for _, risk := range view.TopRisks {
			b.WriteString("  • " + risk + "\n")
		}
	}

	if len(rep.FixList) > 0 {
		b.WriteString(sectionStyle.Render(fmt.Sprintf("%s (%d)", loc.T("nav_fix_list"), len(rep.FixList))))
		b.WriteString("\n")
		for _, item := range rep.FixList {
			fmt.Fprintf(&b, "  %s [%s] %s\n", priorityStyle(item.Priority).Render(string(item.Priority)), item.Language, item.Summary)
		}
	}

	if len(rep.NeedsContext) > 0 {
		b.WriteString(sectionStyle.Render(fmt.Sprintf("%s (%d)", loc.T("nav_needs_context"), len(rep.NeedsContext))))
		b.WriteString("\n")
		for _, item := range rep.NeedsContext {
			fmt.Fprintf(&b, "  [%s] %s\n", item.Language, item.Summary)
		}
	}
	return b.String()
}

func renderError(loc locale.Locale, message string) string {
	return errorStyle.Render(loc.T("error_prefix")+": ") + message
}
