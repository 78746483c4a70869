// File path: internal/report/report.go
package report

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Priority is the severity tier the model assigns to a finding. Values outside
// the known tiers are kept as returned.
type Priority string

const (
	P0 Priority = "P0" // blocking or high risk
	P1 Priority = "P1" // high priority, not blocking
	P2 Priority = "P2" // deferrable
)

// AuditReport is the structured answer of one audit call. It is built once
// from a successful response and not modified afterwards.
type AuditReport struct {
	Meta                Meta                 `json:"meta"`
	QualityOverview     QualityOverview      `json:"quality_overview"`
	FixList             []FixItem            `json:"fix_list" validate:"required,dive"`
	NeedsContext        []NeedsContextItem   `json:"needs_context" validate:"required,dive"`
	ProcessImprovements []ProcessImprovement `json:"process_improvements" validate:"required,dive"`
}

type Meta struct {
	SupportedLanguages []string     `json:"supported_languages"`
	DetectedLanguages  []string     `json:"detected_languages"`
	ReportFiles        []FileSummary `json:"report_files" validate:"dive"`
	GeneratedAt        string       `json:"generated_at"`
}

type FileSummary struct {
	FileName    string `json:"file_name"`
	Language    string `json:"language"`
	IssuesFound Count  `json:"issues_found" validate:"gte=0"`
}

type QualityOverview struct {
	OverallAssessment string   `json:"overall_assessment"`
	P0Count           Count    `json:"p0_count" validate:"gte=0"`
	P1Count           Count    `json:"p1_count" validate:"gte=0"`
	NeedsContextCount Count    `json:"needs_context_count" validate:"gte=0"`
	TopRiskAreas      []string `json:"top_risk_areas"`
}

type FixItem struct {
	Priority          Priority `json:"priority"`
	Language          string   `json:"language"`
	Category          string   `json:"category"`
	Summary           string   `json:"summary" validate:"required"`
	Evidence          Evidence `json:"evidence"`
	WhyItMatters      string   `json:"why_it_matters"`
	ProposedFix       string   `json:"proposed_fix" validate:"required"`
	VerificationSteps []string `json:"verification_steps"`
	Confidence        float64  `json:"confidence" validate:"gte=0,lte=1"`
	Dedup             *Dedup   `json:"dedup,omitempty"`
	MissingFields     []string `json:"missing_fields,omitempty"`
}

// Evidence points back into the uploaded report. Everything except the file
// name is optional.
type Evidence struct {
	FileName   string `json:"file_name"`
	IssueID    string `json:"issue_id,omitempty"`
	Location   string `json:"location,omitempty"`
	SourceText string `json:"source_text,omitempty"`
	TargetText string `json:"target_text,omitempty"`
	RuleHit    string `json:"rule_hit,omitempty"`
}

// Dedup describes the group a finding was merged into.
type Dedup struct {
	GroupID        string     `json:"group_id"`
	Occurrences    Count      `json:"occurrences" validate:"gte=0"`
	OtherLocations []Location `json:"other_locations,omitempty"`
}

type Location struct {
	FileName string `json:"file_name"`
	Location string `json:"location"`
}

type NeedsContextItem struct {
	Language          string   `json:"language"`
	Category          string   `json:"category"`
	Summary           string   `json:"summary"`
	WhatIsMissing     []string `json:"what_is_missing"`
	RiskIfWrong       string   `json:"risk_if_wrong"`
	SuggestedNextStep string   `json:"suggested_next_step"`
}

type ProcessImprovement struct {
	Area            string `json:"area"`
	Recommendation  string `json:"recommendation"`
	ExpectedBenefit string `json:"expected_benefit"`
	Example         string `json:"example"`
}

// Count is a non-negative tally. The response schema only knows a generic
// number type, so integral floats such as 3.0 are accepted too. Values beyond
// the 32-bit range are rejected.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*c = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("count: %w", err)
	}
	if f != math.Trunc(f) {
		return fmt.Errorf("count: %s is not a whole number", raw)
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return fmt.Errorf("count: %s is out of range", raw)
	}
	*c = Count(f)
	return nil
}

// Occurrences is the dedup occurrence count, 1 when the item was not merged.
func (f FixItem) Occurrences() int {
	if f.Dedup == nil || f.Dedup.Occurrences <= 0 {
		return 1
	}
	return int(f.Dedup.Occurrences)
}

// CategoryCount is one bar of the category chart.
type CategoryCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// CategoryCounts counts fix list entries per category, in order of first
// occurrence.
func CategoryCounts(items []FixItem) []CategoryCount {
	index := make(map[string]int)
	var out []CategoryCount
	for _, item := range items {
		pos, ok := index[item.Category]
		if !ok {
			index[item.Category] = len(out)
			out = append(out, CategoryCount{Name: item.Category, Value: 1})
			continue
		}
		out[pos].Value++
	}
	return out
}

// DropPriority removes fix list entries with the given priority and returns
// how many were removed.
func (r *AuditReport) DropPriority(p Priority) int {
	if r == nil {
		return 0
	}
	kept := r.FixList[:0]
	removed := 0
	for _, item := range r.FixList {
		if item.Priority == p {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	r.FixList = kept
	return removed
}
