// File path: internal/report/report_test.go
package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "report.json"))
	require.NoError(t, err)
	return data
}

func TestDecodeFixtureRoundTrips(t *testing.T) {
	raw := loadFixture(t)

	rep, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, rep.FixList, 3)
	assert.Equal(t, P0, rep.FixList[0].Priority)
	assert.Equal(t, Count(2), rep.FixList[0].Dedup.Occurrences)
	assert.Equal(t, "2026-10-17T09:30:00Z", rep.Meta.GeneratedAt)

	encoded, err := json.Marshal(rep)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(encoded))
}

func TestDecodeRejectsEmptyAndMalformedBodies(t *testing.T) {
	_, err := Decode(nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Decode([]byte("   \n"))
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Decode([]byte("not json"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeReportsEveryShapeProblem(t *testing.T) {
	body := `{
		"quality_overview": {"overall_assessment": "ok"},
		"fix_list": [
			{"priority": "P3", "summary": "", "proposed_fix": "x", "confidence": 1.5}
		],
		"needs_context": []
	}`

	_, err := Decode([]byte(body))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Problems, "fix_list[0].summary is required")
	assert.Contains(t, verr.Problems, "process_improvements is required")
	assert.NotContains(t, err.Error(), "priority")
	assert.Contains(t, err.Error(), "fix_list[0].confidence must be lte 1")
}

func TestCountAcceptsIntegralFloats(t *testing.T) {
	var c struct {
		N Count `json:"n"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"n": 3.0}`), &c))
	assert.Equal(t, Count(3), c.N)

	require.NoError(t, json.Unmarshal([]byte(`{"n": null}`), &c))
	assert.Equal(t, Count(0), c.N)

	assert.Error(t, json.Unmarshal([]byte(`{"n": 2.5}`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"n": "two"}`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"n": 1e300}`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"n": -1e12}`), &c))
}

func TestCategoryCountsKeepsFirstOccurrenceOrder(t *testing.T) {
	items := []FixItem{{Category: "Terminology"}, {Category: "UI"}, {Category: "Terminology"}}

	got := CategoryCounts(items)

	assert.Equal(t, []CategoryCount{{Name: "Terminology", Value: 2}, {Name: "UI", Value: 1}}, got)
	assert.Empty(t, CategoryCounts(nil))
}

func TestOccurrencesDefaultsToOne(t *testing.T) {
	assert.Equal(t, 1, FixItem{}.Occurrences())
	assert.Equal(t, 1, FixItem{Dedup: &Dedup{}}.Occurrences())
	assert.Equal(t, 4, FixItem{Dedup: &Dedup{Occurrences: 4}}.Occurrences())
}

func TestDropPriority(t *testing.T) {
	rep := &AuditReport{FixList: []FixItem{
		{Priority: P0, Summary: "a"},
		{Priority: P2, Summary: "b"},
		{Priority: P1, Summary: "c"},
		{Priority: P2, Summary: "d"},
	}}

	removed := rep.DropPriority(P2)

	assert.Equal(t, 2, removed)
	require.Len(t, rep.FixList, 2)
	assert.Equal(t, "a", rep.FixList[0].Summary)
	assert.Equal(t, "c", rep.FixList[1].Summary)

	var nilReport *AuditReport
	assert.Zero(t, nilReport.DropPriority(P2))
}

func TestDecodeKeepsBlankTextAndUnknownPriorities(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal(loadFixture(t), &doc))
	doc["quality_overview"].(map[string]any)["overall_assessment"] = ""
	doc["fix_list"].([]any)[1].(map[string]any)["priority"] = "p1"
	doc["needs_context"].([]any)[0].(map[string]any)["summary"] = ""
	doc["process_improvements"].([]any)[0].(map[string]any)["recommendation"] = ""
	body, err := json.Marshal(doc)
	require.NoError(t, err)

	rep, err := Decode(body)
	require.NoError(t, err)
	assert.Empty(t, rep.QualityOverview.OverallAssessment)
	assert.Equal(t, Priority("p1"), rep.FixList[1].Priority)
	assert.Empty(t, rep.NeedsContext[0].Summary)
	assert.Empty(t, rep.ProcessImprovements[0].Recommendation)
	assert.Len(t, rep.FixList, 3)
}
