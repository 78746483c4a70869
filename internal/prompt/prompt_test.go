// File path: internal/prompt/prompt_test.go
package prompt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicodishanthj/lqa-insight/internal/locale"
)

func TestSystemInstructionIsDeterministic(t *testing.T) {
	for _, l := range locale.Supported() {
		assert.Equal(t, SystemInstruction(l), SystemInstruction(l), string(l))
	}
}

func TestSystemInstructionDiffersByOutputLanguage(t *testing.T) {
	en := SystemInstruction(locale.English)
	zh := SystemInstruction(locale.Chinese)

	assert.NotEqual(t, en, zh)
	assert.Contains(t, en, "in English (en-US)")
	assert.Contains(t, zh, "in Simplified Chinese (zh-CN)")
	assert.NotContains(t, en, "Simplified Chinese")

	// Only the directive line differs.
	assert.Equal(t,
		strings.Replace(en, outputLanguageDirectives[locale.English], "", 1),
		strings.Replace(zh, outputLanguageDirectives[locale.Chinese], "", 1))
}

func TestSystemInstructionCarriesRubric(t *testing.T) {
	text := SystemInstruction(locale.English)
	for _, want := range []string{
		"Impact:", "Evidence:", "Actionability:",
		"MUST be demoted to Needs Context",
		"P0 (blocking", "P1 (high priority", "P2 (deferrable",
		"False-positive filter",
		"file_name", "issue_id", "location", "source_text", "target_text", "issue_type", "ai_comment",
	} {
		assert.Contains(t, text, want)
	}
	assert.Equal(t, text, SystemInstruction(locale.Locale("fr-FR")))
}

func TestUserContentWrapsFilesInOrder(t *testing.T) {
	got := UserContent([]Source{
		{Name: "b.html", Content: "<p>second</p>"},
		{Name: "a.html", Content: "<p>first"},
	})

	want := "Analyze the following HTML reports:\n\n" +
		"--- REPORT START: b.html ---\n<p>second</p>\n--- REPORT END: b.html ---\n\n" +
		"--- REPORT START: a.html ---\n<p>first\n--- REPORT END: a.html ---\n\n"
	assert.Equal(t, want, got)
}

func TestResponseSchemaShape(t *testing.T) {
	root := ResponseSchema()
	require.Same(t, root, ResponseSchema())

	assert.Equal(t, []string{"meta", "quality_overview", "fix_list", "needs_context", "process_improvements"}, root.Required())

	fix := root.Field("fix_list").Items
	require.NotNil(t, fix)
	assert.True(t, fix.Field("dedup").Nullable)
	assert.True(t, fix.Field("missing_fields").Nullable)
	assert.NotContains(t, fix.Required(), "dedup")
	assert.Contains(t, fix.Required(), "proposed_fix")

	evidence := fix.Field("evidence")
	assert.Equal(t, []string{"file_name"}, evidence.Required())
	assert.Nil(t, root.Field("nope"))
}

func TestJSONSchemaRendering(t *testing.T) {
	doc := ResponseSchema().JSONSchema()
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "object", decoded["type"])

	props := decoded["properties"].(map[string]any)
	fixList := props["fix_list"].(map[string]any)
	assert.Equal(t, "array", fixList["type"])

	item := fixList["items"].(map[string]any)
	itemProps := item["properties"].(map[string]any)
	dedup := itemProps["dedup"].(map[string]any)
	assert.Equal(t, []any{"object", "null"}, dedup["type"])
	confidence := itemProps["confidence"].(map[string]any)
	assert.Equal(t, "number", confidence["type"])
}
