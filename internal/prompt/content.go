// File path: internal/prompt/content.go
package prompt

import "strings"

const contentPreamble = "Analyze the following HTML reports:\n\n"

// Source is one report handed to the model.
type Source struct {
	Name    string
	Content string
}

// UserContent concatenates the sources in order, each wrapped in start and end
// markers naming it. Content is passed through verbatim.
func UserContent(sources []Source) string {
	var b strings.Builder
	b.WriteString(contentPreamble)
	for _, src := range sources {
		b.WriteString(StartMarker(src.Name))
		b.WriteByte('\n')
		b.WriteString(src.Content)
		b.WriteByte('\n')
		b.WriteString(EndMarker(src.Name))
		b.WriteString("\n\n")
	}
	return b.String()
}

func StartMarker(name string) string {
	return "--- REPORT START: " + name + " ---"
}

func EndMarker(name string) string {
	return "--- REPORT END: " + name + " ---"
}
