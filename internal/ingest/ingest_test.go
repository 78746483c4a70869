// File path: internal/ingest/ingest_test.go
package ingest

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsReportFile(t *testing.T) {
	assert.True(t, IsReportFile("checkout_de.html"))
	assert.True(t, IsReportFile("legacy.htm"))
	assert.False(t, IsReportFile("notes.txt"))
	assert.False(t, IsReportFile("report.html.zip"))
	assert.False(t, IsReportFile("REPORT.HTML"))
}

func TestNewFileAssignsUniqueIDs(t *testing.T) {
	a := NewFile("a.html", "<p>héllo</p>")
	b := NewFile("a.html", "<p>héllo</p>")

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, StatusPending, a.Status)
	assert.Equal(t, int64(len("<p>héllo</p>")), a.Size)
	assert.Equal(t, "0.0 KB", a.SizeKB())
}

func multipartHeaders(t *testing.T, files map[string]string, order []string) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, name := range order {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["files"]
}

func TestReadUploadsFiltersAndKeepsOrder(t *testing.T) {
	files := map[string]string{
		"b.html":    "<html>b</html>",
		"notes.txt": "skip me",
		"a.htm":     "<html>a</html>",
		"c.html":    "<not closed",
	}
	headers := multipartHeaders(t, files, []string{"b.html", "notes.txt", "a.htm", "c.html"})

	batch, err := ReadUploads(context.Background(), headers)
	require.NoError(t, err)

	require.Len(t, batch.Files, 3)
	assert.Equal(t, "b.html", batch.Files[0].Name)
	assert.Equal(t, "a.htm", batch.Files[1].Name)
	assert.Equal(t, "c.html", batch.Files[2].Name)
	assert.Equal(t, "<not closed", batch.Files[2].Content)
	assert.Equal(t, []string{"notes.txt"}, batch.Skipped)
}

func TestReadPaths(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "report.html")
	require.NoError(t, os.WriteFile(htmlPath, []byte("<h1>LQA</h1>"), 0o644))
	txtPath := filepath.Join(dir, "readme.md")
	require.NoError(t, os.WriteFile(txtPath, []byte("# x"), 0o644))

	batch, err := ReadPaths(context.Background(), []string{txtPath, htmlPath})
	require.NoError(t, err)
	require.Len(t, batch.Files, 1)
	assert.Equal(t, "report.html", batch.Files[0].Name)
	assert.Equal(t, "<h1>LQA</h1>", batch.Files[0].Content)
	assert.Equal(t, []string{"readme.md"}, batch.Skipped)

	_, err = ReadPaths(context.Background(), []string{filepath.Join(dir, "missing.html")})
	assert.Error(t, err)
}

func TestCollectionAddRemoveClear(t *testing.T) {
	var c Collection
	first := NewFile("same.html", "x")
	second := NewFile("same.html", "x")
	third := NewFile("other.html", "y")

	c.Add(first, second)
	c.Add(third)
	require.Equal(t, 3, c.Len())

	assert.True(t, c.Remove(second.ID))
	assert.False(t, c.Remove("unknown"))
	files := c.Files()
	require.Len(t, files, 2)
	assert.Equal(t, first.ID, files[0].ID)
	assert.Equal(t, third.ID, files[1].ID)

	files[0].Name = "mutated.html"
	assert.Equal(t, "same.html", c.Files()[0].Name)

	c.Clear()
	assert.Zero(t, c.Len())
	assert.Nil(t, c.Files())
}
