package converter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clsung/codex-log/internal/logging"
)

func TestConvertHistoryFile(t *testing.T) {
	dir := t.TempDir()
	history := filepath.Join(dir, "history.jsonl")
	require.NoError(t, os.WriteFile(history, []byte(
		`{"session_id":"a","ts":5,"text":"answer"}`+"\n"+
			`{"session_id":"b","ts":1,"text":"question"}`+"\n",
	), 0o644))

	output := filepath.Join(dir, "report.html")
	conv := New(history, logging.NewNop())
	require.NoError(t, conv.Convert(history, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "answer")
	assert.Contains(t, html, "question")
	assert.Contains(t, html, "2 sessions")
}

func TestConvertMissingInput(t *testing.T) {
	dir := t.TempDir()
	conv := New(filepath.Join(dir, "history.jsonl"), logging.NewNop())
	err := conv.Convert(filepath.Join(dir, "absent.jsonl"), filepath.Join(dir, "out.html"))
	require.Error(t, err)
}

func TestConvertSessionsDirectory(t *testing.T) {
	dir := t.TempDir()

	history := filepath.Join(dir, "history.jsonl")
	require.NoError(t, os.WriteFile(history, []byte(
		`{"session_id":"s1","ts":1000,"text":"hello"}`+"\n",
	), 0o644))

	sessionsDir := filepath.Join(dir, "sessions")
	require.NoError(t, os.MkdirAll(filepath.Join(sessionsDir, "2023"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(sessionsDir, "2023", "s1.jsonl"),
		[]byte(`{"id":"s1","git":{"repository_url":"https://github.com/user/demo.git"}}`+"\n"),
		0o644))

	output := filepath.Join(dir, "projects.html")
	conv := New(history, logging.NewNop())
	require.NoError(t, conv.ConvertSessions(sessionsDir, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "demo")
	assert.Contains(t, html, "hello")
	assert.Contains(t, html, "Projects")
}

func TestConvertSessionsMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	conv := New(filepath.Join(dir, "history.jsonl"), logging.NewNop())
	err := conv.ConvertSessions(filepath.Join(dir, "absent"), filepath.Join(dir, "out.html"))
	require.Error(t, err)
}
