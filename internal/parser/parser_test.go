package parser

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clsung/codex-log/internal/logging"
	"github.com/clsung/codex-log/pkg/models"
)

func writeHistory(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.jsonl")
	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFileOrdersSessionsAndEntries(t *testing.T) {
	path := writeHistory(t,
		`{"session_id":"a","ts":5,"text":"x"}`,
		`{"session_id":"b","ts":1,"text":"y"}`,
		`{"session_id":"a","ts":2,"text":"z"}`,
	)

	conversation, err := New(logging.NewNop()).ParseFile(path)
	require.NoError(t, err)
	require.Len(t, conversation.Sessions, 2)

	// Session b starts earlier, so it comes first.
	assert.Equal(t, "b", conversation.Sessions[0].SessionID)
	assert.Equal(t, "a", conversation.Sessions[1].SessionID)

	entries := conversation.Sessions[1].Entries
	require.Len(t, entries, 2)
	assert.Equal(t, "z", entries[0].Text)
	assert.Equal(t, "x", entries[1].Text)
}

func TestParseFileSkipsBadLines(t *testing.T) {
	path := writeHistory(t,
		`{"session_id":"a","ts":1,"text":"ok"}`,
		`not json at all`,
		``,
		`   `,
		`{"session_id":"a","text":"no timestamp"}`,
		`{"ts":2,"text":"no session"}`,
		`{"session_id":"a","ts":3}`,
		`{"session_id":"a","ts":4,"text":"also ok"}`,
	)

	conversation, err := New(logging.NewNop()).ParseFile(path)
	require.NoError(t, err)
	require.Len(t, conversation.Sessions, 1)
	assert.Equal(t, 2, conversation.TotalEntries())
}

func TestParseFileEmpty(t *testing.T) {
	path := writeHistory(t)

	conversation, err := New(logging.NewNop()).ParseFile(path)
	require.NoError(t, err)
	assert.Empty(t, conversation.Sessions)
	assert.Equal(t, 0, conversation.TotalEntries())
}

func TestParseFileMissingIsFatal(t *testing.T) {
	_, err := New(logging.NewNop()).ParseFile(filepath.Join(t.TempDir(), "nope.jsonl"))
	require.Error(t, err)
}

func TestParseFileIdempotent(t *testing.T) {
	path := writeHistory(t,
		`{"session_id":"a","ts":5,"text":"x"}`,
		`{"session_id":"b","ts":1,"text":"y"}`,
		`{"session_id":"a","ts":2,"text":"z"}`,
	)

	p := New(logging.NewNop())
	first, err := p.ParseFile(path)
	require.NoError(t, err)
	second, err := p.ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGroupingIsOrderIndependent(t *testing.T) {
	lines := []string{
		`{"session_id":"a","ts":5,"text":"a5"}`,
		`{"session_id":"b","ts":1,"text":"b1"}`,
		`{"session_id":"a","ts":2,"text":"a2"}`,
		`{"session_id":"c","ts":9,"text":"c9"}`,
		`{"session_id":"b","ts":3,"text":"b3"}`,
	}

	reference, err := New(logging.NewNop()).ParseFile(writeHistory(t, lines...))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5; i++ {
		shuffled := make([]string, len(lines))
		copy(shuffled, lines)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		conversation, err := New(logging.NewNop()).ParseFile(writeHistory(t, shuffled...))
		require.NoError(t, err)
		assert.Equal(t, reference, conversation)
	}
}

func TestBuildSessionsStableOnEqualTimestamps(t *testing.T) {
	entries := []models.Entry{
		{SessionID: "a", Timestamp: 7, Text: "first"},
		{SessionID: "a", Timestamp: 7, Text: "second"},
		{SessionID: "a", Timestamp: 7, Text: "third"},
	}

	sessions := BuildSessions(entries)
	require.Len(t, sessions, 1)
	assert.Equal(t, "first", sessions[0].Entries[0].Text)
	assert.Equal(t, "second", sessions[0].Entries[1].Text)
	assert.Equal(t, "third", sessions[0].Entries[2].Text)
}

func TestDecodeEntry(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		status decodeStatus
		field  string
	}{
		{"valid", `{"session_id":"s","ts":1,"text":"t"}`, decodeOK, ""},
		{"blank", "   ", decodeSkip, ""},
		{"malformed", `{"session_id":`, decodeMalformed, ""},
		{"missing session_id", `{"ts":1,"text":"t"}`, decodeMissingField, "session_id"},
		{"missing ts", `{"session_id":"s","text":"t"}`, decodeMissingField, "ts"},
		{"missing text", `{"session_id":"s","ts":1}`, decodeMissingField, "text"},
		{"null field", `{"session_id":null,"ts":1,"text":"t"}`, decodeMissingField, "session_id"},
		{"wrong type", `{"session_id":"s","ts":"soon","text":"t"}`, decodeMissingField, "ts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, result := decodeEntry([]byte(tt.line))
			assert.Equal(t, tt.status, result.status)
			assert.Equal(t, tt.field, result.field)
			if tt.status == decodeOK {
				assert.Equal(t, "s", entry.SessionID)
			}
		})
	}
}

func TestHistoryLookup(t *testing.T) {
	path := writeHistory(t,
		`{"session_id":"a","ts":5,"text":"late"}`,
		`{"session_id":"b","ts":1,"text":"other"}`,
		`{"session_id":"a","ts":2,"text":"early"}`,
	)

	lookup := New(logging.NewNop()).HistoryLookup(path)

	entries := lookup("a")
	require.Len(t, entries, 2)
	assert.Equal(t, "early", entries[0].Text)
	assert.Equal(t, "late", entries[1].Text)

	assert.Empty(t, lookup("unknown"))
}

func TestHistoryLookupMissingFile(t *testing.T) {
	lookup := New(logging.NewNop()).HistoryLookup(filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.Empty(t, lookup("a"))
}
