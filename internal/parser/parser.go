// Package parser reconstructs sessions from the flat Codex history log.
package parser

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/clsung/codex-log/pkg/models"
)

// decodeStatus classifies the outcome of decoding one log line.
type decodeStatus int

const (
	decodeOK decodeStatus = iota
	decodeSkip
	decodeMalformed
	decodeMissingField
)

// decodeResult carries the classification plus context for diagnostics.
type decodeResult struct {
	status decodeStatus
	field  string // set for decodeMissingField
	err    error  // set for decodeMalformed
}

// Parser turns a history.jsonl file into a Conversation. Diagnostics for
// recoverable failures go to the injected logger; only a missing input file
// is treated as fatal.
type Parser struct {
	log *zap.SugaredLogger
}

// New creates a Parser that reports recoverable failures to log.
func New(log *zap.SugaredLogger) *Parser {
	return &Parser{log: log}
}

// ParseFile parses a history.jsonl file into sessions ordered by start time.
func (p *Parser) ParseFile(path string) (*models.Conversation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history log: %w", err)
	}
	defer file.Close()

	entries, err := p.parseEntries(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read history log %s: %w", path, err)
	}

	return &models.Conversation{Sessions: BuildSessions(entries)}, nil
}

// parseEntries scans the stream line by line. A bad line never stops the
// scan; it is logged and skipped.
func (p *Parser) parseEntries(r io.Reader) ([]models.Entry, error) {
	var entries []models.Entry

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 4*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		entry, result := decodeEntry(scanner.Bytes())
		switch result.status {
		case decodeOK:
			entries = append(entries, entry)
		case decodeSkip:
		case decodeMalformed:
			p.log.Warnf("failed to parse line %d: %v", lineNum, result.err)
		case decodeMissingField:
			p.log.Warnf("missing required field %q in entry at line %d", result.field, lineNum)
		}
	}

	return entries, scanner.Err()
}

// decodeEntry decodes a single line of the history log. Blank lines are
// skipped silently; everything else either yields an entry or a classified
// failure.
func decodeEntry(line []byte) (models.Entry, decodeResult) {
	if isBlank(line) {
		return models.Entry{}, decodeResult{status: decodeSkip}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(line, &raw); err != nil {
		return models.Entry{}, decodeResult{status: decodeMalformed, err: err}
	}

	var entry models.Entry
	if !decodeField(raw, "session_id", &entry.SessionID) {
		return models.Entry{}, decodeResult{status: decodeMissingField, field: "session_id"}
	}
	if !decodeField(raw, "ts", &entry.Timestamp) {
		return models.Entry{}, decodeResult{status: decodeMissingField, field: "ts"}
	}
	if !decodeField(raw, "text", &entry.Text) {
		return models.Entry{}, decodeResult{status: decodeMissingField, field: "text"}
	}
	return entry, decodeResult{status: decodeOK}
}

// decodeField extracts a required field. A field that is absent, null, or of
// the wrong type counts as missing.
func decodeField(raw map[string]json.RawMessage, name string, dst interface{}) bool {
	value, ok := raw[name]
	if !ok || string(value) == "null" {
		return false
	}
	return json.Unmarshal(value, dst) == nil
}

func isBlank(line []byte) bool {
	for _, b := range line {
		switch b {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}

// BuildSessions groups entries by session ID and orders everything
// deterministically: entries ascending by timestamp within a session (stable,
// so input order breaks ties), sessions ascending by start time.
func BuildSessions(entries []models.Entry) []models.Session {
	grouped := make(map[string][]models.Entry)
	for _, entry := range entries {
		grouped[entry.SessionID] = append(grouped[entry.SessionID], entry)
	}

	sessions := make([]models.Session, 0, len(grouped))
	for sessionID, sessionEntries := range grouped {
		sort.SliceStable(sessionEntries, func(i, j int) bool {
			return sessionEntries[i].Timestamp < sessionEntries[j].Timestamp
		})
		sessions = append(sessions, models.Session{SessionID: sessionID, Entries: sessionEntries})
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime().Before(sessions[j].StartTime())
	})

	return sessions
}

// EntryLookup resolves the flat-log entries recorded for a session ID,
// sorted ascending by timestamp.
type EntryLookup func(sessionID string) []models.Entry

// HistoryLookup returns an EntryLookup backed by a history.jsonl file.
// The file is scanned once on first use; a missing file yields zero entries
// for every session rather than an error.
func (p *Parser) HistoryLookup(path string) EntryLookup {
	var index map[string][]models.Entry

	return func(sessionID string) []models.Entry {
		if index == nil {
			index = p.buildIndex(path)
		}
		return index[sessionID]
	}
}

func (p *Parser) buildIndex(path string) map[string][]models.Entry {
	index := make(map[string][]models.Entry)

	file, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			p.log.Warnf("failed to read history log %s: %v", path, err)
		}
		return index
	}
	defer file.Close()

	entries, err := p.parseEntries(file)
	if err != nil {
		p.log.Warnf("failed to read history log %s: %v", path, err)
		return index
	}

	for _, entry := range entries {
		index[entry.SessionID] = append(index[entry.SessionID], entry)
	}
	for _, sessionEntries := range index {
		sort.SliceStable(sessionEntries, func(i, j int) bool {
			return sessionEntries[i].Timestamp < sessionEntries[j].Timestamp
		})
	}
	return index
}
