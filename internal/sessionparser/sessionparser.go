// Package sessionparser rebuilds enriched sessions from per-session metadata
// files and groups them into projects.
package sessionparser

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/clsung/codex-log/internal/parser"
	"github.com/clsung/codex-log/pkg/models"
)

// metadataRecord is the first line of a session file.
type metadataRecord struct {
	ID           string     `json:"id"`
	Git          *gitRecord `json:"git"`
	Instructions string     `json:"instructions"`
}

type gitRecord struct {
	RepositoryURL string `json:"repository_url"`
	Branch        string `json:"branch"`
	CommitHash    string `json:"commit_hash"`
}

// messageRecord is the shape of a message line inside a session file.
// Lines of any other type decode into it harmlessly and are ignored.
type messageRecord struct {
	Type    string        `json:"type"`
	Content []contentItem `json:"content"`
}

type contentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

const (
	environmentMarker = "<environment_context>"
	cwdOpenTag        = "<cwd>"
	cwdCloseTag       = "</cwd>"
)

// SessionParser rebuilds sessions from a directory of session files,
// cross-referencing message entries from the flat history log through the
// injected lookup.
type SessionParser struct {
	lookup parser.EntryLookup
	log    *zap.SugaredLogger
}

// New creates a SessionParser whose entries come from the history log at
// historyPath. The path is injected by the caller; a missing file means
// sessions are reconstructed with zero entries.
func New(historyPath string, log *zap.SugaredLogger) *SessionParser {
	return NewWithLookup(parser.New(log).HistoryLookup(historyPath), log)
}

// NewWithLookup creates a SessionParser with a custom entry lookup.
func NewWithLookup(lookup parser.EntryLookup, log *zap.SugaredLogger) *SessionParser {
	return &SessionParser{lookup: lookup, log: log}
}

// ParseSessionsDirectory parses every session file under sessionsDir
// (recursively) and returns the sessions ordered by start time, grouped into
// projects. A file that cannot be parsed is skipped; the directory itself
// must exist.
func (sp *SessionParser) ParseSessionsDirectory(sessionsDir string) (*models.Conversation, error) {
	if _, err := os.Stat(sessionsDir); err != nil {
		return nil, fmt.Errorf("failed to open sessions directory: %w", err)
	}

	matches, err := doublestar.Glob(os.DirFS(sessionsDir), "**/*.jsonl")
	if err != nil {
		return nil, fmt.Errorf("failed to scan sessions directory %s: %w", sessionsDir, err)
	}
	sort.Strings(matches)

	sp.log.Infof("found %d session files", len(matches))

	var sessions []models.Session
	for _, match := range matches {
		session := sp.ParseSessionFile(filepath.Join(sessionsDir, match))
		if session != nil {
			sessions = append(sessions, *session)
		}
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime().Before(sessions[j].StartTime())
	})

	return &models.Conversation{
		Sessions: sessions,
		Projects: GroupSessionsByProject(sessions),
	}, nil
}

// ParseSessionFile parses one session file. It returns nil when the file
// yields no session: empty file, missing ID, or unreadable content. Failures
// here never abort processing of sibling files.
func (sp *SessionParser) ParseSessionFile(path string) *models.Session {
	data, err := os.ReadFile(path)
	if err != nil {
		sp.log.Warnf("failed to parse session file %s: %v", path, err)
		return nil
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	var meta metadataRecord
	if err := json.Unmarshal([]byte(lines[0]), &meta); err != nil {
		sp.log.Warnf("failed to parse session file %s: %v", path, err)
		return nil
	}
	if meta.ID == "" {
		sp.log.Warnf("no session ID in %s", path)
		return nil
	}

	var gitInfo *models.GitInfo
	if meta.Git != nil {
		gitInfo = &models.GitInfo{
			RepositoryURL: meta.Git.RepositoryURL,
			Branch:        meta.Git.Branch,
			CommitHash:    meta.Git.CommitHash,
		}
	}

	return &models.Session{
		SessionID:        meta.ID,
		Entries:          sp.lookup(meta.ID),
		WorkingDirectory: extractWorkingDirectory(lines),
		GitInfo:          gitInfo,
		Instructions:     meta.Instructions,
	}
}

// extractWorkingDirectory scans every line for an input_text payload carrying
// an environment context with a <cwd> tag, first match wins. Lines that do
// not decode are skipped; a <cwd> without a valid closing tag counts as not
// found.
func extractWorkingDirectory(lines []string) string {
	for _, line := range lines {
		var record messageRecord
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			continue
		}
		if record.Type != "message" {
			continue
		}
		for _, item := range record.Content {
			if item.Type != "input_text" {
				continue
			}
			if !strings.Contains(item.Text, environmentMarker) {
				continue
			}
			start := strings.Index(item.Text, cwdOpenTag)
			if start < 0 {
				continue
			}
			start += len(cwdOpenTag)
			end := strings.Index(item.Text, cwdCloseTag)
			if end > start {
				return item.Text[start:end]
			}
		}
	}
	return ""
}
