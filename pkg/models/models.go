package models

import (
	"path/filepath"
	"strings"
	"time"
)

// UnknownProject is the sentinel bucket for sessions with no usable origin.
const UnknownProject = "Unknown Project"

// Entry is a single record from the Codex history log.
type Entry struct {
	SessionID string
	Timestamp int64 // milliseconds since epoch
	Text      string
}

// Time converts the millisecond timestamp to local wall-clock time.
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// GitInfo is the version-control origin recorded in a session file.
// Empty fields mean the session file did not carry that value.
type GitInfo struct {
	RepositoryURL string
	Branch        string
	CommitHash    string
}

// ProjectName extracts the project name from the repository URL.
// Works for both git@github.com:user/repo.git and https://github.com/user/repo.git forms.
func (g GitInfo) ProjectName() string {
	if g.RepositoryURL == "" {
		return UnknownProject
	}
	url := strings.TrimSuffix(g.RepositoryURL, ".git")
	parts := strings.Split(url, "/")
	return parts[len(parts)-1]
}

// Session is a group of entries that share a session ID, plus the
// metadata recovered from the per-session file when available.
type Session struct {
	SessionID        string
	Entries          []Entry
	WorkingDirectory string
	GitInfo          *GitInfo
	Instructions     string
}

// StartTime returns the time of the earliest entry, or now for an empty session.
func (s Session) StartTime() time.Time {
	if len(s.Entries) == 0 {
		return time.Now()
	}
	min := s.Entries[0].Time()
	for _, entry := range s.Entries[1:] {
		if t := entry.Time(); t.Before(min) {
			min = t
		}
	}
	return min
}

// EndTime returns the time of the latest entry, or now for an empty session.
func (s Session) EndTime() time.Time {
	if len(s.Entries) == 0 {
		return time.Now()
	}
	max := s.Entries[0].Time()
	for _, entry := range s.Entries[1:] {
		if t := entry.Time(); t.After(max) {
			max = t
		}
	}
	return max
}

// ProjectName derives a display name: git origin first, then the working
// directory basename, then the unknown sentinel.
func (s Session) ProjectName() string {
	if s.GitInfo != nil {
		if name := s.GitInfo.ProjectName(); name != UnknownProject {
			return name
		}
	}
	if s.WorkingDirectory != "" {
		return filepath.Base(s.WorkingDirectory)
	}
	return UnknownProject
}

// Project groups sessions that share an origin key.
type Project struct {
	Name             string
	RepositoryURL    string
	Sessions         []Session
	WorkingDirectory string
}

// TotalEntries sums the entry counts of all sessions in this project.
func (p Project) TotalEntries() int {
	total := 0
	for _, session := range p.Sessions {
		total += len(session.Entries)
	}
	return total
}

// DateRange returns the earliest start and latest end across all sessions.
func (p Project) DateRange() (time.Time, time.Time) {
	if len(p.Sessions) == 0 {
		now := time.Now()
		return now, now
	}
	start := p.Sessions[0].StartTime()
	end := p.Sessions[0].EndTime()
	for _, session := range p.Sessions[1:] {
		if t := session.StartTime(); t.Before(start) {
			start = t
		}
		if t := session.EndTime(); t.After(end) {
			end = t
		}
	}
	return start, end
}

// StartTime returns the start of the project's date range.
func (p Project) StartTime() time.Time {
	start, _ := p.DateRange()
	return start
}

// EndTime returns the end of the project's date range.
func (p Project) EndTime() time.Time {
	_, end := p.DateRange()
	return end
}

// Conversation is the full report model handed to the renderer.
type Conversation struct {
	Sessions []Session
	Projects []Project
}

// TotalEntries sums the entry counts of all sessions.
func (c Conversation) TotalEntries() int {
	total := 0
	for _, session := range c.Sessions {
		total += len(session.Entries)
	}
	return total
}

// HasProjects reports whether project grouping was performed.
func (c Conversation) HasProjects() bool {
	return len(c.Projects) > 0
}
