package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clsung/codex-log/pkg/models"
)

func testProjects() []models.Project {
	return []models.Project{
		{
			Name: "alpha",
			Sessions: []models.Session{
				{SessionID: "a1", Entries: []models.Entry{{SessionID: "a1", Timestamp: 1000, Text: "hello"}}},
				{SessionID: "a2"},
			},
		},
		{
			Name: "beta",
			Sessions: []models.Session{
				{SessionID: "b1"},
			},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func advance(t *testing.T, m tea.Model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	result, ok := m.(model)
	require.True(t, ok)
	return result
}

func TestBrowseProjectsFallsBackToSingleBucket(t *testing.T) {
	conversation := &models.Conversation{
		Sessions: []models.Session{{SessionID: "s1"}},
	}

	projects := browseProjects(conversation)
	require.Len(t, projects, 1)
	assert.Equal(t, "All Sessions", projects[0].Name)

	conversation.Projects = []models.Project{{Name: "real"}}
	projects = browseProjects(conversation)
	require.Len(t, projects, 1)
	assert.Equal(t, "real", projects[0].Name)

	assert.Empty(t, browseProjects(&models.Conversation{}))
}

func TestNavigationBetweenViews(t *testing.T) {
	m := advance(t, initialModel(testProjects()),
		tea.WindowSizeMsg{Width: 80, Height: 24})
	require.True(t, m.ready)
	assert.Equal(t, projectView, m.currentMode)

	m = advance(t, m, key("down"))
	assert.Equal(t, 1, m.projectCursor)

	// Cursor does not run past the last project.
	m = advance(t, m, key("down"))
	assert.Equal(t, 1, m.projectCursor)

	m = advance(t, m, key("up"), key("enter"))
	assert.Equal(t, sessionView, m.currentMode)
	require.NotNil(t, m.selectedProject)
	assert.Equal(t, "alpha", m.selectedProject.Name)

	m = advance(t, m, key("down"))
	assert.Equal(t, 1, m.sessionCursor)

	m = advance(t, m, key("esc"))
	assert.Equal(t, projectView, m.currentMode)
	assert.Nil(t, m.selectedProject)
	assert.Equal(t, 0, m.sessionCursor)
}

func TestViewRendersSessionEntries(t *testing.T) {
	m := advance(t, initialModel(testProjects()),
		tea.WindowSizeMsg{Width: 80, Height: 24},
		key("enter"))

	view := m.View()
	assert.Contains(t, view, "alpha")
	assert.Contains(t, view, "hello")
}

func TestQuitKeys(t *testing.T) {
	m := initialModel(testProjects())
	for _, k := range []string{"q", "ctrl+c"} {
		msg := key(k)
		if k == "ctrl+c" {
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		}
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd, "key %s should quit", k)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four", 9)
	assert.Equal(t, []string{"one two", "three", "four"}, lines)

	assert.Equal(t, []string{""}, wrapText("", 10))
	assert.Equal(t, []string{"long"}, wrapText("long", 0))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "0123456789...", truncate("0123456789abcdef", 10))
}
