package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clsung/codex-log/pkg/models"
)

func sampleConversation() *models.Conversation {
	return &models.Conversation{
		Sessions: []models.Session{
			{
				SessionID: "session-001",
				Entries: []models.Entry{
					{SessionID: "session-001", Timestamp: 1694025600000, Text: "help me parse a CSV"},
				},
				WorkingDirectory: "/home/user/projects/foo",
			},
		},
	}
}

func TestTemplateFor(t *testing.T) {
	conversation := sampleConversation()
	assert.Equal(t, TemplateConversation, TemplateFor(conversation))

	conversation.Projects = []models.Project{{Name: "foo", Sessions: conversation.Sessions}}
	assert.Equal(t, TemplateProjects, TemplateFor(conversation))
}

func TestRenderConversation(t *testing.T) {
	html, err := New().RenderConversation(sampleConversation(), TemplateConversation)
	require.NoError(t, err)

	assert.Contains(t, html, "session-001")
	assert.Contains(t, html, "help me parse a CSV")
	assert.Contains(t, html, "/home/user/projects/foo")
	assert.Contains(t, html, "1 sessions")
}

func TestRenderEscapesMessageBodies(t *testing.T) {
	conversation := sampleConversation()
	conversation.Sessions[0].Entries[0].Text = `<script>alert("x")</script>`

	html, err := New().RenderConversation(conversation, TemplateConversation)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderProjects(t *testing.T) {
	conversation := sampleConversation()
	conversation.Projects = []models.Project{
		{
			Name:          "awesome-project",
			RepositoryURL: "https://github.com/user/awesome-project.git",
			Sessions:      conversation.Sessions,
		},
	}

	html, err := New().RenderConversation(conversation, TemplateProjects)
	require.NoError(t, err)

	assert.Contains(t, html, "awesome-project")
	assert.Contains(t, html, "https://github.com/user/awesome-project.git")
	assert.Contains(t, html, "session-001")
}

func TestRenderToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.html")
	require.NoError(t, New().RenderToFile(sampleConversation(), path, TemplateConversation))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := New().RenderConversation(sampleConversation(), "bogus")
	require.Error(t, err)
}
