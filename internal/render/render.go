// Package render turns a Conversation into a static HTML report.
package render

import (
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/clsung/codex-log/pkg/models"
)

// Template names selectable by the caller.
const (
	TemplateConversation = "conversation"
	TemplateProjects     = "projects"
)

// TemplateFor picks the right template for a conversation: the project
// report when grouping was performed, the flat session report otherwise.
func TemplateFor(conversation *models.Conversation) string {
	if conversation.HasProjects() {
		return TemplateProjects
	}
	return TemplateConversation
}

// Renderer renders conversations with the embedded templates.
type Renderer struct {
	templates *template.Template
}

// New returns a Renderer with both report templates parsed.
func New() *Renderer {
	funcs := template.FuncMap{
		"formatTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
		"formatDate": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
	}

	templates := template.New("").Funcs(funcs)
	template.Must(templates.New("session").Parse(sessionTemplate))
	template.Must(templates.New(TemplateConversation).Parse(conversationTemplate))
	template.Must(templates.New(TemplateProjects).Parse(projectsTemplate))

	return &Renderer{templates: templates}
}

// RenderConversation renders the named template to a string.
func (r *Renderer) RenderConversation(conversation *models.Conversation, templateName string) (string, error) {
	var builder strings.Builder
	if err := r.templates.ExecuteTemplate(&builder, templateName, conversation); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", templateName, err)
	}
	return builder.String(), nil
}

// RenderToFile renders the named template and writes it to outputPath.
func (r *Renderer) RenderToFile(conversation *models.Conversation, outputPath, templateName string) error {
	html, err := r.RenderConversation(conversation, templateName)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", outputPath, err)
	}
	return nil
}
