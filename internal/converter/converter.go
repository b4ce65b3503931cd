// Package converter wires the parsers and renderer into the two conversion
// entry points exposed by the CLI.
package converter

import (
	"go.uber.org/zap"

	"github.com/clsung/codex-log/internal/parser"
	"github.com/clsung/codex-log/internal/render"
	"github.com/clsung/codex-log/internal/sessionparser"
)

// Converter converts Codex logs to HTML reports.
type Converter struct {
	parser        *parser.Parser
	sessionParser *sessionparser.SessionParser
	renderer      *render.Renderer
	log           *zap.SugaredLogger
}

// New creates a Converter. historyPath is the flat log consulted when
// reconstructing sessions from metadata files.
func New(historyPath string, log *zap.SugaredLogger) *Converter {
	return &Converter{
		parser:        parser.New(log),
		sessionParser: sessionparser.New(historyPath, log),
		renderer:      render.New(),
		log:           log,
	}
}

// Convert parses a history.jsonl file and renders the session report.
func (c *Converter) Convert(inputPath, outputPath string) error {
	c.log.Infof("parsing history log: %s", inputPath)
	conversation, err := c.parser.ParseFile(inputPath)
	if err != nil {
		return err
	}

	c.log.Infof("found %d sessions with %d total entries", len(conversation.Sessions), conversation.TotalEntries())

	c.log.Infof("rendering HTML: %s", outputPath)
	if err := c.renderer.RenderToFile(conversation, outputPath, render.TemplateConversation); err != nil {
		return err
	}
	c.log.Infof("HTML report generated: %s", outputPath)
	return nil
}

// ConvertSessions parses a directory of session files and renders the
// project report when grouping produced projects.
func (c *Converter) ConvertSessions(sessionsDir, outputPath string) error {
	c.log.Infof("parsing sessions from: %s", sessionsDir)
	conversation, err := c.sessionParser.ParseSessionsDirectory(sessionsDir)
	if err != nil {
		return err
	}

	c.log.Infof("found %d sessions with %d total entries", len(conversation.Sessions), conversation.TotalEntries())
	if conversation.HasProjects() {
		c.log.Infof("organized into %d projects", len(conversation.Projects))
	}

	c.log.Infof("rendering HTML: %s", outputPath)
	if err := c.renderer.RenderToFile(conversation, outputPath, render.TemplateFor(conversation)); err != nil {
		return err
	}
	c.log.Infof("HTML report generated: %s", outputPath)
	return nil
}
