// Package tui implements the interactive browser over a parsed conversation.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/clsung/codex-log/pkg/models"
)

type viewMode int

const (
	projectView viewMode = iota
	sessionView
)

type model struct {
	projects        []models.Project
	currentMode     viewMode
	projectCursor   int
	sessionCursor   int
	selectedProject *models.Project
	viewport        viewport.Model
	leftViewport    viewport.Model // sessions list in split view
	rightViewport   viewport.Model // entry preview in split view
	ready           bool
	width           int
	height          int
}

// browseProjects flattens a conversation for browsing: the grouped projects
// when available, otherwise one bucket holding every session.
func browseProjects(conversation *models.Conversation) []models.Project {
	if conversation.HasProjects() {
		return conversation.Projects
	}
	if len(conversation.Sessions) == 0 {
		return nil
	}
	return []models.Project{{Name: "All Sessions", Sessions: conversation.Sessions}}
}

func initialModel(projects []models.Project) model {
	return model{
		projects:    projects,
		currentMode: projectView,
	}
}

func (m model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		leftWidth := msg.Width/2 - 1
		rightWidth := msg.Width - leftWidth - 1
		viewHeight := msg.Height - 3

		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewHeight)
			m.leftViewport = viewport.New(leftWidth, viewHeight)
			m.rightViewport = viewport.New(rightWidth, viewHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewHeight
			m.leftViewport.Width = leftWidth
			m.leftViewport.Height = viewHeight
			m.rightViewport.Width = rightWidth
			m.rightViewport.Height = viewHeight
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.currentMode == projectView {
				if m.projectCursor > 0 {
					m.projectCursor--
					m.updateViewport()
				}
			} else if m.sessionCursor > 0 {
				m.sessionCursor--
				m.updateViewport()
			}

		case "down", "j":
			if m.currentMode == projectView {
				if m.projectCursor < len(m.projects)-1 {
					m.projectCursor++
					m.updateViewport()
				}
			} else if m.selectedProject != nil && m.sessionCursor < len(m.selectedProject.Sessions)-1 {
				m.sessionCursor++
				m.updateViewport()
			}

		case "enter":
			if m.currentMode == projectView && m.projectCursor < len(m.projects) {
				m.selectedProject = &m.projects[m.projectCursor]
				m.currentMode = sessionView
				m.sessionCursor = 0
				m.updateViewport()
			}

		case "esc", "backspace":
			if m.currentMode == sessionView {
				m.currentMode = projectView
				m.selectedProject = nil
				m.sessionCursor = 0
				m.updateViewport()
			}
		}
	}

	if m.currentMode == projectView {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		var leftCmd, rightCmd tea.Cmd
		m.leftViewport, leftCmd = m.leftViewport.Update(msg)
		m.rightViewport, rightCmd = m.rightViewport.Update(msg)
		cmds = append(cmds, leftCmd, rightCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) updateViewport() {
	if !m.ready {
		return
	}
	if m.currentMode == projectView {
		m.viewport.SetContent(m.renderProjects())
	} else {
		m.leftViewport.SetContent(m.renderSessionsList())
		m.rightViewport.SetContent(m.renderEntries())
	}
}

func (m model) renderProjects() string {
	var s strings.Builder

	for i, project := range m.projects {
		cursor := "  "
		if i == m.projectCursor {
			cursor = "> "
		}

		style := lipgloss.NewStyle()
		if i == m.projectCursor {
			style = style.Foreground(lipgloss.Color("212")).Bold(true)
		}

		start, end := project.DateRange()
		line := fmt.Sprintf("%s%s (%d sessions, %d entries) %s - %s",
			cursor,
			project.Name,
			len(project.Sessions),
			project.TotalEntries(),
			start.Format("2006-01-02"),
			end.Format("2006-01-02"))

		s.WriteString(style.Render(line) + "\n")
	}

	return s.String()
}

func (m model) renderSessionsList() string {
	if m.selectedProject == nil {
		return "No project selected"
	}

	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	s.WriteString(headerStyle.Render("Sessions") + "\n")
	s.WriteString(strings.Repeat("─", max(m.leftViewport.Width-2, 10)) + "\n\n")

	for i, session := range m.selectedProject.Sessions {
		cursor := "  "
		if i == m.sessionCursor {
			cursor = "> "
		}

		dateStyle := lipgloss.NewStyle()
		if i == m.sessionCursor {
			dateStyle = dateStyle.Foreground(lipgloss.Color("212")).Bold(true)
		} else {
			dateStyle = dateStyle.Foreground(lipgloss.Color("252"))
		}

		line := fmt.Sprintf("%s%s (%d entries)",
			cursor,
			session.StartTime().Format("01-02 15:04"),
			len(session.Entries))
		s.WriteString(dateStyle.Render(line) + "\n")

		idStyle := lipgloss.NewStyle()
		if i == m.sessionCursor {
			idStyle = idStyle.Foreground(lipgloss.Color("245"))
		} else {
			idStyle = idStyle.Foreground(lipgloss.Color("238"))
		}
		s.WriteString(idStyle.Render("  "+truncate(session.SessionID, 15)) + "\n")

		if i < len(m.selectedProject.Sessions)-1 {
			s.WriteString("\n")
		}
	}

	return s.String()
}

func (m model) renderEntries() string {
	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	s.WriteString(headerStyle.Render("Entries") + "\n")
	s.WriteString(strings.Repeat("─", max(m.rightViewport.Width-2, 10)) + "\n\n")

	if m.selectedProject == nil || m.sessionCursor >= len(m.selectedProject.Sessions) {
		return s.String()
	}
	session := m.selectedProject.Sessions[m.sessionCursor]

	if len(session.Entries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
		s.WriteString(emptyStyle.Render("No entries recorded for this session"))
		return s.String()
	}

	timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	wrapWidth := max(m.rightViewport.Width-5, 20)
	for i, entry := range session.Entries {
		s.WriteString(timeStyle.Render(entry.Time().Format("15:04:05")) + " ")

		for j, line := range wrapText(entry.Text, wrapWidth) {
			if j > 0 {
				s.WriteString("         ")
			}
			s.WriteString(textStyle.Render(line) + "\n")
		}

		if i < len(session.Entries)-1 {
			s.WriteString("\n")
		}
	}

	return s.String()
}

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	if m.currentMode == projectView {
		return fmt.Sprintf("%s\n%s\n%s", header, m.viewport.View(), footer)
	}
	return fmt.Sprintf("%s\n%s\n%s", header, m.renderSplitView(), footer)
}

func (m model) renderSplitView() string {
	leftStyle := lipgloss.NewStyle().
		Width(m.leftViewport.Width).
		Height(m.leftViewport.Height)
	rightStyle := lipgloss.NewStyle().
		Width(m.rightViewport.Width).
		Height(m.rightViewport.Height)
	dividerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("238")).
		Height(m.leftViewport.Height)

	divider := strings.Builder{}
	for i := 0; i < m.leftViewport.Height; i++ {
		divider.WriteString("│")
		if i < m.leftViewport.Height-1 {
			divider.WriteString("\n")
		}
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftStyle.Render(m.leftViewport.View()),
		dividerStyle.Render(divider.String()),
		rightStyle.Render(m.rightViewport.View()),
	)
}

func (m model) renderHeader() string {
	title := "Codex Log - Projects"
	if m.currentMode == sessionView && m.selectedProject != nil {
		title = fmt.Sprintf("Codex Log - %s", m.selectedProject.Name)
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("63"))

	return style.Render(title)
}

func (m model) renderFooter() string {
	info := "↑/↓: navigate • enter: select"
	if m.currentMode == sessionView {
		info += " • esc: back"
	}
	info += " • q: quit"

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	return style.Render(info)
}

// wrapText wraps text to fit within the specified width.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	currentLine := words[0]
	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) > width {
			lines = append(lines, currentLine)
			currentLine = word
		} else {
			currentLine += " " + word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Browse opens the interactive browser over a parsed conversation.
func Browse(conversation *models.Conversation) error {
	projects := browseProjects(conversation)
	if len(projects) == 0 {
		return fmt.Errorf("nothing to browse: no sessions found")
	}

	p := tea.NewProgram(
		initialModel(projects),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
