package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chrishsmith/sourcify-sub003/internal/cli"
	"github.com/chrishsmith/sourcify-sub003/internal/model"
)

// Model walks the user through the open questions one at a time and
// collects an answer per attribute. Questions with options render as a
// cursor list; questions without options, and the "type a value" escape
// hatch, use free-form input.
type Model struct {
	questions []model.DecisionPoint
	keys      KeyMap
	input     textinput.Model

	index   int
	cursor  int
	typing  bool
	answers map[string]string

	done    bool
	aborted bool
}

func newModel(questions []model.DecisionPoint) Model {
	input := textinput.New()
	input.Placeholder = "value"
	input.CharLimit = 64

	m := Model{
		questions: questions,
		keys:      DefaultKeyMap(),
		input:     input,
		answers:   make(map[string]string),
	}
	m.typing = m.currentHasNoOptions()
	if m.typing {
		m.input.Focus()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.typing {
		return m.updateTyping(keyMsg)
	}

	q := m.current()
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.aborted = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(q.Options)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Custom):
		m.typing = true
		m.input.SetValue("")
		m.input.Focus()

	case key.Matches(keyMsg, m.keys.Select):
		return m.record(q.Options[m.cursor].Value)
	}

	return m, nil
}

func (m Model) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.aborted = true
		return m, tea.Quit

	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			return m, nil
		}
		return m.record(value)

	case tea.KeyEsc:
		// Back to the option list, unless this question never had one.
		if !m.currentHasNoOptions() {
			m.typing = false
			m.input.Blur()
			return m, nil
		}
		m.aborted = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// record stores the answer for the current question and advances.
func (m Model) record(value string) (tea.Model, tea.Cmd) {
	m.answers[m.current().Attribute] = value
	m.index++
	m.cursor = 0
	m.input.SetValue("")

	if m.index >= len(m.questions) {
		m.done = true
		return m, tea.Quit
	}

	m.typing = m.currentHasNoOptions()
	if m.typing {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done || m.aborted {
		return ""
	}

	q := m.current()
	var b strings.Builder

	b.WriteString(cli.SubtleStyle.Render(fmt.Sprintf("Question %d of %d", m.index+1, len(m.questions))))
	b.WriteString("\n")
	b.WriteString(cli.TitleStyle.Render(q.Question))
	b.WriteString("\n\n")

	if m.typing {
		b.WriteString("  " + m.input.View() + "\n\n")
		b.WriteString(cli.SubtleStyle.Render("  enter to confirm"))
		if !m.currentHasNoOptions() {
			b.WriteString(cli.SubtleStyle.Render(" · esc back to choices"))
		}
		b.WriteString("\n")
		return b.String()
	}

	for i, opt := range q.Options {
		marker := "  "
		label := opt.Label
		if i == m.cursor {
			marker = cli.BoldStyle.Render("→ ")
			label = cli.BoldStyle.Render(opt.Label)
		}
		b.WriteString(fmt.Sprintf("  %s%s", marker, label))
		if opt.HtsImpact != "" {
			b.WriteString("  " + cli.SubtleStyle.Render(opt.HtsImpact))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render("  ↑/↓ move · enter select · c type a value · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) current() model.DecisionPoint {
	return m.questions[m.index]
}

func (m Model) currentHasNoOptions() bool {
	return m.index < len(m.questions) && len(m.questions[m.index].Options) == 0
}
