// Package ui renders a memory-check session in the terminal. One screen: the
// posed question, Remi's last line, an answer box, and the running score.
package ui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/remivoice/remi/internal/difficulty"
	"github.com/remivoice/remi/internal/emotion"
	"github.com/remivoice/remi/internal/session"
)

type startedMsg struct {
	greeting string
	question *session.PosedQuestion
	err      error
}

type outcomeMsg struct {
	out *session.Outcome
	err error
}

// Model is the root Bubble Tea model for the play command.
type Model struct {
	engine *session.Engine
	input  textinput.Model

	width  int
	height int

	busy     bool // an answer is being graded
	tier     difficulty.Tier
	greeting string
	question *session.PosedQuestion
	lastLine string
	lastOut  *session.Outcome
	summary  *session.Summary
	err      error
}

// NewModel creates the play model around an unstarted engine.
func NewModel(engine *session.Engine) Model {
	ti := textinput.New()
	ti.Placeholder = "Say your answer..."
	ti.CharLimit = 120
	ti.Focus()

	return Model{engine: engine, input: ti}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.input.Focus(), m.start())
}

func (m Model) start() tea.Cmd {
	return func() tea.Msg {
		greeting, q, err := m.engine.Start(context.Background())
		return startedMsg{greeting: greeting, question: q, err: err}
	}
}

func (m Model) submit(answer string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.engine.Submit(context.Background(), answer)
		return outcomeMsg{out: out, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case startedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.greeting = msg.greeting
		m.question = msg.question
		m.lastLine = msg.greeting
		return m, nil

	case outcomeMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.lastOut = msg.out
		m.lastLine = msg.out.Line
		m.question = msg.out.Question
		if msg.out.Transition != nil {
			m.tier = msg.out.Transition.To
		}
		if msg.out.Finished {
			m.summary = msg.out.Summary
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if m.summary != nil {
				return m, tea.Quit
			}
			if m.busy || m.question == nil {
				return m, nil
			}
			answer := strings.TrimSpace(m.input.Value())
			if answer == "" {
				return m, nil
			}
			m.input.Reset()
			m.busy = true
			return m, m.submit(answer)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	if m.err != nil {
		return styleWrong.Render("Something went wrong: "+m.err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("Remi · Memory Check"))
	b.WriteString("\n\n")

	if m.summary != nil {
		b.WriteString(m.renderSummary())
		return b.String()
	}

	if m.question == nil {
		b.WriteString(styleDim.Render("Getting ready..."))
		return b.String()
	}

	b.WriteString(styleRemi.Render(m.lastLine))
	b.WriteString("\n\n")

	badge := styleBadge.Render(strings.ToUpper(m.question.ServedTier.String()))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		styleQuestion.Render(m.question.Text), " ", badge))
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(styleDim.Render("Thinking..."))
	} else {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(styleDim.Render("enter submit · esc quit"))
	return b.String()
}

func (m Model) renderStatus() string {
	correct := 0
	if m.lastOut != nil {
		correct = m.lastOut.CorrectCount
	}
	status := fmt.Sprintf("Score %d/%d · Tier %s", correct, session.TargetCorrect, m.tier)

	if m.lastOut != nil {
		switch {
		case m.lastOut.Mood == emotion.MoodUpset:
			// No verdict to show; the comfort line above carries it.
		case m.lastOut.Verdict == difficulty.VerdictCorrect:
			status += "  " + styleCorrect.Render("✓ correct")
		case m.lastOut.Verdict == difficulty.VerdictIncorrect:
			status += "  " + styleWrong.Render("✗ not quite")
		}
	}
	return styleDim.Render(status)
}

func (m Model) renderSummary() string {
	s := m.summary
	var b strings.Builder

	if s.Completed {
		b.WriteString(styleCorrect.Render("Session complete!"))
	} else {
		b.WriteString(styleRemi.Render("Session over."))
	}
	b.WriteString("\n\n")
	b.WriteString(styleRemi.Render(m.lastLine))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  Correct answers  %d\n", s.CorrectCount)
	fmt.Fprintf(&b, "  Total answered   %d\n", s.TotalAnswered)
	fmt.Fprintf(&b, "  Skipped          %d\n", s.SkippedCount)
	fmt.Fprintf(&b, "  Final tier       %s\n", s.FinalTier)
	b.WriteString("\n")
	b.WriteString(styleDim.Render("enter to exit"))
	return b.String()
}

// Run starts the terminal session and blocks until it ends.
func Run(engine *session.Engine) error {
	p := tea.NewProgram(NewModel(engine))
	_, err := p.Run()
	return err
}
