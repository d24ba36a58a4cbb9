// Package ui is the terminal chat client: a Bubble Tea program that
// feeds each submitted line through the tutor service and renders the
// growing transcript.
package ui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/avetrov/readmentor/internal/llm"
	"github.com/avetrov/readmentor/internal/tutor"
)

const inputCharLimit = 500

// replyMsg carries the tutor's response back into the update loop.
type replyMsg struct {
	reply tutor.Reply
	err   error
}

// ChatModel is the root Bubble Tea model for the chat screen.
type ChatModel struct {
	svc       *tutor.Service
	sessionID string

	input   textinput.Model
	history []llm.Message
	lines   []string

	thinking bool
	width    int
	height   int
}

// NewChat creates the chat screen bound to one session.
func NewChat(svc *tutor.Service, sessionID string) ChatModel {
	ti := textinput.New()
	ti.Placeholder = "Type a message — try \"let's practice\""
	ti.CharLimit = inputCharLimit
	ti.Focus()

	m := ChatModel{
		svc:       svc,
		sessionID: sessionID,
		input:     ti,
	}
	m.appendTutor(svc.Greeting())
	return m
}

func (m ChatModel) Init() tea.Cmd {
	return m.input.Focus()
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(msg.Width - 4)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m.submit()
		}

	case replyMsg:
		m.thinking = false
		if msg.err != nil {
			m.lines = append(m.lines, styleError.Render("something went wrong: "+msg.err.Error()))
			return m, nil
		}
		m.appendTutor(msg.reply.Text)
		m.history = append(m.history, llm.Message{Role: llm.RoleAssistant, Content: msg.reply.Text})
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ChatModel) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.thinking {
		return m, nil
	}
	m.input.Reset()

	m.lines = append(m.lines, "", styleUserLabel.Render("You: ")+styleBody.Render(text))
	history := append([]llm.Message(nil), m.history...)
	m.history = append(m.history, llm.Message{Role: llm.RoleUser, Content: text})
	m.thinking = true

	svc, sessionID := m.svc, m.sessionID
	return m, func() tea.Msg {
		reply, err := svc.HandleMessage(context.Background(), sessionID, text, history)
		return replyMsg{reply: reply, err: err}
	}
}

func (m *ChatModel) appendTutor(text string) {
	m.lines = append(m.lines, "", styleTutorLabel.Render("Alex: ")+styleBody.Render(text))
}

func (m ChatModel) View() tea.View {
	v := tea.NewView("")

	var b strings.Builder
	b.WriteString(styleTitle.Render("readmentor — IELTS Reading practice") + "\n")

	transcript := strings.Join(m.lines, "\n")
	if m.width > 0 {
		transcript = lipgloss.NewStyle().Width(m.width).Render(transcript)
	}

	// Keep only what fits above the input line.
	if m.height > 0 {
		rows := strings.Split(transcript, "\n")
		budget := m.height - 4
		if budget > 0 && len(rows) > budget {
			rows = rows[len(rows)-budget:]
		}
		transcript = strings.Join(rows, "\n")
	}
	b.WriteString(transcript + "\n\n")

	if m.thinking {
		b.WriteString(styleHint.Render("Alex is thinking...") + "\n")
	} else {
		b.WriteString(m.input.View() + "\n")
	}
	b.WriteString(styleHint.Render("Enter to send · Esc to quit"))

	v.SetContent(b.String())
	return v
}

// Run starts the chat program.
func Run(svc *tutor.Service, sessionID string) error {
	p := tea.NewProgram(NewChat(svc, sessionID))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
