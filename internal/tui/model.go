package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bookmarkchat/internal/domain"
)

// Engine is the TUI-facing subset of the query agent.
type Engine interface {
	Invoke(ctx context.Context, question string, searchSpace []domain.Record) (string, []domain.Record, error)
	WorkingSetSize() int
}

// followupPhrases mark questions that should resolve against the previous
// answer's records instead of the full store.
var followupPhrases = []string{
	"most liked one",
	"the previous",
	"show more like",
	"another one",
	"the last one",
	"of these",
	"the ones above",
}

func isFollowup(question string) bool {
	q := strings.ToLower(question)
	for _, p := range followupPhrases {
		if strings.Contains(q, p) {
			return true
		}
	}
	return false
}

type turn struct {
	role string
	text string
}

// Model is the Bubble Tea model for the chat session. It owns the working
// set: the records shown in the most recent answer, replaced after every
// non-follow-up query.
type Model struct {
	engine     Engine
	input      textinput.Model
	viewport   viewport.Model
	history    []turn
	workingSet []domain.Record
	summary    string
	status     string
	ready      bool
}

// New creates a new chat model instance. The summary line is shown in the
// header until the first question.
func New(engine Engine, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about your bookmarks and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		engine:   engine,
		input:    ti,
		viewport: vp,
		summary:  summary,
		status:   "Bookmarks loaded. Ask away.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := historyBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2 // header + summary
		totalFooterLines := 1 // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderHistory())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m = m.ask(q)
				m.input.SetValue("")
				m.viewport.SetContent(m.renderHistory())
				m.viewport.GotoBottom()
				return m, nil
			}
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ask runs one question through the engine, narrowing to the working set on
// follow-up phrasing. The working set is replaced, never merged, after every
// answered question: a no-match answer clears it, so a later follow-up can
// never resolve against records from two turns ago.
func (m Model) ask(question string) Model {
	var space []domain.Record
	if isFollowup(question) && len(m.workingSet) > 0 {
		space = m.workingSet
	}
	m.history = append(m.history, turn{role: "you", text: question})
	answer, shown, err := m.engine.Invoke(context.Background(), question, space)
	if err != nil {
		m.status = "Error: " + err.Error()
		return m
	}
	m.history = append(m.history, turn{role: "bot", text: answer})
	limit := m.engine.WorkingSetSize()
	if len(shown) > limit {
		shown = shown[:limit]
	}
	m.workingSet = shown
	m.status = "Ready."
	return m
}

// View renders the TUI layout and chat history.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Bookmark Chat")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	history := historyBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + history + "\n" + input + "\n" + status
}

func (m Model) renderHistory() string {
	if len(m.history) == 0 {
		return "No questions yet."
	}
	var b strings.Builder
	for i, t := range m.history {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch t.role {
		case "you":
			b.WriteString(youStyle.Render("You: ") + t.text)
		default:
			b.WriteString(botStyle.Render("Bot: ") + t.text)
		}
	}
	return b.String()
}

var (
	historyBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	youStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	botStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
