package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/auraframes/genesis-bridge/bridge"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	symbolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err    error
	bridge *bridge.Bridge
	input  textinput.Model
	result string
	calls  int
}

func newInteractiveModel(b *bridge.Bridge) *interactiveModel {
	input := textinput.New()
	input.Placeholder = "1"
	input.CharLimit = 6
	input.Width = 8
	input.Focus()

	return &interactiveModel{
		bridge: b,
		input:  input,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.invoke()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// invoke calls the greeting the requested number of times and records the
// last result.
func (m *interactiveModel) invoke() {
	count := 1
	if v := strings.TrimSpace(m.input.Value()); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			m.err = fmt.Errorf("invalid count %q", v)
			return
		}
		count = n
	}

	ctx := context.Background()
	for i := 0; i < count; i++ {
		result, err := m.bridge.Greeting(ctx)
		if err != nil {
			m.err = err
			return
		}
		m.result = result
		m.calls++
	}
	m.err = nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("genesis-bridge console"))
	b.WriteString("\n\n")
	b.WriteString("Export: " + symbolStyle.Render(m.bridge.Symbol()))
	b.WriteString("\n\n")
	b.WriteString("Invocations: " + m.input.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.result != "" {
		b.WriteString(resultStyle.Render(fmt.Sprintf("%q", m.result)))
		b.WriteString(helpStyle.Render(fmt.Sprintf("  (%d calls so far)", m.calls)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: invoke • esc: quit"))
	b.WriteString("\n")

	return b.String()
}

func runInteractive() error {
	ctx := context.Background()

	b, err := bridge.New(ctx)
	if err != nil {
		return fmt.Errorf("create bridge: %w", err)
	}
	defer b.Close(ctx)

	_, err = tea.NewProgram(newInteractiveModel(b)).Run()
	return err
}
