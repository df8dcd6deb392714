package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"yo/internal/ast"
	"yo/internal/scope"
	"yo/internal/source"
	"yo/internal/typeresolve"
	"yo/internal/types"
)

// inspectCmd launches an interactive REPL that resolves a hand-typed type
// descriptor (e.g. "i32", "*Point", "&&u8") against a scratch Type Interner
// seeded with one demo struct. It is a live driver of internal/typeresolve
// without requiring a parser for the full language — grounded on
// surge/internal/ui/progress.go's Bubble Tea model shape, swapping its
// event-channel Update loop for a github.com/charmbracelet/bubbles/textinput
// prompt.
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Interactively resolve type descriptors",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := tea.NewProgram(newInspectModel())
		_, err := p.Run()
		return err
	},
}

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

type inspectModel struct {
	input    textinput.Model
	interner *types.Interner
	env      *scope.Env
	history  []string
}

func newInspectModel() *inspectModel {
	ti := textinput.New()
	ti.Placeholder = "*Point"
	ti.Prompt = "yo> "
	ti.Focus()

	in := types.NewInterner()
	env := scope.NewEnv()
	pointID, _ := in.MakeStruct("Point", []types.Member{
		{Name: "x", Type: in.Builtins().Int32},
		{Name: "y", Type: in.Builtins().Int32},
	})
	env.InsertNominal("Point", pointID)

	return &inspectModel{
		input:    ti,
		interner: in,
		env:      env,
		history:  []string{"seeded nominal type: Point { x: i32, y: i32 }"},
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.resolveLine(strings.TrimSpace(m.input.Value()))
			m.input.SetValue("")
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *inspectModel) View() string {
	var b strings.Builder
	for _, line := range m.history {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n(ctrl-c or esc to quit)\n")
	return b.String()
}

// resolveLine parses line as a pointer/reference-prefixed nominal type name
// and resolves it via typeresolve.Resolve, appending the outcome to history.
func (m *inspectModel) resolveLine(line string) {
	if line == "" {
		return
	}
	desc, err := parseTypeDesc(line)
	if err != nil {
		m.history = append(m.history, promptStyle.Render("yo> ")+line)
		m.history = append(m.history, errorStyle.Render(err.Error()))
		return
	}
	id, diagErr := typeresolve.Resolve(desc, m.interner, m.env, nil, false)
	m.history = append(m.history, promptStyle.Render("yo> ")+line)
	if diagErr != nil {
		m.history = append(m.history, errorStyle.Render(diagErr.Message))
		return
	}
	m.history = append(m.history, resultStyle.Render(fmt.Sprintf("=> %s", m.interner.Str(id))))
}

// parseTypeDesc parses a small subset of yo's type syntax: any number of
// leading '*' (pointer) or '&' (reference) sigils around a bare nominal
// name. It exists only to drive this REPL — the module never parses full
// source (SPEC_FULL.md §1 Non-goals).
func parseTypeDesc(s string) (*ast.TypeDesc, error) {
	span := source.Span{}
	i := 0
	var sigils []byte
	for i < len(s) && (s[i] == '*' || s[i] == '&') {
		sigils = append(sigils, s[i])
		i++
	}
	name := strings.TrimSpace(s[i:])
	if name == "" {
		return nil, fmt.Errorf("expected a type name after sigils in %q", s)
	}
	desc := ast.Nominal(name, span)
	for i := len(sigils) - 1; i >= 0; i-- {
		if sigils[i] == '*' {
			desc = ast.PointerTo(desc, span)
		} else {
			desc = ast.ReferenceTo(desc, span)
		}
	}
	return desc, nil
}
