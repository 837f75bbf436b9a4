package prompt

import (
	"io"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Choice is the user's answer to ChooseStrategy.
type Choice int

const (
	ChoiceCancel Choice = iota
	ChoiceOverwrite
	ChoiceAlongside
)

func (c Choice) String() string {
	switch c {
	case ChoiceOverwrite:
		return "overwrite"
	case ChoiceAlongside:
		return "alongside"
	default:
		return "cancel"
	}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

type strategyModel struct {
	prompt string
	choice Choice
	done   bool
}

func (m strategyModel) Init() tea.Cmd {
	return nil
}

func (m strategyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "o", "O":
			m.choice = ChoiceOverwrite
		case "a", "A":
			m.choice = ChoiceAlongside
		case "c", "C", "q", "esc", "ctrl+c", "enter":
			// Default to cancel so foreign hooks are never touched by accident.
			m.choice = ChoiceCancel
		default:
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m strategyModel) View() tea.View {
	return tea.NewView(m.render())
}

// render returns the prompt text, or nothing once a choice was made.
func (m strategyModel) render() string {
	if m.done {
		return ""
	}
	return titleStyle.Render(m.prompt) + "\n" +
		hintStyle.Render("[o] overwrite them  [a] install alongside  [c] cancel") + " "
}

// ChooseStrategy asks whether to overwrite existing hooks, install guet's
// hooks alongside them, or cancel. Pressing enter cancels.
func ChooseStrategy(prompt string, in io.Reader, out io.Writer) (Choice, error) {
	model := strategyModel{prompt: prompt}
	p := tea.NewProgram(model, tea.WithInput(in), tea.WithOutput(out))
	finalModel, err := p.Run()
	if err != nil {
		return ChoiceCancel, err
	}
	m := finalModel.(strategyModel)
	return m.choice, nil
}
