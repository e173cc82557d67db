package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrorModal is a standalone program for errors that stop timechat before
// the chat screen starts, e.g. an invalid config.toml.
type ErrorModal struct {
	title   string
	message string
	width   int
	height  int
}

func NewErrorModal(title, message string) ErrorModal {
	return ErrorModal{
		title:   title,
		message: message,
	}
}

func (m ErrorModal) Init() tea.Cmd {
	return nil
}

func (m ErrorModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m ErrorModal) View() string {
	if m.width < 20 || m.height < 10 {
		return "Terminal too small"
	}

	modalWidth := 60
	if m.width < modalWidth+10 {
		modalWidth = m.width - 10
	}

	lines := strings.Split(wordWrap(m.message, modalWidth), "\n")
	return RenderThreeSectionModal(m.title, lines, "Press Enter to quit", dangerColor, modalWidth, m.width, m.height)
}
