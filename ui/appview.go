package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	appmodel "timechat/model"
)

const (
	placeholderIdle   = "Type a city name... or pick a card above"
	placeholderActive = "Type a city name..."
)

type AppView struct {
	// Reference to core data model
	model *appmodel.Model

	// UI Components
	viewport viewport.Model
	input    textinput.Model

	// Window state
	width  int
	height int
	ready  bool

	// Spinner next to the title while a new chat is being prepared
	refreshSpinner spinner.Model

	// Welcome screen card under the cursor
	selectedCard int

	// One-line feedback in the status bar (e.g. after copying)
	notice string
}

func NewAppView(m *appmodel.Model) AppView {
	ti := textinput.New()
	ti.Placeholder = placeholderIdle
	ti.Prompt = "> "
	ti.CharLimit = 200
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = AssistantStyle

	return AppView{
		model:          m,
		viewport:       viewport.New(0, 0),
		input:          ti,
		refreshSpinner: sp,
	}
}

func (a AppView) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		a.model.Init(),
	)
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading timechat..."
	}

	session := a.model.Session

	// the guide covers the whole screen
	if session.ShowGuidePanel {
		return a.renderGuide(a.width, a.height)
	}

	header := a.renderHeader()

	var body string
	if session.IsEmpty() && !session.IsTyping {
		body = a.renderWelcome(a.width, a.viewport.Height)
	} else {
		body = a.viewport.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		body,
		a.renderInputBar(),
		a.renderStatusBar(),
	)
}

// Model exposes the data model, mainly for main.go and tests.
func (a AppView) Model() *appmodel.Model {
	return a.model
}
