package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	appmodel "timechat/model"
)

const (
	cardWidth    = 28
	callToAction = "Get Started →"
)

var (
	cardStyle = lipgloss.NewStyle().
			Width(cardWidth).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(faintColor)

	selectedCardStyle = cardStyle.
				BorderForeground(accentColor)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(dimColor)
)

var cardActions = []string{"prompt_time", "prompt_date", "prompt_world"}

func (a AppView) renderWelcome(width, height int) string {
	kb := a.model.Config.Keybindings
	inner := cardWidth - 2

	cards := make([]string, len(appmodel.Prompts))
	for i, p := range appmodel.Prompts {
		keyHint := kb.DisplayActionKey(cardActions[i])
		gap := max(1, inner-runewidth.StringWidth(callToAction)-runewidth.StringWidth(keyHint))

		style := cardStyle
		title := lipgloss.NewStyle().Bold(true).Render(p.Title)
		cta := callToAction
		if i == a.selectedCard {
			style = selectedCardStyle
			title = SelectedStyle.Render(p.Title)
			cta = AssistantStyle.Render(cta)
		}

		body := lipgloss.JoinVertical(
			lipgloss.Left,
			title,
			DimStyle.Render(wordWrap(p.Description, inner)),
			"",
			cta+strings.Repeat(" ", gap)+DimStyle.Render(keyHint),
		)
		cards[i] = style.Render(body)
	}

	// side by side when there is room, stacked otherwise
	var grid string
	if width >= len(cards)*(cardWidth+4) {
		grid = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	} else {
		grid = lipgloss.JoinVertical(lipgloss.Left, cards...)
	}

	hint := FormatFooter("←/→", "Choose", "1-3", "Pick", "Enter", "Start", kb.DisplayActionKey("guide"), "Guide")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		TitleStyle.Render("Time & Date Information"),
		subtitleStyle.Render("Get real-time information about time, date, and day for any location worldwide"),
		"",
		grid,
		"",
		hint,
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
