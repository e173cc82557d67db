package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (a AppView) renderGuide(width, height int) string {
	kb := a.model.Config.Keybindings

	title := TitleStyle.Render("Time & Date Checker Guide")

	heading := lipgloss.NewStyle().Foreground(successColor).Bold(true)
	bullet := AssistantStyle.Render("•")

	overview := lipgloss.JoinVertical(
		lipgloss.Left,
		heading.Render("## Overview"),
		"Get real-time information about time, date, and day",
		"of the week for any city or country.",
	)

	features := lipgloss.JoinVertical(
		lipgloss.Left,
		heading.Render("## Features"),
		bullet+" Real-time time zone information",
		bullet+" Current date and day details",
		bullet+" Global city support",
		bullet+" Live backend status in the header",
	)

	howTo := lipgloss.JoinVertical(
		lipgloss.Left,
		heading.Render("## How to Use"),
		AssistantStyle.Render("1.")+" Type a city name in the chat",
		AssistantStyle.Render("2.")+" Press Enter to send",
		AssistantStyle.Render("3.")+" Get instant time and date information",
	)

	tips := lipgloss.JoinVertical(
		lipgloss.Left,
		heading.Render("## Tips"),
		bullet+" You can use city names or country names",
		bullet+" For better results, use the official city name",
		bullet+" The service detects time zones automatically",
		bullet+" Tab completes places you already asked about",
	)

	shortcuts := lipgloss.JoinVertical(
		lipgloss.Left,
		heading.Render("## Keyboard Shortcuts"),
		fmt.Sprintf("• %-13s Send", kb.DisplayActionKey("send")),
		fmt.Sprintf("• %-13s Complete location", kb.DisplayActionKey("complete_location")),
		fmt.Sprintf("• %-13s Clear input", kb.DisplayActionKey("clear_input")),
		fmt.Sprintf("• %-13s Check time prompt", kb.DisplayActionKey("prompt_time")),
		fmt.Sprintf("• %-13s Check date prompt", kb.DisplayActionKey("prompt_date")),
		fmt.Sprintf("• %-13s World time prompt", kb.DisplayActionKey("prompt_world")),
		fmt.Sprintf("• %-13s New chat", kb.DisplayActionKey("new_chat")),
		fmt.Sprintf("• %-13s Half page down", kb.DisplayActionKey("scroll_down")),
		fmt.Sprintf("• %-13s Half page up", kb.DisplayActionKey("scroll_up")),
		fmt.Sprintf("• %-13s Jump to top", kb.DisplayActionKey("scroll_to_top")),
		fmt.Sprintf("• %-13s Jump to bottom", kb.DisplayActionKey("scroll_to_bottom")),
		fmt.Sprintf("• %-13s Copy last response", kb.DisplayActionKey("yank_last_response")),
		fmt.Sprintf("• %-13s Copy conversation", kb.DisplayActionKey("yank_conversation")),
		fmt.Sprintf("• %-13s Toggle this guide", kb.DisplayActionKey("guide")),
		fmt.Sprintf("• %-13s Quit", kb.DisplayActionKey("quit")),
	)

	column1 := lipgloss.JoinVertical(lipgloss.Left, overview, "", features, "", howTo, "", tips)

	columnStyle := lipgloss.NewStyle().Width(54).PaddingLeft(2)

	twoColumns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(column1),
		"  ",
		columnStyle.Render(shortcuts),
	)

	footer := DimStyle.Render(fmt.Sprintf("Press %s or %s to close this guide",
		kb.DisplayActionKey("guide"), kb.DisplayActionKey("close_guide")))

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		twoColumns,
		"",
		footer,
	)

	guideBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(faintColor).
		Padding(1, 2)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		guideBox.Render(content),
	)
}
