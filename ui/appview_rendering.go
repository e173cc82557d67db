package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	appmodel "timechat/model"
)

const appTitle = "Time & Date Chat"

// chrome is the number of rows around the viewport:
// header, spacer, input bar (3 with border) and status bar.
const chrome = 6

func (a *AppView) updateViewportContent(gotoBottom bool) {
	session := a.model.Session
	wrapWidth := a.viewport.Width - 2

	var content strings.Builder

	for _, msg := range session.Messages {
		timestamp := DimStyle.Render(msg.Timestamp.Format("[15:04]"))
		text := wordWrap(msg.Text, wrapWidth)

		if msg.IsUser {
			content.WriteString(formatUserMessage(timestamp, UserStyle.Render(appmodel.Author(msg)), text))
			continue
		}

		role := AssistantStyle.Render(appmodel.Author(msg))
		content.WriteString(fmt.Sprintf("%s %s\n%s\n\n", timestamp, role, text))
	}

	if session.IsTyping {
		role := AssistantStyle.Render(appmodel.Author(appmodel.Message{}))
		content.WriteString(fmt.Sprintf("%s\n%s\n", role, DimStyle.Render(session.TypingText)))
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

func formatUserMessage(timestamp, role, content string) string {
	bar := UserStyle.Render("┃")

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s %s\n", bar, timestamp, role))

	for _, line := range strings.Split(content, "\n") {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}

	result.WriteString("\n")

	return result.String()
}

// renderHeader draws the title, connectivity dot and shortcuts on one line.
func (a AppView) renderHeader() string {
	session := a.model.Session
	kb := a.model.Config.Keybindings

	dot, status := disconnectedDot, "API Disconnected"
	if session.IsAPIConnected {
		dot, status = connectedDot, "API Connected"
	}

	left := TitleStyle.Render(appTitle) + " " + dot
	leftWidth := runewidth.StringWidth(appTitle) + 2

	if a.width >= leftWidth+runewidth.StringWidth(status)+1 {
		left += " " + DimStyle.Render(status)
		leftWidth += runewidth.StringWidth(status) + 1
	}

	guideLabel := "Guide"
	if session.ShowGuidePanel {
		guideLabel = "Close"
	}
	rightPlain := fmt.Sprintf("%s %s  %s New chat", kb.DisplayActionKey("guide"), guideLabel, kb.DisplayActionKey("new_chat"))
	right := FormatFooter(kb.DisplayActionKey("guide"), guideLabel, kb.DisplayActionKey("new_chat"), "New chat")
	rightWidth := runewidth.StringWidth(rightPlain)

	if session.IsRefreshing {
		right = a.refreshSpinner.View() + " " + right
		rightWidth += lipgloss.Width(a.refreshSpinner.View()) + 1
	}

	gap := a.width - leftWidth - rightWidth
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (a AppView) renderInputBar() string {
	session := a.model.Session

	border := faintColor
	if session.ShowInputBar {
		border = accentColor
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(a.width-2, 1))

	view := a.input.View()
	if session.IsLoading {
		view = DimStyle.Render("> waiting for the Time Assistant...")
	}
	return style.Render(view)
}

func (a AppView) renderStatusBar() string {
	if a.notice != "" {
		return lipgloss.NewStyle().Foreground(successColor).Render(a.notice)
	}

	kb := a.model.Config.Keybindings
	return StatusStyle.Render(FormatFooter(
		kb.DisplayActionKey("quit"), "Quit",
		kb.DisplayActionKey("send"), "Send",
		kb.DisplayActionKey("complete_location"), "Complete",
		kb.DisplayActionKey("yank_last_response"), "Copy",
		kb.DisplayActionKey("guide"), "Guide",
	))
}
