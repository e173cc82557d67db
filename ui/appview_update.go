package ui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	appmodel "timechat/model"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		a.viewport.Width = a.width
		a.viewport.Height = max(a.height-chrome, 1)
		a.input.Width = max(a.width-6, 10)

		a.ready = true
		a.updateViewportContent(true)
		return a, nil

	case spinner.TickMsg:
		// let the spinner die once the new chat is in place
		if !a.model.Session.IsRefreshing {
			return a, nil
		}
		var cmd tea.Cmd
		a.refreshSpinner, cmd = a.refreshSpinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// everything else belongs to the session, cursor blinks to the input
	session := a.model.Session
	count, typing := len(session.Messages), session.IsTyping

	cmds = append(cmds, a.model.Update(msg))
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)
	a.syncInput()

	// follow the conversation only when it changed, polls and blinks keep the scroll position
	a.updateViewportContent(len(session.Messages) != count || session.IsTyping != typing)

	return a, tea.Batch(cmds...)
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kb := a.model.Config.Keybindings
	session := a.model.Session
	keyStr := msg.String()
	a.notice = ""

	// PRIORITY 0: quit works everywhere
	if keyStr == kb.GetActionKey("quit") || keyStr == "ctrl+c" {
		slog.Debug("quit requested", "session_id", session.ID)
		a.model.Close()
		return a, tea.Quit
	}

	// PRIORITY 1: the guide owns the screen, background scrolling is suppressed
	if session.ShowGuidePanel {
		switch keyStr {
		case kb.GetActionKey("guide"), kb.GetActionKey("close_guide"):
			a.model.ToggleGuidePanel()
		}
		return a, nil
	}

	switch keyStr {
	case kb.GetActionKey("guide"):
		a.model.ToggleGuidePanel()
		return a, nil

	case kb.GetActionKey("new_chat"):
		a.selectedCard = 0
		return a, tea.Batch(a.model.ResetSession(), a.refreshSpinner.Tick)

	case kb.GetActionKey("prompt_time"):
		return a.selectPrompt(0)

	case kb.GetActionKey("prompt_date"):
		return a.selectPrompt(1)

	case kb.GetActionKey("prompt_world"):
		return a.selectPrompt(2)

	case kb.GetActionKey("yank_last_response"):
		last, ok := session.LastAssistantMessage()
		if !ok {
			a.notice = "Nothing to copy yet"
			return a, nil
		}
		a.copyToClipboard(last.Text, "Copied last response")
		return a, nil

	case kb.GetActionKey("yank_conversation"):
		if session.IsEmpty() {
			a.notice = "Nothing to copy yet"
			return a, nil
		}
		a.copyToClipboard(session.Transcript(), "Copied conversation")
		return a, nil

	case kb.GetActionKey("scroll_down"):
		a.viewport.HalfViewDown()
		return a, nil

	case kb.GetActionKey("scroll_up"):
		a.viewport.HalfViewUp()
		return a, nil

	case kb.GetActionKey("page_down"):
		a.viewport.ViewDown()
		return a, nil

	case kb.GetActionKey("page_up"):
		a.viewport.ViewUp()
		return a, nil

	case kb.GetActionKey("scroll_to_top"):
		a.viewport.GotoTop()
		return a, nil

	case kb.GetActionKey("scroll_to_bottom"):
		a.viewport.GotoBottom()
		return a, nil

	case kb.GetActionKey("clear_input"):
		a.input.SetValue("")
		session.Input = ""
		return a, nil

	case kb.GetActionKey("complete_location"):
		if session.IsLoading {
			return a, nil
		}
		a.input.SetValue(a.model.Complete(a.input.Value()))
		a.input.CursorEnd()
		session.Input = a.input.Value()
		return a, nil
	}

	// Welcome screen: arrows or a bare digit pick a card while the input is empty
	if session.IsEmpty() && a.input.Value() == "" {
		switch keyStr {
		case "1", "2", "3":
			return a.selectPrompt(int(keyStr[0] - '1'))
		case kb.GetActionKey("card_next"):
			a.selectedCard = (a.selectedCard + 1) % len(appmodel.Prompts)
			return a, nil
		case kb.GetActionKey("card_prev"):
			a.selectedCard = (a.selectedCard + len(appmodel.Prompts) - 1) % len(appmodel.Prompts)
			return a, nil
		case kb.GetActionKey("send"):
			return a.selectPrompt(a.selectedCard)
		}
	}

	if keyStr == kb.GetActionKey("send") {
		cmd := a.model.SendQuery(a.input.Value())
		if cmd == nil {
			return a, nil
		}
		a.input.Reset()
		a.updateViewportContent(true)
		return a, cmd
	}

	// the input is disabled while a lookup is in flight
	if session.IsLoading {
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	session.Input = a.input.Value()
	return a, cmd
}

func (a AppView) selectPrompt(idx int) (tea.Model, tea.Cmd) {
	a.selectedCard = idx
	a.input.Placeholder = placeholderActive
	return a, a.model.SelectPrompt(appmodel.Prompts[idx].Text)
}

func (a *AppView) copyToClipboard(text, notice string) {
	if err := writeClipboard(text); err != nil {
		slog.Debug("clipboard write failed", "error", err)
		a.notice = "Clipboard unavailable"
		return
	}
	a.notice = notice
}

// syncInput pulls session-side input changes (a reset) into the text field.
func (a *AppView) syncInput() {
	session := a.model.Session
	if a.input.Value() != session.Input {
		a.input.SetValue(session.Input)
	}
	if session.ShowInputBar {
		a.input.Placeholder = placeholderActive
	} else {
		a.input.Placeholder = placeholderIdle
	}
}
