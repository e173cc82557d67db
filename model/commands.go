package model

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// Init runs the first health check. Its result arms the poll loop.
func (m *Model) Init() tea.Cmd {
	return m.CheckConnectivity()
}

// CheckConnectivity pings the service root and reports a ConnectivityMsg.
func (m *Model) CheckConnectivity() tea.Cmd {
	if m.Closed() {
		return nil
	}
	ctx, service := m.ctx, m.Service
	return func() tea.Msg {
		err := service.Ping(ctx)
		return ConnectivityMsg{Connected: err == nil, Err: err}
	}
}

// SchedulePoll arms the next connectivity poll. It is only called once the
// previous check has reported, so a slow ping never overwrites a newer one.
func (m *Model) SchedulePoll() tea.Cmd {
	if m.Closed() {
		return nil
	}
	return tea.Tick(m.Config.PollInterval, func(time.Time) tea.Msg {
		return PollTickMsg{}
	})
}

// SendQuery submits text as a location lookup. It returns nil when the
// session refuses the send (blank text or a lookup already in flight).
func (m *Model) SendQuery(text string) tea.Cmd {
	if !m.Session.BeginQuery(text) {
		return nil
	}

	slog.Debug("sending query", "session_id", m.Session.ID, "location", text)

	ctx, service := m.ctx, m.Service
	lookup := func() tea.Msg {
		resp, err := service.Lookup(ctx, text)
		if err != nil {
			return LookupResultMsg{Location: text, Err: err}
		}
		return LookupResultMsg{Location: text, Text: resp.Message()}
	}

	return tea.Batch(lookup, m.startTyping())
}

// SelectPrompt replaces the conversation with a canned prompt after the
// transition delay. Nothing is sent to the service.
func (m *Model) SelectPrompt(prompt string) tea.Cmd {
	m.Session.BeginPrompt()
	return tea.Tick(m.Config.TransitionDelay, func(time.Time) tea.Msg {
		return PromptReadyMsg{Prompt: prompt}
	})
}

// ResetSession starts a new chat after the transition delay.
// A lookup already in flight is not cancelled.
func (m *Model) ResetSession() tea.Cmd {
	m.Session.BeginReset()
	return tea.Tick(m.Config.TransitionDelay, func(time.Time) tea.Msg {
		return ResetReadyMsg{}
	})
}

func (m *Model) ToggleGuidePanel() {
	m.Session.ToggleGuidePanel()
}

// Complete returns the best fuzzy match for prefix among locations already
// asked about, or prefix unchanged when nothing matches.
func (m *Model) Complete(prefix string) string {
	if prefix == "" {
		return prefix
	}
	matches := fuzzy.Find(prefix, m.Session.Locations())
	if len(matches) == 0 {
		return prefix
	}
	return matches[0].Str
}

func (m *Model) startTyping() tea.Cmd {
	m.typingGen++
	return m.typingTick(m.typingGen)
}

func (m *Model) typingTick(gen int) tea.Cmd {
	return tea.Tick(m.Config.TypingInterval, func(time.Time) tea.Msg {
		return TypingTickMsg{Generation: gen}
	})
}

// Update applies a session message and returns any follow-up command.
// Messages that do not belong to the session are ignored.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ConnectivityMsg:
		if msg.Err != nil {
			slog.Debug("connectivity check failed", "error", msg.Err)
		}
		m.Session.SetConnected(msg.Connected)
		return m.SchedulePoll()

	case PollTickMsg:
		return m.CheckConnectivity()

	case LookupResultMsg:
		if msg.Err != nil {
			slog.Debug("query failed", "session_id", m.Session.ID, "location", msg.Location, "error", msg.Err)
			return tea.Tick(m.Config.ApologyDelay, func(time.Time) tea.Msg {
				return RevealMsg{Text: ApologyText, Failed: true}
			})
		}
		return tea.Tick(m.Config.RevealDelay, func(time.Time) tea.Msg {
			return RevealMsg{Text: msg.Text}
		})

	case RevealMsg:
		if msg.Failed {
			m.Session.FailQuery()
		} else {
			m.Session.CompleteQuery(msg.Text)
		}
		// stop the typing animation
		m.typingGen++
		return nil

	case TypingTickMsg:
		if msg.Generation != m.typingGen || !m.Session.IsTyping || m.Closed() {
			return nil
		}
		m.Session.AdvanceTyping()
		return m.typingTick(msg.Generation)

	case PromptReadyMsg:
		m.Session.ApplyPrompt(msg.Prompt)
		return nil

	case ResetReadyMsg:
		m.Session.ApplyReset()
		return nil
	}

	return nil
}
