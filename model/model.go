package model

import (
	"context"
	"log/slog"

	"timechat/config"
)

// Model holds the chat session and the dependencies that drive it.
// It is owned by the UI event loop; only Update mutates Session.
type Model struct {
	// Core dependencies
	Config  *config.Config
	Service TimeService

	// Application data
	Session *Session

	// Runtime state (not UI)
	ctx       context.Context
	cancel    context.CancelFunc
	typingGen int
	Quitting  bool
}

// NewModel creates a Model with a fresh session. The session context lives
// until Close.
func NewModel(cfg *config.Config, service TimeService) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	session := NewSession()

	slog.Debug("session started", "session_id", session.ID, "base_url", cfg.BaseURL)

	return &Model{
		Config:  cfg,
		Service: service,
		Session: session,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Close ends the session: pending poll and typing ticks become no-ops.
// Calling it again does nothing.
func (m *Model) Close() {
	if m.Closed() {
		return
	}
	m.Quitting = true
	m.cancel()
	slog.Debug("session closed", "session_id", m.Session.ID, "messages", len(m.Session.Messages))
}

// Closed reports whether Close has been called
func (m *Model) Closed() bool {
	return m.ctx.Err() != nil
}
