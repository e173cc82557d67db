package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	ApologyText = "Sorry, I couldn't fetch the time information. Please try again with a different location."
	TypingLabel = "Time Assistant is typing"
)

// Prompt is one of the canned conversation starters on the welcome screen
type Prompt struct {
	Title       string
	Description string
	Text        string
}

var (
	PromptTime  = Prompt{Title: "Check Time", Description: "Get current time for any location worldwide", Text: "Which city or country's time do you need?"}
	PromptDate  = Prompt{Title: "Check Date", Description: "Find out the current date in any timezone", Text: "Which city or country's date do you need?"}
	PromptWorld = Prompt{Title: "World Time", Description: "Compare times across different locations", Text: "Which city or country do you want information about?"}

	// Prompts in welcome screen order
	Prompts = []Prompt{PromptTime, PromptDate, PromptWorld}
)

var typingDots = []string{".", "..", "..."}

// Session is the state of one conversation. It has no I/O of its own:
// Model drives it from tea messages.
type Session struct {
	ID       string
	Input    string
	Messages []Message

	IsLoading      bool
	IsTyping       bool
	IsAPIConnected bool
	IsRefreshing   bool
	Transitioning  bool
	ShowGuidePanel bool
	ShowInputBar   bool

	TypingText string
	typingStep int
}

func NewSession() *Session {
	return &Session{ID: uuid.New().String()}
}

// CanSend reports whether text would be accepted by BeginQuery.
func (s *Session) CanSend(text string) bool {
	return !s.IsLoading && strings.TrimSpace(text) != ""
}

// BeginQuery appends the user message and enters the loading state.
// It returns false, changing nothing, while a lookup is outstanding or
// when text is blank.
func (s *Session) BeginQuery(text string) bool {
	if !s.CanSend(text) {
		return false
	}

	s.Messages = append(s.Messages, Message{Text: text, IsUser: true, Timestamp: time.Now()})
	s.Input = ""
	s.IsLoading = true
	s.IsTyping = true
	s.typingStep = 0
	s.TypingText = TypingLabel + typingDots[0]
	return true
}

// CompleteQuery appends the assistant reply and leaves the loading state.
func (s *Session) CompleteQuery(text string) {
	s.Messages = append(s.Messages, Message{Text: text, IsUser: false, Timestamp: time.Now()})
	s.IsLoading = false
	s.IsTyping = false
	s.TypingText = ""
}

// FailQuery is CompleteQuery with the fixed apology.
func (s *Session) FailQuery() {
	s.CompleteQuery(ApologyText)
}

// AdvanceTyping moves the typing indicator to its next frame.
func (s *Session) AdvanceTyping() {
	if !s.IsTyping {
		return
	}
	s.typingStep = (s.typingStep + 1) % len(typingDots)
	s.TypingText = TypingLabel + typingDots[s.typingStep]
}

func (s *Session) BeginPrompt() {
	s.Transitioning = true
	s.ShowInputBar = true
}

// ApplyPrompt replaces the conversation with a single assistant message.
func (s *Session) ApplyPrompt(prompt string) {
	s.Messages = []Message{{Text: prompt, IsUser: false, Timestamp: time.Now()}}
	s.Transitioning = false
}

func (s *Session) BeginReset() {
	s.IsRefreshing = true
	s.ShowInputBar = false
}

// ApplyReset clears the conversation and input. IsLoading is left alone so
// a lookup still in flight keeps blocking new sends until it lands.
func (s *Session) ApplyReset() {
	s.Messages = nil
	s.Input = ""
	s.IsRefreshing = false
	s.Transitioning = false
}

func (s *Session) ToggleGuidePanel() {
	s.ShowGuidePanel = !s.ShowGuidePanel
}

func (s *Session) SetConnected(connected bool) {
	s.IsAPIConnected = connected
}

// IsEmpty reports whether the welcome screen should be shown
func (s *Session) IsEmpty() bool {
	return len(s.Messages) == 0
}

// LastAssistantMessage returns the most recent reply, if any
func (s *Session) LastAssistantMessage() (Message, bool) {
	msg, _, ok := lo.FindLastIndexOf(s.Messages, func(m Message) bool {
		return !m.IsUser
	})
	return msg, ok
}

// Transcript renders the conversation as plain text, one labelled block per message.
func (s *Session) Transcript() string {
	blocks := lo.Map(s.Messages, func(m Message, _ int) string {
		return Author(m) + ":\n" + m.Text
	})
	return strings.Join(blocks, "\n\n")
}

// Locations returns the distinct locations the user asked about in this
// conversation, in the order first asked.
func (s *Session) Locations() []string {
	queries := lo.FilterMap(s.Messages, func(m Message, _ int) (string, bool) {
		text := strings.TrimSpace(m.Text)
		return text, m.IsUser && text != ""
	})
	return lo.Uniq(queries)
}

// Author is the label shown above a message
func Author(m Message) string {
	if m.IsUser {
		return "You"
	}
	return "Time Assistant"
}
