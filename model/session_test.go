package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginQueryGuard(t *testing.T) {
	tests := []struct {
		name    string
		loading bool
		text    string
		want    bool
	}{
		{name: "accepts location", text: "Tokyo", want: true},
		{name: "keeps surrounding spaces", text: "  New York ", want: true},
		{name: "rejects empty", text: "", want: false},
		{name: "rejects whitespace", text: " \t\n", want: false},
		{name: "rejects while loading", loading: true, text: "Tokyo", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			s.IsLoading = tt.loading
			s.Input = tt.text

			got := s.BeginQuery(tt.text)
			assert.Equal(t, tt.want, got)
			if !tt.want {
				assert.Empty(t, s.Messages)
				assert.Equal(t, tt.text, s.Input)
				return
			}
			require.Len(t, s.Messages, 1)
			assert.Equal(t, tt.text, s.Messages[0].Text)
			assert.True(t, s.Messages[0].IsUser)
			assert.Empty(t, s.Input)
			assert.True(t, s.IsLoading)
			assert.True(t, s.IsTyping)
			assert.Equal(t, "Time Assistant is typing.", s.TypingText)
		})
	}
}

func TestCompleteAndFailQuery(t *testing.T) {
	s := NewSession()
	require.True(t, s.BeginQuery("Tokyo"))
	s.CompleteQuery("It is 8 AM.")

	require.True(t, s.BeginQuery("Atlantis"))
	s.FailQuery()

	require.Len(t, s.Messages, 4)
	assert.Equal(t, []bool{true, false, true, false}, []bool{
		s.Messages[0].IsUser, s.Messages[1].IsUser, s.Messages[2].IsUser, s.Messages[3].IsUser,
	})
	assert.Equal(t, "It is 8 AM.", s.Messages[1].Text)
	assert.Equal(t, ApologyText, s.Messages[3].Text)
	assert.False(t, s.IsLoading)
	assert.False(t, s.IsTyping)
	assert.Empty(t, s.TypingText)
}

func TestAdvanceTypingCycles(t *testing.T) {
	s := NewSession()
	s.AdvanceTyping()
	assert.Empty(t, s.TypingText, "no animation outside a query")

	require.True(t, s.BeginQuery("Tokyo"))
	var frames []string
	for i := 0; i < 4; i++ {
		s.AdvanceTyping()
		frames = append(frames, s.TypingText)
	}
	assert.Equal(t, []string{
		"Time Assistant is typing..",
		"Time Assistant is typing...",
		"Time Assistant is typing.",
		"Time Assistant is typing..",
	}, frames)
}

func TestPromptTransition(t *testing.T) {
	s := NewSession()
	require.True(t, s.BeginQuery("Tokyo"))
	s.CompleteQuery("answer")

	s.BeginPrompt()
	assert.True(t, s.Transitioning)
	assert.True(t, s.ShowInputBar)

	s.ApplyPrompt(PromptDate.Text)
	require.Len(t, s.Messages, 1)
	assert.Equal(t, PromptDate.Text, s.Messages[0].Text)
	assert.False(t, s.Messages[0].IsUser)
	assert.False(t, s.Transitioning)
}

func TestResetTransition(t *testing.T) {
	s := NewSession()
	s.ShowInputBar = true
	s.Transitioning = true
	require.True(t, s.BeginQuery("Tokyo"))
	s.Input = "half typed"

	s.BeginReset()
	assert.True(t, s.IsRefreshing)
	assert.False(t, s.ShowInputBar)

	s.ApplyReset()
	assert.Empty(t, s.Messages)
	assert.Empty(t, s.Input)
	assert.False(t, s.IsRefreshing)
	assert.False(t, s.Transitioning)
	// the lookup is still in flight
	assert.True(t, s.IsLoading)
}

func TestToggleGuidePanel(t *testing.T) {
	s := NewSession()
	s.ToggleGuidePanel()
	assert.True(t, s.ShowGuidePanel)
	s.ToggleGuidePanel()
	assert.False(t, s.ShowGuidePanel)
}

func TestLastAssistantMessage(t *testing.T) {
	s := NewSession()
	_, ok := s.LastAssistantMessage()
	assert.False(t, ok)

	s.ApplyPrompt(PromptTime.Text)
	require.True(t, s.BeginQuery("Tokyo"))
	msg, ok := s.LastAssistantMessage()
	require.True(t, ok)
	assert.Equal(t, PromptTime.Text, msg.Text)

	s.CompleteQuery("reply")
	msg, ok = s.LastAssistantMessage()
	require.True(t, ok)
	assert.Equal(t, "reply", msg.Text)
}

func TestTranscript(t *testing.T) {
	s := NewSession()
	require.True(t, s.BeginQuery("Tokyo"))
	s.CompleteQuery("line one\nline two")

	assert.Equal(t, "You:\nTokyo\n\nTime Assistant:\nline one\nline two", s.Transcript())
}

func TestLocations(t *testing.T) {
	s := NewSession()
	for _, q := range []string{"Tokyo", " Paris ", "Tokyo", "Lima"} {
		require.True(t, s.BeginQuery(q))
		s.CompleteQuery("ok")
	}

	assert.Equal(t, []string{"Tokyo", "Paris", "Lima"}, s.Locations())

	s.ApplyReset()
	assert.Empty(t, s.Locations())
}

func TestNewSessionIDsAreUnique(t *testing.T) {
	a, b := NewSession(), NewSession()
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.IsAPIConnected)
	assert.True(t, a.IsEmpty())
}
