package model

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timechat/config"
	"timechat/timeapi"
	"timechat/timeapi/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		DataDirectory:   "/tmp/timechat-test",
		BaseURL:         "http://timechat.test",
		RequestTimeout:  time.Second,
		PollInterval:    time.Millisecond,
		RevealDelay:     time.Millisecond,
		ApologyDelay:    time.Millisecond,
		TransitionDelay: time.Millisecond,
		TypingInterval:  time.Millisecond,
		Keybindings:     config.DefaultKeybindings(),
	}
}

func newTestModel(t *testing.T, service TimeService) *Model {
	t.Helper()
	m := NewModel(testConfig(), service)
	t.Cleanup(m.Close)
	return m
}

// drain runs cmd and every command it leads to, feeding each message back
// into m.Update. Poll ticks are recorded but not followed so the chain ends.
func drain(t *testing.T, m *Model, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	var seen []tea.Msg
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 1000, "command chain did not settle")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		seen = append(seen, msg)
		if _, ok := msg.(PollTickMsg); ok {
			continue
		}
		queue = append(queue, m.Update(msg))
	}
	return seen
}

func TestInitChecksConnectivityAndSchedulesPoll(t *testing.T) {
	svc := testutil.NewMockService()
	m := newTestModel(t, svc)

	seen := drain(t, m, m.Init())

	assert.True(t, m.Session.IsAPIConnected)
	assert.Equal(t, 1, svc.PingCount())
	assert.Contains(t, seen, tea.Msg(PollTickMsg{}))
}

func TestConnectivityReflectsLatestPoll(t *testing.T) {
	svc := testutil.NewMockService()
	results := []error{errors.New("connection refused"), nil, timeapi.ErrConnectivityCheckFailed}
	svc.PingFunc = func(ctx context.Context) error {
		err := results[0]
		results = results[1:]
		return err
	}
	m := newTestModel(t, svc)

	drain(t, m, m.CheckConnectivity())
	assert.False(t, m.Session.IsAPIConnected)

	drain(t, m, m.CheckConnectivity())
	assert.True(t, m.Session.IsAPIConnected, "a failed poll followed by a good one is connected")

	drain(t, m, m.CheckConnectivity())
	assert.False(t, m.Session.IsAPIConnected)
	assert.Empty(t, m.Session.Messages, "connectivity never touches the conversation")
}

func TestPollTickRunsNextCheck(t *testing.T) {
	svc := testutil.NewMockService()
	m := newTestModel(t, svc)

	seen := drain(t, m, m.Update(PollTickMsg{}))

	assert.Equal(t, 1, svc.PingCount())
	assert.Contains(t, seen, tea.Msg(PollTickMsg{}), "the next poll is armed")
}

func TestCloseStopsPolling(t *testing.T) {
	svc := testutil.NewMockService()
	m := NewModel(testConfig(), svc)
	m.Close()

	assert.True(t, m.Quitting)
	assert.Nil(t, m.CheckConnectivity())
	assert.Nil(t, m.SchedulePoll())
	assert.Nil(t, m.Update(PollTickMsg{}))
	assert.Zero(t, svc.PingCount())
}

func TestCloseTwiceLogsOnce(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	m := NewModel(testConfig(), testutil.NewMockService())
	m.Close()
	m.Close()

	assert.True(t, m.Closed())
	assert.Equal(t, 1, strings.Count(buf.String(), `"msg":"session closed"`))
}

func TestNextPollWaitsForCheckResult(t *testing.T) {
	svc := testutil.NewMockService()
	m := newTestModel(t, svc)

	// the tick only runs the check; nothing else is armed yet
	check := m.Update(PollTickMsg{})
	require.NotNil(t, check)
	result := check()
	require.IsType(t, ConnectivityMsg{}, result)

	next := m.Update(result)
	require.NotNil(t, next, "the reported check arms the next poll")
	assert.Equal(t, tea.Msg(PollTickMsg{}), next())
	assert.Equal(t, 1, svc.PingCount())
}

func TestConnectivityAfterCloseArmsNothing(t *testing.T) {
	m := NewModel(testConfig(), testutil.NewMockService())
	m.Close()

	assert.Nil(t, m.Update(ConnectivityMsg{Connected: true}))
}

func TestSendQueryAppendsPairPerCall(t *testing.T) {
	svc := testutil.NewMockService()
	m := newTestModel(t, svc)

	locations := []string{"Tokyo", "Paris", "Lima"}
	for _, loc := range locations {
		drain(t, m, m.SendQuery(loc))
	}

	require.Len(t, m.Session.Messages, 2*len(locations))
	for i, loc := range locations {
		user, reply := m.Session.Messages[2*i], m.Session.Messages[2*i+1]
		assert.True(t, user.IsUser)
		assert.Equal(t, loc, user.Text)
		assert.False(t, reply.IsUser)
		assert.Contains(t, reply.Text, "Current time in "+loc+":")
	}
	assert.Equal(t, locations, svc.Lookups())
	assert.False(t, m.Session.IsLoading)
	assert.False(t, m.Session.IsTyping)
}

func TestSendQueryRevealsAfterLookup(t *testing.T) {
	svc := testutil.NewMockService()
	m := newTestModel(t, svc)

	cmd := m.SendQuery("Tokyo")
	require.NotNil(t, cmd)
	assert.True(t, m.Session.IsLoading)
	assert.True(t, m.Session.IsTyping)
	assert.Empty(t, m.Session.Input)

	// the lookup result alone does not append anything
	reveal := m.Update(LookupResultMsg{Location: "Tokyo", Text: testutil.TokyoMessage})
	require.NotNil(t, reveal)
	assert.Len(t, m.Session.Messages, 1)
	assert.True(t, m.Session.IsTyping)

	msg := reveal()
	require.IsType(t, RevealMsg{}, msg)
	assert.Nil(t, m.Update(msg))

	require.Len(t, m.Session.Messages, 2)
	assert.Equal(t, testutil.TokyoMessage, m.Session.Messages[1].Text)
	assert.False(t, m.Session.IsLoading)
	assert.False(t, m.Session.IsTyping)
}

func TestSendQueryFailureAppendsApology(t *testing.T) {
	svc := testutil.NewMockService()
	svc.LookupFunc = func(ctx context.Context, location string) (*timeapi.LookupResponse, error) {
		return nil, fmt.Errorf("%w: %w", timeapi.ErrQueryFailed, &timeapi.StatusError{
			Op: "lookup", StatusCode: http.StatusInternalServerError, Status: "500 Internal Server Error",
		})
	}
	m := newTestModel(t, svc)

	seen := drain(t, m, m.SendQuery("Tokyo"))

	require.Len(t, m.Session.Messages, 2)
	assert.Equal(t, ApologyText, m.Session.Messages[1].Text)
	assert.False(t, m.Session.Messages[1].IsUser)
	assert.False(t, m.Session.IsLoading)
	assert.Contains(t, seen, tea.Msg(RevealMsg{Text: ApologyText, Failed: true}))
}

func TestSendQueryIgnoredWhileLoading(t *testing.T) {
	svc := testutil.NewMockService()
	m := newTestModel(t, svc)

	first := m.SendQuery("Tokyo")
	require.NotNil(t, first)
	assert.Nil(t, m.SendQuery("Tokyo"))
	assert.Nil(t, m.SendQuery("Paris"))

	drain(t, m, first)

	assert.Equal(t, []string{"Tokyo"}, svc.Lookups())
	assert.Len(t, m.Session.Messages, 2)
}

func TestSendQueryBlankIsNoop(t *testing.T) {
	svc := testutil.NewMockService()
	m := newTestModel(t, svc)

	assert.Nil(t, m.SendQuery("   "))
	assert.Empty(t, m.Session.Messages)
	assert.Empty(t, svc.Lookups())
}

func TestTypingAnimationStopsOnReveal(t *testing.T) {
	svc := testutil.NewMockService()
	m := newTestModel(t, svc)
	require.NotNil(t, m.SendQuery("Tokyo"))
	gen := m.typingGen

	next := m.Update(TypingTickMsg{Generation: gen})
	require.NotNil(t, next)
	assert.Equal(t, "Time Assistant is typing..", m.Session.TypingText)

	assert.Nil(t, m.Update(TypingTickMsg{Generation: gen - 1}), "stale generation")

	m.Update(RevealMsg{Text: "done"})
	assert.Nil(t, m.Update(TypingTickMsg{Generation: gen}))
	assert.Empty(t, m.Session.TypingText)
}

func TestSelectPrompt(t *testing.T) {
	prompts := []Prompt{PromptTime, PromptDate, PromptWorld}
	for _, p := range prompts {
		t.Run(p.Title, func(t *testing.T) {
			m := newTestModel(t, testutil.NewMockService())
			drain(t, m, m.SendQuery("Tokyo"))

			cmd := m.SelectPrompt(p.Text)
			assert.True(t, m.Session.Transitioning)
			assert.True(t, m.Session.ShowInputBar)

			drain(t, m, cmd)
			assert.Equal(t, []Message{{Text: p.Text, IsUser: false}}, stripTimes(m.Session.Messages))
			assert.False(t, m.Session.Transitioning)
		})
	}
}

func TestResetSession(t *testing.T) {
	m := newTestModel(t, testutil.NewMockService())
	drain(t, m, m.SelectPrompt(PromptTime.Text))
	drain(t, m, m.SendQuery("Tokyo"))
	m.Session.Input = "Par"

	cmd := m.ResetSession()
	assert.True(t, m.Session.IsRefreshing)
	assert.False(t, m.Session.ShowInputBar)

	drain(t, m, cmd)
	assert.Empty(t, m.Session.Messages)
	assert.Empty(t, m.Session.Input)
	assert.False(t, m.Session.IsRefreshing)
	assert.False(t, m.Session.Transitioning)
}

func TestResetDoesNotCancelInFlightLookup(t *testing.T) {
	m := newTestModel(t, testutil.NewMockService())

	send := m.SendQuery("Tokyo")
	reset := m.ResetSession()
	drain(t, m, tea.Batch(send, reset))

	// the late reply lands in the fresh conversation
	require.Len(t, m.Session.Messages, 1)
	assert.False(t, m.Session.Messages[0].IsUser)
	assert.False(t, m.Session.IsLoading)
}

func TestComplete(t *testing.T) {
	m := newTestModel(t, testutil.NewMockService())
	for _, loc := range []string{"Tokyo", "Toronto", "Paris"} {
		drain(t, m, m.SendQuery(loc))
	}

	tests := []struct {
		prefix string
		want   string
	}{
		{prefix: "tor", want: "Toronto"},
		{prefix: "par", want: "Paris"},
		{prefix: "xyz", want: "xyz"},
		{prefix: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Complete(tt.prefix))
		})
	}
}

func TestTokyoEndToEnd(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			return
		}
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		_ = json.NewEncoder(w).Encode(testutil.TokyoResponse())
	}))
	t.Cleanup(srv.Close)

	client, err := timeapi.NewClient(srv.URL, time.Second)
	require.NoError(t, err)
	m := newTestModel(t, client)

	drain(t, m, m.CheckConnectivity())
	drain(t, m, m.SendQuery("Tokyo"))

	assert.True(t, m.Session.IsAPIConnected)
	assert.JSONEq(t, `{"location":"Tokyo"}`, gotBody)
	require.Len(t, m.Session.Messages, 2)
	assert.Equal(t, testutil.TokyoMessage, m.Session.Messages[1].Text)
}

func TestServerErrorEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client, err := timeapi.NewClient(srv.URL, time.Second)
	require.NoError(t, err)
	m := newTestModel(t, client)

	drain(t, m, m.CheckConnectivity())
	drain(t, m, m.SendQuery("Tokyo"))

	assert.False(t, m.Session.IsAPIConnected)
	require.Len(t, m.Session.Messages, 2)
	assert.Equal(t, ApologyText, m.Session.Messages[1].Text)
	assert.False(t, m.Session.IsLoading)
}

func stripTimes(msgs []Message) []Message {
	out := make([]Message, len(msgs))
	for i, m := range msgs {
		out[i] = Message{Text: m.Text, IsUser: m.IsUser}
	}
	return out
}
