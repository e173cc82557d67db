package model

// ConnectivityMsg carries the outcome of one health check
type ConnectivityMsg struct {
	Connected bool
	Err       error
}

// PollTickMsg fires every poll interval to trigger the next health check
type PollTickMsg struct{}

// LookupResultMsg carries the raw outcome of a time lookup.
// The reply is not shown until the matching RevealMsg arrives.
type LookupResultMsg struct {
	Location string
	Text     string
	Err      error
}

// RevealMsg appends the assistant reply after the reveal delay
type RevealMsg struct {
	Text   string
	Failed bool
}

// TypingTickMsg advances the typing indicator.
// Ticks from an earlier animation run carry a stale Generation and are dropped.
type TypingTickMsg struct {
	Generation int
}

// PromptReadyMsg replaces the conversation with a canned prompt
type PromptReadyMsg struct {
	Prompt string
}

// ResetReadyMsg completes a "new chat" transition
type ResetReadyMsg struct{}
