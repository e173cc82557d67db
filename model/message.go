package model

import "time"

// Message is one chat bubble in the conversation
type Message struct {
	Text      string
	IsUser    bool
	Timestamp time.Time
}
