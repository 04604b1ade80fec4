package domain

import "time"

const ChatGreeting = "Hello! How can I help you today?"

type ChatMessage struct {
	ID        string
	Content   string
	IsUser    bool
	Timestamp time.Time
}

// Transcript is an append-only ordered sequence of chat messages.
type Transcript struct {
	messages []ChatMessage
}

func (t *Transcript) Append(message ChatMessage) {
	t.messages = append(t.messages, message)
}

func (t *Transcript) Messages() []ChatMessage {
	out := make([]ChatMessage, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Transcript) Len() int {
	return len(t.messages)
}
