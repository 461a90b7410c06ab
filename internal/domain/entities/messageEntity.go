package entities

import "time"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Account is one allowlist entry: the user's name plus the per-user
// completion settings attached to it.
type Account struct {
	Username      string
	TokenLimit    int
	SystemMessage string
}

// InboundMessage is the transport-neutral form of a user message, produced
// by a channel adapter at the router boundary.
type InboundMessage struct {
	Channel string
	UserID  string
	Text    string
}

// ConversationTurn is one recorded chat-log row.
type ConversationTurn struct {
	Timestamp time.Time
	Role      string
	Content   string
}

// PromptMessage is one entry of the message array sent to the completion
// backend.
type PromptMessage struct {
	Role    string
	Content string
}
