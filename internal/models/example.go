// Package models defines data structures and domain types.
package models

import "encoding/json"

// Message roles recognized by the chat fine-tuning format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// RecognizedRoles is the fixed set of roles a message may carry.
var RecognizedRoles = map[string]bool{
	RoleSystem:    true,
	RoleUser:      true,
	RoleAssistant: true,
}

// Message is a single role-tagged turn in a conversation.
type Message struct {
	Role         string          `json:"role"`
	Content      string          `json:"content,omitempty"`
	Name         string          `json:"name,omitempty"`
	FunctionCall json.RawMessage `json:"function_call,omitempty"`
}

// IsAssistant reports whether the message is an assistant turn.
func (m Message) IsAssistant() bool {
	return m.Role == RoleAssistant
}

// Conversation is one training example: an ordered list of messages
// ending in an assistant reply used as the fine-tuning target.
type Conversation struct {
	Messages []Message `json:"messages"`
}

// HasRole reports whether any message in the conversation has the given role.
func (c Conversation) HasRole(role string) bool {
	for _, m := range c.Messages {
		if m.Role == role {
			return true
		}
	}
	return false
}

// Example pairs the decoded conversation with the raw JSON value it was
// parsed from. Validation walks Raw so that unrecognized keys and malformed
// entries are still visible; accounting walks Conversation.
type Example struct {
	Conversation Conversation
	Raw          any
}
