// Package tokens prices chat fine-tuning datasets: per-example token
// counts, distribution statistics and a training cost estimate.
package tokens

// Counter is a pluggable token counting strategy. Different target model
// families tokenize differently, so the scheme is injected rather than
// baked in: a capability that counts text plus the two overhead constants
// of the chat wire format.
type Counter interface {
	// Count returns the token count for a piece of text. It returns an
	// error when the strategy cannot price the text.
	Count(text string) (int, error)

	// MessageOverhead is the fixed number of wrapper tokens added per
	// message for role and formatting markup.
	MessageOverhead() int

	// ReplyOverhead is the fixed number of trailing tokens added once
	// per conversation for the turn-completion marker.
	ReplyOverhead() int
}

// Chat format overheads used by the default counter. Every message is
// wrapped in three markup tokens and every conversation is primed with
// three tokens for the assistant reply.
const (
	chatMessageOverhead = 3
	chatReplyOverhead   = 3
)

// Heuristic estimates tokens at roughly four characters per token. It is
// a deliberate approximation: good enough for cost planning, with no
// tokenizer dependency.
type Heuristic struct{}

// Count implements Counter.
func (Heuristic) Count(text string) (int, error) {
	if len(text) == 0 {
		return 0, nil
	}
	return (len(text) + 3) / 4, nil
}

// MessageOverhead implements Counter.
func (Heuristic) MessageOverhead() int { return chatMessageOverhead }

// ReplyOverhead implements Counter.
func (Heuristic) ReplyOverhead() int { return chatReplyOverhead }
