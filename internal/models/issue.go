package models

import "fmt"

// NoMessage marks an Issue that applies to the whole example rather
// than a specific message.
const NoMessage = -1

// Issue describes one structural problem found in a dataset example.
type Issue struct {
	// Example is the zero-based index of the example in the dataset.
	Example int
	// Message is the zero-based index of the offending message,
	// or NoMessage when the issue applies to the whole example.
	Message int
	// Field names the offending key when one is known.
	Field string
	// Reason is the human-readable description.
	Reason string
}

// String formats the issue for reports and logs.
func (i Issue) String() string {
	if i.Message == NoMessage {
		return fmt.Sprintf("example %d: %s", i.Example, i.Reason)
	}
	return fmt.Sprintf("example %d, message %d: %s", i.Example, i.Message, i.Reason)
}
