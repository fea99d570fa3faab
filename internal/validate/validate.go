// Package validate checks dataset examples against the chat fine-tuning
// schema. It accumulates issues rather than failing fast: the point of a
// validation pass is a complete report before any money is spent on
// training.
package validate

import (
	"sort"

	"github.com/r-maier/finetune-prep-tui/internal/models"
)

// recognizedMessageKeys are the keys a message object may carry.
var recognizedMessageKeys = map[string]bool{
	"role":          true,
	"content":       true,
	"name":          true,
	"function_call": true,
}

// Dataset inspects every example and returns all issues found, in dataset
// order. The result is deterministic for a fixed input: object keys are
// visited in sorted order.
func Dataset(examples []models.Example) []models.Issue {
	var issues []models.Issue
	for i, ex := range examples {
		issues = append(issues, checkExample(i, ex.Raw)...)
	}
	return issues
}

func checkExample(idx int, raw any) []models.Issue {
	var issues []models.Issue

	obj, ok := raw.(map[string]any)
	if !ok {
		issues = append(issues, models.Issue{
			Example: idx, Message: models.NoMessage,
			Field:  "messages",
			Reason: "missing/invalid messages list",
		})
		return issues
	}

	for _, key := range sortedKeys(obj) {
		if key != "messages" {
			issues = append(issues, models.Issue{
				Example: idx, Message: models.NoMessage,
				Field:  key,
				Reason: "unrecognized top-level key: " + key,
			})
		}
	}

	msgs, ok := obj["messages"].([]any)
	if !ok {
		issues = append(issues, models.Issue{
			Example: idx, Message: models.NoMessage,
			Field:  "messages",
			Reason: "missing/invalid messages list",
		})
		return issues
	}

	hasAssistant := false
	for j, m := range msgs {
		msgIssues, assistant := checkMessage(idx, j, m)
		issues = append(issues, msgIssues...)
		hasAssistant = hasAssistant || assistant
	}

	if !hasAssistant {
		issues = append(issues, models.Issue{
			Example: idx, Message: models.NoMessage,
			Reason: "example missing assistant message",
		})
	}

	return issues
}

// checkMessage validates one message entry and reports whether it is a
// well-formed assistant message.
func checkMessage(idx, msgIdx int, m any) ([]models.Issue, bool) {
	var issues []models.Issue

	obj, ok := m.(map[string]any)
	if !ok {
		issues = append(issues, models.Issue{
			Example: idx, Message: msgIdx,
			Reason: "message is not a valid object",
		})
		return issues, false
	}

	for _, key := range sortedKeys(obj) {
		if !recognizedMessageKeys[key] {
			issues = append(issues, models.Issue{
				Example: idx, Message: msgIdx,
				Field:  key,
				Reason: "unrecognized key: " + key,
			})
		}
	}

	assistant := false
	role, hasRole := obj["role"]
	if !hasRole {
		issues = append(issues, models.Issue{
			Example: idx, Message: msgIdx,
			Field:  "role",
			Reason: "missing role",
		})
	} else {
		roleStr, _ := role.(string)
		if !models.RecognizedRoles[roleStr] {
			issues = append(issues, models.Issue{
				Example: idx, Message: msgIdx,
				Field:  "role",
				Reason: "unrecognized role: " + roleStr,
			})
		}
		assistant = roleStr == models.RoleAssistant
	}

	// A message needs text content or a function call payload; content of
	// the wrong type counts as missing.
	content, hasContent := obj["content"]
	_, contentIsString := content.(string)
	_, hasFunctionCall := obj["function_call"]
	if (!hasContent || !contentIsString) && !hasFunctionCall {
		issues = append(issues, models.Issue{
			Example: idx, Message: msgIdx,
			Field:  "content",
			Reason: "missing content",
		})
	}

	return issues, assistant
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
