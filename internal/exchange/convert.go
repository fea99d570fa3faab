package exchange

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/r-maier/finetune-prep-tui/internal/models"
)

// SystemPrompt is the fixed instruction given to the model in every example.
const SystemPrompt = "You are a helpful assistant that rates product reviews. " +
	"Given a review, respond with a JSON object of the form {\"rating\": N} " +
	"where N is the star rating from 1 to 5."

// FromReview builds one chat example from a review: the fixed system
// prompt, the review text as the user turn, and the rating JSON as the
// assistant target.
func FromReview(r Review) models.Conversation {
	var user strings.Builder
	user.WriteString("Review: ")
	if r.Title != "" {
		user.WriteString(r.Title)
		user.WriteString("\n\n")
	}
	user.WriteString(r.Text)

	target, _ := json.Marshal(map[string]int{"rating": r.Rating})

	return models.Conversation{Messages: []models.Message{
		{Role: models.RoleSystem, Content: SystemPrompt},
		{Role: models.RoleUser, Content: user.String()},
		{Role: models.RoleAssistant, Content: string(target)},
	}}
}

// Convert reads a review CSV and writes the JSONL training file.
// It returns the number of examples written.
func Convert(csvPath, jsonlPath string) (int, error) {
	reviews, err := ReadReviews(csvPath)
	if err != nil {
		return 0, err
	}

	conversations := make([]models.Conversation, len(reviews))
	for i, r := range reviews {
		conversations[i] = FromReview(r)
	}

	if err := WriteFile(jsonlPath, conversations); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", jsonlPath, err)
	}
	return len(conversations), nil
}
