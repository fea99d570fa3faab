package exchange

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/r-maier/finetune-prep-tui/internal/models"
)

func TestFromReview(t *testing.T) {
	conv := FromReview(Review{Title: "Great mug", Text: "Keeps coffee hot.", Rating: 5})

	if len(conv.Messages) != 3 {
		t.Fatalf("FromReview() produced %d messages, want 3", len(conv.Messages))
	}
	if conv.Messages[0].Role != models.RoleSystem || conv.Messages[0].Content != SystemPrompt {
		t.Error("First message should be the fixed system prompt")
	}
	user := conv.Messages[1]
	if user.Role != models.RoleUser {
		t.Errorf("Second message role = %q, want user", user.Role)
	}
	if !strings.HasPrefix(user.Content, "Review: Great mug") {
		t.Errorf("User content = %q", user.Content)
	}
	if !strings.Contains(user.Content, "Keeps coffee hot.") {
		t.Errorf("User content missing review text: %q", user.Content)
	}
	assistant := conv.Messages[2]
	if assistant.Role != models.RoleAssistant || assistant.Content != `{"rating":5}` {
		t.Errorf("Assistant message = %+v", assistant)
	}
}

func TestFromReview_NoTitle(t *testing.T) {
	conv := FromReview(Review{Text: "ok", Rating: 3})
	if conv.Messages[1].Content != "Review: ok" {
		t.Errorf("User content = %q, want %q", conv.Messages[1].Content, "Review: ok")
	}
}

func TestReadReviews(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	csv := "Title,Text,Rating\n" +
		"Great mug,Keeps coffee hot.,5\n" +
		",\"Broke after a week, sadly\",1\n"
	if err := os.WriteFile(path, []byte(csv), 0o600); err != nil {
		t.Fatal(err)
	}

	reviews, err := ReadReviews(path)
	if err != nil {
		t.Fatalf("ReadReviews() failed: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("ReadReviews() returned %d reviews, want 2", len(reviews))
	}
	if reviews[0].Title != "Great mug" || reviews[0].Rating != 5 {
		t.Errorf("First review = %+v", reviews[0])
	}
	if reviews[1].Text != "Broke after a week, sadly" || reviews[1].Rating != 1 {
		t.Errorf("Second review = %+v", reviews[1])
	}
}

func TestReadReviews_MissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	if err := os.WriteFile(path, []byte("Title,Text\nA,b\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadReviews(path); err == nil {
		t.Fatal("ReadReviews() should fail without a rating column")
	}
}

func TestReadReviews_BadRating(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	if err := os.WriteFile(path, []byte("text,rating\nok,five\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := ReadReviews(path)
	if err == nil || !strings.Contains(err.Error(), "invalid rating") {
		t.Errorf("ReadReviews() error = %v, want invalid rating", err)
	}
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "reviews.csv")
	jsonlPath := filepath.Join(dir, "train.jsonl")
	if err := os.WriteFile(csvPath, []byte("text,rating\ngood,5\nbad,1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	n, err := Convert(csvPath, jsonlPath)
	if err != nil {
		t.Fatalf("Convert() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Convert() wrote %d examples, want 2", n)
	}

	examples, err := ReadFile(jsonlPath)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if len(examples) != 2 {
		t.Fatalf("ReadFile() returned %d examples, want 2", len(examples))
	}
	for i, ex := range examples {
		if !ex.Conversation.HasRole(models.RoleAssistant) {
			t.Errorf("Example %d missing assistant message", i)
		}
	}
}
