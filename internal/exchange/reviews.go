package exchange

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Review is one row of the source CSV: a product review with its star rating.
type Review struct {
	Title  string
	Text   string
	Rating int
}

// Column names looked up in the CSV header, case-insensitive.
const (
	colTitle  = "title"
	colText   = "text"
	colRating = "rating"
)

// ReadReviews loads reviews from a CSV file. The file must have a header
// row naming at least the text and rating columns; a title column is
// optional.
func ReadReviews(path string) ([]Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reviews file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	textIdx, ok := cols[colText]
	if !ok {
		return nil, fmt.Errorf("reviews CSV is missing required column %q", colText)
	}
	ratingIdx, ok := cols[colRating]
	if !ok {
		return nil, fmt.Errorf("reviews CSV is missing required column %q", colRating)
	}
	titleIdx, hasTitle := cols[colTitle]

	var reviews []Review
	row := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if textIdx >= len(record) || ratingIdx >= len(record) {
			return nil, fmt.Errorf("row %d: too few columns", row)
		}

		rating, err := strconv.Atoi(strings.TrimSpace(record[ratingIdx]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid rating %q", row, record[ratingIdx])
		}

		review := Review{
			Text:   record[textIdx],
			Rating: rating,
		}
		if hasTitle && titleIdx < len(record) {
			review.Title = record[titleIdx]
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}
