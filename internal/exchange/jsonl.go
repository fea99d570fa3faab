// Package exchange reads and writes the line-delimited JSON training
// format and builds chat examples from review CSV files.
package exchange

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/r-maier/finetune-prep-tui/internal/models"
)

// maxLineBytes bounds a single JSONL line; review datasets occasionally
// carry very long texts.
const maxLineBytes = 10 * 1024 * 1024

// ReadFile loads a JSONL dataset, one example per line. Each line is kept
// both as its raw decoded JSON value (for validation) and as a typed
// conversation (for accounting). Blank lines are skipped. A line that is
// not valid JSON at all is a load error: the file cannot be inspected
// further without guessing at line boundaries.
func ReadFile(path string) ([]models.Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f)
}

// Read decodes a JSONL dataset from a reader.
func Read(r io.Reader) ([]models.Example, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var examples []models.Example
	line := 0
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}

		var raw any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("line %d: invalid JSON: %w", line, err)
		}

		ex := models.Example{Raw: raw}
		// Best effort typed decode; validation reports structural
		// problems on the raw value.
		_ = json.Unmarshal(data, &ex.Conversation)
		examples = append(examples, ex)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	return examples, nil
}

// WriteFile writes conversations as JSONL, one example per line. The
// written file reads back as an identical sequence of conversations.
func WriteFile(path string, conversations []models.Conversation) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for i, conv := range conversations {
		if err := enc.Encode(conv); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to encode example %d: %w", i, err)
		}
	}

	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return f.Close()
}
