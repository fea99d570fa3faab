// Package dataset loads a JSONL fine-tuning dataset and watches it for changes.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/r-maier/finetune-prep-tui/internal/exchange"
	"github.com/r-maier/finetune-prep-tui/internal/logger"
	"github.com/r-maier/finetune-prep-tui/internal/models"
)

// Event represents a dataset service event.
type Event struct {
	Type  EventType
	Error error
}

// EventType defines the type of dataset event.
type EventType int

const (
	EventDatasetLoaded EventType = iota
	EventDatasetChanged
	EventError
)

// Service loads examples from a JSONL file and reloads them when the file
// changes on disk.
type Service struct {
	mu            sync.RWMutex
	examples      []models.Example
	filePath      string
	debounce      time.Duration
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	debounceTimer *time.Timer
}

// New creates a dataset service, loads the file, and starts watching it.
func New(filePath string, debounce time.Duration) (*Service, error) {
	if filePath == "" {
		return nil, fmt.Errorf("dataset path is required")
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}

	s := &Service{
		filePath:  filePath,
		debounce:  debounce,
		eventChan: make(chan Event, 100),
		stopChan:  make(chan struct{}),
	}

	if err := s.load(); err != nil {
		// A missing file is not fatal; the watcher picks it up on creation.
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load dataset: %w", err)
		}
		logger.Warn("dataset file does not exist yet", "path", filePath)
	}

	if err := s.startWatcher(); err != nil {
		return nil, fmt.Errorf("failed to start file watcher: %w", err)
	}

	s.sendEvent(Event{Type: EventDatasetLoaded})

	return s, nil
}

// Events returns the event channel for subscribing to dataset changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Path returns the dataset file path.
func (s *Service) Path() string {
	return s.filePath
}

// Examples returns a copy of the loaded examples.
func (s *Service) Examples() []models.Example {
	s.mu.RLock()
	defer s.mu.RUnlock()

	examples := make([]models.Example, len(s.examples))
	copy(examples, s.examples)
	return examples
}

// Count returns the number of loaded examples.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.examples)
}

// Reload forces a reload from disk.
func (s *Service) Reload() error {
	if err := s.load(); err != nil {
		return err
	}
	s.sendEvent(Event{Type: EventDatasetChanged})
	return nil
}

// load reads the dataset file into memory.
func (s *Service) load() error {
	examples, err := exchange.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.examples = examples
	s.mu.Unlock()
	return nil
}

// startWatcher starts the file system watcher.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	// Watch the directory (to catch file creation and atomic renames)
	dir := filepath.Dir(s.filePath)
	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			// Only care about our dataset file
			if filepath.Base(event.Name) != filepath.Base(s.filePath) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				// Debounce rapid changes
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(s.debounce, func() {
					s.handleFileChange()
				})
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// handleFileChange reloads the dataset after an external change.
func (s *Service) handleFileChange() {
	if err := s.load(); err != nil {
		s.sendEvent(Event{Type: EventError, Error: err})
		return
	}

	logger.Info("dataset reloaded", "path", s.filePath, "examples", s.Count())
	s.sendEvent(Event{Type: EventDatasetChanged})
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (s *Service) Close() error {
	close(s.stopChan)

	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}

	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
