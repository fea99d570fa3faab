package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleJSONL = `{"messages":[{"role":"system","content":"You are helpful."},{"role":"user","content":"Hi"},{"role":"assistant","content":"Hello!"}]}
{"messages":[{"role":"user","content":"Bye"},{"role":"assistant","content":"Goodbye!"}]}
`

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()

	tmpDir := t.TempDir()
	datasetPath := filepath.Join(tmpDir, "train.jsonl")

	if err := os.WriteFile(datasetPath, []byte(sampleJSONL), 0o600); err != nil {
		t.Fatalf("failed to write dataset file: %v", err)
	}

	svc, err := New(datasetPath, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	t.Cleanup(func() {
		if err := svc.Close(); err != nil {
			t.Logf("Close() failed: %v", err)
		}
	})

	return svc, datasetPath
}

func TestNew(t *testing.T) {
	svc, _ := newTestService(t)

	if svc.Count() != 2 {
		t.Errorf("Count() = %d, want 2", svc.Count())
	}
}

func TestNew_EmptyPath(t *testing.T) {
	_, err := New("", 0)
	if err == nil {
		t.Fatal("New(\"\") should fail")
	}
}

func TestNew_MissingFile(t *testing.T) {
	tmpDir := t.TempDir()
	datasetPath := filepath.Join(tmpDir, "missing.jsonl")

	svc, err := New(datasetPath, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("New() should tolerate a missing dataset file: %v", err)
	}
	defer func() {
		_ = svc.Close()
	}()

	if svc.Count() != 0 {
		t.Errorf("Count() = %d, want 0", svc.Count())
	}
}

func TestExamples_ReturnsCopy(t *testing.T) {
	svc, _ := newTestService(t)

	examples := svc.Examples()
	if len(examples) != 2 {
		t.Fatalf("Examples() returned %d examples, want 2", len(examples))
	}

	examples[0].Conversation.Messages = nil

	fresh := svc.Examples()
	if len(fresh[0].Conversation.Messages) != 3 {
		t.Error("mutating the returned slice should not affect the service")
	}
}

func TestReload(t *testing.T) {
	svc, datasetPath := newTestService(t)

	extra := sampleJSONL + `{"messages":[{"role":"user","content":"More"},{"role":"assistant","content":"Sure"}]}
`
	if err := os.WriteFile(datasetPath, []byte(extra), 0o600); err != nil {
		t.Fatalf("failed to rewrite dataset file: %v", err)
	}

	if err := svc.Reload(); err != nil {
		t.Fatalf("Reload() failed: %v", err)
	}

	if svc.Count() != 3 {
		t.Errorf("Count() = %d after reload, want 3", svc.Count())
	}
}

func TestEvents_InitialLoad(t *testing.T) {
	svc, _ := newTestService(t)

	select {
	case event := <-svc.Events():
		if event.Type != EventDatasetLoaded {
			t.Errorf("first event type = %v, want EventDatasetLoaded", event.Type)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for initial EventDatasetLoaded")
	}
}

func TestWatch_FileChange(t *testing.T) {
	svc, datasetPath := newTestService(t)

	// Drain initial load event
	<-svc.Events()

	extra := sampleJSONL + `{"messages":[{"role":"user","content":"More"},{"role":"assistant","content":"Sure"}]}
`
	if err := os.WriteFile(datasetPath, []byte(extra), 0o600); err != nil {
		t.Fatalf("failed to rewrite dataset file: %v", err)
	}

	timeout := time.After(2 * time.Second)
	for {
		select {
		case event := <-svc.Events():
			if event.Type == EventDatasetChanged {
				if svc.Count() != 3 {
					t.Errorf("Count() = %d after change, want 3", svc.Count())
				}
				return
			}
		case <-timeout:
			t.Fatal("timeout waiting for EventDatasetChanged")
		}
	}
}

func TestWatch_InvalidContent(t *testing.T) {
	svc, datasetPath := newTestService(t)

	<-svc.Events()

	if err := os.WriteFile(datasetPath, []byte("{not json\n"), 0o600); err != nil {
		t.Fatalf("failed to rewrite dataset file: %v", err)
	}

	timeout := time.After(2 * time.Second)
	for {
		select {
		case event := <-svc.Events():
			if event.Type == EventError {
				if event.Error == nil {
					t.Error("EventError should carry an error")
				}
				return
			}
		case <-timeout:
			t.Fatal("timeout waiting for EventError")
		}
	}
}
