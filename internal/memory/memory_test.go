package memory

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestOpen_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversation.json")

	s, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestAppendAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversation.json")

	s, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Append(RoleAssistant, "What did you have for breakfast?"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(RolePatient, "eggs and toast"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	reloaded, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	entries := reloaded.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Role != RoleAssistant || entries[1].Role != RolePatient {
		t.Errorf("roles out of order: %v, %v", entries[0].Role, entries[1].Role)
	}
	if entries[1].Text != "eggs and toast" {
		t.Errorf("entry text = %q", entries[1].Text)
	}
	if entries[0].Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestOpen_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversation.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0 after corrupt load", s.Len())
	}

	// The corrupt file is replaced on the next append.
	if err := s.Append(RolePatient, "hello"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	reloaded, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reloaded.Len() != 1 {
		t.Errorf("Len = %d after rewrite, want 1", reloaded.Len())
	}
}

func TestEntries_ReturnsCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversation.json")
	s, err := Open(path, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Append(RolePatient, "original"); err != nil {
		t.Fatal(err)
	}

	got := s.Entries()
	got[0].Text = "mutated"
	if s.Entries()[0].Text != "original" {
		t.Error("Entries exposed internal slice")
	}
}
