package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/remivoice/remi/internal/difficulty"
	"github.com/remivoice/remi/internal/memory"
	"github.com/remivoice/remi/internal/quiz"
	"github.com/remivoice/remi/internal/respond"
	"github.com/remivoice/remi/internal/store"
)

func serveTestBank() *quiz.Bank {
	return quiz.NewBank([]quiz.Question{
		quiz.NewQuestion("q1", "What city were you born in?", difficulty.TierEasy, []string{"springfield"}),
		quiz.NewQuestion("q2", "What is your favorite season?", difficulty.TierEasy, []string{"autumn"}),
	})
}

func TestEngineFactoryKeepsPerSessionConversationLog(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "remi.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	convDir := filepath.Join(dir, "conversations")
	if err := os.MkdirAll(convDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	log := slog.New(slog.DiscardHandler)

	factory := newEngineFactory(serveTestBank(), nil, nil, st, convDir, log)
	eng := factory(respond.Profile{Name: "Margaret"})

	ctx := context.Background()
	if _, _, err := eng.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := eng.Submit(ctx, "springfield"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	logPath := filepath.Join(convDir, eng.ID()+".json")
	if _, err := os.Stat(logPath); err != nil {
		t.Fatalf("conversation log not written: %v", err)
	}

	conv, err := memory.Open(logPath, log)
	if err != nil {
		t.Fatalf("reopen conversation log: %v", err)
	}
	entries := conv.Entries()
	if len(entries) < 2 {
		t.Fatalf("entries = %d, want at least the greeting and the answer", len(entries))
	}
	if entries[0].Role != memory.RoleAssistant {
		t.Fatalf("first entry role = %q, want %q", entries[0].Role, memory.RoleAssistant)
	}
	var heard bool
	for _, e := range entries {
		if e.Role == memory.RolePatient && e.Text == "springfield" {
			heard = true
		}
	}
	if !heard {
		t.Fatal("patient answer missing from conversation log")
	}
}

func TestEngineFactorySeparatesSessions(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "remi.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	convDir := filepath.Join(dir, "conversations")
	if err := os.MkdirAll(convDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	log := slog.New(slog.DiscardHandler)

	factory := newEngineFactory(serveTestBank(), nil, nil, st, convDir, log)
	a := factory(respond.Profile{Name: "Margaret"})
	b := factory(respond.Profile{Name: "Harold"})

	if a.ID() == b.ID() {
		t.Fatal("sessions share an id")
	}

	ctx := context.Background()
	if _, _, err := a.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, _, err := b.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	for _, eng := range []interface{ ID() string }{a, b} {
		if _, err := os.Stat(filepath.Join(convDir, eng.ID()+".json")); err != nil {
			t.Fatalf("conversation log for %s not written: %v", eng.ID(), err)
		}
	}
}

func TestEngineFactoryWithoutConversationDir(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "remi.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	factory := newEngineFactory(serveTestBank(), nil, nil, st, "", slog.New(slog.DiscardHandler))
	eng := factory(respond.Profile{Name: "Margaret"})

	ctx := context.Background()
	if _, _, err := eng.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := eng.Submit(ctx, "springfield"); err != nil {
		t.Fatalf("submit: %v", err)
	}
}
