package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/remivoice/remi/internal/api"
	"github.com/remivoice/remi/internal/judge"
	"github.com/remivoice/remi/internal/llm"
	"github.com/remivoice/remi/internal/match"
	"github.com/remivoice/remi/internal/memory"
	"github.com/remivoice/remi/internal/quiz"
	"github.com/remivoice/remi/internal/respond"
	"github.com/remivoice/remi/internal/session"
	"github.com/remivoice/remi/internal/speech"
	"github.com/remivoice/remi/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for remote clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger(cmd)
		addr, _ := cmd.Flags().GetString("addr")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		questions, err := loadQuestions(cmd)
		if err != nil {
			return err
		}
		bank := quiz.NewBank(questions)

		var semanticJudge match.SemanticJudge
		provider, err := llm.NewProviderFromEnv(cmd.Context(), log, st.LLMRequestRepo())
		if err != nil {
			log.Warn("llm provider not configured, running lexical-only", "error", err)
			provider = nil
		} else {
			semanticJudge = judge.New(provider, judge.DefaultConfig(), log)
		}

		convDir := filepath.Join(filepath.Dir(dbPath), "conversations")
		if err := os.MkdirAll(convDir, 0o755); err != nil {
			log.Warn("conversation log directory unavailable", "dir", convDir, "error", err)
			convDir = ""
		}

		factory := newEngineFactory(bank, semanticJudge, provider, st, convDir, log)
		server := api.NewServer(factory, st.ProgressRepo(), log)
		httpServer := &http.Server{
			Addr:              addr,
			Handler:           server.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info("http server listening", "addr", addr)
			errCh <- httpServer.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	},
}

// newEngineFactory builds the per-session engine constructor for the HTTP
// API. Each session gets its own conversation log under convDir, keyed by
// session id so the append-only store keeps a single writer. An empty
// convDir disables conversation logging.
func newEngineFactory(bank *quiz.Bank, semanticJudge match.SemanticJudge, provider llm.Provider, st *store.Store, convDir string, log *slog.Logger) api.EngineFactory {
	return func(profile respond.Profile) *session.Engine {
		id := uuid.NewString()

		var conversation *memory.Store
		if convDir != "" {
			conv, err := memory.Open(filepath.Join(convDir, id+".json"), log)
			if err != nil {
				log.Warn("conversation log unavailable", "session_id", id, "error", err)
			} else {
				conversation = conv
			}
		}

		return session.New(session.Deps{
			ID:           id,
			Bank:         bank,
			Judge:        semanticJudge,
			Responder:    respond.New(provider, respond.DefaultConfig(), log),
			Conversation: conversation,
			Progress:     st.ProgressRepo(),
			Sessions:     st.SessionRepo(),
			Voice:        speech.NullSynthesizer{},
			Profile:      profile,
			Log:          log,
		})
	}
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
}
