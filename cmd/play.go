package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/remivoice/remi/internal/judge"
	"github.com/remivoice/remi/internal/llm"
	"github.com/remivoice/remi/internal/match"
	"github.com/remivoice/remi/internal/memory"
	"github.com/remivoice/remi/internal/quiz"
	"github.com/remivoice/remi/internal/respond"
	"github.com/remivoice/remi/internal/session"
	"github.com/remivoice/remi/internal/speech"
	"github.com/remivoice/remi/internal/store"
	"github.com/remivoice/remi/internal/ui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a memory-check session in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := newLogger(cmd)

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

		// The LLM is optional. Without it the matcher runs lexical-only
		// and every line comes from the canned set.
		var semanticJudge match.SemanticJudge
		var provider llm.Provider
		provider, err = llm.NewProviderFromEnv(ctx, log, st.LLMRequestRepo())
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Semantic answer matching and phrased responses will be unavailable.")
			provider = nil
		} else {
			semanticJudge = judge.New(provider, judge.DefaultConfig(), log)
		}

		conversation, err := memory.Open(conversationPath(dbPath), log)
		if err != nil {
			return fmt.Errorf("open conversation log: %w", err)
		}

		profile := respond.Profile{
			Name:      flagString(cmd, "patient"),
			Interests: flagString(cmd, "interests"),
			Tone:      flagString(cmd, "tone"),
			Formality: flagString(cmd, "formality"),
		}

		engine := session.New(session.Deps{
			Bank:         quiz.NewBank(questions),
			Judge:        semanticJudge,
			Responder:    respond.New(provider, respond.DefaultConfig(), log),
			Conversation: conversation,
			Progress:     st.ProgressRepo(),
			Sessions:     st.SessionRepo(),
			Voice:        speech.NullSynthesizer{},
			Profile:      profile,
			Log:          log,
		})

		return ui.Run(engine)
	},
}

func init() {
	playCmd.Flags().String("patient", "", "Patient name for the session record")
	playCmd.Flags().String("interests", "", "Patient interests, woven into responses")
	playCmd.Flags().String("tone", "gentle", "Response tone")
	playCmd.Flags().String("formality", "informal", "Response formality")
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

// conversationPath resolves the conversation log location: REMI_MEMORY when
// set, otherwise next to the database.
func conversationPath(dbPath string) string {
	if p := os.Getenv("REMI_MEMORY"); p != "" {
		return p
	}
	return filepath.Join(filepath.Dir(dbPath), "conversation.json")
}
