package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/remivoice/remi/internal/store"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show recorded session progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		patient, _ := cmd.Flags().GetString("patient")
		sessionID, _ := cmd.Flags().GetString("session")
		if patient == "" && sessionID == "" {
			return fmt.Errorf("one of --patient or --session is required")
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		ctx := context.Background()
		var recs []store.ProgressRecord
		if sessionID != "" {
			recs, err = st.ProgressRepo().BySession(ctx, sessionID)
		} else {
			recs, err = st.ProgressRepo().ByPatient(ctx, patient)
		}
		if err != nil {
			return fmt.Errorf("read progress: %w", err)
		}

		if len(recs) == 0 {
			fmt.Println("No progress recorded.")
			return nil
		}

		fmt.Printf("%-19s  %-8s  %-40s  %-20s  %-9s  %s\n",
			"Time", "Tier", "Question", "Answer", "Verdict", "Att")
		fmt.Println(strings.Repeat("─", 110))
		correct := 0
		for _, rec := range recs {
			if rec.Verdict == "correct" {
				correct++
			}
			verdict := rec.Verdict
			if rec.Skipped {
				verdict += " (skip)"
			}
			fmt.Printf("%-19s  %-8s  %-40s  %-20s  %-9s  %d\n",
				rec.RecordedAt.Local().Format("2006-01-02 15:04:05"),
				rec.ServedTier,
				truncate(rec.QuestionText, 40),
				truncate(rec.Answer, 20),
				verdict,
				rec.Attempt,
			)
		}
		fmt.Printf("\n%d answers, %d correct\n", len(recs), correct)

		if patient != "" {
			sessions, err := st.SessionRepo().SessionsByPatient(ctx, patient)
			if err != nil {
				return fmt.Errorf("read sessions: %w", err)
			}
			if len(sessions) > 0 {
				fmt.Printf("\n%-19s  %-8s  %-8s  %-8s  %s\n",
					"Session start", "Correct", "Total", "Tier", "Done")
				fmt.Println(strings.Repeat("─", 60))
				for _, s := range sessions {
					done := " "
					if s.Completed {
						done = "✓"
					}
					fmt.Printf("%-19s  %-8d  %-8d  %-8s  %s\n",
						s.StartedAt.Local().Format("2006-01-02 15:04:05"),
						s.CorrectCount, s.TotalAnswered, s.FinalTier, done)
				}
			}
		}
		return nil
	},
}

func init() {
	progressCmd.Flags().String("patient", "", "Filter by patient name")
	progressCmd.Flags().String("session", "", "Filter by session id")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
