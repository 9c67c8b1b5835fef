package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/remivoice/remi/internal/llm"
	"github.com/remivoice/remi/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM usage and estimated spend",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		usage, err := st.LLMRequestRepo().Usage(context.Background())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(usage) == 0 {
			fmt.Println("No LLM requests recorded.")
			return nil
		}

		fmt.Printf("%-32s  %-8s  %-10s  %-10s  %s\n",
			"Model", "Calls", "In", "Out", "Est. cost")
		fmt.Println(strings.Repeat("─", 76))

		var total float64
		for _, u := range usage {
			costStr := "n/a"
			if mc := llm.LookupCost(u.Model); mc != nil {
				cost := mc.Cost(u.InputTokens, u.OutputTokens)
				total += cost
				costStr = fmt.Sprintf("$%.4f", cost)
			}
			fmt.Printf("%-32s  %-8d  %-10d  %-10d  %s\n",
				truncate(u.Model, 32), u.Requests, u.InputTokens, u.OutputTokens, costStr)
		}
		fmt.Printf("\nEstimated total spend: $%.4f\n", total)
		return nil
	},
}
