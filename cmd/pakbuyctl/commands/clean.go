package commands

import (
	"strings"
	"time"

	"github.com/pakbuy/backend/internal/domain"
	"github.com/spf13/cobra"
)

type cleanOutput struct {
	domain.CleaningResult
	TimeMs int64 `json:"time_ms"`
}

func newCleanCommand(state *cli) *cobra.Command {
	var budget time.Duration

	cmd := &cobra.Command{
		Use:   "clean <title...>",
		Short: "Clean a single title",
		Example: `  pakbuyctl clean "Samsung Galaxy A15 8GB/256GB PTA Approved"
  pakbuyctl clean --regex-only HP Pavilion Gaming Laptop i5 11th Gen 8GB RAM 512GB SSD`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			result := state.components.Cleaner.Clean(cmd.Context(), title, budget)

			return writeJSON(cmd.OutOrStdout(), cleanOutput{
				CleaningResult: result,
				TimeMs:         result.Elapsed.Milliseconds(),
			})
		},
	}

	cmd.Flags().DurationVar(&budget, "budget", 0, "AI time budget (default from config)")
	return cmd
}
