package commands

import (
	"github.com/pakbuy/backend/internal/domain"
	"github.com/spf13/cobra"
)

type selfTestOutput struct {
	TestResults []domain.SelfTestResult `json:"test_results"`
	AIEnabled   bool                    `json:"ai_enabled"`
}

func newSelfTestCommand(state *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Compare AI and regex cleaning on the built-in sample titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cleaner := state.components.Cleaner
			return writeJSON(cmd.OutOrStdout(), selfTestOutput{
				TestResults: cleaner.SelfTest(cmd.Context()),
				AIEnabled:   cleaner.Health().AIAvailable,
			})
		},
	}
}
