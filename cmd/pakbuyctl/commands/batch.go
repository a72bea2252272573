package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/pakbuy/backend/internal/domain"
	"github.com/spf13/cobra"
)

const maxLineBytes = 1 << 20

type batchOutput struct {
	Results []domain.BatchItem `json:"results"`
}

func newBatchCommand(state *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file>",
		Short: "Clean one title per line from a file (\"-\" reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			var titles []string
			scanner := bufio.NewScanner(in)
			scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
			for scanner.Scan() {
				if line := strings.TrimSpace(scanner.Text()); line != "" {
					titles = append(titles, line)
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read titles: %w", err)
			}

			results := state.components.Cleaner.CleanBatch(cmd.Context(), titles)
			return writeJSON(cmd.OutOrStdout(), batchOutput{Results: results})
		},
	}
}
