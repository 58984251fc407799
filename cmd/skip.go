package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ronak-kumar-sing/makeit/internal/domain"
)

// skipCmd represents the skip command
var skipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Skip to the next mode",
	Long: `Abandon the current countdown and move to the next mode. A skipped
focus session earns no credit: nothing is recorded and the long-break
cycle does not advance.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := app.engine.Skip(ctx); err != nil {
			if errors.Is(err, domain.ErrTimerNotRunning) {
				return fmt.Errorf("no countdown to skip")
			}
			return fmt.Errorf("failed to skip: %w", err)
		}

		snap := app.engine.Snapshot()
		fmt.Printf("⏭️  Skipped. Next up: %s (%s)\n", snap.Mode.Label(), formatCmdDuration(snap.Remaining))
		return nil
	},
}
