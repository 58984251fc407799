package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ronak-kumar-sing/makeit/internal/domain"
)

var resetMode string

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the countdown",
	Long: `Abandon the current countdown and return to idle at the full
configured duration. Nothing is recorded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var mode *domain.TimerMode
		if resetMode != "" {
			m, err := domain.ParseTimerMode(resetMode)
			if err != nil {
				return err
			}
			mode = &m
		}

		if err := app.engine.Reset(ctx, mode); err != nil {
			return fmt.Errorf("failed to reset timer: %w", err)
		}

		snap := app.engine.Snapshot()
		fmt.Printf("🔄 Reset to %s (%s)\n", snap.Mode.Label(), formatCmdDuration(snap.Remaining))
		return nil
	},
}

func init() {
	resetCmd.Flags().StringVarP(&resetMode, "mode", "m", "", "Mode to reset to: focus, short_break, long_break")
}
