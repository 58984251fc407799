package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ronak-kumar-sing/makeit/internal/engine"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current timer status",
	Long:  `Display the reconciled timer state and today's focus totals.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		snap := app.engine.Snapshot()
		switch snap.Phase {
		case engine.PhaseRunning:
			fmt.Printf("⏱️  %s · %s remaining\n", snap.Mode.Label(), formatCmdDuration(snap.Remaining))
		case engine.PhasePaused:
			fmt.Printf("⏸️  %s paused · %s remaining\n", snap.Mode.Label(), formatCmdDuration(snap.Remaining))
		default:
			fmt.Printf("💤 Idle · next up: %s (%s)\n", snap.Mode.Label(), formatCmdDuration(snap.Remaining))
		}
		if snap.TaskTitle != nil {
			fmt.Printf("   Working on: %s\n", *snap.TaskTitle)
		}

		stats, err := app.storage.Sessions().GetDailyStats(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("failed to load today's stats: %w", err)
		}
		fmt.Printf("\n📊 Today: %d focus sessions · %d minutes\n", stats.FocusSessions, stats.FocusMinutes)
		return nil
	},
}
