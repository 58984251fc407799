package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ronak-kumar-sing/makeit/internal/engine"
)

// resumeCmd represents the resume command
var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a paused countdown",
	Long:  `Continue a paused countdown from its remaining time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		snap := app.engine.Snapshot()
		switch snap.Phase {
		case engine.PhaseRunning:
			return fmt.Errorf("the timer is already running (%s remaining)", formatCmdDuration(snap.Remaining))
		case engine.PhaseIdle:
			return fmt.Errorf("nothing to resume; run \"makeit start\" to begin a session")
		}

		if err := app.engine.Start(ctx, engine.StartRequest{}); err != nil {
			return fmt.Errorf("failed to resume timer: %w", err)
		}

		snap = app.engine.Snapshot()
		fmt.Printf("▶️  %s resumed · %s remaining\n", snap.Mode.Label(), formatCmdDuration(snap.Remaining))
		return nil
	},
}
