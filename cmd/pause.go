package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ronak-kumar-sing/makeit/internal/domain"
)

// pauseCmd represents the pause command
var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the running countdown",
	Long:  `Freeze the running countdown. The remaining time is kept until you resume.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := app.engine.Pause(ctx); err != nil {
			if errors.Is(err, domain.ErrTimerNotRunning) {
				return fmt.Errorf("no timer is running")
			}
			return fmt.Errorf("failed to pause timer: %w", err)
		}

		snap := app.engine.Snapshot()
		fmt.Printf("⏸️  Paused with %s remaining. Run \"makeit resume\" to continue.\n",
			formatCmdDuration(snap.Remaining))
		return nil
	},
}
