package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ronak-kumar-sing/makeit/internal/engine"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the countdown live",
	Long: `Keep the process in the foreground and print the countdown every
second. The timer itself does not need this: it stays anchored to
wall-clock time whether or not anyone is watching. Press Ctrl+C to
detach; the countdown keeps going.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := app.engine.Snapshot()
		if snap.Phase == engine.PhaseIdle {
			fmt.Printf("💤 Idle · next up: %s (%s)\n", snap.Mode.Label(), formatCmdDuration(snap.Remaining))
			return nil
		}

		app.engine.Subscribe(func(s engine.Snapshot) {
			switch s.Phase {
			case engine.PhaseRunning:
				line := fmt.Sprintf("⏱️  %s · %s", s.Mode.Label(), formatCmdDuration(s.Remaining))
				if s.TaskTitle != nil {
					line += fmt.Sprintf(" · %s", *s.TaskTitle)
				}
				fmt.Printf("\r%s    ", line)
			case engine.PhaseIdle:
				fmt.Printf("\n✅ Done! Next up: %s (%s)\n", s.Mode.Label(), formatCmdDuration(s.Remaining))
			}
		})

		fmt.Printf("Watching %s · Ctrl+C to detach\n", snap.Mode.Label())
		ctx := setupSignalHandler()
		<-ctx.Done()
		fmt.Println()
		return nil
	},
}
