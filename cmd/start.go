package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ronak-kumar-sing/makeit/internal/domain"
	"github.com/ronak-kumar-sing/makeit/internal/engine"
)

var (
	startTaskID  string
	startTitle   string
	startSubject string
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start [task-id]",
	Short: "Start or resume the countdown",
	Long: `Start the countdown for the current mode, or resume a paused one.
Optionally attach a saved task by ID, or a free-form title and subject.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		req := engine.StartRequest{}

		taskID := startTaskID
		if taskID == "" && len(args) > 0 {
			taskID = args[0]
		}
		if taskID != "" {
			task, err := app.storage.Tasks().FindByID(ctx, taskID)
			if err != nil {
				return fmt.Errorf("failed to look up task: %w", err)
			}
			req.TaskID = &task.ID
			req.TaskTitle = &task.Title
			if task.Subject != nil {
				req.Subject = task.Subject
			}
		}
		if startTitle != "" {
			req.TaskTitle = &startTitle
		}
		if startSubject != "" {
			req.Subject = &startSubject
		}

		if err := app.engine.Start(ctx, req); err != nil {
			if errors.Is(err, domain.ErrTimerAlreadyRunning) {
				snap := app.engine.Snapshot()
				return fmt.Errorf("a %s timer is already running (%s remaining)",
					snap.Mode.Label(), formatCmdDuration(snap.Remaining))
			}
			return fmt.Errorf("failed to start timer: %w", err)
		}

		snap := app.engine.Snapshot()
		fmt.Printf("⏱️  %s started · %s remaining\n", snap.Mode.Label(), formatCmdDuration(snap.Remaining))
		if snap.TaskTitle != nil {
			fmt.Printf("   Working on: %s\n", *snap.TaskTitle)
		}
		fmt.Println("   Run \"makeit watch\" to keep a live countdown on screen.")
		return nil
	},
}

func init() {
	startCmd.Flags().StringVarP(&startTaskID, "task", "t", "", "Task ID to attach to this session")
	startCmd.Flags().StringVar(&startTitle, "title", "", "Free-form title for this session")
	startCmd.Flags().StringVarP(&startSubject, "subject", "s", "", "Subject this session counts toward")
}
