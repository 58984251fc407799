package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ronak-kumar-sing/makeit/internal/domain"
)

var taskAddSubject string

// taskCmd represents the task command group
var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage study tasks",
	Long: `Add and list study tasks. Attach a task when starting a session and
its progress advances automatically as focus sessions complete.`,
}

// taskAddCmd represents the task add command
var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var subject *string
		if taskAddSubject != "" {
			subject = &taskAddSubject
		}

		task, err := domain.NewTask(strings.Join(args, " "), subject)
		if err != nil {
			return err
		}
		if err := app.storage.Tasks().Save(ctx, task); err != nil {
			return fmt.Errorf("failed to save task: %w", err)
		}

		fmt.Printf("📋 Added task %s\n", task.Title)
		fmt.Printf("   ID: %s\n", task.ID)
		return nil
	},
}

// taskListCmd represents the task list command
var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		tasks, err := app.storage.Tasks().FindAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks yet. Add one with \"makeit task add <title>\".")
			return nil
		}

		for _, task := range tasks {
			marker := "▢"
			if task.Completed {
				marker = "✅"
			}
			line := fmt.Sprintf("%s %s · %d%%", marker, task.Title, task.Progress)
			if task.Subject != nil {
				line += fmt.Sprintf(" · %s", *task.Subject)
			}
			fmt.Println(line)
			fmt.Printf("   ID: %s\n", task.ID)
		}
		return nil
	},
}

func init() {
	taskAddCmd.Flags().StringVarP(&taskAddSubject, "subject", "s", "", "Subject this task belongs to")
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
}
