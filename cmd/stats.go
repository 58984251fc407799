package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics",
	Long:  `Display today's focus totals, your daily streak and recent sessions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		now := time.Now()
		sessions := app.storage.Sessions()

		stats, err := sessions.GetDailyStats(ctx, now)
		if err != nil {
			return fmt.Errorf("failed to load daily stats: %w", err)
		}
		streak, err := sessions.GetStreak(ctx, now)
		if err != nil {
			return fmt.Errorf("failed to load streak: %w", err)
		}

		fmt.Printf("📊 Today: %d focus sessions · %d minutes\n", stats.FocusSessions, stats.FocusMinutes)
		fmt.Printf("🔥 Streak: %d day(s)\n", streak)

		recent, err := sessions.FindRecent(ctx, now.AddDate(0, 0, -7))
		if err != nil {
			return fmt.Errorf("failed to load recent sessions: %w", err)
		}
		if len(recent) == 0 {
			fmt.Println("\nNo sessions in the last 7 days. Run \"makeit start\" to begin one.")
			return nil
		}

		fmt.Println("\nLast 7 days:")
		for _, rec := range recent {
			line := fmt.Sprintf("   %s · %dm %s", rec.Timestamp.Local().Format("Mon 15:04"), rec.DurationMinutes, rec.Mode.Label())
			if rec.Subject != nil {
				line += fmt.Sprintf(" · %s", *rec.Subject)
			}
			fmt.Println(line)
		}
		return nil
	},
}
