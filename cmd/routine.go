package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ozanyilmaz/notevault/internal/notify"
	"github.com/ozanyilmaz/notevault/internal/routine"
	"github.com/ozanyilmaz/notevault/internal/schedule"
)

var (
	routineType     string
	routineFreq     int
	routineWeekday  int
	routineMonthDay string
)

var routineCmd = &cobra.Command{
	Use:   "routine",
	Short: "Manage recurring routines",
}

var routineAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a routine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		r := routine.Routine{
			Title:     args[0],
			Type:      routine.Type(routineType),
			Frequency: routineFreq,
		}
		if r.Type == routine.TypeWeekly || cmd.Flags().Changed("weekday") {
			wd := routineWeekday
			r.DayOfWeek = &wd
		}
		if routineMonthDay != "" {
			r.DayOfMonth = routine.DayOfMonth(routineMonthDay)
		} else if r.Type == routine.TypeMonthly {
			r.DayOfMonth = routine.MonthDayFirst
		}

		added, err := a.routines.Add(r)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s, first due %s\n", added.Title, added.NextDue.Format("Mon Jan 2 2006"))
		return nil
	},
}

var routineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List routines",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		now := time.Now()
		for _, r := range a.routines.All() {
			due := "-"
			if r.NextDue != nil {
				due = r.NextDue.Format("2006-01-02")
				if r.Overdue(now) {
					due += " (overdue)"
				}
			}
			fmt.Printf("%-30s %-8s due %-22s streak %-3d %s\n", r.Title, r.Type, due, r.Streak, r.ID)
		}
		return nil
	},
}

var routineCompleteCmd = &cobra.Command{
	Use:   "complete [id]",
	Short: "Complete a routine occurrence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		r, ok := a.routines.Get(args[0])
		if !ok {
			return fmt.Errorf("routine %s not found", args[0])
		}
		if err := a.routines.Complete(r.ID); err != nil {
			return err
		}
		r, _ = a.routines.Get(r.ID)
		fmt.Printf("Streak %d, next due %s\n", r.Streak, r.NextDue.Format("Mon Jan 2 2006"))
		return nil
	},
}

var routineRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a routine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		return a.routines.Delete(args[0])
	},
}

// routineCheckCmd applies pending streak resets and reports overdue routines.
// openApp already runs the reset; this command surfaces the result.
var routineCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check for overdue routines",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		now := time.Now()
		overdue := 0
		for _, r := range a.routines.All() {
			if r.Overdue(now) {
				overdue++
				fmt.Printf("overdue: %s (due %s)\n", r.Title, r.NextDue.Format("2006-01-02"))
			}
		}
		if overdue == 0 {
			fmt.Println("All routines on track.")
			return nil
		}
		if a.cfg.Reminder.Enabled {
			title, msg := notify.FormatOverduePrompt(overdue)
			_ = notify.Info(title, msg)
		}
		return nil
	},
}

func init() {
	routineAddCmd.Flags().StringVarP(&routineType, "type", "t", "daily", "Type: daily|weekly|monthly")
	routineAddCmd.Flags().IntVarP(&routineFreq, "frequency", "f", 1, "Repeat every N days/weeks/months")
	routineAddCmd.Flags().IntVarP(&routineWeekday, "weekday", "w", 1, "Weekday for weekly routines (0=Sunday)")
	routineAddCmd.Flags().StringVarP(&routineMonthDay, "monthday", "m", "", "Day for monthly routines: first|last")
	routineCmd.AddCommand(routineAddCmd, routineListCmd, routineCompleteCmd, routineRmCmd, routineCheckCmd, routineWatchCmd)
}

// routineWatchCmd runs the reminder loop in the foreground, checking for
// streak resets and overdue routines on the configured interval.
var routineWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch routines and notify when they fall overdue",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		interval := time.Duration(a.cfg.Reminder.Interval) * time.Minute
		fmt.Printf("Watching routines every %s. Ctrl+C to stop.\n", interval)
		schedule.Every(ctx, interval, func() {
			_, _ = a.routines.CheckStreaks()
			now := time.Now()
			overdue := 0
			for _, r := range a.routines.All() {
				if r.Overdue(now) {
					overdue++
				}
			}
			if overdue > 0 && a.cfg.Reminder.Enabled {
				title, msg := notify.FormatOverduePrompt(overdue)
				_ = notify.Info(title, msg)
			}
		})
		return nil
	},
}
