package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ozanyilmaz/notevault/internal/task"
	"github.com/ozanyilmaz/notevault/internal/utils"
)

var (
	taskTitle    string
	taskDate     string
	taskPriority string
	taskFolder   string
	taskParent   string
	taskAll      bool
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		t := task.Task{
			Title:    strings.Join(args, " "),
			Priority: task.Priority(taskPriority),
			FolderID: taskFolder,
		}
		if taskDate != "" {
			due, err := utils.ParseFlexibleDate(taskDate, time.Local)
			if err != nil {
				return err
			}
			t.Date = &due
		}

		var added task.Task
		if taskParent != "" {
			added, err = a.tasks.AddSubtask(taskParent, t)
		} else {
			added, err = a.tasks.Add(t)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Added %s (%s)\n", added.Title, added.ID)
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks as a tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		printTasks(a.tasks.Tasks(), 0)
		return nil
	},
}

func printTasks(forest []task.Task, depth int) {
	for _, t := range forest {
		if t.Completed && !taskAll {
			continue
		}
		box := "☐"
		if t.Completed {
			box = "✓"
		}
		line := strings.Repeat("  ", depth) + box + " " + t.Title
		if t.Priority != "" {
			line += " (" + string(t.Priority) + ")"
		}
		if t.Date != nil {
			line += " due " + t.Date.Format("2006-01-02")
		}
		line += "  " + t.ID
		fmt.Println(line)
		printTasks(t.Subtasks, depth+1)
	}
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a task's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		var due *time.Time
		if taskDate != "" {
			d, err := utils.ParseFlexibleDate(taskDate, time.Local)
			if err != nil {
				return err
			}
			due = &d
		}
		return a.tasks.Update(args[0], func(t *task.Task) {
			if taskTitle != "" {
				t.Title = taskTitle
			}
			if cmd.Flags().Changed("priority") {
				t.Priority = task.Priority(taskPriority)
			}
			if due != nil {
				t.Date = due
			}
			if cmd.Flags().Changed("folder") {
				t.FolderID = taskFolder
			}
		})
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Toggle a task's completion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		return a.tasks.Toggle(args[0])
	},
}

var taskRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a task and its subtasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		return a.tasks.Delete(args[0])
	},
}

func init() {
	taskAddCmd.Flags().StringVarP(&taskDate, "date", "d", "", "Due date (2006-01-02, today, tomorrow, ...)")
	taskAddCmd.Flags().StringVarP(&taskPriority, "priority", "p", "", "Priority: P1|P2|P3")
	taskAddCmd.Flags().StringVarP(&taskFolder, "folder", "f", "", "Folder id")
	taskAddCmd.Flags().StringVar(&taskParent, "parent", "", "Parent task id (adds a subtask)")
	taskListCmd.Flags().BoolVarP(&taskAll, "all", "a", false, "Include completed tasks")
	taskUpdateCmd.Flags().StringVarP(&taskTitle, "title", "t", "", "New title")
	taskUpdateCmd.Flags().StringVarP(&taskDate, "date", "d", "", "New due date")
	taskUpdateCmd.Flags().StringVarP(&taskPriority, "priority", "p", "", "New priority (empty clears)")
	taskUpdateCmd.Flags().StringVarP(&taskFolder, "folder", "f", "", "New folder id (empty clears)")
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskUpdateCmd, taskDoneCmd, taskRmCmd)
}
