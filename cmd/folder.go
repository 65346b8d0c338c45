package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ozanyilmaz/notevault/internal/task"
)

var folderParent string

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage task folders",
}

var folderAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a task folder",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		f, err := a.tasks.AddFolder(task.Folder{
			Name:     strings.Join(args, " "),
			ParentID: folderParent,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added folder %s (%s)\n", f.Name, f.ID)
		return nil
	},
}

var folderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List task folders",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		for _, f := range a.tasks.Folders() {
			fmt.Printf("%s  %s\n", f.ID, f.Name)
		}
		return nil
	},
}

var folderRenameCmd = &cobra.Command{
	Use:   "rename [id] [name]",
	Short: "Rename a task folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		return a.tasks.RenameFolder(args[0], args[1])
	},
}

var folderRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a folder and its subfolders",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		return a.tasks.DeleteFolder(args[0])
	},
}

func init() {
	folderAddCmd.Flags().StringVar(&folderParent, "parent", "", "Parent folder id")
	folderCmd.AddCommand(folderAddCmd, folderListCmd, folderRenameCmd, folderRmCmd)
}
