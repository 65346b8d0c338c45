package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ozanyilmaz/notevault/internal/ui"
)

// tuiCmd launches the Bubble Tea TUI.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		return ui.Run(ui.App{
			Config:   a.cfg,
			Vault:    a.vault,
			Tasks:    a.tasks,
			Routines: a.routines,
			Searcher: a.searcher,
			Sync:     a.sync,
		})
	},
}
