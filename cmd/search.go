package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search notes, tasks and routines",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		hits := a.searcher.Search(strings.Join(args, " "))
		if len(hits) == 0 {
			fmt.Println("No matches.")
			return nil
		}
		for _, h := range hits {
			fmt.Printf("[%s] %s", h.Kind, h.Title)
			if h.Snippet != "" {
				fmt.Printf("  %s", h.Snippet)
			}
			fmt.Println()
		}
		return nil
	},
}
