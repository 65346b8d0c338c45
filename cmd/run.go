package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ozanyilmaz/notevault/internal/markdown"
	"github.com/ozanyilmaz/notevault/internal/shell"
)

// runCmd executes a runnable code block from a note. With no index it lists
// the note's script blocks.
var runCmd = &cobra.Command{
	Use:   "run [note] [index]",
	Short: "Run a script block from a note",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		content, err := a.vault.ReadNote(notePath(a, args[0]))
		if err != nil {
			return err
		}
		scripts := markdown.Scripts(content)
		if len(scripts) == 0 {
			return fmt.Errorf("no runnable code blocks in %s", args[0])
		}

		if len(args) == 1 {
			for i, s := range scripts {
				fmt.Printf("[%d] %s\n%s\n", i, s.Lang, s.Code)
			}
			return nil
		}

		idx, err := strconv.Atoi(args[1])
		if err != nil || idx < 0 || idx >= len(scripts) {
			return fmt.Errorf("script index out of range (0-%d)", len(scripts)-1)
		}
		res := shell.New(a.vault.Root).Execute(cmd.Context(), scriptCommand(scripts[idx]))
		fmt.Print(res.Output)
		if !res.OK {
			return fmt.Errorf("script failed")
		}
		return nil
	},
}

// scriptCommand wraps a block for sh -c. JavaScript blocks go through node;
// shell blocks run as-is.
func scriptCommand(b markdown.Block) string {
	switch b.Lang {
	case "js", "javascript":
		return "node <<'NOTEVAULT_SCRIPT'\n" + b.Code + "\nNOTEVAULT_SCRIPT"
	default:
		return b.Code
	}
}
