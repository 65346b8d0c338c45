package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ozanyilmaz/notevault/internal/crypto"
	"github.com/ozanyilmaz/notevault/internal/localstore"
	"github.com/ozanyilmaz/notevault/internal/markdown"
	"github.com/ozanyilmaz/notevault/internal/vault"
)

var noteRaw bool

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
}

var noteListCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List notes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		dir := a.vault.NotesDir()
		if len(args) == 1 {
			dir = filepath.Join(a.vault.Root, args[0])
		}
		for _, e := range a.vault.List(dir) {
			name := e.Name
			if e.IsDir {
				name += "/"
			}
			fmt.Println(name)
		}
		return nil
	},
}

var noteTreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the note tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		printTree(a.vault.Tree(a.vault.NotesDir()), 0)
		return nil
	},
}

func printTree(nodes []vault.Node, depth int) {
	for _, n := range nodes {
		name := n.Name
		if n.IsDir {
			name += "/"
		}
		fmt.Println(strings.Repeat("  ", depth) + name)
		printTree(n.Children, depth+1)
	}
}

var noteNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		path := notePath(a, args[0])
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := a.vault.CreateFolder(filepath.Dir(path)); err != nil {
			return err
		}
		title := strings.TrimSuffix(filepath.Base(path), ".md")
		if err := a.vault.WriteNote(path, fmt.Sprintf("# %s\n\n", title)); err != nil {
			return err
		}
		fmt.Println("Created", relPath(a, path))
		return nil
	},
}

var noteShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Render a note to the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		content, err := a.vault.ReadNote(notePath(a, args[0]))
		if err != nil {
			return err
		}
		if crypto.IsEncrypted(content) {
			return fmt.Errorf("note is encrypted (use 'notevault note decrypt')")
		}
		if noteRaw {
			fmt.Print(content)
			return nil
		}
		fmt.Print(markdown.New().Render(content))
		return nil
	},
}

var noteRmCmd = &cobra.Command{
	Use:   "rm [name]",
	Short: "Delete a note or folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		return a.vault.Delete(notePath(a, args[0]))
	},
}

var noteMvCmd = &cobra.Command{
	Use:   "mv [old] [new]",
	Short: "Rename or move a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		return a.vault.Rename(notePath(a, args[0]), notePath(a, args[1]))
	},
}

var noteEncryptCmd = &cobra.Command{
	Use:   "encrypt [name]",
	Short: "Encrypt a note in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		path := notePath(a, args[0])
		content, err := a.vault.ReadNote(path)
		if err != nil {
			return err
		}
		if crypto.IsEncrypted(content) {
			return fmt.Errorf("note is already encrypted")
		}

		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}

		sealed, err := crypto.Encrypt(content, password)
		if err != nil {
			return err
		}
		if err := a.vault.WriteNote(path, sealed); err != nil {
			return err
		}
		if local, err := localstore.Open(); err == nil {
			_ = local.MarkEncrypted(relPath(a, path))
			_ = local.Close()
		}
		fmt.Println("Encrypted", relPath(a, path))
		return nil
	},
}

var noteDecryptCmd = &cobra.Command{
	Use:   "decrypt [name]",
	Short: "Decrypt a note in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		path := notePath(a, args[0])
		content, err := a.vault.ReadNote(path)
		if err != nil {
			return err
		}
		if !crypto.IsEncrypted(content) {
			return fmt.Errorf("note is not encrypted")
		}

		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		plain, err := crypto.Decrypt(content, password)
		if err != nil {
			return err
		}
		if err := a.vault.WriteNote(path, plain); err != nil {
			return err
		}
		if local, err := localstore.Open(); err == nil {
			_ = local.Unmark(relPath(a, path))
			_ = local.Close()
		}
		fmt.Println("Decrypted", relPath(a, path))
		return nil
	},
}

// noteOpenCmd resolves a wiki-link target the way [[links]] resolve inside
// notes: exact match under Notes/, then a recursive search, then a new note.
var noteOpenCmd = &cobra.Command{
	Use:   "open [name]",
	Short: "Open a note by wiki-link name, creating it if missing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		path, created, err := a.vault.ResolveWikiLink(strings.TrimSuffix(args[0], ".md"))
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintln(os.Stderr, "Created", relPath(a, path))
		}
		content, err := a.vault.ReadNote(path)
		if err != nil {
			return err
		}
		if crypto.IsEncrypted(content) {
			return fmt.Errorf("note is encrypted (use 'notevault note decrypt')")
		}
		fmt.Print(markdown.New().Render(content))
		return nil
	},
}

var noteLinksCmd = &cobra.Command{
	Use:   "links [name]",
	Short: "List a note's wiki links",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		content, err := a.vault.ReadNote(notePath(a, args[0]))
		if err != nil {
			return err
		}
		for _, name := range markdown.WikiLinks(content) {
			fmt.Println(name)
		}
		return nil
	},
}

// notePath resolves a user-supplied name to an absolute path. Bare names go
// under Notes/ and get a .md extension; paths with a separator are taken
// relative to the vault root.
func notePath(a *app, name string) string {
	if !strings.HasSuffix(name, ".md") && !strings.Contains(name, "/") {
		name += ".md"
	}
	if strings.Contains(name, "/") {
		return filepath.Join(a.vault.Root, name)
	}
	return filepath.Join(a.vault.NotesDir(), name)
}

func relPath(a *app, path string) string {
	if rel, err := filepath.Rel(a.vault.Root, path); err == nil {
		return rel
	}
	return path
}

func promptPassword(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func init() {
	noteShowCmd.Flags().BoolVar(&noteRaw, "raw", false, "Print the raw markdown without styling")
	noteCmd.AddCommand(noteListCmd, noteTreeCmd, noteNewCmd, noteShowCmd, noteOpenCmd, noteLinksCmd, noteRmCmd, noteMvCmd, noteEncryptCmd, noteDecryptCmd)
}
