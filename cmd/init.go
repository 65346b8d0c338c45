package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ozanyilmaz/notevault/internal/localstore"
	"github.com/ozanyilmaz/notevault/internal/vault"
)

// initCmd creates the vault skeleton and records its path in the config.
var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a new vault",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var root string
		var err error
		if len(args) == 1 {
			if root, err = filepath.Abs(args[0]); err != nil {
				return err
			}
		} else if root, err = vault.DefaultRoot(); err != nil {
			return err
		}

		if err := vault.New(root).Init(); err != nil {
			return err
		}
		if err := saveVaultPath(root); err != nil {
			return err
		}
		// Mirror into the local store so the TUI can boot without the
		// config file.
		if local, err := localstore.Open(); err == nil {
			_ = local.Set("vault_path", root)
			_ = local.Close()
		}
		fmt.Printf("Vault ready at %s\n", root)
		return nil
	},
}

func saveVaultPath(root string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".config", "notevault")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, "config.yaml")

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	_ = v.ReadInConfig() // ok if missing
	v.Set("vault_path", root)
	return v.WriteConfigAs(path)
}
