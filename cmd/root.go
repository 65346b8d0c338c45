package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ozanyilmaz/notevault/internal/config"
	"github.com/ozanyilmaz/notevault/internal/gitsync"
	"github.com/ozanyilmaz/notevault/internal/localstore"
	"github.com/ozanyilmaz/notevault/internal/routine"
	"github.com/ozanyilmaz/notevault/internal/search"
	"github.com/ozanyilmaz/notevault/internal/store"
	"github.com/ozanyilmaz/notevault/internal/task"
	"github.com/ozanyilmaz/notevault/internal/vault"
	"github.com/ozanyilmaz/notevault/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "notevault",
	Short: "Local-first notes, tasks and routines",
}

// Execute resolves the version late so build metadata injected into main is
// picked up.
func Execute() error {
	rootCmd.Version = version.GetVersion()
	return rootCmd.Execute()
}

// app bundles the opened services most commands need.
type app struct {
	cfg      config.Config
	vault    *vault.Vault
	store    *store.Store
	tasks    *task.Service
	routines *routine.Service
	searcher *search.Searcher
	sync     *gitsync.Client
}

// openApp loads config, opens the vault's services, and applies pending
// streak resets so every command sees current state.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	root := cfg.VaultPath
	if root == "" {
		// Fall back to the local-store mirror, then the default location.
		if local, err := localstore.Open(); err == nil {
			root, _ = local.Get("vault_path")
			_ = local.Close()
		}
	}
	if root == "" {
		if root, err = vault.DefaultRoot(); err != nil {
			return nil, err
		}
	}
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("vault not found at %s (run 'notevault init')", root)
	}

	v := vault.New(root)
	st := store.New(root)

	tasks, err := task.NewService(st)
	if err != nil {
		return nil, err
	}
	routines, err := routine.NewService(st)
	if err != nil {
		return nil, err
	}

	// Vault-synced settings override the machine config where set.
	var settings struct {
		Theme string `json:"theme"`
	}
	if err := st.ReadDoc(store.SettingsDoc, &settings); err == nil && settings.Theme != "" {
		cfg.Theme = settings.Theme
	}
	if _, err := routines.CheckStreaks(); err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		vault:    v,
		store:    st,
		tasks:    tasks,
		routines: routines,
		searcher: &search.Searcher{Vault: v, Tasks: tasks, Routines: routines},
		sync:     gitsync.New(root),
	}, nil
}

func init() {
	rootCmd.AddCommand(initCmd, tuiCmd, noteCmd, taskCmd, folderCmd, routineCmd, syncCmd, searchCmd, runCmd, versionCmd)
}
