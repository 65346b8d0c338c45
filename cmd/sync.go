package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ozanyilmaz/notevault/internal/gitsync"
	"github.com/ozanyilmaz/notevault/internal/localstore"
	"github.com/ozanyilmaz/notevault/internal/store"
)

var (
	syncUsername string
	syncRepo     string
	syncMessage  string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the vault with a git remote",
}

// syncInitCmd initializes the repository and stores the sync settings. The
// token is prompted for and kept in the local secret store, never in the
// vault.
var syncInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Configure git sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		if syncUsername == "" || syncRepo == "" {
			return fmt.Errorf("--username and --repo are required")
		}

		if res := a.sync.Init(cmd.Context()); !res.OK {
			return fmt.Errorf("git init: %s", res.Message)
		}
		cfg := gitsync.Config{Username: syncUsername, Repository: syncRepo}
		if err := a.store.WriteDoc(store.GitConfigDoc, cfg); err != nil {
			return err
		}

		token, err := promptPassword("Access token: ")
		if err != nil {
			return err
		}
		local, err := localstore.Open()
		if err != nil {
			return err
		}
		defer local.Close()
		if err := local.SetSecret(localstore.SecretSyncToken, token); err != nil {
			return err
		}
		fmt.Printf("Sync configured for %s/%s\n", syncUsername, syncRepo)
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show working tree status",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		st, err := a.sync.Status(cmd.Context())
		if err != nil {
			return err
		}
		if st.Clean {
			fmt.Printf("Clean on %s\n", st.Branch)
		} else {
			fmt.Printf("%d changed on %s\n", st.Modified, st.Branch)
		}
		if !st.HasCommits {
			fmt.Println("No commits yet.")
		}
		return nil
	},
}

var syncCommitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Stage and commit all changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		res := a.sync.Commit(cmd.Context(), syncMessage)
		if !res.OK {
			return fmt.Errorf("%s", res.Message)
		}
		fmt.Println("Committed:", res.Message)
		return nil
	},
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push the vault to the remote",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		cfg, token, err := syncCredentials(a)
		if err != nil {
			return err
		}
		res := a.sync.Push(cmd.Context(), cfg.Repository, a.cfg.Sync.Branch, cfg.Username, token)
		if !res.OK {
			return fmt.Errorf("%s", res.Message)
		}
		fmt.Println("Pushed.")
		return nil
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull the vault from the remote",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		cfg, token, err := syncCredentials(a)
		if err != nil {
			return err
		}
		res := a.sync.Pull(cmd.Context(), cfg, token)
		if !res.OK {
			return fmt.Errorf("%s", res.Message)
		}
		fmt.Println(res.Message)
		return nil
	},
}

func syncCredentials(a *app) (gitsync.Config, string, error) {
	var cfg gitsync.Config
	if err := a.store.ReadDoc(store.GitConfigDoc, &cfg); err != nil {
		return cfg, "", err
	}
	if cfg.Repository == "" {
		return cfg, "", fmt.Errorf("sync not configured (run 'notevault sync init')")
	}
	local, err := localstore.Open()
	if err != nil {
		return cfg, "", err
	}
	defer local.Close()
	token, err := local.Secret(localstore.SecretSyncToken)
	if err != nil {
		return cfg, "", err
	}
	if token == "" {
		return cfg, "", fmt.Errorf("no access token stored (run 'notevault sync init')")
	}
	return cfg, token, nil
}

func init() {
	syncInitCmd.Flags().StringVarP(&syncUsername, "username", "u", "", "GitHub username")
	syncInitCmd.Flags().StringVarP(&syncRepo, "repo", "r", "", "Repository name")
	syncCommitCmd.Flags().StringVarP(&syncMessage, "message", "m", "", "Commit message (default: timestamped)")
	syncCmd.AddCommand(syncInitCmd, syncStatusCmd, syncCommitCmd, syncPushCmd, syncPullCmd)
}
