package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"drover/internal/repo"
	"drover/pkg/logging"

	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

// newWatchCmd creates the command that watches the configuration
// directory and reports hash drift across reloads.
func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the configuration and report group hash drift",
		Long: `Loads the registry, then watches the configuration directory. On
every change the registry is rebuilt from scratch and the state hash of
each group is compared against the previous build; changed groups are
logged. Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadRepo()
			if err != nil {
				return err
			}
			hashes, err := groupHashes(r)
			if err != nil {
				return err
			}
			logging.Info("Watch", "Tracking %d groups", len(hashes))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			watcher := repo.NewWatcher(r.Path(), watchDebounce)
			err = watcher.Start(ctx, func(fresh *repo.Repo) {
				freshHashes, err := groupHashes(fresh)
				if err != nil {
					logging.Error("Watch", err, "Hash computation failed after reload")
					return
				}
				reportDrift(hashes, freshHashes)
				hashes = freshHashes
			}, nil)
			if err != nil {
				return err
			}
			defer watcher.Stop()

			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond,
		"how long to wait for further changes before reloading")
	return cmd
}

// groupHashes computes the state hash of every group in the registry.
func groupHashes(r *repo.Repo) (map[string]string, error) {
	hashes := make(map[string]string)
	for _, g := range r.Groups() {
		digest, err := g.StateHash()
		if err != nil {
			return nil, err
		}
		hashes[g.Name()] = digest
	}
	return hashes, nil
}

func reportDrift(before, after map[string]string) {
	for name, digest := range after {
		previous, existed := before[name]
		switch {
		case !existed:
			logging.Info("Watch", "Group added: %s (%s)", name, digest)
		case previous != digest:
			logging.Info("Watch", "Group drifted: %s (%s -> %s)", name, previous, digest)
		}
	}
	for name := range before {
		if _, exists := after[name]; !exists {
			logging.Info("Watch", "Group removed: %s", name)
		}
	}
}
