package cmd

import (
	"errors"
	"os"

	"drover/internal/group"
	"drover/internal/repo"
	"drover/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeConfigError indicates a configuration problem: a schema
	// violation, a bad pattern, a missing group or a subgroup loop.
	ExitCodeConfigError = 2
)

var (
	configPath string
	debug      bool
)

// rootCmd represents the base command for the drover application.
var rootCmd = &cobra.Command{
	Use:   "drover",
	Short: "Hierarchical grouping engine for managed hosts",
	Long: `drover maintains a registry of managed hosts (nodes) and hierarchical
groups loaded from a YAML configuration directory. It resolves group
membership and subgroup relations, both explicit and pattern-based, and
computes deterministic content hashes used to detect configuration drift.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelInfo
		if debug {
			level = logging.LevelDebug
		}
		logging.Init(level, cmd.ErrOrStderr())
	},
}

// SetVersion sets the version for the root command. Called from the main
// package to inject the build version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "drover version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode maps error types to semantic exit codes for scripting.
func getExitCode(err error) int {
	var invalidName *group.InvalidNameError
	var schema *group.SchemaError
	var pattern *group.PatternError
	var missing *group.MissingSubgroupError
	var loop *group.SubgroupLoopError
	var noSuchGroup *group.NoSuchGroupError

	switch {
	case errors.As(err, &invalidName),
		errors.As(err, &schema),
		errors.As(err, &pattern),
		errors.As(err, &missing),
		errors.As(err, &loop),
		errors.As(err, &noSuchGroup):
		return ExitCodeConfigError
	}
	return ExitCodeError
}

// loadRepo builds the registry from the configured (or default)
// configuration directory.
func loadRepo() (*repo.Repo, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = repo.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	return repo.Load(path)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", "",
		"configuration directory (default is $HOME/.config/drover)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGroupsCmd())
	rootCmd.AddCommand(newNodesCmd())
	rootCmd.AddCommand(newHashCmd())
	rootCmd.AddCommand(newWatchCmd())
}
