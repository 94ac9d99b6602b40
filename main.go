package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sfm/internal/config"
	"sfm/internal/console"
	"sfm/internal/constants"
	"sfm/internal/dispatch"
	"sfm/internal/fileinfo"
	"sfm/internal/fileops"
	"sfm/internal/listing"
	"sfm/internal/logging"
	"sfm/internal/navigation"
	"sfm/internal/secret"
)

// Command line flags
var (
	debugMode  bool
	startPath  string
	configPath string
	noColor    bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   constants.ApplicationName + " [path]",
		Short: "Interactive console file manager",
		Long: `sfm is a menu-driven file manager for the terminal.

The start location may be a local directory or an SMB share:
  sfm /var/tmp
  sfm smb://fileserver/public/docs`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if startPath == "" && len(args) > 0 {
				startPath = args[0]
			}
			return run(cmd)
		},
	}

	cmd.Flags().BoolVarP(&debugMode, "debug", "d", false, "Enable debug logging")
	cmd.Flags().StringVar(&startPath, "path", "", "Starting directory path or smb:// URL")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config.toml file")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	return cmd
}

func run(cmd *cobra.Command) error {
	configManager := config.NewManager(configPath)
	cfg, err := configManager.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logCfg := logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, OutputPath: cfg.Log.File}
	if err := logging.Init(logCfg); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer func() { _ = logging.Sync() }()
	if debugMode {
		logging.SetLevel("debug")
	}
	logging.Debug("logging initialized", logging.String("level", logging.Level()))

	if !configManager.FromFile() {
		logging.Debug("config file not found, using defaults", logging.Path(configManager.Path()))
	}

	if !cmd.Flags().Changed("no-color") && (!cfg.UI.Color || os.Getenv("NO_COLOR") != "") {
		noColor = true
	}
	if noColor {
		color.NoColor = true
	}

	out := console.NewPrinter(os.Stdout, noColor)
	prompter := console.NewPrompter(os.Stdin, os.Stdout)

	store, keyringErr := secret.NewKeyringStore(constants.KeyringService)
	if keyringErr != nil {
		logging.Warn("keyring unavailable, credentials kept in memory only", logging.Err(keyringErr))
		store = secret.NewMemoryStore(constants.KeyringService)
	}
	fileinfo.SetSecretStore(store)
	fileinfo.SetRememberCredentials(cfg.SMB.RememberCredentials)
	askRemember := keyringErr == nil && !cfg.SMB.RememberCredentials
	fileinfo.SetCredentialsProvider(fileinfo.NewCachedCredentialsProvider(
		console.NewCredentialsPrompt(prompter, out, askRemember)))

	if startPath == "" {
		pwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
		startPath = pwd
	}

	vfs, loc, err := fileinfo.ResolveStart(startPath, nil, cfg.SMB.Timeout())
	if err != nil {
		return fmt.Errorf("opening %s: %w", startPath, err)
	}
	if closer, ok := vfs.(*fileinfo.SMBFS); ok {
		defer closer.Close()
	}

	// The start location must be an existing directory
	if info, err := vfs.Stat(loc.Native); err != nil {
		return fmt.Errorf("accessing path '%s': %w", loc.Display, err)
	} else if !info.IsDir() {
		return fmt.Errorf("path '%s' is not a directory", loc.Display)
	}
	logging.Info("starting",
		logging.String("location", loc.Display),
		logging.String("provider", loc.Provider))

	nav := navigation.New(vfs, loc.Native, loc)
	lister := listing.New(vfs, listing.Options{
		HideHidden: !cfg.List.ShowHidden,
		Pattern:    cfg.List.Filter,
	})
	dispatcher := dispatch.New(nav, fileops.New(vfs), lister, dispatch.Options{
		ConfirmDelete: cfg.Ops.ConfirmDelete,
	})

	return console.New(nav, dispatcher, prompter, out).Run()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
