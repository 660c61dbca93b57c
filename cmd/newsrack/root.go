package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"newsrack/internal/config"
	"newsrack/internal/debuglog"
	"newsrack/internal/prefs"
	"newsrack/internal/tui"
)

// Version is set at build time.
var Version = "dev"

var (
	flagConfig   string
	flagFeed     string
	flagTag      string
	flagQuiet    bool
	flagLogLevel string
	flagLogFile  string
)

var rootCmd = &cobra.Command{
	Use:   "newsrack",
	Short: "Terminal news feed browser",
	Long: "newsrack loads a news collection once and lets you browse it with\n" +
		"tag filters, live search, pagination, lazy image loading and sharing.",
	RunE: runBrowser,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().StringVar(&flagFeed, "feed", "", "news source URL or file (overrides config)")
	rootCmd.Flags().StringVar(&flagTag, "tag", "", "start with this tag filter active")
	rootCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "skip the startup banner")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "off", "debug log level (debug, info, warn, error, off)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "debug log file (default: xdg state dir)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateConfigCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("newsrack %s\n", Version)
	},
}

var generateConfigCmd = &cobra.Command{
	Use:   "generate-config",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigPath()
		if len(args) > 0 {
			path = args[0]
		}
		if err := config.GenerateDefaultConfig(path); err != nil {
			return fmt.Errorf("generating config: %w", err)
		}
		fmt.Printf("Wrote default configuration to %s\n", path)
		return nil
	},
}

func runBrowser(cmd *cobra.Command, args []string) error {
	if err := debuglog.Setup(debuglog.ParseLevel(flagLogLevel), flagLogFile); err != nil {
		return err
	}
	defer debuglog.Close()

	if !flagQuiet {
		fmt.Printf("newsrack %s — news feed browser\n", Version)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagFeed != "" {
		cfg.Feed.Source = flagFeed
	}

	// Preferences are optional; a locked or unwritable store costs only
	// theme persistence.
	store, err := prefs.NewStore(cfg.Storage.PrefsPath)
	if err != nil {
		debuglog.Warnf("preferences unavailable: %v", err)
		store = nil
	} else {
		defer store.Close()
	}

	app := tui.NewApp(cfg, store, flagTag)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
