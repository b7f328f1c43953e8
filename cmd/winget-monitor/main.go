package main

import (
	"fmt"
	"os"

	"github.com/cnoize/winget-monitor/internal/common/config"
	"github.com/cnoize/winget-monitor/internal/common/logger"
	"github.com/cnoize/winget-monitor/internal/common/output"
	"github.com/cnoize/winget-monitor/internal/monitor"
	"github.com/cnoize/winget-monitor/internal/winget"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	noColor    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "winget-monitor",
	Short: "Record available winget upgrades",
	Long: `Runs 'winget upgrade', writes the available updates as JSON to ~/.winget-monitor
and appends a run log to ~/.winget-monitor.log.

If winget is missing or fails, an empty update list is written and the run still succeeds.`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			output.NoColor()
		}
	},
	Run: runMonitor,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every parsed update")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Read overrides from this YAML or TOML file")
}

// loadConfig reads --config when given, otherwise the default search path
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

func runMonitor(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(monitor.ExitInternalError)
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolving log path: %v\n", err)
		os.Exit(monitor.ExitInternalError)
	}
	log := logger.New(logPath)
	log.SetVerbose(verbose)

	outputPath, err := cfg.OutputPath()
	if err != nil {
		log.Error("Internal error: %v", err)
		os.Exit(monitor.ExitInternalError)
	}

	runner := winget.NewShellRunner(cfg.ShellArgs(), cfg.CommandLine())
	os.Exit(monitor.New(runner, log, outputPath).Run())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(monitor.ExitInternalError)
	}
}
