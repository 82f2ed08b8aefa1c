package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/hdate/internal/config"
	"github.com/aidanlsb/hdate/internal/holidays"
	"github.com/aidanlsb/hdate/internal/ui"
	"github.com/aidanlsb/hdate/pkg/humandate"
)

var (
	// Global flags
	configPath string
	regionFlag string
	debugFlag  bool

	// nowFunc is the clock for relative phrases; tests replace it.
	nowFunc = time.Now
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hdate",
	Short: "hdate - resolve informal date phrases",
	Long: `hdate turns informal date phrases into timestamps.

It understands shorthand ("tmrw", "2day"), relative phrases ("2 weeks ago",
"last monday") and holidays ("the day after diwali").`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Config commands must work with a broken config file.
		if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
			return nil
		}
		switch cmd.Name() {
		case "config", "version", "help", "completion":
			return nil
		}

		cfg, err := loadConfig()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Run 'hdate config path' to find the file")
		}
		setupLogging(os.Stderr, cfg.Log, debugFlag)
		if strings.TrimSpace(cfg.UI.Accent) != "" {
			ui.ConfigureTheme(cfg.UI.Accent)
		}
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&regionFlag, "region", "", "Holiday region (overrides region in config)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Log every resolution step to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for script use)")
}

// loadConfig loads the config named by --config, or the default config. A
// missing file yields defaults either way.
func loadConfig() (*config.Config, error) {
	return config.LoadOrDefault(config.ResolveConfigPath(configPath))
}

// runtimeEnv is what the resolution commands need.
type runtimeEnv struct {
	cfg      *config.Config
	calendar *holidays.Calendar
	region   string
}

// loadEnv loads the config and holiday calendar and checks the region.
func loadEnv() (*runtimeEnv, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, handleError(ErrConfigInvalid, err, "Run 'hdate config path' to find the file")
	}

	cal, err := cfg.Calendar()
	if err != nil {
		return nil, handleError(ErrDatasetInvalid, err, "Check holidays_file in config.toml")
	}

	region := cfg.RegionOrDefault()
	if strings.TrimSpace(regionFlag) != "" {
		region = strings.ToUpper(strings.TrimSpace(regionFlag))
	}
	if _, err := cal.Region(region); err != nil {
		return nil, handleError(ErrUnknownRegion, err, "Run 'hdate holidays regions' to list regions")
	}

	return &runtimeEnv{cfg: cfg, calendar: cal, region: region}, nil
}

// newResolver builds a resolver from the environment.
func (e *runtimeEnv) newResolver() (*humandate.Resolver, error) {
	r, err := humandate.New(humandate.Config{
		Terms:    e.cfg.Terms,
		Calendar: e.calendar,
		Region:   e.region,
		Logger:   slog.Default(),
		Now:      nowFunc,
	})
	if err != nil {
		return nil, handleError(ErrConfigInvalid, err, "Check [[terms]] in config.toml")
	}
	return r, nil
}
