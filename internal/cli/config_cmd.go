package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/hdate/internal/config"
	"github.com/aidanlsb/hdate/internal/resolver"
)

type configContext struct {
	cfg          *config.Config
	configPath   string
	configExists bool
}

var (
	configSetRegion       string
	configSetPrefer       string
	configSetHolidaysFile string
	configSetUIAccent     string
	configSetLogLevel     string
	configSetLogFormat    string
)

func loadConfigContext() (*configContext, error) {
	path := config.ResolveConfigPath(configPath)
	_, statErr := os.Stat(path)
	if statErr != nil && !os.IsNotExist(statErr) {
		return nil, statErr
	}

	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	return &configContext{
		cfg:          cfg,
		configPath:   path,
		configExists: statErr == nil,
	}, nil
}

func configData(ctx *configContext) map[string]interface{} {
	return map[string]interface{}{
		"config_path":     ctx.configPath,
		"exists":          ctx.configExists,
		"region":          ctx.cfg.RegionOrDefault(),
		"fallback_to_now": ctx.cfg.FallbackToNow,
		"prefer":          strings.TrimSpace(ctx.cfg.Prefer),
		"strict":          ctx.cfg.Strict,
		"timezone_aware":  ctx.cfg.TimezoneAware,
		"holidays_file":   ctx.cfg.HolidaysPath(),
		"log": map[string]interface{}{
			"level":  strings.TrimSpace(ctx.cfg.Log.Level),
			"format": strings.TrimSpace(ctx.cfg.Log.Format),
		},
		"ui": map[string]interface{}{
			"accent": strings.TrimSpace(ctx.cfg.UI.Accent),
		},
		"terms": ctx.cfg.Terms,
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	ctx, err := loadConfigContext()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}

	if isJSONOutput() {
		outputSuccess(configData(ctx), nil)
		return nil
	}

	if !ctx.configExists {
		fmt.Printf("Config file does not exist: %s\n", ctx.configPath)
		fmt.Println("Run 'hdate config init' to create it. Using defaults:")
	} else {
		fmt.Printf("config: %s\n", ctx.configPath)
	}

	fmt.Printf("region: %s\n", ctx.cfg.RegionOrDefault())
	fmt.Printf("fallback_to_now: %t\n", ctx.cfg.FallbackToNow)
	if v := strings.TrimSpace(ctx.cfg.Prefer); v != "" {
		fmt.Printf("prefer: %s\n", v)
	}
	fmt.Printf("strict: %t\n", ctx.cfg.Strict)
	fmt.Printf("timezone_aware: %t\n", ctx.cfg.TimezoneAware)
	if v := ctx.cfg.HolidaysPath(); v != "" {
		fmt.Printf("holidays_file: %s\n", v)
	}
	if v := strings.TrimSpace(ctx.cfg.Log.Level); v != "" {
		fmt.Printf("log.level: %s\n", v)
	}
	if v := strings.TrimSpace(ctx.cfg.Log.Format); v != "" {
		fmt.Printf("log.format: %s\n", v)
	}
	if v := strings.TrimSpace(ctx.cfg.UI.Accent); v != "" {
		fmt.Printf("ui.accent: %s\n", v)
	}
	if len(ctx.cfg.Terms) > 0 {
		fmt.Println("terms:")
		for _, t := range ctx.cfg.Terms {
			fmt.Printf("  %s = %s\n", t.Pattern, t.Canonical)
		}
	}

	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage hdate config.toml settings",
	Long: `Manage hdate config.toml settings.

Use this to initialize, inspect, and edit the configuration.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ResolveConfigPath(configPath)
		if isJSONOutput() {
			outputSuccess(map[string]string{"config_path": path}, nil)
			return nil
		}
		fmt.Println(path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config.toml if missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		targetPath := config.ResolveConfigPath(configPath)
		if _, err := os.Stat(targetPath); err != nil && !os.IsNotExist(err) {
			return handleError(ErrFileReadError, err, "")
		}

		created, err := config.CreateDefault(targetPath)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_path": targetPath,
				"created":     created,
			}, nil)
			return nil
		}

		if created {
			fmt.Printf("Created config: %s\n", targetPath)
		} else {
			fmt.Printf("Config already exists: %s\n", targetPath)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set one or more config.toml fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadConfigContext()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		flags := cmd.Flags()
		changed := make([]string, 0, 8)

		if flags.Changed("region") {
			value := strings.ToUpper(strings.TrimSpace(configSetRegion))
			cal, err := ctx.cfg.Calendar()
			if err != nil {
				return handleError(ErrDatasetInvalid, err, "Check holidays_file in config.toml")
			}
			if _, err := cal.Region(value); err != nil {
				return handleError(ErrUnknownRegion, err, "Run 'hdate holidays regions' to list regions")
			}
			ctx.cfg.Region = value
			changed = append(changed, "region")
		}

		if flags.Changed("prefer") {
			value := strings.ToLower(strings.TrimSpace(configSetPrefer))
			if value != "" {
				if _, err := resolver.ParseDirection(value); err != nil {
					return handleError(ErrInvalidInput, err, "")
				}
			}
			ctx.cfg.Prefer = value
			changed = append(changed, "prefer")
		}

		if v := changedBool(flags, "fallback-now"); v != nil {
			ctx.cfg.FallbackToNow = *v
			changed = append(changed, "fallback_to_now")
		}
		if v := changedBool(flags, "strict"); v != nil {
			ctx.cfg.Strict = *v
			changed = append(changed, "strict")
		}
		if v := changedBool(flags, "tz-aware"); v != nil {
			ctx.cfg.TimezoneAware = *v
			changed = append(changed, "timezone_aware")
		}

		if flags.Changed("holidays-file") {
			ctx.cfg.HolidaysFile = strings.TrimSpace(configSetHolidaysFile)
			changed = append(changed, "holidays_file")
		}
		if flags.Changed("ui-accent") {
			ctx.cfg.UI.Accent = strings.TrimSpace(configSetUIAccent)
			changed = append(changed, "ui.accent")
		}
		if flags.Changed("log-level") {
			ctx.cfg.Log.Level = strings.ToLower(strings.TrimSpace(configSetLogLevel))
			changed = append(changed, "log.level")
		}
		if flags.Changed("log-format") {
			ctx.cfg.Log.Format = strings.ToLower(strings.TrimSpace(configSetLogFormat))
			changed = append(changed, "log.format")
		}

		if len(changed) == 0 {
			return handleErrorMsg(ErrInvalidInput, "no fields to set", "Pass at least one flag, e.g. --region US")
		}
		if err := ctx.cfg.Validate(); err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		if err := config.SaveTo(ctx.configPath, ctx.cfg); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			data := configData(ctx)
			data["changed"] = changed
			outputSuccess(data, nil)
			return nil
		}

		fmt.Printf("Updated %s: %s\n", ctx.configPath, strings.Join(changed, ", "))
		return nil
	},
}

func init() {
	configSetCmd.Flags().StringVar(&configSetRegion, "region", "", "Holiday region code")
	configSetCmd.Flags().StringVar(&configSetPrefer, "prefer", "", "past, future, or empty to let the text decide")
	configSetCmd.Flags().Bool("fallback-now", false, "Return the current time when nothing resolves")
	configSetCmd.Flags().Bool("strict", false, "Disable the free-text search fallback")
	configSetCmd.Flags().Bool("tz-aware", false, "Keep the parser's time zone")
	configSetCmd.Flags().StringVar(&configSetHolidaysFile, "holidays-file", "", "Extra holidays YAML file")
	configSetCmd.Flags().StringVar(&configSetUIAccent, "ui-accent", "", "Accent color (0-255 or #RRGGBB)")
	configSetCmd.Flags().StringVar(&configSetLogLevel, "log-level", "", "debug, info, warn or error")
	configSetCmd.Flags().StringVar(&configSetLogFormat, "log-format", "", "text or json")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
