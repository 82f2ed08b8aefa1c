package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/hdate/internal/dates"
	"github.com/aidanlsb/hdate/internal/resolver"
	"github.com/aidanlsb/hdate/internal/ui"
	"github.com/aidanlsb/hdate/pkg/humandate"
)

// resolveFlags are the per-call settings shared by resolve and explain.
type resolveFlags struct {
	prefer directionValue
	base   string
}

func addResolveFlags(cmd *cobra.Command, f *resolveFlags) {
	cmd.Flags().Bool("fallback-now", false, "Return the current time when nothing resolves")
	cmd.Flags().Var(&f.prefer, "prefer", "Force a direction for ambiguous phrases: past or future")
	cmd.Flags().StringVar(&f.base, "base", "", "Reference time: YYYY-MM-DD, RFC3339, now, today, yesterday, tomorrow")
	cmd.Flags().Bool("strict", false, "Disable the free-text search fallback")
	cmd.Flags().Bool("tz-aware", false, "Keep the parser's time zone instead of the base time's")
}

// options merges config values with flags given on the command line.
func (f *resolveFlags) options(cmd *cobra.Command, env *runtimeEnv) (humandate.Options, error) {
	override, err := env.cfg.Override()
	if err != nil {
		return humandate.Options{}, err
	}

	flags := cmd.Flags()
	if f.prefer.dir != nil {
		override.PreferredDirection = f.prefer.dir
	}
	if v := changedBool(flags, "strict"); v != nil {
		override.Strict = v
	}
	if v := changedBool(flags, "tz-aware"); v != nil {
		override.TimezoneAware = v
	}
	if strings.TrimSpace(f.base) != "" {
		base, err := dates.ParseBase(f.base, nowFunc())
		if err != nil {
			return humandate.Options{}, err
		}
		override.BaseInstant = &base
	}

	fallback := env.cfg.FallbackToNow
	if v := changedBool(flags, "fallback-now"); v != nil {
		fallback = *v
	}

	return humandate.Options{
		FallbackToNow: fallback,
		Debug:         debugFlag,
		Region:        env.region,
		Override:      override,
	}, nil
}

// explainText resolves args and returns the trace with any coverage
// warnings. Errors are already formatted for the active output mode.
func explainText(cmd *cobra.Command, f *resolveFlags, args []string) (humandate.Trace, []Warning, error) {
	env, err := loadEnv()
	if err != nil {
		return humandate.Trace{}, nil, err
	}
	r, err := env.newResolver()
	if err != nil {
		return humandate.Trace{}, nil, err
	}
	opts, err := f.options(cmd, env)
	if err != nil {
		return humandate.Trace{}, nil, handleError(ErrInvalidInput, err, "")
	}
	tr := r.Explain(strings.Join(args, " "), opts)
	return tr, coverageWarnings(env, tr), nil
}

// coverageWarnings flags a base year the region's holiday calendar has no
// dates for. Holiday phrases cannot anchor in such a year.
func coverageWarnings(env *runtimeEnv, tr humandate.Trace) []Warning {
	if tr.Invalid || tr.Anchor != nil {
		return nil
	}
	year := tr.Settings.BaseInstant.Year()
	covered := env.calendar.Years(env.region)
	for _, y := range covered {
		if y == year {
			return nil
		}
	}
	return []Warning{yearNotCovered(env.region, year, covered)}
}

func yearNotCovered(region string, year int, covered []int) Warning {
	return Warning{
		Code:    WarnYearNotCovered,
		Message: fmt.Sprintf("no holidays for %s in %d (covered: %s)", region, year, joinYears(covered)),
	}
}

type resolveResult struct {
	Input      string `json:"input"`
	Normalized string `json:"normalized"`
	Result     string `json:"result"`
	Date       string `json:"date"`
	Path       string `json:"path"`
	Holiday    string `json:"holiday,omitempty"`
}

var (
	resolveOpts     resolveFlags
	resolveDateOnly bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <text...>",
	Short: "Resolve an informal date phrase to a timestamp",
	Long: `Resolve an informal date phrase to a timestamp.

Examples:
  hdate resolve tmrw
  hdate resolve 2 weeks ago
  hdate resolve "the day after diwali" --date-only
  hdate resolve last monday --base 2024-03-14`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, warnings, err := explainText(cmd, &resolveOpts, args)
		if err != nil {
			return err
		}

		if !tr.OK {
			if tr.Invalid {
				return handleErrorMsg(ErrInvalidInput, "no date text given", "Pass a phrase such as 'tmrw', or use --fallback-now")
			}
			hint := "Run 'hdate explain' to see each step, or use --fallback-now"
			for _, w := range warnings {
				hint = w.Message + ". " + hint
			}
			return handleErrorWithDetails(ErrNoMatch,
				fmt.Sprintf("could not resolve %q", tr.Input),
				hint,
				map[string]string{"normalized": tr.Normalized},
			)
		}

		if isJSONOutput() {
			data := resolveResult{
				Input:      tr.Input,
				Normalized: tr.Normalized,
				Result:     tr.Result.Format(time.RFC3339),
				Date:       dates.FormatISO(tr.Result),
				Path:       string(tr.Path),
			}
			if tr.Anchor != nil {
				data.Holiday = tr.Anchor.Holiday.ID()
			}
			if tr.Path == resolver.PathFallbackNow {
				warnings = append(warnings, Warning{Code: WarnFallbackNow, Message: "nothing matched; returned the current time"})
			}
			outputSuccessWithWarnings(data, warnings, nil)
			return nil
		}

		for _, w := range warnings {
			fmt.Fprintln(os.Stderr, ui.Warning(w.Message))
		}
		layout := time.RFC3339
		if resolveDateOnly {
			layout = dates.DateLayout
		}
		fmt.Println(ui.Date(tr.Result.Format(layout)))
		return nil
	},
}

func init() {
	addResolveFlags(resolveCmd, &resolveOpts)
	resolveCmd.Flags().BoolVar(&resolveDateOnly, "date-only", false, "Print only the calendar date (YYYY-MM-DD)")
	rootCmd.AddCommand(resolveCmd)
}
