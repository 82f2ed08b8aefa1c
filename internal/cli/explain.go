package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/hdate/internal/dates"
	"github.com/aidanlsb/hdate/internal/ui"
	"github.com/aidanlsb/hdate/pkg/humandate"
)

var (
	explainOpts     resolveFlags
	explainMarkdown bool
)

var explainCmd = &cobra.Command{
	Use:   "explain <text...>",
	Short: "Show every step of resolving a date phrase",
	Long: `Show every step of resolving a date phrase: normalization, the inferred
direction, any holiday anchor, the parser that matched and the result.

Takes the same flags as 'hdate resolve'. Unlike resolve it succeeds even when
nothing matches.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, warnings, err := explainText(cmd, &explainOpts, args)
		if err != nil {
			return err
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(tr, warnings, nil)
			return nil
		}

		for _, w := range warnings {
			fmt.Println(ui.Warning(w.Message))
		}

		if explainMarkdown {
			out, err := ui.NewDisplayContext().RenderMarkdown(traceMarkdown(tr), true)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		}

		for _, step := range traceSteps(tr) {
			value := step[1]
			if step[0] == "result" {
				if tr.OK {
					value = ui.Date(value)
				} else {
					value = ui.Hint(value)
				}
			}
			fmt.Println(ui.Step(step[0], value))
		}
		return nil
	},
}

// traceSteps flattens a trace into label/value pairs in pipeline order.
func traceSteps(tr humandate.Trace) [][2]string {
	steps := [][2]string{{"input", fmt.Sprintf("%q", tr.Input)}}
	if tr.Invalid {
		steps = append(steps, [2]string{"normalized", "(blank)"})
	} else {
		steps = append(steps,
			[2]string{"normalized", tr.Normalized},
			[2]string{"bias", tr.Bias.String()},
			[2]string{"base", tr.Settings.BaseInstant.Format(time.RFC3339)},
		)
	}
	if a := tr.Anchor; a != nil {
		steps = append(steps, [2]string{"holiday", fmt.Sprintf("%s (%s), %s %s %s",
			a.Holiday.Name, dates.FormatISO(a.Holiday.Date), a.Kind, ui.SymbolArrow, a.ISO())})
		if a.Lead != "" {
			steps = append(steps, [2]string{"lead", a.Lead})
		}
	}
	if tr.Text != "" && tr.Text != tr.Normalized {
		steps = append(steps, [2]string{"parsed", tr.Text})
	}
	for _, m := range tr.Matches {
		steps = append(steps, [2]string{"match", fmt.Sprintf("%q at %d %s %s", m.Text, m.Index, ui.SymbolArrow, m.Time.Format(time.RFC3339))})
	}
	steps = append(steps, [2]string{"path", string(tr.Path)})
	if tr.OK {
		steps = append(steps, [2]string{"result", tr.Result.Format(time.RFC3339)})
	} else {
		steps = append(steps, [2]string{"result", "(none)"})
	}
	return steps
}

func traceMarkdown(tr humandate.Trace) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", markdownEscape(tr.Input))
	sb.WriteString("| Step | Value |\n|---|---|\n")
	for _, step := range traceSteps(tr) {
		fmt.Fprintf(&sb, "| %s | %s |\n", step[0], markdownEscape(step[1]))
	}
	return sb.String()
}

func markdownEscape(s string) string {
	return strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`").Replace(s)
}

func init() {
	addResolveFlags(explainCmd, &explainOpts)
	explainCmd.Flags().BoolVar(&explainMarkdown, "markdown", false, "Render the trace as a markdown table")
	rootCmd.AddCommand(explainCmd)
}
