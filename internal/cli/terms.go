package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/hdate/internal/normalize"
	"github.com/aidanlsb/hdate/internal/ui"
)

var termsMarkdown bool

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "List the informal terms hdate rewrites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		table, err := normalize.Default().With(cfg.Terms...)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Check [[terms]] in config.toml")
		}
		rules := table.Rules()

		if isJSONOutput() {
			outputSuccess(rules, &Meta{Count: len(rules)})
			return nil
		}

		display := ui.NewDisplayContext()
		if termsMarkdown {
			out, err := display.RenderMarkdown(termsMarkdownDoc(rules), true)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		}

		if !display.IsTTY {
			plain := ui.NewTable(2)
			for _, r := range rules {
				plain.AddRow(r.Pattern, r.Canonical)
			}
			fmt.Print(plain.String())
			return nil
		}

		fmt.Printf("%s %s\n\n", ui.Header("Terms"), ui.Hint(ui.Count(len(rules), "term", "terms")))
		tbl := ui.NewResultsTable(display, ui.TermLayout)
		for _, r := range rules {
			tbl.AddRow(ui.ResultRow{Cells: []string{r.Pattern, r.Canonical}})
		}
		fmt.Println(tbl.Render())
		return nil
	},
}

func termsMarkdownDoc(rules []normalize.Rule) string {
	var sb strings.Builder
	sb.WriteString("# Terms\n\nInformal phrases are rewritten before parsing. Longer patterns win.\n\n")
	sb.WriteString("| Pattern | Canonical |\n|---|---|\n")
	for _, r := range rules {
		fmt.Fprintf(&sb, "| `%s` | %s |\n", r.Pattern, markdownEscape(r.Canonical))
	}
	return sb.String()
}

func init() {
	termsCmd.Flags().BoolVar(&termsMarkdown, "markdown", false, "Render the term table as markdown")
	rootCmd.AddCommand(termsCmd)
}
