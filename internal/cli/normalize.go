package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/hdate/internal/normalize"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <text...>",
	Short: "Rewrite informal terms without resolving a date",
	Long: `Rewrite informal terms ("tmrw", "2day", "fortnight") into canonical
phrases using the built-in terms plus any [[terms]] in config.toml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		table, err := normalize.Default().With(cfg.Terms...)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Check [[terms]] in config.toml")
		}

		input := strings.Join(args, " ")
		out := table.Normalize(input)

		if isJSONOutput() {
			outputSuccess(map[string]string{
				"input":      input,
				"normalized": out,
			}, nil)
			return nil
		}

		fmt.Println(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}
