package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/hdate/internal/dates"
	"github.com/aidanlsb/hdate/internal/holidays"
	"github.com/aidanlsb/hdate/internal/ui"
)

var holidaysYear int

type holidayItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Region string `json:"region"`
}

type regionItem struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Years []int  `json:"years"`
}

var holidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "List the holidays hdate can anchor to",
	Long: `List the holidays of a region for one year, in calendar order.

Holiday phrases are matched against these names in the year of the base time.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}

		year := holidaysYear
		if year == 0 {
			year = nowFunc().Year()
		}

		entries := env.calendar.EntriesForYear(env.region, year)
		items := make([]holidayItem, 0, len(entries))
		for _, e := range entries {
			items = append(items, holidayItem{
				ID:     e.ID(),
				Name:   e.Name,
				Date:   dates.FormatISO(e.Date),
				Region: e.Region,
			})
		}

		var warnings []Warning
		if len(items) == 0 {
			warnings = append(warnings, yearNotCovered(env.region, year, env.calendar.Years(env.region)))
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(items, warnings, &Meta{Count: len(items)})
			return nil
		}

		for _, w := range warnings {
			fmt.Println(ui.Warning(w.Message))
		}
		if len(items) == 0 {
			return nil
		}

		display := ui.NewDisplayContext()
		if !display.IsTTY {
			plain := ui.NewTable(3)
			for _, it := range items {
				plain.AddRow(it.Date, it.Name, it.ID)
			}
			fmt.Print(plain.String())
			return nil
		}

		region, _ := env.calendar.Region(env.region)
		fmt.Printf("%s %s\n\n", ui.Header(fmt.Sprintf("%s holidays %d", region.Name, year)), ui.Hint(ui.Count(len(items), "holiday", "holidays")))
		tbl := ui.NewResultsTable(display, ui.HolidayLayout)
		for i, it := range items {
			tbl.AddRow(ui.ResultRow{Cells: []string{
				ui.FormatRowNum(i+1, len(items)),
				it.Date,
				it.Name,
				it.ID,
			}})
		}
		fmt.Println(tbl.Render())
		return nil
	},
}

var holidaysRegionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List holiday regions and the years they cover",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		cal, err := cfg.Calendar()
		if err != nil {
			return handleError(ErrDatasetInvalid, err, "Check holidays_file in config.toml")
		}

		items := regionItems(cal)
		if isJSONOutput() {
			outputSuccess(items, &Meta{Count: len(items)})
			return nil
		}

		plain := ui.NewTable(3)
		for _, it := range items {
			plain.AddRow(it.Code, it.Name, joinYears(it.Years))
		}
		fmt.Print(plain.String())
		return nil
	},
}

func regionItems(cal *holidays.Calendar) []regionItem {
	regions := cal.Regions()
	items := make([]regionItem, 0, len(regions))
	for _, r := range regions {
		items = append(items, regionItem{Code: r.Code, Name: r.Name, Years: cal.Years(r.Code)})
	}
	return items
}

func joinYears(years []int) string {
	if len(years) == 0 {
		return "none"
	}
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = strconv.Itoa(y)
	}
	return strings.Join(parts, ", ")
}

func init() {
	holidaysCmd.Flags().IntVar(&holidaysYear, "year", 0, "Calendar year (defaults to the current year)")
	holidaysCmd.AddCommand(holidaysRegionsCmd)
	rootCmd.AddCommand(holidaysCmd)
}
