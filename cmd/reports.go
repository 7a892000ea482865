package cmd

import (
	"context"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/payvek/payvek-go/pkg/payvek"
)

var reportsCommand = &cobra.Command{
	Use:   "reports",
	Short: "Payment reports",
}

var reportsGetCommand = &cobra.Command{
	Use:     "get <profile-code> <datetime-from> <datetime-to>",
	Short:   "Fetches payment reports for a datetime range",
	Args:    cobra.ExactArgs(3),
	Example: `payvek reports get 5bddmwvd "2026-08-01 00:00:00" "2026-08-31 23:59:59"`,
	Run:     reportsGet,
}

var (
	reportsLocationID string
	reportsRawJSON    bool
)

func reportsGetSetup(cmd *cobra.Command) {
	cmd.Flags().StringVar(&reportsLocationID, "location-id", "", "narrow the report to one location")
	cmd.Flags().BoolVar(&reportsRawJSON, "json", false, "print the raw response instead of a table")
}

func reportsGet(_ *cobra.Command, args []string) {
	client, logger := resolveClient()

	var opts *payvek.ReportsOpts
	if reportsLocationID != "" {
		opts = &payvek.ReportsOpts{LocationID: reportsLocationID}
	}

	res, err := client.GetReports(context.Background(), args[0], args[1], args[2], opts)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to get reports")
		return
	}

	rows := res.Get("data")
	if reportsRawJSON || !rows.IsArray() {
		printResponse(res)
		return
	}

	renderReports(rows)
}

// renderReports prints an array of report objects as a table, columns taken
// from the first row.
func renderReports(rows gjson.Result) {
	var header []string

	rows.ForEach(func(_, row gjson.Result) bool {
		row.ForEach(func(key, _ gjson.Result) bool {
			header = append(header, key.Str)
			return true
		})
		return false
	})

	t := tablewriter.NewWriter(os.Stdout)
	t.SetBorder(false)
	t.SetHeader(header)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)

	rows.ForEach(func(_, row gjson.Result) bool {
		cells := make([]string, 0, len(header))
		for _, column := range header {
			cells = append(cells, row.Get(column).String())
		}
		t.Append(cells)

		return true
	})

	t.Render()
}
