package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"hookhunter/internal/clix"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View search history",
	Long:  `Displays past searches recorded when history.driver is sqlite or postgres.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listHistoryCmd.RunE(cmd, args)
	},
}

var listHistoryCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent searches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		records, err := appInstance.HistoryService.List(cmd.Context(), clix.ParseLimit(cmd.Flags(), 20))
		if err != nil {
			return fmt.Errorf("error listing search history: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No search history found.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Executed At", "Query", "Type", "Pages", "Fetched", "Kept", "Status"})
		table.SetBorder(false)
		table.SetAutoWrapText(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)

		for _, r := range records {
			table.Append([]string{
				r.ExecutedAt.Local().Format("2006-01-02 15:04:05"),
				r.RawQuery,
				r.ResultType,
				strconv.Itoa(r.Pages),
				strconv.Itoa(r.RawCount),
				strconv.Itoa(r.ResultCount),
				r.Status,
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(listHistoryCmd)

	historyCmd.PersistentFlags().Int("limit", 20, "Maximum number of searches to show")
}
