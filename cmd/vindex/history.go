package vindex

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/vindex/vindex/internal/audit"
)

var flagHistoryDest string

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past analyses recorded in a destination folder",
		RunE:  runHistory,
	}
	rootCmd.AddCommand(cmd)
	cmd.Flags().StringVarP(&flagHistoryDest, "dest", "d", ".", "destination folder holding the run history")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	records, err := audit.Load(flagHistoryDest)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("Aucune analyse enregistrée.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Date", "Source", "Éléments", "Échecs", "Durée")
	for _, rec := range records {
		total := 0
		for _, n := range rec.Counts {
			total += n
		}
		_ = table.Append([]string{
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.Source,
			strconv.Itoa(total),
			strconv.Itoa(len(rec.Failures)),
			rec.Duration,
		})
	}
	return table.Render()
}
