package vindex

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vindex/vindex/internal/scan"
)

func init() {
	cmd := &cobra.Command{
		Use:   "extractors",
		Short: "List the available extractors and their IDs",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, ext := range scan.All {
				fmt.Printf("%-12s %s\n", ext.ID, ext.Name)
			}
		},
	}
	rootCmd.AddCommand(cmd)
}
