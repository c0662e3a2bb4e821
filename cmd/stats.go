package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Shows execution statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSetup(cmd)
			if err != nil {
				return err
			}

			stats := s.orc.Log().Stats()
			fmt.Printf("total: %d  successful: %d  failed: %d  cancelled: %d\n",
				stats.TotalExecutions, stats.Successful, stats.Failed, stats.Cancelled)
			fmt.Printf("success rate: %.1f%%  average duration: %s\n",
				stats.SuccessRate*100, stats.AverageDuration.Round(time.Millisecond))

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Report", "Successful", "Failed", "Cancelled"})
			for _, id := range lo.Keys(stats.ByReport) {
				b := stats.ByReport[id]
				t.AppendRow(table.Row{id, b.Successful, b.Failed, b.Cancelled})
			}
			t.SortBy([]table.SortBy{{Name: "Report", Mode: table.Asc}})
			t.Render()
			return nil
		},
	}
}
