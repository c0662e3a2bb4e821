package cmd

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/finbooks/reportctl/internal/stringutil"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [flags] [report-id]",
		Short: "Shows the execution history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSetup(cmd)
			if err != nil {
				return err
			}

			var reportID string
			if len(args) > 0 {
				reportID = args[0]
			}

			if exportTo, _ := cmd.Flags().GetString("export"); exportTo != "" {
				return s.orc.Log().Export(exportTo)
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Report", "Status", "Started At", "Duration", "Output / Error"})
			for _, r := range s.orc.Log().History(reportID) {
				detail := r.OutputPath
				if detail == "" {
					detail = stringutil.TruncString(r.ErrorDetail, 80)
				}
				t.AppendRow(table.Row{
					r.ReportID, r.Status,
					stringutil.FormatTime(r.StartedAt),
					r.Duration.Round(time.Millisecond),
					detail,
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().String("export", "", "export the log with statistics to the given path")
	return cmd
}
