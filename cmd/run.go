package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/finbooks/reportctl/internal/logger"
	"github.com/finbooks/reportctl/internal/orchestrator"
	"github.com/finbooks/reportctl/internal/runlog"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] <report-id>",
		Short: "Executes a single report",
		Long:  `reportctl run [--param key=value ...] [--output PATH] <report-id>`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSetup(cmd)
			if err != nil {
				return err
			}

			pairs, _ := cmd.Flags().GetStringArray("param")
			params, err := parseParams(pairs)
			if err != nil {
				return err
			}
			output, _ := cmd.Flags().GetString("output")

			token := orchestrator.NewCancelToken()
			stop := listenSignals(s.ctx, token, s.orc)
			defer stop()

			record, err := s.orc.ExecuteReport(s.ctx, orchestrator.Request{
				ReportID:           args[0],
				OverrideParameters: params,
				OutputTarget:       output,
				Token:              token,
			})
			if err != nil {
				return err
			}

			if err := s.orc.Log().Export(s.exportPath()); err != nil {
				logger.Warn(s.ctx, "Failed to export execution log", "err", err)
			}

			printRecord(record)
			if record.Status == runlog.StatusFailed {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayP("param", "p", nil, "parameter override (key=value, repeatable)")
	cmd.Flags().StringP("output", "o", "", "output path for the executed artifact")
	return cmd
}

func printRecord(record runlog.Record) {
	switch record.Status {
	case runlog.StatusSuccess:
		color.Green("%s: success (%s)", record.ReportID, record.Duration.Round(time.Millisecond))
		fmt.Printf("output: %s\n", record.OutputPath)
	case runlog.StatusCancelled:
		color.Yellow("%s: cancelled", record.ReportID)
	case runlog.StatusFailed:
		color.Red("%s: failed (%s)", record.ReportID, record.Duration.Round(time.Millisecond))
		fmt.Println(record.ErrorDetail)
	}
}
