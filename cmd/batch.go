package cmd

import (
	"os"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/finbooks/reportctl/internal/logger"
	"github.com/finbooks/reportctl/internal/orchestrator"
	"github.com/finbooks/reportctl/internal/runlog"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [flags] <report-id>...",
		Short: "Executes reports in dependency order",
		Long:  `reportctl batch [--param key=value ...] [--no-stop-on-error] <report-id>...`,
		Args:  cobra.MinimumNArgs(1),
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
			noStop, _ := cmd.Flags().GetBool("no-stop-on-error")

			token := orchestrator.NewCancelToken()
			stop := listenSignals(s.ctx, token, s.orc)
			defer stop()

			results, err := s.orc.ExecuteBatch(s.ctx, args, params, orchestrator.BatchOptions{
				StopOnError: !noStop,
				Token:       token,
			})
			if err != nil {
				return err
			}

			if err := s.orc.Log().Export(s.exportPath()); err != nil {
				logger.Warn(s.ctx, "Failed to export execution log", "err", err)
			}

			records := lo.Values(results)
			sort.Slice(records, func(i, j int) bool {
				return records[i].StartedAt.Before(records[j].StartedAt)
			})

			failed := false
			for _, record := range records {
				printRecord(record)
				if record.Status == runlog.StatusFailed {
					failed = true
				}
			}
			if failed {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayP("param", "p", nil, "parameter applied to all reports (key=value, repeatable)")
	cmd.Flags().Bool("no-stop-on-error", false, "continue the batch after a failed report")
	return cmd
}
