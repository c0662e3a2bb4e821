package cmd

import (
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/finbooks/reportctl/internal/registry"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [flags]",
		Short: "Lists the reports in the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSetup(cmd)
			if err != nil {
				return err
			}

			var opts []registry.ListOption
			if status, _ := cmd.Flags().GetString("status"); status != "" {
				opts = append(opts, registry.WithStatus(registry.Status(status)))
			}
			if category, _ := cmd.Flags().GetString("category"); category != "" {
				opts = append(opts, registry.WithCategory(category))
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"ID", "Name", "Category", "Executor", "Status", "Dependencies"})
			for _, r := range s.reg.List(opts...) {
				t.AppendRow(table.Row{
					r.ID, r.Name, r.Category, r.ExecutorType, r.Status,
					strings.Join(r.Dependencies, ", "),
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().String("status", "", "filter by status (active|poc|planned|deprecated)")
	cmd.Flags().String("category", "", "filter by category")
	return cmd
}
