package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leads-cli/internal/bulk"
	"github.com/sells-group/leads-cli/internal/segment"
)

var (
	assignFlags      filterFlags
	assignTo         string
	assignFromFilter bool
)

var assignCmd = &cobra.Command{
	Use:   "assign [lead-id...]",
	Short: "Assign leads to an owner (bulk, best-effort)",
	Long: `Fans out one update per lead concurrently. A failing update never stops
the others; the aggregate succeeded/failed counts are reported at the end.

Lead ids come from the arguments, or from the facet flags with --from-filter.
Pass --to "" to unassign.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		ids := args
		if assignFromFilter {
			leads, err := st.ListLeads(ctx, assignFlags.project)
			if err != nil {
				return err
			}
			for _, l := range segment.Apply(leads, assignFlags.filter) {
				ids = append(ids, l.ID)
			}
		}
		if len(ids) == 0 {
			return eris.New("assign: no leads selected")
		}

		runner := bulk.NewRunner(st, cfg.Bulk.Concurrency, bulk.WithRateLimit(cfg.Bulk.RateLimit))
		outcome := runner.AssignAll(ctx, ids, assignTo)

		zap.L().Info("assign complete",
			zap.String("assignee", assignTo),
			zap.Int("succeeded", outcome.Succeeded),
			zap.Int("failed", outcome.Failed),
		)
		if outcome.Failed > 0 {
			return eris.Errorf("assign: %d of %d updates failed", outcome.Failed, len(ids))
		}
		return nil
	},
}

func init() {
	assignFlags.register(assignCmd)
	assignCmd.Flags().StringVar(&assignTo, "to", "", "owner id (empty string unassigns)")
	assignCmd.Flags().BoolVar(&assignFromFilter, "from-filter", false, "select leads via the facet flags")
	rootCmd.AddCommand(assignCmd)
}
