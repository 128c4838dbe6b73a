package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leads-cli/internal/bulk"
	"github.com/sells-group/leads-cli/internal/segment"
)

var (
	purgeFlags      filterFlags
	purgeFromFilter bool
	purgeYes        bool
)

var purgeCmd = &cobra.Command{
	Use:   "purge [lead-id...]",
	Short: "Delete leads (bulk, best-effort)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if !purgeYes {
			return eris.New("purge: refusing to delete without --yes")
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		ids := args
		if purgeFromFilter {
			leads, err := st.ListLeads(ctx, purgeFlags.project)
			if err != nil {
				return err
			}
			for _, l := range segment.Apply(leads, purgeFlags.filter) {
				ids = append(ids, l.ID)
			}
		}
		if len(ids) == 0 {
			return eris.New("purge: no leads selected")
		}

		runner := bulk.NewRunner(st, cfg.Bulk.Concurrency, bulk.WithRateLimit(cfg.Bulk.RateLimit))
		outcome := runner.DeleteAll(ctx, ids)

		zap.L().Info("purge complete",
			zap.Int("succeeded", outcome.Succeeded),
			zap.Int("failed", outcome.Failed),
		)
		if outcome.Failed > 0 {
			return eris.Errorf("purge: %d of %d deletes failed", outcome.Failed, len(ids))
		}
		return nil
	},
}

func init() {
	purgeFlags.register(purgeCmd)
	purgeCmd.Flags().BoolVar(&purgeFromFilter, "from-filter", false, "select leads via the facet flags")
	purgeCmd.Flags().BoolVar(&purgeYes, "yes", false, "confirm deletion")
	rootCmd.AddCommand(purgeCmd)
}
