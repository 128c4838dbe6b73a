package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/leads-cli/internal/model"
	"github.com/sells-group/leads-cli/internal/segment"
)

var (
	segmentFlags filterFlags
	segmentJSON  bool
)

var segmentCmd = &cobra.Command{
	Use:   "segment",
	Short: "Filter leads by facets and show summary stats",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		leads, err := st.ListLeads(ctx, segmentFlags.project)
		if err != nil {
			return err
		}

		filtered := segment.Apply(leads, segmentFlags.filter)
		stats := segment.Summarize(filtered)

		if segmentJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"leads": filtered, "stats": stats})
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "COMPANY\tCONTACT\tSTATUS\tOWNER\tVALUE\tPRIORITY")
		for i := range filtered {
			l := &filtered[i]
			owner := l.AssignedTo
			if owner == "" {
				owner = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\t%s\n",
				l.CompanyName, l.ContactName, model.NormalizeStatus(l.Status), owner, l.Value, model.PriorityBand(l.LeadScore))
		}
		w.Flush()

		fmt.Printf("\n%d of %d leads, total value %.2f\n", stats.Total, len(leads), stats.TotalValue)
		for _, status := range model.AllStatuses {
			fmt.Printf("  %-15s %d\n", status, stats.ByStatus[status])
		}
		return nil
	},
}

func init() {
	segmentFlags.register(segmentCmd)
	segmentCmd.Flags().BoolVar(&segmentJSON, "json", false, "emit JSON instead of a table")
	rootCmd.AddCommand(segmentCmd)
}
