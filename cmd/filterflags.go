package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/leads-cli/internal/segment"
)

// filterFlags binds the segmentation facets to a command's flag set so
// segment and export accept the same filter surface.
type filterFlags struct {
	filter  segment.Filter
	project string
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&ff.project, "project", "", "restrict to one project id")
	f.StringVar(&ff.filter.Status, "status", "", "status facet (new|qualified|proposal|closed_won|not_interested|all)")
	f.StringVar(&ff.filter.Assignee, "assignee", "", `owner id, or "unassigned"`)
	f.StringVar(&ff.filter.Search, "search", "", "free-text search over company, contact, email")
	f.StringVar(&ff.filter.Source, "source", "", "lead source facet")
	f.StringVar(&ff.filter.Priority, "priority", "", "priority band (hot|warm|cold)")
	f.StringVar(&ff.filter.Country, "country", "", "country substring")
	f.StringVar(&ff.filter.State, "state", "", "state substring")
	f.StringVar(&ff.filter.City, "city", "", "city substring")
	f.StringVar(&ff.filter.ValueMin, "value-min", "", "minimum deal value (inclusive)")
	f.StringVar(&ff.filter.ValueMax, "value-max", "", "maximum deal value (inclusive)")
	f.StringVar(&ff.filter.ScoreMin, "score-min", "", "minimum lead score (inclusive)")
	f.StringVar(&ff.filter.ScoreMax, "score-max", "", "maximum lead score (inclusive)")
	f.StringVar(&ff.filter.FollowupFrom, "followup-from", "", "follow-up date lower bound (YYYY-MM-DD)")
	f.StringVar(&ff.filter.FollowupTo, "followup-to", "", "follow-up date upper bound (YYYY-MM-DD)")
	f.BoolVar(&ff.filter.DoNotFollowup, "do-not-followup", false, "only leads flagged do-not-followup")
	f.BoolVar(&ff.filter.HasTags, "has-tags", false, "only leads with a non-empty tag set")
	f.StringVar(&ff.filter.TagQuery, "tag", "", "tag substring")
}
