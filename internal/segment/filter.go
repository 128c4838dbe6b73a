// Package segment evaluates multi-facet filter predicates over in-memory
// lead collections and derives the dashboard aggregates from the result.
package segment

import (
	"strconv"
	"strings"
	"time"

	"github.com/sells-group/leads-cli/internal/model"
)

// Filter holds the active facet values. The zero value matches every
// lead. Numeric and date bounds are kept as the raw strings the caller
// received; malformed bounds are ignored rather than excluding everything.
type Filter struct {
	Status   string `json:"status,omitempty"`
	Assignee string `json:"assignee,omitempty"` // user id, or "unassigned"
	Search   string `json:"search,omitempty"`
	Source   string `json:"source,omitempty"`
	Priority string `json:"priority,omitempty"` // hot | warm | cold

	Country string `json:"country,omitempty"`
	State   string `json:"state,omitempty"`
	City    string `json:"city,omitempty"`

	ValueMin string `json:"value_min,omitempty"`
	ValueMax string `json:"value_max,omitempty"`
	ScoreMin string `json:"score_min,omitempty"`
	ScoreMax string `json:"score_max,omitempty"`

	FollowupFrom string `json:"followup_from,omitempty"`
	FollowupTo   string `json:"followup_to,omitempty"`

	DoNotFollowup bool   `json:"do_not_followup,omitempty"`
	HasTags       bool   `json:"has_tags,omitempty"`
	TagQuery      string `json:"tag_query,omitempty"`
}

// AssigneeUnassigned is the assignee facet value matching leads with no
// owner.
const AssigneeUnassigned = "unassigned"

// Apply returns the leads satisfying every active facet, preserving input
// order. Pure: the input slice is never mutated.
func Apply(leads []model.Lead, f Filter) []model.Lead {
	out := make([]model.Lead, 0, len(leads))
	for _, l := range leads {
		if f.Matches(&l) {
			out = append(out, l)
		}
	}
	return out
}

// Matches evaluates the conjunction of all facet predicates for one lead.
func (f Filter) Matches(l *model.Lead) bool {
	return f.matchStatus(l) &&
		f.matchAssignee(l) &&
		f.matchSearch(l) &&
		f.matchSource(l) &&
		f.matchPriority(l) &&
		f.matchLocation(l) &&
		f.matchValueRange(l) &&
		f.matchScoreRange(l) &&
		f.matchFollowupRange(l) &&
		f.matchDoNotFollowup(l) &&
		f.matchTags(l)
}

func facetActive(v string) bool {
	return v != "" && v != model.StatusFilterAll
}

func (f Filter) matchStatus(l *model.Lead) bool {
	return model.StatusMatches(l.Status, f.Status)
}

func (f Filter) matchAssignee(l *model.Lead) bool {
	if !facetActive(f.Assignee) {
		return true
	}
	if f.Assignee == AssigneeUnassigned {
		return l.AssignedTo == ""
	}
	return l.AssignedTo == f.Assignee
}

func (f Filter) matchSearch(l *model.Lead) bool {
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	for _, hay := range []string{l.CompanyName, l.ContactName, l.Email} {
		if strings.Contains(strings.ToLower(hay), q) {
			return true
		}
	}
	return false
}

func (f Filter) matchSource(l *model.Lead) bool {
	if !facetActive(f.Source) {
		return true
	}
	return l.Source() == f.Source
}

func (f Filter) matchPriority(l *model.Lead) bool {
	if !facetActive(f.Priority) {
		return true
	}
	return model.PriorityBand(l.LeadScore) == strings.ToLower(f.Priority)
}

func (f Filter) matchLocation(l *model.Lead) bool {
	return containsFold(l.Country, f.Country) &&
		containsFold(l.State, f.State) &&
		containsFold(l.City, f.City)
}

// containsFold is a case-insensitive substring check; an empty needle
// always passes.
func containsFold(hay, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(hay), strings.ToLower(needle))
}

func (f Filter) matchValueRange(l *model.Lead) bool {
	if lo, ok := parseBound(f.ValueMin); ok && l.Value < lo {
		return false
	}
	if hi, ok := parseBound(f.ValueMax); ok && l.Value > hi {
		return false
	}
	return true
}

func (f Filter) matchScoreRange(l *model.Lead) bool {
	minB, minOK := parseBound(f.ScoreMin)
	maxB, maxOK := parseBound(f.ScoreMax)
	if !minOK && !maxOK {
		return true
	}
	score, ok := l.ScoreInt()
	if !ok {
		return false
	}
	if minOK && float64(score) < minB {
		return false
	}
	if maxOK && float64(score) > maxB {
		return false
	}
	return true
}

func (f Filter) matchFollowupRange(l *model.Lead) bool {
	from, fromOK := parseDate(f.FollowupFrom)
	to, toOK := parseDate(f.FollowupTo)
	if !fromOK && !toOK {
		return true
	}
	// Any set bound requires the lead to actually have a follow-up date.
	d, ok := parseDate(l.NextFollowupDate)
	if !ok {
		return false
	}
	if fromOK && d.Before(from) {
		return false
	}
	if toOK && d.After(to) {
		return false
	}
	return true
}

func (f Filter) matchDoNotFollowup(l *model.Lead) bool {
	if !f.DoNotFollowup {
		return true
	}
	return l.DoNotFollowup
}

func (f Filter) matchTags(l *model.Lead) bool {
	if f.HasTags && !l.HasTags() {
		return false
	}
	if f.TagQuery == "" {
		return true
	}
	for _, tag := range l.Tags {
		if containsFold(tag, f.TagQuery) {
			return true
		}
	}
	return false
}

// parseBound parses a numeric facet bound. ok is false for empty or
// malformed input, which deactivates that bound.
func parseBound(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// dateLayouts are tried in order when parsing facet bounds and lead
// follow-up dates.
var dateLayouts = []string{"2006-01-02", time.RFC3339, "01/02/2006", "2006-01-02 15:04:05"}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
