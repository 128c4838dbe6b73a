package model

// Status is the canonical lead workflow state.
type Status string

const (
	StatusNew           Status = "new"
	StatusQualified     Status = "qualified"
	StatusProposal      Status = "proposal"
	StatusClosedWon     Status = "closed_won"
	StatusNotInterested Status = "not_interested"
)

// AllStatuses lists the five canonical workflow states in pipeline order.
var AllStatuses = []Status{
	StatusNew,
	StatusQualified,
	StatusProposal,
	StatusClosedWon,
	StatusNotInterested,
}

// legacyAliases maps retired status spellings still present in old rows
// to their canonical form. These must never be written back as-is.
var legacyAliases = map[Status]Status{
	"negotiation": StatusProposal,
	"won":         StatusClosedWon,
	"lost":        StatusNotInterested,
}

// NormalizeStatus maps legacy status spellings to their canonical form.
// Values that are neither legacy nor canonical are returned unchanged;
// callers validate membership with Valid before persisting. An
// unnormalizable status is an error at the call site, never a silent
// coercion to a default.
func NormalizeStatus(s Status) Status {
	if canonical, ok := legacyAliases[s]; ok {
		return canonical
	}
	return s
}

// Valid reports whether s is one of the five canonical workflow states.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusQualified, StatusProposal, StatusClosedWon, StatusNotInterested:
		return true
	}
	return false
}

// StatusFilterAll is the filter value that matches every status.
const StatusFilterAll = "all"

// StatusMatches reports whether a lead's stored status satisfies a filter
// value. Raw equality is checked alongside normalized equality so rows
// still carrying a legacy spelling match filters on either form.
func StatusMatches(leadStatus Status, filterStatus string) bool {
	if filterStatus == "" || filterStatus == StatusFilterAll {
		return true
	}
	f := Status(filterStatus)
	return leadStatus == f || NormalizeStatus(leadStatus) == NormalizeStatus(f)
}
