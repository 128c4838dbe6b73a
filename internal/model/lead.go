// Package model defines the canonical lead record and its workflow enums.
package model

import (
	"strconv"
	"strings"
	"time"
)

// Lead is the canonical record for a business contact/opportunity.
// Date-like fields sourced from spreadsheets (follow-up, birthday, events)
// are kept as raw strings; only store-managed timestamps are time.Time.
type Lead struct {
	ID string `json:"id,omitempty" db:"id"`

	// Core
	CompanyName string `json:"company_name" db:"company_name"`
	ContactName string `json:"contact_name,omitempty" db:"contact_name"`
	Designation string `json:"designation,omitempty" db:"designation"`

	// Contact channels
	Email       string `json:"email,omitempty" db:"email"`
	Phone       string `json:"phone,omitempty" db:"phone"` // comma-joined raw set
	MobilePhone string `json:"mobile_phone,omitempty" db:"mobile_phone"`
	DirectPhone string `json:"direct_phone,omitempty" db:"direct_phone"`
	OfficePhone string `json:"office_phone,omitempty" db:"office_phone"`
	LinkedIn    string `json:"linkedin,omitempty" db:"linkedin"`

	// Location
	AddressLine1 string `json:"address_line1,omitempty" db:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty" db:"address_line2"`
	City         string `json:"city,omitempty" db:"city"`
	State        string `json:"state,omitempty" db:"state"`
	Country      string `json:"country,omitempty" db:"country"`
	Zip          string `json:"zip,omitempty" db:"zip"`

	// Commercial
	Value      float64 `json:"value" db:"value"`
	Status     Status  `json:"status" db:"status"`
	AssignedTo string  `json:"assigned_to,omitempty" db:"assigned_to"` // empty = unassigned
	ProjectID  string  `json:"project_id" db:"project_id"`

	// Classification
	CustomerGroup string   `json:"customer_group,omitempty" db:"customer_group"`
	ProductGroup  string   `json:"product_group,omitempty" db:"product_group"`
	Tags          []string `json:"tags,omitempty" db:"tags"` // nil when absent, never []
	LeadSource    string   `json:"lead_source,omitempty" db:"lead_source"`
	DataSource    string   `json:"data_source,omitempty" db:"data_source"`
	LeadScore     string   `json:"lead_score,omitempty" db:"lead_score"` // raw; legacy rows may hold non-numeric values

	// Follow-up
	NextFollowupDate    string `json:"next_followup_date,omitempty" db:"next_followup_date"`
	FollowupNotes       string `json:"followup_notes,omitempty" db:"followup_notes"`
	RepeatFollowup      bool   `json:"repeat_followup,omitempty" db:"repeat_followup"`
	DoNotFollowup       bool   `json:"do_not_followup,omitempty" db:"do_not_followup"`
	DoNotFollowupReason string `json:"do_not_followup_reason,omitempty" db:"do_not_followup_reason"`

	// Free text
	LeadNotes         string `json:"lead_notes,omitempty" db:"lead_notes"`
	OrganizationNotes string `json:"organization_notes,omitempty" db:"organization_notes"`
	Description       string `json:"description,omitempty" db:"description"`
	ListName          string `json:"list_name,omitempty" db:"list_name"`

	// Dates
	DateOfBirth      string     `json:"date_of_birth,omitempty" db:"date_of_birth"`
	SpecialEventDate string     `json:"special_event_date,omitempty" db:"special_event_date"`
	LastContactedAt  *time.Time `json:"last_contacted_at,omitempty" db:"last_contacted_at"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`

	// Reference links
	ReferenceURL1 string `json:"reference_url1,omitempty" db:"reference_url1"`
	ReferenceURL2 string `json:"reference_url2,omitempty" db:"reference_url2"`
	ReferenceURL3 string `json:"reference_url3,omitempty" db:"reference_url3"`
	Link          string `json:"link,omitempty" db:"link"`
}

// DefaultSource is the lead_source label applied when a lead has none.
const DefaultSource = "Direct"

// Source returns the lead's source, defaulting to DefaultSource when unset.
func (l *Lead) Source() string {
	if l.LeadSource == "" {
		return DefaultSource
	}
	return l.LeadSource
}

// HasTags reports whether the lead carries a non-empty tag set.
func (l *Lead) HasTags() bool {
	return len(l.Tags) > 0
}

// Priority band thresholds over lead_score. Inferred convention: confirmed
// against the dashboard filter behavior, centralized here so a rule change
// is a one-line edit.
const (
	HotScoreMin  = 70
	WarmScoreMin = 40
)

// Band labels for score-derived priority.
const (
	BandHot  = "hot"
	BandWarm = "warm"
	BandCold = "cold"
)

// PriorityBand classifies a raw lead_score value into hot/warm/cold.
// Non-numeric scores are returned as their literal lowercased form so
// legacy rows holding band words still match the corresponding facet.
func PriorityBand(rawScore string) string {
	s := strings.TrimSpace(rawScore)
	if s == "" {
		return BandCold
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return strings.ToLower(s)
	}
	switch {
	case n >= HotScoreMin:
		return BandHot
	case n >= WarmScoreMin:
		return BandWarm
	default:
		return BandCold
	}
}

// ScoreInt parses the lead's raw score. ok is false for absent or
// non-numeric values.
func (l *Lead) ScoreInt() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(l.LeadScore))
	if err != nil {
		return 0, false
	}
	return n, true
}
