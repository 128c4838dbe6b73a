// Package store persists canonical leads behind a driver-agnostic
// interface, with postgres and sqlite backends selected by config.
package store

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leads-cli/internal/model"
)

// Store is the persistence collaborator for the lead core.
type Store interface {
	// CreateLeads persists a whole import batch in one bulk operation and
	// returns the created records with ids and timestamps assigned.
	CreateLeads(ctx context.Context, payloads []model.LeadPayload) ([]model.Lead, error)

	GetLead(ctx context.Context, id string) (*model.Lead, error)
	ListLeads(ctx context.Context, projectID string) ([]model.Lead, error)

	// UpdateLead merges a field patch into the stored record. A status in
	// the patch is normalized and must land on a canonical value.
	UpdateLead(ctx context.Context, id string, patch map[string]any) (*model.Lead, error)
	DeleteLead(ctx context.Context, id string) error

	Migrate(ctx context.Context) error
	Close() error
}

// ErrNotFound is returned for operations on a lead id that does not exist.
var ErrNotFound = eris.New("store: lead not found")

// ErrInvalidStatus is returned when a patch or payload carries a status
// outside the canonical workflow states after normalization.
var ErrInvalidStatus = eris.New("store: status is not a canonical workflow state")

// materialize turns a creation payload into a storable lead record,
// enforcing the creation invariants one last time at the storage door.
func materialize(p model.LeadPayload, id string, now time.Time) (model.Lead, error) {
	if p.CompanyName == "" {
		return model.Lead{}, eris.New("store: company_name is required")
	}
	if p.Value < 0 {
		return model.Lead{}, eris.New("store: value must be non-negative")
	}

	status := model.NormalizeStatus(p.Status)
	if status == "" {
		status = model.StatusNew
	}
	if !status.Valid() {
		return model.Lead{}, ErrInvalidStatus
	}

	lead := model.Lead{
		ID:          id,
		CompanyName: p.CompanyName,
		ContactName: p.ContactName,
		Designation: p.Designation,

		Email:       p.Email,
		Phone:       p.Phone,
		MobilePhone: p.MobilePhone,
		DirectPhone: p.DirectPhone,
		OfficePhone: p.OfficePhone,
		LinkedIn:    p.LinkedIn,

		AddressLine1: p.AddressLine1,
		AddressLine2: p.AddressLine2,
		City:         p.City,
		State:        p.State,
		Country:      p.Country,
		Zip:          p.Zip,

		Value:      p.Value,
		Status:     status,
		AssignedTo: p.AssignedTo,
		ProjectID:  p.ProjectID,

		CustomerGroup: p.CustomerGroup,
		ProductGroup:  p.ProductGroup,
		Tags:          p.Tags,
		LeadSource:    p.LeadSource,
		DataSource:    p.DataSource,

		NextFollowupDate: p.NextFollowupDate,
		FollowupNotes:    p.FollowupNotes,

		LeadNotes:         p.LeadNotes,
		OrganizationNotes: p.OrganizationNotes,
		Description:       p.Description,
		ListName:          p.ListName,

		DateOfBirth:      p.DateOfBirth,
		SpecialEventDate: p.SpecialEventDate,

		ReferenceURL1: p.ReferenceURL1,
		ReferenceURL2: p.ReferenceURL2,
		ReferenceURL3: p.ReferenceURL3,
		Link:          p.Link,

		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.LeadScore != nil {
		lead.LeadScore = strconv.Itoa(*p.LeadScore)
	}
	return lead, nil
}

// applyPatch merges patch keys into a stored lead via its JSON form and
// re-validates the status invariant. Unknown keys are dropped by the
// round-trip rather than erroring, matching the hosted-DB behavior.
func applyPatch(lead *model.Lead, patch map[string]any) error {
	if raw, ok := patch["status"]; ok {
		s, _ := raw.(string)
		normalized := model.NormalizeStatus(model.Status(s))
		if !normalized.Valid() {
			return ErrInvalidStatus
		}
		patch["status"] = string(normalized)
	}

	base, err := json.Marshal(lead)
	if err != nil {
		return eris.Wrap(err, "store: marshal lead")
	}
	var m map[string]any
	if err := json.Unmarshal(base, &m); err != nil {
		return eris.Wrap(err, "store: unmarshal lead")
	}
	for k, v := range patch {
		if v == nil {
			delete(m, k)
			continue
		}
		m[k] = v
	}

	merged, err := json.Marshal(m)
	if err != nil {
		return eris.Wrap(err, "store: marshal patched lead")
	}
	var out model.Lead
	if err := json.Unmarshal(merged, &out); err != nil {
		return eris.Wrap(err, "store: patch does not fit the lead record")
	}
	if out.Value < 0 {
		return eris.New("store: value must be non-negative")
	}
	*lead = out
	return nil
}
