package importer

import (
	"strconv"
	"strings"

	"github.com/sells-group/leads-cli/internal/model"
)

// RejectReason explains why a row produced no payload. Rejections are
// per-row: one bad row never aborts a batch.
type RejectReason string

const (
	RejectEmptyRow  RejectReason = "row is blank"
	RejectNoCompany RejectReason = "no company name found under any known header"
)

// MapRow converts one spreadsheet row into a lead-creation payload for the
// given project. The company name is the only hard requirement; everything
// else degrades to absent.
func MapRow(row ImportRow, projectID string) (*model.LeadPayload, RejectReason) {
	if row.Empty() {
		return nil, RejectEmptyRow
	}

	company, ok := Resolve(row, FieldCompanyName)
	if !ok || company == "" {
		return nil, RejectNoCompany
	}

	p := &model.LeadPayload{
		CompanyName: company,
		ProjectID:   projectID,
		Status:      model.StatusNew,
	}

	p.ContactName, _ = Resolve(row, FieldContactName)
	p.Designation, _ = Resolve(row, FieldDesignation)
	p.Email, _ = ResolveEmail(row)
	p.LinkedIn, _ = Resolve(row, FieldLinkedIn)

	// General phone pool spans every column; the named channels resolve
	// from their specific headers only so they stay distinct.
	if phones := ExtractPhones(row); len(phones) > 0 {
		p.Phone = strings.Join(phones, ", ")
	}
	p.MobilePhone, _ = Resolve(row, FieldMobilePhone)
	p.DirectPhone, _ = Resolve(row, FieldDirectPhone)
	p.OfficePhone, _ = Resolve(row, FieldOfficePhone)

	p.AddressLine1, _ = Resolve(row, FieldAddressLine1)
	p.AddressLine2, _ = Resolve(row, FieldAddressLine2)
	p.City, _ = Resolve(row, FieldCity)
	p.State, _ = Resolve(row, FieldState)
	p.Country, _ = Resolve(row, FieldCountry)
	p.Zip, _ = Resolve(row, FieldZip)

	if raw, ok := Resolve(row, FieldValue); ok {
		p.Value = ParseMoney(raw)
	}
	if raw, ok := Resolve(row, FieldStatus); ok {
		status := model.NormalizeStatus(model.Status(strings.ToLower(strings.TrimSpace(raw))))
		if status.Valid() {
			p.Status = status
		}
	}
	p.AssignedTo, _ = Resolve(row, FieldAssignedTo)

	p.CustomerGroup, _ = Resolve(row, FieldCustomerGroup)
	p.ProductGroup, _ = Resolve(row, FieldProductGroup)
	if raw, ok := Resolve(row, FieldTags); ok {
		p.Tags = ParseTags(raw)
	}
	p.LeadSource, _ = Resolve(row, FieldLeadSource)
	p.DataSource, _ = Resolve(row, FieldDataSource)
	if raw, ok := Resolve(row, FieldLeadScore); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			p.LeadScore = &n
		}
	}

	p.NextFollowupDate, _ = Resolve(row, FieldNextFollowupDate)
	p.FollowupNotes, _ = Resolve(row, FieldFollowupNotes)

	p.LeadNotes, _ = Resolve(row, FieldLeadNotes)
	p.OrganizationNotes, _ = Resolve(row, FieldOrganizationNotes)
	p.Description, _ = Resolve(row, FieldDescription)
	p.ListName, _ = Resolve(row, FieldListName)

	p.DateOfBirth, _ = Resolve(row, FieldDateOfBirth)
	p.SpecialEventDate, _ = Resolve(row, FieldSpecialEventDate)

	p.ReferenceURL1, _ = Resolve(row, FieldReferenceURL1)
	p.ReferenceURL2, _ = Resolve(row, FieldReferenceURL2)
	p.ReferenceURL3, _ = Resolve(row, FieldReferenceURL3)
	p.Link, _ = Resolve(row, FieldLink)

	return p, ""
}

// ParseTags splits a tags cell on commas into a trimmed, non-empty list.
// An empty result is nil, never an empty slice; the "has tags" facet
// treats the two differently.
func ParseTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ParseMoney extracts a numeric deal value from a currency-formatted cell.
// Everything outside [0-9.-] is stripped before parsing; unparsable input
// is 0, not an error ("N/A" and friends are common in exports).
func ParseMoney(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}
