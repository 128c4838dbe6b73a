package importer

import (
	"strings"
)

// Field names a canonical lead attribute that spreadsheet headers are
// mapped onto.
type Field string

// Canonical fields. These mirror the lead record one-to-one; the alias
// table below is the only place header spellings are interpreted.
const (
	FieldCompanyName Field = "company_name"
	FieldContactName Field = "contact_name"
	FieldDesignation Field = "designation"

	FieldEmail       Field = "email"
	FieldMobilePhone Field = "mobile_phone"
	FieldDirectPhone Field = "direct_phone"
	FieldOfficePhone Field = "office_phone"
	FieldLinkedIn    Field = "linkedin"

	FieldAddressLine1 Field = "address_line1"
	FieldAddressLine2 Field = "address_line2"
	FieldCity         Field = "city"
	FieldState        Field = "state"
	FieldCountry      Field = "country"
	FieldZip          Field = "zip"

	FieldValue      Field = "value"
	FieldStatus     Field = "status"
	FieldAssignedTo Field = "assigned_to"

	FieldCustomerGroup Field = "customer_group"
	FieldProductGroup  Field = "product_group"
	FieldTags          Field = "tags"
	FieldLeadSource    Field = "lead_source"
	FieldDataSource    Field = "data_source"
	FieldLeadScore     Field = "lead_score"

	FieldNextFollowupDate Field = "next_followup_date"
	FieldFollowupNotes    Field = "followup_notes"

	FieldLeadNotes         Field = "lead_notes"
	FieldOrganizationNotes Field = "organization_notes"
	FieldDescription       Field = "description"
	FieldListName          Field = "list_name"

	FieldDateOfBirth      Field = "date_of_birth"
	FieldSpecialEventDate Field = "special_event_date"

	FieldReferenceURL1 Field = "reference_url1"
	FieldReferenceURL2 Field = "reference_url2"
	FieldReferenceURL3 Field = "reference_url3"
	FieldLink          Field = "link"
)

// fieldSpec holds the resolution rules for one canonical field: an ordered
// exact-match alias list (case-sensitive, first hit wins, deliberate
// overrides go first) and keyword groups matched against the lowercased,
// punctuation-stripped header. Each group is a conjunction; groups are
// alternatives.
type fieldSpec struct {
	aliases  []string
	keywords [][]string
}

// aliasTable drives Resolve. Keyword groups are deliberately narrower than
// alias lists: they only fire for headers no exact alias claimed.
var aliasTable = map[Field]*fieldSpec{
	FieldCompanyName: {
		aliases: []string{
			"Company / Organization", "Company", "company_name", "Organization",
			"Company Name", "Account Name", "Business Name", "Organisation",
			"Firm", "Account",
		},
		keywords: [][]string{{"company"}, {"organization"}, {"organisation"}, {"business", "name"}, {"account", "name"}},
	},
	FieldContactName: {
		aliases: []string{
			"Contact Name", "contact_name", "Name", "Full Name", "Contact Person",
			"Person", "First Name", "Contact",
		},
		keywords: [][]string{{"contact", "name"}, {"full", "name"}, {"person"}},
	},
	FieldDesignation: {
		aliases:  []string{"Designation", "Title", "Job Title", "Position", "Role"},
		keywords: [][]string{{"designation"}, {"title"}, {"position"}},
	},
	FieldEmail: {
		aliases: []string{
			"Email", "email", "E-mail", "Email Address", "Email ID", "Mail",
			"Primary Email", "Work Email",
		},
		keywords: [][]string{{"email"}, {"mail"}},
	},
	FieldMobilePhone: {
		aliases:  []string{"Mobile", "Mobile Phone", "mobile_phone", "Mobile Number", "Cell", "Cell Phone"},
		keywords: nil, // distinct channel: exact aliases only
	},
	FieldDirectPhone: {
		aliases:  []string{"Direct Phone", "direct_phone", "Direct", "Direct Line", "Direct Dial"},
		keywords: nil,
	},
	FieldOfficePhone: {
		aliases:  []string{"Office Phone", "office_phone", "Office", "Office Number", "Work Phone", "Landline"},
		keywords: nil,
	},
	FieldLinkedIn: {
		aliases:  []string{"LinkedIn", "linkedin", "LinkedIn URL", "Linkedin Profile", "LI Profile"},
		keywords: [][]string{{"linkedin"}},
	},
	FieldAddressLine1: {
		aliases:  []string{"Address", "Address Line 1", "address_line1", "Street", "Street Address", "Address 1"},
		keywords: [][]string{{"address", "1"}, {"street"}},
	},
	FieldAddressLine2: {
		aliases:  []string{"Address Line 2", "address_line2", "Address 2", "Suite", "Unit"},
		keywords: [][]string{{"address", "2"}},
	},
	FieldCity: {
		aliases:  []string{"City", "city", "Town"},
		keywords: [][]string{{"city"}, {"town"}},
	},
	FieldState: {
		aliases:  []string{"State", "state", "Province", "Region", "State / Province"},
		keywords: [][]string{{"state"}, {"province"}},
	},
	FieldCountry: {
		aliases:  []string{"Country", "country", "Nation"},
		keywords: [][]string{{"country"}},
	},
	FieldZip: {
		aliases:  []string{"Zip", "zip", "Zip Code", "Zipcode", "Postal Code", "Postcode", "PIN Code", "Pincode"},
		keywords: [][]string{{"zip"}, {"postal"}, {"postcode"}, {"pincode"}},
	},
	FieldValue: {
		aliases:  []string{"Deal Size", "Value", "Amount", "Potential", "Deal Value", "Opportunity Value", "Budget", "Revenue Potential"},
		keywords: [][]string{{"deal", "size"}, {"deal", "value"}, {"potential"}, {"budget"}},
	},
	FieldStatus: {
		aliases:  []string{"Status", "status", "Lead Status", "Stage", "Pipeline Stage"},
		keywords: [][]string{{"status"}, {"stage"}},
	},
	FieldAssignedTo: {
		aliases:  []string{"Assigned To", "assigned_to", "Owner", "Lead Owner", "Salesperson", "Sales Rep"},
		keywords: [][]string{{"assigned"}, {"owner"}},
	},
	FieldCustomerGroup: {
		aliases:  []string{"Customer Group", "customer_group", "Customer Type", "Segment"},
		keywords: [][]string{{"customer", "group"}, {"segment"}},
	},
	FieldProductGroup: {
		aliases:  []string{"Product Group", "product_group", "Product", "Product Line", "Product Interest"},
		keywords: [][]string{{"product"}},
	},
	FieldTags: {
		aliases:  []string{"Tags", "tags", "Tag", "Labels", "Keywords"},
		keywords: [][]string{{"tag"}, {"label"}},
	},
	FieldLeadSource: {
		aliases:  []string{"Lead Source", "lead_source", "Source", "Channel", "Campaign Source"},
		keywords: [][]string{{"source"}, {"channel"}},
	},
	FieldDataSource: {
		aliases:  []string{"Data Source", "data_source", "List Source", "Imported From"},
		keywords: [][]string{{"data", "source"}},
	},
	FieldLeadScore: {
		aliases:  []string{"Lead Score", "lead_score", "Score", "Rating", "Priority Score"},
		keywords: [][]string{{"score"}, {"rating"}},
	},
	FieldNextFollowupDate: {
		aliases:  []string{"Next Followup Date", "next_followup_date", "Next Follow-up", "Follow Up Date", "Followup Date", "Next Action Date"},
		keywords: [][]string{{"followup", "date"}, {"follow", "up"}},
	},
	FieldFollowupNotes: {
		aliases:  []string{"Followup Notes", "followup_notes", "Follow-up Notes", "Next Steps"},
		keywords: [][]string{{"followup", "note"}},
	},
	FieldLeadNotes: {
		aliases:  []string{"Lead Notes", "lead_notes", "Notes", "Comments", "Remarks"},
		keywords: [][]string{{"note"}, {"comment"}, {"remark"}},
	},
	FieldOrganizationNotes: {
		aliases:  []string{"Organization Notes", "organization_notes", "Company Notes", "Account Notes"},
		keywords: [][]string{{"organization", "note"}, {"company", "note"}},
	},
	FieldDescription: {
		aliases:  []string{"Description", "description", "About", "Summary", "Overview"},
		keywords: [][]string{{"description"}, {"about"}, {"summary"}},
	},
	FieldListName: {
		aliases:  []string{"List Name", "list_name", "List", "Campaign", "Batch"},
		keywords: [][]string{{"list", "name"}, {"campaign"}},
	},
	FieldDateOfBirth: {
		aliases:  []string{"Date of Birth", "date_of_birth", "DOB", "Birthday", "Birth Date"},
		keywords: [][]string{{"birth"}, {"dob"}},
	},
	FieldSpecialEventDate: {
		aliases:  []string{"Special Event Date", "special_event_date", "Anniversary", "Event Date"},
		keywords: [][]string{{"event", "date"}, {"anniversary"}},
	},
	FieldReferenceURL1: {
		aliases:  []string{"Reference URL 1", "reference_url1", "Reference URL", "Reference 1"},
		keywords: [][]string{{"reference", "1"}},
	},
	FieldReferenceURL2: {
		aliases:  []string{"Reference URL 2", "reference_url2", "Reference 2"},
		keywords: [][]string{{"reference", "2"}},
	},
	FieldReferenceURL3: {
		aliases:  []string{"Reference URL 3", "reference_url3", "Reference 3"},
		keywords: [][]string{{"reference", "3"}},
	},
	FieldLink: {
		aliases:  []string{"Website", "Link", "link", "URL", "Company Website", "Web", "Homepage", "Site"},
		keywords: [][]string{{"website"}, {"url"}, {"homepage"}, {"web"}},
	},
}

// normalizeHeader lowercases a header and strips the punctuation that
// varies between exports: underscores, hyphens, and spaces.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(h)
}

// matchesKeywords reports whether a normalized header satisfies any
// keyword group (every keyword in the group must appear).
func matchesKeywords(normalized string, groups [][]string) bool {
	for _, group := range groups {
		all := true
		for _, kw := range group {
			if !strings.Contains(normalized, kw) {
				all = false
				break
			}
		}
		if all && len(group) > 0 {
			return true
		}
	}
	return false
}

// Resolve maps a row onto one canonical field.
//
// Resolution order, first non-empty trimmed value wins:
//  1. exact alias match, in alias-list order;
//  2. keyword match against the normalized header, in column order;
//  3. for company_name only, the first column's value.
func Resolve(row ImportRow, field Field) (string, bool) {
	spec, ok := aliasTable[field]
	if !ok {
		return "", false
	}

	for _, alias := range spec.aliases {
		if v, ok := row.Get(alias); ok && v != "" {
			return v, true
		}
	}

	// Pass 2 scans columns in sheet order so ties are deterministic.
	aliasSet := make(map[string]bool, len(spec.aliases))
	for _, a := range spec.aliases {
		aliasSet[a] = true
	}
	for _, col := range row.Columns {
		if aliasSet[col] {
			continue
		}
		if matchesKeywords(normalizeHeader(col), spec.keywords) {
			if v, _ := row.Get(col); v != "" {
				return v, true
			}
		}
	}

	if field == FieldCompanyName && len(row.Columns) > 0 {
		if v, _ := row.Get(row.Columns[0]); v != "" {
			return v, true
		}
	}

	return "", false
}

// ResolveEmail resolves the email field, requiring an "@" for values found
// by the keyword pass. Exact alias hits are trusted as-is.
func ResolveEmail(row ImportRow) (string, bool) {
	spec := aliasTable[FieldEmail]
	for _, alias := range spec.aliases {
		if v, ok := row.Get(alias); ok && v != "" {
			return v, true
		}
	}
	for _, col := range row.Columns {
		if matchesKeywords(normalizeHeader(col), spec.keywords) {
			if v, _ := row.Get(col); strings.Contains(v, "@") {
				return v, true
			}
		}
	}
	return "", false
}
