package model

// LeadPayload is a lead-creation request produced by the import mapper or a
// single-record form path. The store assigns the ID and timestamps.
type LeadPayload struct {
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name,omitempty"`
	Designation string `json:"designation,omitempty"`

	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	MobilePhone string `json:"mobile_phone,omitempty"`
	DirectPhone string `json:"direct_phone,omitempty"`
	OfficePhone string `json:"office_phone,omitempty"`
	LinkedIn    string `json:"linkedin,omitempty"`

	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Country      string `json:"country,omitempty"`
	Zip          string `json:"zip,omitempty"`

	Value      float64 `json:"value"`
	Status     Status  `json:"status"`
	AssignedTo string  `json:"assigned_to,omitempty"`
	ProjectID  string  `json:"project_id"`

	CustomerGroup string   `json:"customer_group,omitempty"`
	ProductGroup  string   `json:"product_group,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	LeadSource    string   `json:"lead_source,omitempty"`
	DataSource    string   `json:"data_source,omitempty"`
	LeadScore     *int     `json:"lead_score,omitempty"`

	NextFollowupDate string `json:"next_followup_date,omitempty"`
	FollowupNotes    string `json:"followup_notes,omitempty"`

	LeadNotes         string `json:"lead_notes,omitempty"`
	OrganizationNotes string `json:"organization_notes,omitempty"`
	Description       string `json:"description,omitempty"`
	ListName          string `json:"list_name,omitempty"`

	DateOfBirth      string `json:"date_of_birth,omitempty"`
	SpecialEventDate string `json:"special_event_date,omitempty"`

	ReferenceURL1 string `json:"reference_url1,omitempty"`
	ReferenceURL2 string `json:"reference_url2,omitempty"`
	ReferenceURL3 string `json:"reference_url3,omitempty"`
	Link          string `json:"link,omitempty"`
}

// Validate checks the creation invariants: non-empty company, non-negative
// value, canonical status, and a target project.
func (p *LeadPayload) Validate() []string {
	var problems []string
	if p.CompanyName == "" {
		problems = append(problems, "company_name is required")
	}
	if p.Value < 0 {
		problems = append(problems, "value must be non-negative")
	}
	if p.Status != "" && !NormalizeStatus(p.Status).Valid() {
		problems = append(problems, "status is not a recognized workflow state")
	}
	if p.ProjectID == "" {
		problems = append(problems, "project_id is required")
	}
	return problems
}
