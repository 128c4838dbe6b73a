// Package exporter projects filtered leads onto the fixed export column
// set and serializes them to a spreadsheet.
package exporter

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/leads-cli/internal/model"
)

// exportColumns is the ordered export column set, a fixed superset of
// the lead attributes the dashboard shows.
var exportColumns = []string{
	"Company Name",
	"Contact Name",
	"Designation",
	"Email",
	"Phone",
	"Mobile Phone",
	"Direct Phone",
	"Office Phone",
	"LinkedIn",
	"Address Line 1",
	"Address Line 2",
	"City",
	"State",
	"Country",
	"Zip",
	"Value",
	"Status",
	"Assigned To",
	"Customer Group",
	"Product Group",
	"Tags",
	"Lead Source",
	"Data Source",
	"Lead Score",
	"Priority",
	"Next Followup Date",
	"Followup Notes",
	"Lead Notes",
	"Organization Notes",
	"Description",
	"List Name",
	"Date of Birth",
	"Special Event Date",
	"Reference URL 1",
	"Reference URL 2",
	"Reference URL 3",
	"Website",
	"Created At",
}

// Project maps one lead onto the export column order.
func Project(l *model.Lead) []string {
	createdAt := ""
	if !l.CreatedAt.IsZero() {
		createdAt = l.CreatedAt.Format("2006-01-02 15:04:05")
	}
	return []string{
		l.CompanyName,
		l.ContactName,
		l.Designation,
		l.Email,
		l.Phone,
		l.MobilePhone,
		l.DirectPhone,
		l.OfficePhone,
		l.LinkedIn,
		l.AddressLine1,
		l.AddressLine2,
		l.City,
		l.State,
		l.Country,
		l.Zip,
		strconv.FormatFloat(l.Value, 'f', -1, 64),
		string(model.NormalizeStatus(l.Status)),
		l.AssignedTo,
		l.CustomerGroup,
		l.ProductGroup,
		strings.Join(l.Tags, ", "),
		l.Source(),
		l.DataSource,
		l.LeadScore,
		model.PriorityBand(l.LeadScore),
		l.NextFollowupDate,
		l.FollowupNotes,
		l.LeadNotes,
		l.OrganizationNotes,
		l.Description,
		l.ListName,
		l.DateOfBirth,
		l.SpecialEventDate,
		l.ReferenceURL1,
		l.ReferenceURL2,
		l.ReferenceURL3,
		l.Link,
		createdAt,
	}
}

// WriteXLSX serializes leads to an XLSX file in export column order.
func WriteXLSX(leads []model.Lead, path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range exportColumns {
		header.AddCell().Value = col
	}

	for i := range leads {
		row := sheet.AddRow()
		for _, v := range Project(&leads[i]) {
			row.AddCell().Value = v
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save file")
	}
	return nil
}

// Columns returns the export column order (for callers rendering previews).
func Columns() []string {
	out := make([]string, len(exportColumns))
	copy(out, exportColumns)
	return out
}
