package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(pairs ...string) ImportRow {
	headers := make([]string, 0, len(pairs)/2)
	cells := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		headers = append(headers, pairs[i])
		cells = append(cells, pairs[i+1])
	}
	return NewImportRow(headers, cells)
}

func TestResolve_ExactAliasOrder(t *testing.T) {
	// "Company / Organization" outranks "Company" because it comes first
	// in the alias list, regardless of column position.
	r := row("Company", "Second", "Company / Organization", "First")
	v, ok := Resolve(r, FieldCompanyName)
	require.True(t, ok)
	assert.Equal(t, "First", v)
}

func TestResolve_KeywordFallback(t *testing.T) {
	r := row("Our Company Title Thing", "Acme Corp")
	v, ok := Resolve(r, FieldCompanyName)
	require.True(t, ok)
	assert.Equal(t, "Acme Corp", v)
}

func TestResolve_KeywordNormalizesPunctuation(t *testing.T) {
	r := row("LEAD_SOURCE", "Webinar")
	v, ok := Resolve(r, FieldLeadSource)
	require.True(t, ok)
	assert.Equal(t, "Webinar", v)
}

func TestResolve_CompanyFirstColumnFallback(t *testing.T) {
	// No company alias anywhere: the first column wins, never a later one.
	r := row("Random A", "Globex", "Random B", "Initech")
	v, ok := Resolve(r, FieldCompanyName)
	require.True(t, ok)
	assert.Equal(t, "Globex", v)
}

func TestResolve_FirstColumnFallbackIsCompanyOnly(t *testing.T) {
	r := row("Random A", "something", "Random B", "else")
	_, ok := Resolve(r, FieldCity)
	assert.False(t, ok)
}

func TestResolve_SkipsEmptyValues(t *testing.T) {
	// An alias hit with an empty cell keeps looking.
	r := row("Company", "  ", "Organization", "Acme")
	v, ok := Resolve(r, FieldCompanyName)
	require.True(t, ok)
	assert.Equal(t, "Acme", v)
}

func TestResolve_KeywordTieBreaksOnColumnOrder(t *testing.T) {
	r := row("Town of Residence", "Springfield", "Home Town", "Shelbyville")
	v, ok := Resolve(r, FieldCity)
	require.True(t, ok)
	assert.Equal(t, "Springfield", v)
}

func TestResolve_ConjunctiveKeywords(t *testing.T) {
	// "data source" requires both words; a bare "data" header must not match.
	r := row("Data", "nope", "Data Source", "ZoomInfo")
	v, ok := Resolve(r, FieldDataSource)
	require.True(t, ok)
	assert.Equal(t, "ZoomInfo", v)
}

func TestResolveEmail_KeywordRequiresAt(t *testing.T) {
	r := row("Mailing Preference", "weekly")
	_, ok := ResolveEmail(r)
	assert.False(t, ok)

	r = row("Mail Contact", "jo@acme.com")
	v, ok := ResolveEmail(r)
	require.True(t, ok)
	assert.Equal(t, "jo@acme.com", v)
}

func TestResolveEmail_ExactAliasTrusted(t *testing.T) {
	// Exact alias hits skip the @ check; junk in a real Email column is
	// the source data's problem, not a resolution ambiguity.
	r := row("Email", "not-an-address")
	v, ok := ResolveEmail(r)
	require.True(t, ok)
	assert.Equal(t, "not-an-address", v)
}

func TestAliasOverrides_Prepend(t *testing.T) {
	overrides := AliasOverrides{"company_name": {"Cust Org"}}
	require.NoError(t, overrides.Apply())
	t.Cleanup(func() {
		aliasTable[FieldCompanyName].aliases = aliasTable[FieldCompanyName].aliases[1:]
	})

	r := row("Company", "Built-in", "Cust Org", "Override")
	v, ok := Resolve(r, FieldCompanyName)
	require.True(t, ok)
	assert.Equal(t, "Override", v)
}

func TestAliasOverrides_UnknownField(t *testing.T) {
	overrides := AliasOverrides{"not_a_field": {"X"}}
	assert.Error(t, overrides.Apply())
}
