package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPhones_DedupAcrossColumns(t *testing.T) {
	r := row("Phone", "555-1111, 555-2222", "Mobile", "555-1111")
	assert.Equal(t, []string{"555-1111", "555-2222"}, ExtractPhones(r))
}

func TestExtractPhones_AliasOrderBeforeColumnOrder(t *testing.T) {
	// "Phone" is earlier in the alias table than "Mobile" even when the
	// columns appear reversed in the sheet.
	r := row("Mobile", "222-2222", "Phone", "111-1111")
	assert.Equal(t, []string{"111-1111", "222-2222"}, ExtractPhones(r))
}

func TestExtractPhones_KeywordPass(t *testing.T) {
	r := row("Primary Contact Number (Work)", "+1 (312) 555-0199")
	assert.Equal(t, []string{"+1 (312) 555-0199"}, ExtractPhones(r))
}

func TestExtractPhones_AbbreviatedHeader(t *testing.T) {
	r := row("Phno", "98765 43210")
	assert.Equal(t, []string{"98765 43210"}, ExtractPhones(r))
}

func TestExtractPhones_ShapePass(t *testing.T) {
	// A phone-shaped value under an unrelated header is still collected.
	r := row("Emergency", "+44 20 7946 0958", "Notes", "call after 5pm")
	assert.Equal(t, []string{"+44 20 7946 0958"}, ExtractPhones(r))
}

func TestExtractPhones_ShapePassRejectsText(t *testing.T) {
	r := row("Notes", "meeting room 4", "Summary", "1234567890123456789012345")
	assert.Empty(t, ExtractPhones(r))
}

func TestExtractPhones_MultiValueSeparators(t *testing.T) {
	r := row("Phone", "555-0001; 555-0002|555-0003\n555-0004")
	assert.Equal(t, []string{"555-0001", "555-0002", "555-0003", "555-0004"}, ExtractPhones(r))
}

func TestExtractPhones_SegmentValidation(t *testing.T) {
	// Too-short and digit-free segments are dropped; the rest survive.
	r := row("Phone", "12345, no number, 555-0001")
	assert.Equal(t, []string{"555-0001"}, ExtractPhones(r))
}

func TestFormatDial_InternationalPrefix(t *testing.T) {
	dial, ok := FormatDial("0044 7911 123456")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(dial, "44"))
	assert.Equal(t, "447911123456", dial)
}

func TestFormatDial_Rejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"too short", "123"},
		{"all zeros", "000000000000000000"},
		{"empty", ""},
		{"no digits", "call me"},
		{"too long", "1234567890123456"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := FormatDial(tt.raw)
			assert.False(t, ok)
		})
	}
}

func TestFormatDial_OutputInvariants(t *testing.T) {
	// Anything accepted is 7-15 digits and never starts with 0.
	inputs := []string{
		"555-0199-22", "+1 (312) 555-0199", "0044 7911 123456",
		"00 1 415 555 2671", "919876543210", "07911123456",
	}
	for _, raw := range inputs {
		dial, ok := FormatDial(raw)
		if !ok {
			continue
		}
		assert.GreaterOrEqual(t, len(dial), 7, raw)
		assert.LessOrEqual(t, len(dial), 15, raw)
		assert.NotEqual(t, byte('0'), dial[0], raw)
		for i := 0; i < len(dial); i++ {
			assert.True(t, dial[i] >= '0' && dial[i] <= '9', raw)
		}
	}
}

func TestFirstDialable(t *testing.T) {
	dial, ok := FirstDialable([]string{"junk", "123", "555-0199-22"})
	require.True(t, ok)
	assert.Equal(t, "555019922", dial)

	_, ok = FirstDialable([]string{"nope"})
	assert.False(t, ok)

	_, ok = FirstDialable(nil)
	assert.False(t, ok)
}
