package importer

import (
	"strings"
)

// phoneHeaderAliases lists known phone column spellings across the CRM
// exports we have seen. Checked first, in order, before any heuristic.
var phoneHeaderAliases = []string{
	"Phone", "phone", "Phone Number", "phone_number", "PhoneNumber",
	"Phone No", "Phone No.", "Phone#", "Ph", "Ph.", "Ph No", "Phno", "PHNO",
	"Telephone", "telephone", "Telephone Number", "Tel", "Tel.", "Tel No",
	"Mobile", "mobile", "Mobile Number", "Mobile No", "Mobile No.", "Mob", "Mob No",
	"Cell", "Cell Phone", "Cell Number", "Cellphone",
	"Contact Number", "Contact No", "Contact No.", "contact_number",
	"Primary Phone", "Secondary Phone", "Work Phone", "Home Phone",
	"Office Phone", "Direct Phone", "Phone 1", "Phone 2", "Phone1", "Phone2",
}

// phoneKeywordGroups are matched against the normalized header in the
// second extraction pass. "contact" alone is too broad; it needs a
// number-ish companion.
var phoneKeywordGroups = [][]string{
	{"phone"}, {"phno"}, {"mobile"}, {"cell"}, {"tel"},
	{"contact", "no"}, {"contact", "num"},
}

// phoneSeparators split multi-value phone cells.
var phoneSeparators = []string{",", ";", "|", "\n"}

// ExtractPhones finds every plausible phone number in a row, in order of
// first appearance, deduplicated by exact string.
//
// Three passes, each only appending numbers not yet collected:
//  1. known phone header aliases, in alias order;
//  2. remaining headers whose normalized form contains a phone keyword;
//  3. remaining cells whose value is shaped like a phone number.
//
// Extraction is deliberately permissive; a missed number is worse than a
// false positive, which FormatDial rejects before any outbound contact.
func ExtractPhones(row ImportRow) []string {
	var found []string
	seen := make(map[string]bool)
	visited := make(map[string]bool)

	collect := func(raw string) {
		for _, candidate := range splitPhoneCell(raw) {
			if !seen[candidate] {
				seen[candidate] = true
				found = append(found, candidate)
			}
		}
	}

	// Pass 1: known aliases.
	for _, alias := range phoneHeaderAliases {
		if v, ok := row.Get(alias); ok {
			visited[alias] = true
			if v != "" {
				collect(v)
			}
		}
	}

	// Pass 2: keyword headers.
	for _, col := range row.Columns {
		if visited[col] {
			continue
		}
		if matchesKeywords(normalizeHeader(col), phoneKeywordGroups) {
			visited[col] = true
			if v, _ := row.Get(col); v != "" {
				collect(v)
			}
		}
	}

	// Pass 3: phone-shaped values under unrelated headers.
	for _, col := range row.Columns {
		if visited[col] {
			continue
		}
		if v, _ := row.Get(col); looksLikePhone(v) {
			collect(v)
		}
	}

	return found
}

// splitPhoneCell splits a multi-value cell on the known separators and
// validates each segment independently. Single-value cells are validated
// whole. A valid segment is 6–25 characters and contains a digit.
func splitPhoneCell(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	hasSep := false
	for _, sep := range phoneSeparators {
		if strings.Contains(raw, sep) {
			hasSep = true
			break
		}
	}
	if !hasSep {
		if validPhoneSegment(raw) {
			return []string{raw}
		}
		return nil
	}

	normalized := raw
	for _, sep := range phoneSeparators[1:] {
		normalized = strings.ReplaceAll(normalized, sep, ",")
	}
	var out []string
	for _, part := range strings.Split(normalized, ",") {
		part = strings.TrimSpace(part)
		if validPhoneSegment(part) {
			out = append(out, part)
		}
	}
	return out
}

func validPhoneSegment(s string) bool {
	if len(s) < 6 || len(s) > 25 {
		return false
	}
	return strings.ContainsAny(s, "0123456789")
}

// looksLikePhone reports whether a value is shaped like a phone number:
// 7–20 characters, at least one digit, and nothing outside digits, "+",
// "-", parentheses, and spaces.
func looksLikePhone(v string) bool {
	v = strings.TrimSpace(v)
	if len(v) < 7 || len(v) > 20 {
		return false
	}
	hasDigit := false
	for _, r := range v {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r == '+' || r == '-' || r == '(' || r == ')' || r == ' ':
		default:
			return false
		}
	}
	return hasDigit
}

// FormatDial converts a raw phone string into a bare digit string for
// tel:/WhatsApp deep links, or rejects it. Stricter than extraction on
// purpose: this is the gate before outbound contact.
//
// Steps: strip non-digits; drop a leading "00" international dialing
// prefix; strip remaining leading zeros (no country code begins with 0);
// enforce E.164 length bounds (7–15) and a 1–9 first digit.
func FormatDial(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	digits = strings.TrimPrefix(digits, "00")
	digits = strings.TrimLeft(digits, "0")

	if len(digits) < 7 || len(digits) > 15 {
		return "", false
	}
	if digits[0] < '1' || digits[0] > '9' {
		return "", false
	}
	return digits, true
}

// FirstDialable runs FormatDial over a candidate list and returns the
// first accepted number. ok is false when every candidate is rejected;
// the caller disables the messaging action rather than erroring.
func FirstDialable(candidates []string) (string, bool) {
	for _, c := range candidates {
		if dial, ok := FormatDial(c); ok {
			return dial, true
		}
	}
	return "", false
}
