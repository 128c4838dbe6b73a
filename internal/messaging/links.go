// Package messaging constructs outbound contact links for a lead: tel:,
// WhatsApp web, and Gmail compose URLs. No sending happens here; an
// unformattable phone just means the action is unavailable.
package messaging

import (
	"net/url"
	"strings"

	"github.com/sells-group/leads-cli/internal/importer"
	"github.com/sells-group/leads-cli/internal/model"
)

// DefaultWhatsAppBase is the WhatsApp web deep-link prefix.
const DefaultWhatsAppBase = "https://wa.me/"

// RenderTemplate substitutes the lead placeholders in a message template:
// {company_name}, {contact_name}, {project_name}.
func RenderTemplate(tmpl string, l *model.Lead, projectName string) string {
	return strings.NewReplacer(
		"{company_name}", l.CompanyName,
		"{contact_name}", l.ContactName,
		"{project_name}", projectName,
	).Replace(tmpl)
}

// TelLink returns a tel: URI for the lead's first dialable phone number.
// ok is false when no candidate survives dial formatting.
func TelLink(l *model.Lead) (string, bool) {
	dial, ok := firstDialable(l)
	if !ok {
		return "", false
	}
	return "tel:" + dial, true
}

// WhatsAppLink returns a WhatsApp web URL with the message template
// substituted and encoded. baseURL empty defaults to wa.me.
func WhatsAppLink(l *model.Lead, baseURL, tmpl, projectName string) (string, bool) {
	dial, ok := firstDialable(l)
	if !ok {
		return "", false
	}
	if baseURL == "" {
		baseURL = DefaultWhatsAppBase
	}
	link := strings.TrimSuffix(baseURL, "/") + "/" + dial
	if tmpl != "" {
		link += "?text=" + url.QueryEscape(RenderTemplate(tmpl, l, projectName))
	}
	return link, true
}

// GmailLink returns a Gmail compose URL for the lead's email address.
func GmailLink(l *model.Lead, subject, tmpl, projectName string) (string, bool) {
	if l.Email == "" {
		return "", false
	}
	q := url.Values{}
	q.Set("view", "cm")
	q.Set("to", l.Email)
	if subject != "" {
		q.Set("su", RenderTemplate(subject, l, projectName))
	}
	if tmpl != "" {
		q.Set("body", RenderTemplate(tmpl, l, projectName))
	}
	return "https://mail.google.com/mail/?" + q.Encode(), true
}

// firstDialable formats candidates in field order: the comma-joined pool
// first, then the named channels.
func firstDialable(l *model.Lead) (string, bool) {
	var candidates []string
	for _, part := range strings.Split(l.Phone, ",") {
		if part = strings.TrimSpace(part); part != "" {
			candidates = append(candidates, part)
		}
	}
	for _, ch := range []string{l.MobilePhone, l.DirectPhone, l.OfficePhone} {
		if ch != "" {
			candidates = append(candidates, ch)
		}
	}
	return importer.FirstDialable(candidates)
}
