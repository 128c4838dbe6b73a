package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayloadValidate(t *testing.T) {
	good := LeadPayload{CompanyName: "Acme", ProjectID: "P-1", Status: StatusNew, Value: 100}
	assert.Empty(t, good.Validate())

	missing := LeadPayload{Value: -5, Status: "nonsense"}
	problems := missing.Validate()
	assert.Len(t, problems, 4)
}

func TestPayloadValidate_LegacyStatusAccepted(t *testing.T) {
	// Legacy spellings normalize to canonical values, so they pass
	// validation even though they must never be persisted raw.
	p := LeadPayload{CompanyName: "Acme", ProjectID: "P-1", Status: "won"}
	assert.Empty(t, p.Validate())
}
