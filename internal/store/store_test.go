package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leads-cli/internal/model"
)

func intPtr(v int) *int { return &v }

func TestMaterialize(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	p := model.LeadPayload{
		CompanyName: "Acme Corp",
		ContactName: "Jo",
		Status:      "won",
		Value:       1200,
		ProjectID:   "proj-1",
		Tags:        []string{"vip"},
		LeadScore:   intPtr(82),
	}

	lead, err := materialize(p, "lead-1", now)
	require.NoError(t, err)

	assert.Equal(t, "lead-1", lead.ID)
	assert.Equal(t, "Acme Corp", lead.CompanyName)
	assert.Equal(t, model.StatusClosedWon, lead.Status)
	assert.Equal(t, "82", lead.LeadScore)
	assert.Equal(t, []string{"vip"}, lead.Tags)
	assert.Equal(t, now, lead.CreatedAt)
	assert.Equal(t, now, lead.UpdatedAt)
}

func TestMaterialize_DefaultsStatusToNew(t *testing.T) {
	lead, err := materialize(model.LeadPayload{CompanyName: "Acme", ProjectID: "p"}, "id", time.Now())
	require.NoError(t, err)
	assert.Equal(t, model.StatusNew, lead.Status)
	assert.Empty(t, lead.LeadScore)
}

func TestMaterialize_Rejections(t *testing.T) {
	now := time.Now()

	_, err := materialize(model.LeadPayload{ProjectID: "p"}, "id", now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "company_name")

	_, err = materialize(model.LeadPayload{CompanyName: "Acme", Value: -1}, "id", now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-negative")

	_, err = materialize(model.LeadPayload{CompanyName: "Acme", Status: "bogus"}, "id", now)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestApplyPatch_MergesFields(t *testing.T) {
	lead := model.Lead{ID: "1", CompanyName: "Acme", Status: model.StatusNew, Value: 100, AssignedTo: "u1"}

	err := applyPatch(&lead, map[string]any{
		"value":        2500.0,
		"status":       "negotiation",
		"contact_name": "Sam",
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme", lead.CompanyName)
	assert.Equal(t, 2500.0, lead.Value)
	assert.Equal(t, model.StatusProposal, lead.Status)
	assert.Equal(t, "Sam", lead.ContactName)
	assert.Equal(t, "u1", lead.AssignedTo)
}

func TestApplyPatch_NilValueClearsField(t *testing.T) {
	lead := model.Lead{ID: "1", CompanyName: "Acme", Status: model.StatusNew, AssignedTo: "u1"}

	err := applyPatch(&lead, map[string]any{"assigned_to": nil})
	require.NoError(t, err)
	assert.Empty(t, lead.AssignedTo)
}

func TestApplyPatch_InvalidStatus(t *testing.T) {
	lead := model.Lead{ID: "1", CompanyName: "Acme", Status: model.StatusNew}

	err := applyPatch(&lead, map[string]any{"status": "archived"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, model.StatusNew, lead.Status)
}

func TestApplyPatch_NegativeValueRejected(t *testing.T) {
	lead := model.Lead{ID: "1", CompanyName: "Acme", Status: model.StatusNew, Value: 100}

	err := applyPatch(&lead, map[string]any{"value": -5.0})
	require.Error(t, err)
	assert.Equal(t, 100.0, lead.Value)
}

func TestApplyPatch_UnknownKeysDropped(t *testing.T) {
	lead := model.Lead{ID: "1", CompanyName: "Acme", Status: model.StatusNew}

	err := applyPatch(&lead, map[string]any{"not_a_field": "x"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", lead.CompanyName)
}
