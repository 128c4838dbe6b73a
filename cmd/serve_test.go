package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leads-cli/internal/config"
	"github.com/sells-group/leads-cli/internal/model"
	"github.com/sells-group/leads-cli/internal/store"
)

// fakeLeadStore is an in-memory store.Store for handler tests.
type fakeLeadStore struct {
	leads map[string]model.Lead
	order []string
}

func newFakeLeadStore(leads ...model.Lead) *fakeLeadStore {
	f := &fakeLeadStore{leads: make(map[string]model.Lead)}
	for _, l := range leads {
		f.leads[l.ID] = l
		f.order = append(f.order, l.ID)
	}
	return f
}

func (f *fakeLeadStore) CreateLeads(_ context.Context, payloads []model.LeadPayload) ([]model.Lead, error) {
	created := make([]model.Lead, 0, len(payloads))
	for _, p := range payloads {
		l := model.Lead{ID: p.CompanyName + "-id", CompanyName: p.CompanyName, ProjectID: p.ProjectID}
		f.leads[l.ID] = l
		f.order = append(f.order, l.ID)
		created = append(created, l)
	}
	return created, nil
}

func (f *fakeLeadStore) GetLead(_ context.Context, id string) (*model.Lead, error) {
	l, ok := f.leads[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &l, nil
}

func (f *fakeLeadStore) ListLeads(_ context.Context, projectID string) ([]model.Lead, error) {
	var out []model.Lead
	for _, id := range f.order {
		l := f.leads[id]
		if projectID == "" || l.ProjectID == projectID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeadStore) UpdateLead(_ context.Context, id string, patch map[string]any) (*model.Lead, error) {
	l, ok := f.leads[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if v, ok := patch["assigned_to"].(string); ok {
		l.AssignedTo = v
	}
	f.leads[id] = l
	return &l, nil
}

func (f *fakeLeadStore) DeleteLead(_ context.Context, id string) error {
	if _, ok := f.leads[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.leads, id)
	return nil
}

func (f *fakeLeadStore) Migrate(context.Context) error { return nil }
func (f *fakeLeadStore) Close() error                  { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Import:    config.ImportConfig{Concurrency: 1},
		Bulk:      config.BulkConfig{Concurrency: 2},
		Server:    config.ServerConfig{Port: 8080, CORSOrigins: []string{"*"}},
		Messaging: config.MessagingConfig{MessageTemplate: "Hi {contact_name}"},
	}
}

func TestRouter_Health(t *testing.T) {
	cfg = testConfig()
	router := newRouter(newFakeLeadStore())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_ListLeads_FilteredWithStats(t *testing.T) {
	cfg = testConfig()
	router := newRouter(newFakeLeadStore(
		model.Lead{ID: "1", CompanyName: "Acme", Status: "new", Value: 100},
		model.Lead{ID: "2", CompanyName: "Globex", Status: "won", Value: 900},
	))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/leads?status=closed_won", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Leads []model.Lead `json:"leads"`
		Stats struct {
			Total      int     `json:"total"`
			TotalValue float64 `json:"total_value"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Leads, 1)
	assert.Equal(t, "Globex", body.Leads[0].CompanyName)
	assert.Equal(t, 1, body.Stats.Total)
	assert.Equal(t, 900.0, body.Stats.TotalValue)
}

func TestRouter_DeleteLead(t *testing.T) {
	cfg = testConfig()
	st := newFakeLeadStore(model.Lead{ID: "1", CompanyName: "Acme"})
	router := newRouter(st)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/leads/1", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/leads/1", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_LeadLinks(t *testing.T) {
	cfg = testConfig()
	router := newRouter(newFakeLeadStore(model.Lead{
		ID: "1", CompanyName: "Acme", ContactName: "Jo",
		Phone: "555-010-4477", Email: "jo@acme.com",
	}))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/leads/1/links", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var links map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &links))
	assert.Equal(t, "tel:5550104477", links["tel"])
	assert.Contains(t, links["whatsapp"], "wa.me/5550104477")
	assert.Contains(t, links["email"], "mail.google.com")
}

func TestRouter_LeadLinks_NoChannels(t *testing.T) {
	cfg = testConfig()
	router := newRouter(newFakeLeadStore(model.Lead{ID: "1", CompanyName: "Acme"}))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/leads/1/links", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var links map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &links))
	assert.Empty(t, links)
}

func TestRouter_Assign(t *testing.T) {
	cfg = testConfig()
	st := newFakeLeadStore(
		model.Lead{ID: "1", CompanyName: "Acme"},
		model.Lead{ID: "2", CompanyName: "Globex"},
	)
	router := newRouter(st)

	body, _ := json.Marshal(map[string]any{"ids": []string{"1", "2", "ghost"}, "assignee": "u7"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/leads/assign", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rr.Code)
	var out struct {
		Succeeded int `json:"succeeded"`
		Failed    int `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, 2, out.Succeeded)
	assert.Equal(t, 1, out.Failed)
	assert.Equal(t, "u7", st.leads["1"].AssignedTo)
}

func TestRouter_Assign_MissingIDs(t *testing.T) {
	cfg = testConfig()
	router := newRouter(newFakeLeadStore())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/leads/assign", bytes.NewReader([]byte(`{}`))))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "ids are required")
}

func TestRouter_Purge(t *testing.T) {
	cfg = testConfig()
	st := newFakeLeadStore(model.Lead{ID: "1", CompanyName: "Acme"})
	router := newRouter(st)

	body, _ := json.Marshal(map[string]any{"ids": []string{"1"}})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/leads/purge", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, st.leads)
}

func TestFilterFromQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/api/leads?status=new&assignee=u1&search=acme&priority=hot&value_min=100&has_tags=true&tag=vip", nil)

	f := filterFromQuery(req)
	assert.Equal(t, "new", f.Status)
	assert.Equal(t, "u1", f.Assignee)
	assert.Equal(t, "acme", f.Search)
	assert.Equal(t, "hot", f.Priority)
	assert.Equal(t, "100", f.ValueMin)
	assert.True(t, f.HasTags)
	assert.Equal(t, "vip", f.TagQuery)
	assert.False(t, f.DoNotFollowup)
}
