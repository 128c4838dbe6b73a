package importer

import (
	"context"
	"fmt"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leads-cli/internal/model"
)

type fakeStore struct {
	batches [][]model.LeadPayload
	err     error
}

func (f *fakeStore) CreateLeads(_ context.Context, payloads []model.LeadPayload) ([]model.Lead, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.batches = append(f.batches, payloads)
	leads := make([]model.Lead, len(payloads))
	for i, p := range payloads {
		leads[i] = model.Lead{ID: fmt.Sprintf("id-%d", i), CompanyName: p.CompanyName}
	}
	return leads, nil
}

func importRows(companies ...string) []ImportRow {
	rows := make([]ImportRow, len(companies))
	for i, c := range companies {
		rows[i] = row("Company", c, "Contact Name", "someone")
	}
	return rows
}

func TestMapRows_PartialRejection(t *testing.T) {
	// 10 rows, 3 without a company name.
	rows := importRows("A", "B", "", "C", "D", "", "E", "F", "", "G")

	p := NewPipeline(nil, 1)
	result, err := p.MapRows(context.Background(), "P-1", rows)
	require.NoError(t, err)

	assert.Len(t, result.Accepted, 7)
	assert.Equal(t, 3, result.RejectedCount())
	for i, want := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		assert.Equal(t, want, result.Accepted[i].CompanyName)
	}
	// Rejection reasons carry the original row indexes.
	assert.Equal(t, []int{2, 5, 8}, []int{result.Rejected[0].Index, result.Rejected[1].Index, result.Rejected[2].Index})
}

func TestMapRows_ConcurrentPreservesOrder(t *testing.T) {
	var companies []string
	for i := 0; i < 200; i++ {
		companies = append(companies, fmt.Sprintf("Company-%03d", i))
	}
	p := NewPipeline(nil, 8)
	result, err := p.MapRows(context.Background(), "P-1", importRows(companies...))
	require.NoError(t, err)
	require.Len(t, result.Accepted, 200)
	for i, payload := range result.Accepted {
		assert.Equal(t, fmt.Sprintf("Company-%03d", i), payload.CompanyName)
	}
}

func TestMapRows_RequiresProject(t *testing.T) {
	p := NewPipeline(nil, 1)
	_, err := p.MapRows(context.Background(), "", importRows("A"))
	assert.Error(t, err)
}

func TestRun_BulkCreateOnce(t *testing.T) {
	st := &fakeStore{}
	p := NewPipeline(st, 1)

	result, created, err := p.Run(context.Background(), "P-1", importRows("A", "", "B"))
	require.NoError(t, err)

	assert.Len(t, created, 2)
	assert.Equal(t, 1, result.RejectedCount())
	// The whole batch lands in one bulk-create call.
	require.Len(t, st.batches, 1)
	assert.Len(t, st.batches[0], 2)
}

func TestRun_NoValidRows(t *testing.T) {
	st := &fakeStore{}
	p := NewPipeline(st, 1)

	result, _, err := p.Run(context.Background(), "P-1", importRows("", ""))
	require.ErrorIs(t, err, ErrNoValidRows)
	assert.Equal(t, 2, result.RejectedCount())
	// Nothing reaches the store on a fully rejected sheet.
	assert.Empty(t, st.batches)
}

func TestRun_PersistenceFailureVerbatim(t *testing.T) {
	boom := eris.New("connection refused")
	p := NewPipeline(&fakeStore{err: boom}, 1)

	_, _, err := p.Run(context.Background(), "P-1", importRows("A"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
