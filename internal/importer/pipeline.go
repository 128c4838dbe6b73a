package importer

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/leads-cli/internal/model"
)

// ErrNoValidRows is returned when a sheet produced zero accepted payloads.
// Callers surface this before attempting persistence.
var ErrNoValidRows = eris.New("import: no valid rows in sheet")

// RejectedRow records one skipped row: its zero-based data-row index and
// the reason. The original dashboard only reported a count; keeping the
// reasons costs nothing and answers the inevitable "why did 3 rows vanish".
type RejectedRow struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Result is the outcome of mapping a whole sheet.
type Result struct {
	Accepted []model.LeadPayload `json:"accepted"`
	Rejected []RejectedRow       `json:"rejected"`
}

// RejectedCount returns the aggregate skip count.
func (r *Result) RejectedCount() int { return len(r.Rejected) }

// Pipeline drives the row mapper over an uploaded sheet and hands the
// accepted batch to the persistence collaborator in one bulk create.
type Pipeline struct {
	store       BulkCreator
	concurrency int
}

// BulkCreator is the persistence slice the pipeline needs: one
// bulk-create call per batch, no per-row commits, no retries here.
type BulkCreator interface {
	CreateLeads(ctx context.Context, payloads []model.LeadPayload) ([]model.Lead, error)
}

// NewPipeline builds an import pipeline. concurrency <= 1 maps rows
// serially; rows are independent, so higher values fan the mapping out
// while keeping the accepted list in sheet order.
func NewPipeline(store BulkCreator, concurrency int) *Pipeline {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Pipeline{store: store, concurrency: concurrency}
}

// MapRows converts every row for the target project. Malformed rows are
// skipped, never fatal. The accepted slice preserves sheet order even
// when mapping runs concurrently.
func (p *Pipeline) MapRows(ctx context.Context, projectID string, rows []ImportRow) (*Result, error) {
	if projectID == "" {
		return nil, eris.New("import: project id is required")
	}

	type slot struct {
		payload *model.LeadPayload
		reject  RejectReason
	}
	slots := make([]slot, len(rows))

	if p.concurrency <= 1 {
		for i, row := range rows {
			payload, reason := mapValidated(row, projectID)
			slots[i] = slot{payload: payload, reject: reason}
		}
	} else {
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(p.concurrency)
		for i, row := range rows {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				payload, reason := mapValidated(row, projectID)
				slots[i] = slot{payload: payload, reject: reason}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, eris.Wrap(err, "import: map rows")
		}
	}

	result := &Result{}
	for i, s := range slots {
		if s.payload != nil {
			result.Accepted = append(result.Accepted, *s.payload)
		} else {
			result.Rejected = append(result.Rejected, RejectedRow{Index: i, Reason: string(s.reject)})
		}
	}
	return result, nil
}

// Run maps all rows and persists the accepted batch as a single bulk
// create. Persistence failure is reported verbatim; the pipeline does
// not retry and does not commit rows individually.
func (p *Pipeline) Run(ctx context.Context, projectID string, rows []ImportRow) (*Result, []model.Lead, error) {
	result, err := p.MapRows(ctx, projectID, rows)
	if err != nil {
		return nil, nil, err
	}

	zap.L().Info("import: rows mapped",
		zap.String("project_id", projectID),
		zap.Int("accepted", len(result.Accepted)),
		zap.Int("rejected", result.RejectedCount()),
	)

	if len(result.Accepted) == 0 {
		return result, nil, ErrNoValidRows
	}

	created, err := p.store.CreateLeads(ctx, result.Accepted)
	if err != nil {
		return result, nil, eris.Wrap(err, "import: bulk create")
	}
	return result, created, nil
}

// mapValidated runs the row mapper, then the payload invariants, folding
// any validation problems into the rejection reason.
func mapValidated(row ImportRow, projectID string) (*model.LeadPayload, RejectReason) {
	payload, reason := MapRow(row, projectID)
	if payload == nil {
		return nil, reason
	}
	if problems := payload.Validate(); len(problems) > 0 {
		return nil, RejectReason(strings.Join(problems, "; "))
	}
	return payload, ""
}
