// Package bulk fans out per-lead persistence requests for the multi-select
// dashboard actions (assign, delete). Best-effort: every request runs,
// failures are collected, nothing is rolled back.
package bulk

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sells-group/leads-cli/internal/model"
)

// LeadWriter is the persistence slice the fan-out needs.
type LeadWriter interface {
	UpdateLead(ctx context.Context, id string, patch map[string]any) (*model.Lead, error)
	DeleteLead(ctx context.Context, id string) error
}

// Failure records one lead whose request did not succeed.
type Failure struct {
	ID  string `json:"id"`
	Err string `json:"error"`
}

// Outcome is the aggregate result of a fan-out: N succeeded, M failed.
type Outcome struct {
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Failures  []Failure `json:"failures,omitempty"`
}

// Runner executes fan-outs with bounded concurrency and an optional
// request rate limit.
type Runner struct {
	store       LeadWriter
	concurrency int
	limiter     *rate.Limiter
}

// Option configures a Runner.
type Option func(*Runner)

// WithRateLimit caps persistence requests per second across the fan-out.
func WithRateLimit(rps float64) Option {
	return func(r *Runner) {
		if rps > 0 {
			r.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		}
	}
}

// NewRunner builds a fan-out runner. concurrency < 1 defaults to 8.
func NewRunner(store LeadWriter, concurrency int, opts ...Option) *Runner {
	if concurrency < 1 {
		concurrency = 8
	}
	r := &Runner{store: store, concurrency: concurrency}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AssignAll sets the owner on every selected lead concurrently. Pass an
// empty assignee to unassign.
func (r *Runner) AssignAll(ctx context.Context, ids []string, assignee string) Outcome {
	return r.fanOut(ctx, ids, "assign", func(ctx context.Context, id string) error {
		_, err := r.store.UpdateLead(ctx, id, map[string]any{"assigned_to": assignee})
		return err
	})
}

// DeleteAll removes every selected lead concurrently.
func (r *Runner) DeleteAll(ctx context.Context, ids []string) Outcome {
	return r.fanOut(ctx, ids, "delete", func(ctx context.Context, id string) error {
		return r.store.DeleteLead(ctx, id)
	})
}

// fanOut runs one request per lead. A failing request never stops the
// others; only context cancellation short-circuits the remainder.
func (r *Runner) fanOut(ctx context.Context, ids []string, op string, do func(context.Context, string) error) Outcome {
	var (
		mu      sync.Mutex
		outcome Outcome
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for _, id := range ids {
		g.Go(func() error {
			if err := r.wait(ctx); err != nil {
				mu.Lock()
				outcome.Failed++
				outcome.Failures = append(outcome.Failures, Failure{ID: id, Err: err.Error()})
				mu.Unlock()
				return nil
			}

			err := do(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				outcome.Failed++
				outcome.Failures = append(outcome.Failures, Failure{ID: id, Err: err.Error()})
				return nil
			}
			outcome.Succeeded++
			return nil
		})
	}
	_ = g.Wait()

	zap.L().Info("bulk: fan-out complete",
		zap.String("op", op),
		zap.Int("succeeded", outcome.Succeeded),
		zap.Int("failed", outcome.Failed),
	)
	return outcome
}

func (r *Runner) wait(ctx context.Context) error {
	if r.limiter == nil {
		return ctx.Err()
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "bulk: rate limit wait")
	}
	return nil
}
