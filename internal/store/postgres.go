package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/leads-cli/internal/db"
	"github.com/sells-group/leads-cli/internal/model"
)

// PostgresStore implements Store using pgxpool. The full lead record
// lives in a JSONB column; the columns queried by the dashboard are
// denormalized alongside it.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
	now     func() time.Time
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

const (
	sqlGetLead    = `SELECT data FROM leads WHERE id = $1`
	sqlListLeads  = `SELECT data FROM leads ORDER BY created_at, id`
	sqlListByProj = `SELECT data FROM leads WHERE project_id = $1 ORDER BY created_at, id`
	sqlUpdateLead = `UPDATE leads SET data = $1, project_id = $2, status = $3, assigned_to = $4, updated_at = $5 WHERE id = $6`
	sqlDeleteLead = `DELETE FROM leads WHERE id = $1`
)

var leadColumns = []string{"id", "project_id", "status", "assigned_to", "data", "created_at", "updated_at"}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close, now: time.Now}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests (pgxmock) and
// by callers that manage pool lifecycle themselves.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, now: time.Now}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS leads (
	id          TEXT PRIMARY KEY,
	project_id  TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'new',
	assigned_to TEXT NOT NULL DEFAULT '',
	data        JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_leads_project ON leads (project_id);
CREATE INDEX IF NOT EXISTS idx_leads_status ON leads (status);
CREATE INDEX IF NOT EXISTS idx_leads_assigned ON leads (assigned_to);
`

// Migrate creates the leads schema.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresMigration); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

// CreateLeads persists a whole batch via the COPY protocol in one bulk
// operation, no per-row commits.
func (s *PostgresStore) CreateLeads(ctx context.Context, payloads []model.LeadPayload) ([]model.Lead, error) {
	if len(payloads) == 0 {
		return nil, eris.New("postgres: empty batch")
	}

	now := s.now().UTC()
	leads := make([]model.Lead, 0, len(payloads))
	rows := make([][]any, 0, len(payloads))
	for _, p := range payloads {
		lead, err := materialize(p, uuid.NewString(), now)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(lead)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: marshal lead")
		}
		leads = append(leads, lead)
		rows = append(rows, []any{lead.ID, lead.ProjectID, string(lead.Status), lead.AssignedTo, data, lead.CreatedAt, lead.UpdatedAt})
	}

	if _, err := db.CopyFrom(ctx, s.pool, "leads", leadColumns, rows); err != nil {
		return nil, err
	}
	return leads, nil
}

// GetLead fetches one lead by id.
func (s *PostgresStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, sqlGetLead, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get lead")
	}
	var lead model.Lead
	if err := json.Unmarshal(data, &lead); err != nil {
		return nil, eris.Wrap(err, "postgres: decode lead")
	}
	return &lead, nil
}

// ListLeads returns all leads, optionally scoped to one project, in
// stable creation order.
func (s *PostgresStore) ListLeads(ctx context.Context, projectID string) ([]model.Lead, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if projectID == "" {
		rows, err = s.pool.Query(ctx, sqlListLeads)
	} else {
		rows, err = s.pool.Query(ctx, sqlListByProj, projectID)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "postgres: scan lead")
		}
		var lead model.Lead
		if err := json.Unmarshal(data, &lead); err != nil {
			return nil, eris.Wrap(err, "postgres: decode lead")
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate leads")
	}
	return leads, nil
}

// UpdateLead merges a patch into the stored record and refreshes the
// denormalized columns.
func (s *PostgresStore) UpdateLead(ctx context.Context, id string, patch map[string]any) (*model.Lead, error) {
	lead, err := s.GetLead(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyPatch(lead, patch); err != nil {
		return nil, err
	}
	lead.UpdatedAt = s.now().UTC()

	data, err := json.Marshal(lead)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal lead")
	}
	tag, err := s.pool.Exec(ctx, sqlUpdateLead, data, lead.ProjectID, string(lead.Status), lead.AssignedTo, lead.UpdatedAt, id)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: update lead")
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return lead, nil
}

// DeleteLead removes one lead.
func (s *PostgresStore) DeleteLead(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, sqlDeleteLead, id)
	if err != nil {
		return eris.Wrap(err, "postgres: delete lead")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}
