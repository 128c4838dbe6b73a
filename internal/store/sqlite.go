package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/leads-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite, for local and
// offline runs. Same shape as the postgres store: JSON record plus
// denormalized query columns.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLite opens a SQLite database at the given path and configures WAL
// mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: conn, now: time.Now}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS leads (
	id          TEXT PRIMARY KEY,
	project_id  TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'new',
	assigned_to TEXT NOT NULL DEFAULT '',
	data        TEXT NOT NULL,
	created_at  DATETIME NOT NULL,
	updated_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_leads_project ON leads (project_id);
CREATE INDEX IF NOT EXISTS idx_leads_status ON leads (status);
`

// Migrate creates the leads schema.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteMigration); err != nil {
		return eris.Wrap(err, "sqlite: migrate")
	}
	return nil
}

// CreateLeads persists the batch inside a single transaction, so a batch
// either lands whole or not at all, mirroring the bulk-create contract.
func (s *SQLiteStore) CreateLeads(ctx context.Context, payloads []model.LeadPayload) ([]model.Lead, error) {
	if len(payloads) == 0 {
		return nil, eris.New("sqlite: empty batch")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	now := s.now().UTC()
	leads := make([]model.Lead, 0, len(payloads))
	for _, p := range payloads {
		lead, err := materialize(p, uuid.NewString(), now)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(lead)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: marshal lead")
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO leads (id, project_id, status, assigned_to, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			lead.ID, lead.ProjectID, string(lead.Status), lead.AssignedTo, string(data), lead.CreatedAt, lead.UpdatedAt,
		); err != nil {
			return nil, eris.Wrap(err, "sqlite: insert lead")
		}
		leads = append(leads, lead)
	}

	if err := tx.Commit(); err != nil {
		return nil, eris.Wrap(err, "sqlite: commit")
	}
	return leads, nil
}

// GetLead fetches one lead by id.
func (s *SQLiteStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM leads WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get lead")
	}
	var lead model.Lead
	if err := json.Unmarshal([]byte(data), &lead); err != nil {
		return nil, eris.Wrap(err, "sqlite: decode lead")
	}
	return &lead, nil
}

// ListLeads returns all leads, optionally scoped to one project, in
// stable creation order.
func (s *SQLiteStore) ListLeads(ctx context.Context, projectID string) ([]model.Lead, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if projectID == "" {
		rows, err = s.db.QueryContext(ctx, `SELECT data FROM leads ORDER BY created_at, id`)
	} else {
		rows, err = s.db.QueryContext(ctx, `SELECT data FROM leads WHERE project_id = ? ORDER BY created_at, id`, projectID)
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan lead")
		}
		var lead model.Lead
		if err := json.Unmarshal([]byte(data), &lead); err != nil {
			return nil, eris.Wrap(err, "sqlite: decode lead")
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate leads")
	}
	return leads, nil
}

// UpdateLead merges a patch into the stored record.
func (s *SQLiteStore) UpdateLead(ctx context.Context, id string, patch map[string]any) (*model.Lead, error) {
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
		return nil, eris.Wrap(err, "sqlite: marshal lead")
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE leads SET data = ?, project_id = ?, status = ?, assigned_to = ?, updated_at = ? WHERE id = ?`,
		string(data), lead.ProjectID, string(lead.Status), lead.AssignedTo, lead.UpdatedAt, id,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: update lead")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return lead, nil
}

// DeleteLead removes one lead.
func (s *SQLiteStore) DeleteLead(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM leads WHERE id = ?`, id)
	if err != nil {
		return eris.Wrap(err, "sqlite: delete lead")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
