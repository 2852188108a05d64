// internal/services/handoff/recorder.go
package handoff

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"lead-assistant/internal/models"
)

// Recorder persists handoffs so agents can pick them up later.
type Recorder interface {
	Record(ctx context.Context, record *models.HandoffRecord) error
	AttachCRMLead(ctx context.Context, handoffID, crmLeadID string) error
}

const schemaSQL = `CREATE TABLE IF NOT EXISTS lead_handoffs (
	id          UUID PRIMARY KEY,
	session_id  TEXT NOT NULL,
	lead        JSONB NOT NULL,
	crm_lead_id TEXT,
	created_at  TIMESTAMPTZ NOT NULL
)`

const insertSQL = `INSERT INTO lead_handoffs (id, session_id, lead, crm_lead_id, created_at) VALUES ($1, $2, $3, $4, $5)`

const attachCRMSQL = `UPDATE lead_handoffs SET crm_lead_id = $1 WHERE id = $2`

type PostgresRecorder struct {
	db *sql.DB
}

func NewPostgresRecorder(db *sql.DB) *PostgresRecorder {
	return &PostgresRecorder{db: db}
}

// EnsureSchema creates the lead_handoffs table when it does not exist.
func (r *PostgresRecorder) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create lead_handoffs: %w", err)
	}
	return nil
}

func (r *PostgresRecorder) Record(ctx context.Context, record *models.HandoffRecord) error {
	lead, err := json.Marshal(record.Lead)
	if err != nil {
		return fmt.Errorf("failed to marshal lead: %w", err)
	}

	createdAt, err := time.Parse(time.RFC3339, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("invalid createdAt %q: %w", record.CreatedAt, err)
	}

	var crmLeadID sql.NullString
	if record.CRMLeadID != "" {
		crmLeadID = sql.NullString{String: record.CRMLeadID, Valid: true}
	}

	_, err = r.db.ExecContext(ctx, insertSQL, record.ID, record.SessionID, lead, crmLeadID, createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert handoff: %w", err)
	}
	return nil
}

func (r *PostgresRecorder) AttachCRMLead(ctx context.Context, handoffID, crmLeadID string) error {
	result, err := r.db.ExecContext(ctx, attachCRMSQL, crmLeadID, handoffID)
	if err != nil {
		return fmt.Errorf("failed to attach crm lead: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("handoff %s not found", handoffID)
	}
	return nil
}
