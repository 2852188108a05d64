// internal/services/handoff/recorder_test.go
package handoff

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"lead-assistant/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRecorder_EnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS lead_handoffs")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, NewPostgresRecorder(db).EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRecorder_Record(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	record := &models.HandoffRecord{
		ID:        "0b6f0c1e-6a4e-4c1f-9d55-1a1c3c1e2f00",
		SessionID: "s1",
		Lead: &models.LeadData{
			Locations:    []string{"Miami"},
			PropertyType: models.StringPtr("condo"),
		},
		CRMLeadID: "zoho-9",
		CreatedAt: createdAt.Format(time.RFC3339),
	}

	mock.ExpectExec(regexp.QuoteMeta(insertSQL)).
		WithArgs(record.ID, "s1",
			[]byte(`{"budget":null,"locations":["Miami"],"property_type":"condo","additional_requirements":null}`),
			"zoho-9", createdAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewPostgresRecorder(db).Record(context.Background(), record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRecorder_RecordInvalidTimestamp(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = NewPostgresRecorder(db).Record(context.Background(), &models.HandoffRecord{
		ID:        "x",
		Lead:      &models.LeadData{},
		CreatedAt: "yesterday",
	})
	assert.Error(t, err)
}

func TestPostgresRecorder_AttachCRMLead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := NewPostgresRecorder(db)

	mock.ExpectExec(regexp.QuoteMeta(attachCRMSQL)).WithArgs("zoho-1", "h1").WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, r.AttachCRMLead(context.Background(), "h1", "zoho-1"))

	mock.ExpectExec(regexp.QuoteMeta(attachCRMSQL)).WithArgs("zoho-1", "h2").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.Error(t, r.AttachCRMLead(context.Background(), "h2", "zoho-1"))

	mock.ExpectExec(regexp.QuoteMeta(attachCRMSQL)).WillReturnError(errors.New("boom"))
	assert.Error(t, r.AttachCRMLead(context.Background(), "h3", "zoho-1"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
