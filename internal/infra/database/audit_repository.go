package database

import (
	"context"
	"database/sql"

	"github.com/vivaclin/agenda-sync/internal/entity"
)

type AuditEntryRepository struct {
	DB *sql.DB
}

func NewAuditEntryRepository(db *sql.DB) *AuditEntryRepository {
	return &AuditEntryRepository{DB: db}
}

func (r *AuditEntryRepository) Create(ctx context.Context, entry *entity.AuditEntry) error {
	query := `
		INSERT INTO audit_log (id, action, appointment_id, phone, details, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.DB.ExecContext(ctx, query,
		entry.ID,
		entry.Action,
		entry.AppointmentID,
		nullString(entry.Phone),
		nullString(entry.Details),
	)
	return err
}
