package database

import (
	"context"
	"database/sql"

	"github.com/vivaclin/agenda-sync/internal/entity"
)

type DeliveryRecordRepository struct {
	DB *sql.DB
}

func NewDeliveryRecordRepository(db *sql.DB) *DeliveryRecordRepository {
	return &DeliveryRecordRepository{DB: db}
}

func (r *DeliveryRecordRepository) Create(ctx context.Context, rec *entity.DeliveryRecord) error {
	query := `
		INSERT INTO delivery_records (id, appointment_id, client_name, client_phone, unit_id,
		                              appointment_date, message, channel, initiator, outcome,
		                              error_detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
	`
	_, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.AppointmentID,
		rec.ClientName,
		nullString(rec.ClientPhone),
		nullString(rec.UnitID),
		nullString(rec.AppointmentDate),
		rec.Message,
		rec.Channel,
		nullString(rec.Initiator),
		rec.Outcome,
		nullString(rec.ErrorDetail),
	)
	return err
}

func (r *DeliveryRecordRepository) HasSent(ctx context.Context, appointmentID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM delivery_records WHERE appointment_id = $1 AND outcome = $2
		)
	`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, appointmentID, entity.DeliverySent).Scan(&exists)
	return exists, err
}
