package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/vivaclin/agenda-sync/internal/entity"
)

type AppointmentRepository struct {
	DB *sql.DB
}

func NewAppointmentRepository(db *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{DB: db}
}

const appointmentColumns = `
	id, client_name, COALESCE(client_phone, ''), COALESCE(unit_id, ''), COALESCE(unit_name, ''),
	COALESCE(salesperson_id, ''), COALESCE(salesperson_name, ''), COALESCE(professional_name, ''),
	COALESCE(service_name, ''), to_char(date, 'YYYY-MM-DD'), COALESCE(start_time, ''),
	status, kind, reminder_sent, reminder_sent_at, created_at, updated_at
`

func (r *AppointmentRepository) List(ctx context.Context, limit, offset int) ([]entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	row := r.DB.QueryRowContext(ctx, query, id)
	a, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AppointmentRepository) ListByUnitAndDate(ctx context.Context, unitID, date, status string) ([]entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE unit_id = $1 AND date = $2::date AND status = $3
		ORDER BY start_time, id
	`
	rows, err := r.DB.QueryContext(ctx, query, unitID, date, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

// ListByPhoneAndStatus casa por dígitos nas duas direções: o número gravado
// pode ter formatação e DDD/prefixo diferentes do remetente do webhook.
func (r *AppointmentRepository) ListByPhoneAndStatus(ctx context.Context, phoneDigits string, statuses []string) ([]entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE status = ANY($2)
		  AND regexp_replace(COALESCE(client_phone, ''), '[^0-9]', '', 'g') <> ''
		  AND (
			regexp_replace(client_phone, '[^0-9]', '', 'g') LIKE '%' || $1 || '%'
			OR $1 LIKE '%' || regexp_replace(client_phone, '[^0-9]', '', 'g') || '%'
		  )
		ORDER BY date, start_time
	`
	rows, err := r.DB.QueryContext(ctx, query, phoneDigits, pq.Array(statuses))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE appointments SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id, status)
	return err
}

func (r *AppointmentRepository) MarkReminderSent(ctx context.Context, id string, sentAt time.Time) error {
	query := `
		UPDATE appointments
		SET reminder_sent = TRUE, reminder_sent_at = $2, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query, id, sentAt)
	return err
}

func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (*entity.Appointment, error) {
	var a entity.Appointment
	var sentAt sql.NullTime
	err := row.Scan(
		&a.ID, &a.ClientName, &a.ClientPhone, &a.UnitID, &a.UnitName,
		&a.SalespersonID, &a.SalespersonName, &a.ProfessionalName,
		&a.ServiceName, &a.Date, &a.StartTime,
		&a.Status, &a.Kind, &a.ReminderSent, &sentAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if sentAt.Valid {
		a.ReminderSentAt = &sentAt.Time
	}
	return &a, nil
}

func scanAppointments(rows *sql.Rows) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}
