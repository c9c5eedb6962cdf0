package database

import (
	"context"
	"database/sql"

	"github.com/vivaclin/agenda-sync/internal/entity"
)

type NotificationConfigRepository struct {
	DB *sql.DB
}

func NewNotificationConfigRepository(db *sql.DB) *NotificationConfigRepository {
	return &NotificationConfigRepository{DB: db}
}

const configColumns = `
	id, unit_id, COALESCE(unit_name, ''), active, send_mode,
	COALESCE(custom_time, ''), COALESCE(message_template, ''), COALESCE(send_delay_seconds, 0)
`

func (r *NotificationConfigRepository) ListActive(ctx context.Context) ([]entity.NotificationConfig, error) {
	query := `SELECT ` + configColumns + ` FROM notification_configs WHERE active = TRUE ORDER BY unit_name`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.NotificationConfig
	for rows.Next() {
		var c entity.NotificationConfig
		if err := rows.Scan(
			&c.ID, &c.UnitID, &c.UnitName, &c.Active, &c.SendMode,
			&c.CustomTime, &c.MessageTemplate, &c.SendDelaySeconds,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *NotificationConfigRepository) FindByUnit(ctx context.Context, unitID string) (*entity.NotificationConfig, error) {
	query := `SELECT ` + configColumns + ` FROM notification_configs WHERE unit_id = $1`
	var c entity.NotificationConfig
	err := r.DB.QueryRowContext(ctx, query, unitID).Scan(
		&c.ID, &c.UnitID, &c.UnitName, &c.Active, &c.SendMode,
		&c.CustomTime, &c.MessageTemplate, &c.SendDelaySeconds,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
