package database

import (
	"context"
	"database/sql"

	"github.com/vivaclin/agenda-sync/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) List(ctx context.Context, limit, offset int) ([]entity.Lead, error) {
	query := `
		SELECT id, name, COALESCE(phone, ''), COALESCE(unit_id, ''), COALESCE(unit_name, ''),
		       COALESCE(salesperson_id, ''), COALESCE(salesperson_name, ''), status,
		       converted, converted_at, COALESCE(negotiated_value, 0), created_at, updated_at
		FROM leads
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Lead
	for rows.Next() {
		var l entity.Lead
		var convertedAt sql.NullTime
		if err := rows.Scan(
			&l.ID, &l.Name, &l.Phone, &l.UnitID, &l.UnitName,
			&l.SalespersonID, &l.SalespersonName, &l.Status,
			&l.Converted, &convertedAt, &l.NegotiatedValue, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if convertedAt.Valid {
			l.ConvertedAt = &convertedAt.Time
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, name, phone, unit_id, unit_name, salesperson_id, salesperson_name,
		                   status, converted, negotiated_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		nullString(lead.Phone),
		nullString(lead.UnitID),
		nullString(lead.UnitName),
		nullString(lead.SalespersonID),
		nullString(lead.SalespersonName),
		lead.Status,
		lead.Converted,
		lead.NegotiatedValue,
	)
	return err
}

// Update preserva o que já está preenchido: COALESCE deixa branco vindo da
// agenda perder para valor existente no lead.
func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads
		SET name             = COALESCE(NULLIF($2, ''), name),
		    phone            = COALESCE($3, phone),
		    unit_id          = COALESCE($4, unit_id),
		    unit_name        = COALESCE($5, unit_name),
		    salesperson_id   = COALESCE($6, salesperson_id),
		    salesperson_name = COALESCE($7, salesperson_name),
		    status           = $8,
		    updated_at       = NOW()
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		nullString(lead.Phone),
		nullString(lead.UnitID),
		nullString(lead.UnitName),
		nullString(lead.SalespersonID),
		nullString(lead.SalespersonName),
		lead.Status,
	)
	return err
}
