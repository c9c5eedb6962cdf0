package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Classificação do lead no CRM
const (
	LeadStatusLead            = "LEAD"
	LeadStatusOneOff          = "AVULSO"
	LeadStatusTherapeuticPlan = "PLANO_TERAPEUTICO"
	LeadStatusRenewal         = "RENOVACAO"
)

type Lead struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	UnitID          string     `json:"unit_id,omitempty"`
	UnitName        string     `json:"unit_name,omitempty"`
	SalespersonID   string     `json:"salesperson_id,omitempty"`
	SalespersonName string     `json:"salesperson_name,omitempty"`
	Status          string     `json:"status"`
	Converted       bool       `json:"converted"`
	ConvertedAt     *time.Time `json:"converted_at,omitempty"`
	NegotiatedValue int        `json:"negotiated_value"` // em centavos
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Factory
func NewLead(name, phone, status string) *Lead {
	return &Lead{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		Status:    status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

type LeadRepositoryInterface interface {
	List(ctx context.Context, limit, offset int) ([]Lead, error)

	Create(ctx context.Context, lead *Lead) error

	Update(ctx context.Context, lead *Lead) error
}
