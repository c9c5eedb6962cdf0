package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	AuditActionConfirm = "CONFIRMACAO"
	AuditActionCancel  = "CANCELAMENTO"
)

// AuditEntry registra cada transição aplicada por resposta do cliente.
// Em cancelamentos, Details leva o snapshot do agendamento antes da exclusão.
type AuditEntry struct {
	ID            string    `json:"id"`
	Action        string    `json:"action"`
	AppointmentID string    `json:"appointment_id"`
	Phone         string    `json:"phone"`
	Details       string    `json:"details,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewAuditEntry(action, appointmentID, phone string) *AuditEntry {
	return &AuditEntry{
		ID:            uuid.New().String(),
		Action:        action,
		AppointmentID: appointmentID,
		Phone:         phone,
		CreatedAt:     time.Now(),
	}
}

type AuditEntryRepositoryInterface interface {
	Create(ctx context.Context, entry *AuditEntry) error
}
