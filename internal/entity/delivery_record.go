package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	ChannelAutomatic = "AUTOMATICO"
	ChannelManual    = "MANUAL"
)

const (
	DeliverySent  = "ENVIADO"
	DeliveryError = "ERRO"
)

// DeliveryRecord é o log append-only de cada tentativa de envio. A existência
// de um registro ENVIADO para um agendamento é o sinal autoritativo de
// deduplicação — não a flag do próprio agendamento, que escritores
// concorrentes podem perder.
type DeliveryRecord struct {
	ID              string    `json:"id"`
	AppointmentID   string    `json:"appointment_id"`
	ClientName      string    `json:"client_name"`
	ClientPhone     string    `json:"client_phone"`
	UnitID          string    `json:"unit_id"`
	AppointmentDate string    `json:"appointment_date"`
	Message         string    `json:"message"`
	Channel         string    `json:"channel"`
	Initiator       string    `json:"initiator"`
	Outcome         string    `json:"outcome"`
	ErrorDetail     string    `json:"error_detail,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewDeliveryRecord(appointmentID string) *DeliveryRecord {
	return &DeliveryRecord{
		ID:            uuid.New().String(),
		AppointmentID: appointmentID,
		CreatedAt:     time.Now(),
	}
}

type DeliveryRecordRepositoryInterface interface {
	Create(ctx context.Context, rec *DeliveryRecord) error

	// HasSent responde se já existe registro ENVIADO para o agendamento
	HasSent(ctx context.Context, appointmentID string) (bool, error)
}
