package entity

import (
	"context"
	"time"
)

// Status do agendamento
const (
	StatusScheduled = "AGENDADO"
	StatusConfirmed = "CONFIRMADO"
	StatusCanceled  = "CANCELADO"
	StatusCompleted = "CONCLUIDO"
	StatusBlocked   = "BLOQUEADO"
)

// Tipo do registro: atendimento real ou bloqueio de horário criado pela agenda
const (
	KindAppointment = "ATENDIMENTO"
	KindBlockedSlot = "BLOQUEIO"
)

type Appointment struct {
	ID               string     `json:"id"`
	ClientName       string     `json:"client_name"`
	ClientPhone      string     `json:"client_phone"`
	UnitID           string     `json:"unit_id"`
	UnitName         string     `json:"unit_name"`
	SalespersonID    string     `json:"salesperson_id,omitempty"`
	SalespersonName  string     `json:"salesperson_name,omitempty"`
	ProfessionalName string     `json:"professional_name,omitempty"`
	ServiceName      string     `json:"service_name,omitempty"`
	Date             string     `json:"date"`       // YYYY-MM-DD
	StartTime        string     `json:"start_time"` // HH:MM
	Status           string     `json:"status"`
	Kind             string     `json:"kind"`
	ReminderSent     bool       `json:"reminder_sent"`
	ReminderSentAt   *time.Time `json:"reminder_sent_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type AppointmentRepositoryInterface interface {

	// List retorna uma página; leitura exaustiva é feita repetindo até página vazia
	List(ctx context.Context, limit, offset int) ([]Appointment, error)

	FindByID(ctx context.Context, id string) (*Appointment, error)

	// ListByUnitAndDate retorna os agendamentos de uma unidade num dia, filtrados por status
	ListByUnitAndDate(ctx context.Context, unitID, date, status string) ([]Appointment, error)

	// ListByPhoneAndStatus casa o telefone por dígitos (substring nas duas direções),
	// ordenado por (date, start_time) ascendente
	ListByPhoneAndStatus(ctx context.Context, phoneDigits string, statuses []string) ([]Appointment, error)

	UpdateStatus(ctx context.Context, id, status string) error

	MarkReminderSent(ctx context.Context, id string, sentAt time.Time) error

	Delete(ctx context.Context, id string) error
}
