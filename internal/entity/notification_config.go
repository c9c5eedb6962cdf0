package entity

import "context"

// Modo de envio dos lembretes
const (
	SendModeFixedOffset = "VESPERA_18H"         // 18:00 do dia anterior
	SendModeCustomTime  = "HORARIO_CUSTOMIZADO" // horário configurado por unidade
)

// NotificationConfig é a configuração de lembrete por unidade.
// Ausência de registro para uma unidade significa unidade sem lembretes.
type NotificationConfig struct {
	ID               string `json:"id"`
	UnitID           string `json:"unit_id"`
	UnitName         string `json:"unit_name"`
	Active           bool   `json:"active"`
	SendMode         string `json:"send_mode"`
	CustomTime       string `json:"custom_time,omitempty"` // HH:MM
	MessageTemplate  string `json:"message_template"`
	SendDelaySeconds int    `json:"send_delay_seconds"`
}

type NotificationConfigRepositoryInterface interface {
	ListActive(ctx context.Context) ([]NotificationConfig, error)

	FindByUnit(ctx context.Context, unitID string) (*NotificationConfig, error)
}
