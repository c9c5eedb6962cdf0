package usecase

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"

	"github.com/vivaclin/agenda-sync/internal/entity"
)

// Nomes de campo variam entre integrações do provedor; resolução em ordem.
var (
	textFields  = []string{"text", "message", "body", "content"}
	phoneFields = []string{"phone", "wuid", "phoneNumber", "from", "sender", "chatId"}
)

const (
	keywordConfirm = "confirmar"
	keywordCancel  = "cancelar"
)

// ProcessReplyUseCase interpreta respostas livres dos clientes como comandos
// e aplica a transição no agendamento mais próximo. Nunca devolve erro: o
// webhook precisa sempre responder sucesso ao provedor.
type ProcessReplyUseCase struct {
	Appointments entity.AppointmentRepositoryInterface
	Audit        entity.AuditEntryRepositoryInterface
	Sender       MessageSender
}

type ReplyOutput struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	AppointmentID string `json:"agendamento_id,omitempty"`
}

func NewProcessReplyUseCase(
	appointments entity.AppointmentRepositoryInterface,
	audit entity.AuditEntryRepositoryInterface,
	sender MessageSender,
) *ProcessReplyUseCase {
	return &ProcessReplyUseCase{Appointments: appointments, Audit: audit, Sender: sender}
}

func (uc *ProcessReplyUseCase) Execute(ctx context.Context, payload map[string]any) ReplyOutput {
	text := extractText(payload)
	phone := extractPhone(payload)
	if text == "" || phone == "" {
		return ReplyOutput{Success: false, Message: "dados insuficientes no payload"}
	}

	normalized := NormalizeInboundPhone(phone)
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, keywordConfirm):
		return uc.confirm(ctx, normalized)
	case strings.Contains(lower, keywordCancel):
		return uc.cancel(ctx, normalized)
	default:
		return ReplyOutput{Success: true, Message: "comando não reconhecido"}
	}
}

func (uc *ProcessReplyUseCase) confirm(ctx context.Context, phone string) ReplyOutput {
	a, out := uc.nearest(ctx, phone, []string{entity.StatusScheduled})
	if a == nil {
		return out
	}

	if err := uc.Appointments.UpdateStatus(ctx, a.ID, entity.StatusConfirmed); err != nil {
		log.Printf("❌ Resposta: erro ao confirmar agendamento %s: %v", a.ID, err)
		return ReplyOutput{Success: false, Message: "erro ao confirmar agendamento"}
	}

	entry := entity.NewAuditEntry(entity.AuditActionConfirm, a.ID, phone)
	if err := uc.Audit.Create(ctx, entry); err != nil {
		log.Printf("⚠️ Resposta: erro ao gravar auditoria: %v", err)
	}

	uc.notify(ctx, a.ClientPhone,
		"Seu agendamento de "+FormatDateBR(a.Date)+" às "+a.StartTime+" está confirmado. Até lá! 😊")

	log.Printf("✅ Agendamento %s confirmado via resposta de %s", a.ID, phone)
	return ReplyOutput{Success: true, Message: "agendamento confirmado", AppointmentID: a.ID}
}

func (uc *ProcessReplyUseCase) cancel(ctx context.Context, phone string) ReplyOutput {
	a, out := uc.nearest(ctx, phone, []string{entity.StatusScheduled, entity.StatusConfirmed})
	if a == nil {
		return out
	}

	// Snapshot antes da exclusão: o registro some do store
	snapshot, err := json.Marshal(a)
	if err != nil {
		snapshot = []byte("{}")
	}
	entry := entity.NewAuditEntry(entity.AuditActionCancel, a.ID, phone)
	entry.Details = string(snapshot)
	if err := uc.Audit.Create(ctx, entry); err != nil {
		log.Printf("⚠️ Resposta: erro ao gravar auditoria: %v", err)
	}

	if err := uc.Appointments.Delete(ctx, a.ID); err != nil {
		log.Printf("❌ Resposta: erro ao cancelar agendamento %s: %v", a.ID, err)
		return ReplyOutput{Success: false, Message: "erro ao cancelar agendamento"}
	}

	uc.notify(ctx, a.ClientPhone,
		"Seu agendamento de "+FormatDateBR(a.Date)+" às "+a.StartTime+" foi cancelado.")

	log.Printf("✅ Agendamento %s cancelado via resposta de %s", a.ID, phone)
	return ReplyOutput{Success: true, Message: "agendamento cancelado", AppointmentID: a.ID}
}

// nearest busca o agendamento cronologicamente mais próximo do telefone.
// Devolve nil com a resposta pronta quando não há nada pendente.
func (uc *ProcessReplyUseCase) nearest(ctx context.Context, phone string, statuses []string) (*entity.Appointment, ReplyOutput) {
	appointments, err := uc.Appointments.ListByPhoneAndStatus(ctx, phone, statuses)
	if err != nil {
		log.Printf("❌ Resposta: erro ao buscar agendamentos de %s: %v", phone, err)
		return nil, ReplyOutput{Success: false, Message: "erro ao buscar agendamentos"}
	}
	if len(appointments) == 0 {
		return nil, ReplyOutput{Success: true, Message: "nenhum agendamento pendente"}
	}
	sort.SliceStable(appointments, func(i, j int) bool {
		if appointments[i].Date != appointments[j].Date {
			return appointments[i].Date < appointments[j].Date
		}
		return appointments[i].StartTime < appointments[j].StartTime
	})
	return &appointments[0], ReplyOutput{}
}

func (uc *ProcessReplyUseCase) notify(ctx context.Context, phone, message string) {
	if uc.Sender == nil {
		return
	}
	if err := uc.Sender.SendText(ctx, FormatOutboundPhone(phone), message); err != nil {
		log.Printf("⚠️ Resposta: erro ao notificar cliente: %v", err)
	}
}

// extractText tolera as variantes de envelope do provedor: texto direto em
// "text" ou aninhado em text.message, além dos demais nomes conhecidos.
func extractText(payload map[string]any) string {
	if nested, ok := payload["text"].(map[string]any); ok {
		if msg, ok := nested["message"].(string); ok && msg != "" {
			return msg
		}
	}
	for _, field := range textFields {
		if value, ok := payload[field].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func extractPhone(payload map[string]any) string {
	for _, field := range phoneFields {
		if value, ok := payload[field].(string); ok && value != "" {
			return value
		}
	}
	return ""
}
