package usecase

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/vivaclin/agenda-sync/internal/entity"
)

// O relógio da hospedagem costuma estar em UTC; "amanhã" e os horários de
// disparo são sempre do calendário civil da clínica.
const clinicTimezone = "America/Sao_Paulo"

const (
	fixedOffsetHour   = 18
	fixedOffsetMinute = 0
	defaultTolerance  = 10 * time.Minute
)

// SendRemindersUseCase decide, por unidade configurada, se é hora de avisar
// os clientes de amanhã, envia pelo provedor e registra o resultado para
// nunca reenviar.
type SendRemindersUseCase struct {
	Appointments entity.AppointmentRepositoryInterface
	Configs      entity.NotificationConfigRepositoryInterface
	Deliveries   entity.DeliveryRecordRepositoryInterface
	Sender       MessageSender

	Location  *time.Location
	Tolerance time.Duration
	Now       func() time.Time
	Sleep     func(time.Duration)
}

type SendRemindersInput struct {
	TestPhone string `json:"telefone_teste,omitempty"`
	SendNow   bool   `json:"envio_imediato,omitempty"`
	UnitID    string `json:"unidade_id,omitempty"`
	Initiator string `json:"-"`
}

type UnitSummary struct {
	UnitID   string `json:"unidade_id"`
	UnitName string `json:"unidade"`
	Due      bool   `json:"devido"`
	Sent     int    `json:"enviados"`
	Skipped  int    `json:"pulados"`
	Errored  int    `json:"erros"`
}

type SendRemindersOutput struct {
	Tomorrow string        `json:"amanha"`
	Units    []UnitSummary `json:"unidades"`
}

func NewSendRemindersUseCase(
	appointments entity.AppointmentRepositoryInterface,
	configs entity.NotificationConfigRepositoryInterface,
	deliveries entity.DeliveryRecordRepositoryInterface,
	sender MessageSender,
) *SendRemindersUseCase {
	loc, err := time.LoadLocation(clinicTimezone)
	if err != nil {
		loc = time.FixedZone("-03", -3*60*60)
	}
	return &SendRemindersUseCase{
		Appointments: appointments,
		Configs:      configs,
		Deliveries:   deliveries,
		Sender:       sender,
		Location:     loc,
		Tolerance:    defaultTolerance,
		Now:          time.Now,
		Sleep:        time.Sleep,
	}
}

func (uc *SendRemindersUseCase) Execute(ctx context.Context, input SendRemindersInput) (*SendRemindersOutput, error) {
	now := uc.Now().In(uc.Location)
	tomorrow := now.AddDate(0, 0, 1).Format("2006-01-02")

	configs, err := uc.loadConfigs(ctx, input.UnitID)
	if err != nil {
		return nil, err
	}

	out := &SendRemindersOutput{Tomorrow: tomorrow}
	for _, cfg := range configs {
		summary := uc.processUnit(ctx, cfg, tomorrow, now, input)
		out.Units = append(out.Units, summary)
	}
	return out, nil
}

func (uc *SendRemindersUseCase) loadConfigs(ctx context.Context, unitID string) ([]entity.NotificationConfig, error) {
	if unitID != "" {
		cfg, err := uc.Configs.FindByUnit(ctx, unitID)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar configuração da unidade %s: %w", unitID, err)
		}
		if cfg == nil || !cfg.Active {
			return nil, nil
		}
		return []entity.NotificationConfig{*cfg}, nil
	}
	configs, err := uc.Configs.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar configurações ativas: %w", err)
	}
	return configs, nil
}

func (uc *SendRemindersUseCase) processUnit(ctx context.Context, cfg entity.NotificationConfig, tomorrow string, now time.Time, input SendRemindersInput) UnitSummary {
	summary := UnitSummary{UnitID: cfg.UnitID, UnitName: cfg.UnitName}

	testMode := input.TestPhone != ""
	forced := testMode || input.SendNow

	summary.Due = forced || uc.withinSendWindow(cfg, now)
	if !summary.Due {
		return summary
	}

	appointments, err := uc.Appointments.ListByUnitAndDate(ctx, cfg.UnitID, tomorrow, entity.StatusScheduled)
	if err != nil {
		log.Printf("❌ Lembretes: erro ao listar agendamentos da unidade %s: %v", cfg.UnitName, err)
		summary.Errored++
		return summary
	}

	for _, a := range appointments {
		if OnlyDigits(a.ClientPhone) == "" {
			summary.Skipped++
			continue
		}
		if testMode && !PhonesMatch(a.ClientPhone, input.TestPhone) {
			summary.Skipped++
			continue
		}
		if !forced {
			// O log de envios é o sinal autoritativo; a flag do agendamento
			// pode ser perdida por escritores concorrentes
			sent, err := uc.Deliveries.HasSent(ctx, a.ID)
			if err != nil {
				log.Printf("⚠️ Lembretes: erro ao consultar log de envios: %v", err)
				summary.Errored++
				continue
			}
			if sent {
				summary.Skipped++
				continue
			}
		}

		message := RenderTemplate(cfg.MessageTemplate, map[string]string{
			"nome_cliente":      a.ClientName,
			"nome_profissional": a.ProfessionalName,
			"data":              FormatDateBR(a.Date),
			"horario":           a.StartTime,
			"unidade":           a.UnitName,
			"servico":           a.ServiceName,
		})

		rec := entity.NewDeliveryRecord(a.ID)
		rec.ClientName = a.ClientName
		rec.ClientPhone = a.ClientPhone
		rec.UnitID = cfg.UnitID
		rec.AppointmentDate = a.Date
		rec.Message = message
		rec.Channel = entity.ChannelAutomatic
		if forced {
			rec.Channel = entity.ChannelManual
		}
		rec.Initiator = input.Initiator

		if err := uc.Sender.SendText(ctx, FormatOutboundPhone(a.ClientPhone), message); err != nil {
			log.Printf("❌ Lembretes: falha no envio para %s: %v", a.ClientName, err)
			rec.Outcome = entity.DeliveryError
			rec.ErrorDetail = err.Error()
			if err := uc.Deliveries.Create(ctx, rec); err != nil {
				log.Printf("⚠️ Lembretes: erro ao gravar registro de erro: %v", err)
			}
			summary.Errored++
			// Envio falho não gasta a janela do rate limit
			continue
		}

		rec.Outcome = entity.DeliverySent
		if err := uc.Deliveries.Create(ctx, rec); err != nil {
			log.Printf("⚠️ Lembretes: erro ao gravar registro de envio: %v", err)
		}
		if err := uc.Appointments.MarkReminderSent(ctx, a.ID, uc.Now()); err != nil {
			log.Printf("⚠️ Lembretes: erro ao marcar lembrete no agendamento %s: %v", a.ID, err)
		}
		summary.Sent++
		log.Printf("✅ Lembrete enviado para %s (%s)", a.ClientName, cfg.UnitName)

		// O provedor exige espaçamento mínimo entre envios do mesmo número;
		// pausa bloqueante, nunca em modo teste
		if !testMode && cfg.SendDelaySeconds > 0 {
			uc.Sleep(time.Duration(cfg.SendDelaySeconds) * time.Second)
		}
	}
	return summary
}

// withinSendWindow responde se o horário atual acabou de cruzar o limiar da
// unidade. A tolerância cobre o agendador disparando alguns minutos atrasado.
func (uc *SendRemindersUseCase) withinSendWindow(cfg entity.NotificationConfig, now time.Time) bool {
	hour, minute := fixedOffsetHour, fixedOffsetMinute
	if cfg.SendMode == entity.SendModeCustomTime {
		h, m, ok := parseClock(cfg.CustomTime)
		if !ok {
			log.Printf("⚠️ Lembretes: horário customizado inválido na unidade %s: %q", cfg.UnitName, cfg.CustomTime)
			return false
		}
		hour, minute = h, m
	}
	threshold := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	return !now.Before(threshold) && now.Before(threshold.Add(uc.Tolerance))
}

func parseClock(value string) (hour, minute int, ok bool) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}
