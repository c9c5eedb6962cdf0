package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/vivaclin/agenda-sync/internal/entity"
)

// SyncLeadsUseCase reconcilia agendamentos em leads do CRM em lotes
// retomáveis. Todo estado entre invocações vive no SyncCheckpoint; o índice
// só anda para frente.
type SyncLeadsUseCase struct {
	Appointments entity.AppointmentRepositoryInterface
	Leads        entity.LeadRepositoryInterface
	Checkpoint   entity.SyncCheckpointRepositoryInterface
	Triggers     TriggerRegistry
	JobName      string

	// Classify deriva a classificação do lead a partir do agendamento.
	// Default: vendedor presente → AVULSO, senão PLANO_TERAPEUTICO.
	Classify func(entity.Appointment) string

	PageSize    int
	RecordPause time.Duration // pausa entre registros, só para aliviar o store
	Sleep       func(time.Duration)
}

type SyncLeadsInput struct {
	StartIndex *int `json:"indice_inicial,omitempty"`
	BatchSize  int  `json:"tamanho_lote,omitempty"`

	// Unattended liga o lock advisory e a autodesativação do gatilho
	Unattended bool `json:"-"`
}

type SyncLeadsOutput struct {
	Total            int    `json:"total"`
	Processed        int    `json:"processados"`
	Created          int    `json:"criados"`
	Updated          int    `json:"atualizados"`
	Errored          int    `json:"erros"`
	NextIndex        *int   `json:"proximoIndice,omitempty"`
	AlreadyRunning   bool   `json:"ja_em_andamento,omitempty"`
	BacklogExhausted bool   `json:"backlog_esgotado"`
	Message          string `json:"message,omitempty"`
}

const (
	defaultSyncBatchSize  = 100
	defaultSyncPageSize   = 100
	defaultSyncPause      = 50 * time.Millisecond
	placeholderClientName = "bloqueado"
)

func NewSyncLeadsUseCase(
	appointments entity.AppointmentRepositoryInterface,
	leads entity.LeadRepositoryInterface,
	checkpoint entity.SyncCheckpointRepositoryInterface,
	triggers TriggerRegistry,
	jobName string,
) *SyncLeadsUseCase {
	return &SyncLeadsUseCase{
		Appointments: appointments,
		Leads:        leads,
		Checkpoint:   checkpoint,
		Triggers:     triggers,
		JobName:      jobName,
		Classify:     ClassifyBySalesperson,
		PageSize:     defaultSyncPageSize,
		RecordPause:  defaultSyncPause,
		Sleep:        time.Sleep,
	}
}

// ClassifyBySalesperson é a regra primária: agendamento com vendedor é venda
// avulsa, sem vendedor é plano terapêutico.
func ClassifyBySalesperson(a entity.Appointment) string {
	if a.SalespersonID != "" {
		return entity.LeadStatusOneOff
	}
	return entity.LeadStatusTherapeuticPlan
}

// ClassifyByKind é a regra alternada, baseada no tipo do agendamento.
func ClassifyByKind(a entity.Appointment) string {
	if a.Kind == entity.KindAppointment {
		return entity.LeadStatusOneOff
	}
	return entity.LeadStatusTherapeuticPlan
}

func (uc *SyncLeadsUseCase) Execute(ctx context.Context, input SyncLeadsInput) (*SyncLeadsOutput, error) {
	cp, err := uc.Checkpoint.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar checkpoint: %w", err)
	}

	if input.Unattended && cp.InProgress {
		log.Println("⏭️ Sync de leads já em andamento, pulando invocação")
		return &SyncLeadsOutput{AlreadyRunning: true, Message: ErrSyncInProgress.Message}, nil
	}

	if input.Unattended {
		cp.InProgress = true
		if err := uc.Checkpoint.Save(ctx, cp); err != nil {
			return nil, fmt.Errorf("erro ao reivindicar lock: %w", err)
		}
		// Solta o lock em qualquer saída, inclusive panic; uma flag presa
		// travaria todas as execuções futuras.
		defer func() {
			if cp.InProgress {
				cp.InProgress = false
				if err := uc.Checkpoint.Save(ctx, cp); err != nil {
					log.Printf("❌ Erro ao liberar lock do sync: %v", err)
				}
			}
		}()
	}

	appointments, err := uc.loadAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar agendamentos: %w", err)
	}
	billable := filterBillable(appointments)

	leads, err := uc.loadLeads(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar leads: %w", err)
	}
	index := make(map[string]*entity.Lead, len(leads))
	for i := range leads {
		key := OnlyDigits(leads[i].Phone)
		if key == "" {
			continue
		}
		if _, exists := index[key]; !exists {
			index[key] = &leads[i]
		}
	}

	start := cp.Index
	if input.StartIndex != nil {
		start = *input.StartIndex
	}
	batchSize := input.BatchSize
	if batchSize <= 0 {
		batchSize = defaultSyncBatchSize
	}

	out := &SyncLeadsOutput{Total: len(billable)}

	end := start + batchSize
	if end > len(billable) {
		end = len(billable)
	}

	for i := start; i < end; i++ {
		a := billable[i]
		created, err := uc.processOne(ctx, a, index)
		switch {
		case err != nil:
			// Falha individual não aborta o lote nem segura o lock
			log.Printf("❌ Sync: erro no agendamento %s: %v", a.ID, err)
			out.Errored++
		case created:
			out.Created++
		default:
			out.Updated++
		}
		out.Processed++
		if uc.RecordPause > 0 && i+1 < end {
			uc.Sleep(uc.RecordPause)
		}
	}

	newIndex := start + out.Processed
	// O checkpoint nunca é rebobinado automaticamente; um índice inicial
	// manual menor não regride o progresso persistido.
	if newIndex > cp.Index {
		cp.Index = newIndex
	}
	cp.Created += out.Created
	cp.Updated += out.Updated
	cp.Errored += out.Errored
	now := time.Now()
	cp.LastRunAt = &now
	cp.InProgress = false
	if err := uc.Checkpoint.Save(ctx, cp); err != nil {
		return nil, fmt.Errorf("erro ao salvar checkpoint: %w", err)
	}

	if end < len(billable) {
		next := end
		out.NextIndex = &next
	} else {
		out.BacklogExhausted = true
		if input.Unattended && uc.Triggers != nil {
			if err := uc.Triggers.DisableJob(ctx, uc.JobName); err != nil {
				log.Printf("⚠️ Erro ao desativar gatilho %s: %v", uc.JobName, err)
			} else {
				log.Printf("🏁 Backlog esgotado, gatilho %s desativado", uc.JobName)
			}
		}
	}

	log.Printf("✅ Sync de leads: %d processados, %d criados, %d atualizados, %d erros",
		out.Processed, out.Created, out.Updated, out.Errored)
	return out, nil
}

func (uc *SyncLeadsUseCase) processOne(ctx context.Context, a entity.Appointment, index map[string]*entity.Lead) (created bool, err error) {
	key := OnlyDigits(a.ClientPhone)
	status := uc.Classify(a)

	if lead, ok := index[key]; ok {
		mergeLead(lead, a, status)
		return false, uc.Leads.Update(ctx, lead)
	}

	lead := entity.NewLead(a.ClientName, a.ClientPhone, status)
	lead.UnitID = a.UnitID
	lead.UnitName = a.UnitName
	lead.SalespersonID = a.SalespersonID
	lead.SalespersonName = a.SalespersonName
	if err := uc.Leads.Create(ctx, lead); err != nil {
		return false, err
	}
	// Entra no índice na hora: dois agendamentos do mesmo cliente novo no
	// mesmo lote convergem num único lead.
	index[key] = lead
	return true, nil
}

// mergeLead sobrescreve com os valores não vazios do agendamento; campo já
// preenchido no lead ganha de branco vindo da agenda.
func mergeLead(lead *entity.Lead, a entity.Appointment, status string) {
	if a.ClientName != "" {
		lead.Name = a.ClientName
	}
	if a.ClientPhone != "" {
		lead.Phone = a.ClientPhone
	}
	if a.UnitID != "" {
		lead.UnitID = a.UnitID
	}
	if a.UnitName != "" {
		lead.UnitName = a.UnitName
	}
	if a.SalespersonID != "" {
		lead.SalespersonID = a.SalespersonID
	}
	if a.SalespersonName != "" {
		lead.SalespersonName = a.SalespersonName
	}
	lead.Status = status
	lead.UpdatedAt = time.Now()
}

func (uc *SyncLeadsUseCase) loadAppointments(ctx context.Context) ([]entity.Appointment, error) {
	var all []entity.Appointment
	offset := 0
	for {
		page, err := uc.Appointments.List(ctx, uc.PageSize, offset)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		all = append(all, page...)
		offset += len(page)
	}
	return all, nil
}

func (uc *SyncLeadsUseCase) loadLeads(ctx context.Context) ([]entity.Lead, error) {
	var all []entity.Lead
	offset := 0
	for {
		page, err := uc.Leads.List(ctx, uc.PageSize, offset)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		all = append(all, page...)
		offset += len(page)
	}
	return all, nil
}

// filterBillable descarta bloqueios de horário, nomes placeholder e
// agendamentos sem telefone utilizável.
func filterBillable(appointments []entity.Appointment) []entity.Appointment {
	out := make([]entity.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if a.Kind == entity.KindBlockedSlot {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(a.ClientName))
		if name == "" || strings.Contains(name, placeholderClientName) {
			continue
		}
		if !HasUsablePhone(a.ClientPhone) {
			continue
		}
		out = append(out, a)
	}
	return out
}
