package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vivaclin/agenda-sync/internal/entity"
)

func newSyncForTest(appointments *fakeAppointmentRepo, leads *fakeLeadRepo, checkpoint *fakeCheckpointRepo, triggers TriggerRegistry) *SyncLeadsUseCase {
	uc := NewSyncLeadsUseCase(appointments, leads, checkpoint, triggers, "sync-leads")
	uc.RecordPause = 0
	uc.Sleep = func(time.Duration) {}
	return uc
}

func appointment(id, name, phone, salespersonID string) entity.Appointment {
	return entity.Appointment{
		ID:            id,
		ClientName:    name,
		ClientPhone:   phone,
		UnitID:        "unidade-1",
		UnitName:      "Unidade Centro",
		SalespersonID: salespersonID,
		Date:          "2026-09-01",
		StartTime:     "10:00",
		Status:        entity.StatusScheduled,
		Kind:          entity.KindAppointment,
	}
}

func TestSyncCreatesOneLeadForSamePhoneInBatch(t *testing.T) {
	ctx := context.Background()

	appointments := &fakeAppointmentRepo{items: []entity.Appointment{
		appointment("ag-1", "Maria Souza", "(11) 98888-7777", ""),
		appointment("ag-2", "Maria S.", "11988887777", "vend-9"),
	}}
	leads := &fakeLeadRepo{}
	checkpoint := newFakeCheckpointRepo()

	uc := newSyncForTest(appointments, leads, checkpoint, nil)
	out, err := uc.Execute(ctx, SyncLeadsInput{BatchSize: 10})

	assert.NoError(t, err)
	assert.Equal(t, 2, out.Processed)
	assert.Equal(t, 1, out.Created)
	assert.Equal(t, 1, out.Updated)
	assert.Len(t, leads.items, 1)

	// Valores não vazios do agendamento mais recente prevalecem
	lead := leads.items[0]
	assert.Equal(t, "Maria S.", lead.Name)
	assert.Equal(t, "vend-9", lead.SalespersonID)
	assert.Equal(t, entity.LeadStatusOneOff, lead.Status)
}

func TestSyncClassification(t *testing.T) {
	ctx := context.Background()

	appointments := &fakeAppointmentRepo{items: []entity.Appointment{
		appointment("ag-1", "Com Vendedor", "(11) 91111-1111", "vend-1"),
		appointment("ag-2", "Sem Vendedor", "(11) 92222-2222", ""),
	}}
	leads := &fakeLeadRepo{}

	uc := newSyncForTest(appointments, leads, newFakeCheckpointRepo(), nil)
	_, err := uc.Execute(ctx, SyncLeadsInput{BatchSize: 10})

	assert.NoError(t, err)
	assert.Len(t, leads.items, 2)
	assert.Equal(t, entity.LeadStatusOneOff, leads.items[0].Status)
	assert.Equal(t, entity.LeadStatusTherapeuticPlan, leads.items[1].Status)
}

func TestSyncUpdateDoesNotBlankFilledFields(t *testing.T) {
	ctx := context.Background()

	existing := entity.NewLead("Maria Souza", "11988887777", entity.LeadStatusLead)
	existing.SalespersonName = "Vendedor Antigo"
	existing.UnitName = "Unidade Sul"

	a := appointment("ag-1", "Maria Souza", "(11) 98888-7777", "")
	a.UnitID = ""
	a.UnitName = ""

	appointments := &fakeAppointmentRepo{items: []entity.Appointment{a}}
	leads := &fakeLeadRepo{items: []entity.Lead{*existing}}

	uc := newSyncForTest(appointments, leads, newFakeCheckpointRepo(), nil)
	out, err := uc.Execute(ctx, SyncLeadsInput{BatchSize: 10})

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Updated)
	assert.Equal(t, "Vendedor Antigo", leads.items[0].SalespersonName)
	assert.Equal(t, "Unidade Sul", leads.items[0].UnitName)
	assert.Equal(t, entity.LeadStatusTherapeuticPlan, leads.items[0].Status)
}

func TestSyncFiltersNonBillable(t *testing.T) {
	ctx := context.Background()

	blocked := appointment("ag-1", "Cliente Real", "(11) 91111-1111", "")
	blocked.Kind = entity.KindBlockedSlot
	placeholder := appointment("ag-2", "BLOQUEADO", "(11) 92222-2222", "")
	shortPhone := appointment("ag-3", "Telefone Curto", "9888", "")
	valid := appointment("ag-4", "Cliente Válido", "(11) 93333-3333", "")

	appointments := &fakeAppointmentRepo{items: []entity.Appointment{blocked, placeholder, shortPhone, valid}}
	leads := &fakeLeadRepo{}

	uc := newSyncForTest(appointments, leads, newFakeCheckpointRepo(), nil)
	out, err := uc.Execute(ctx, SyncLeadsInput{BatchSize: 10})

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Total)
	assert.Equal(t, 1, out.Created)
	assert.Len(t, leads.items, 1)
	assert.Equal(t, "Cliente Válido", leads.items[0].Name)
}

func TestSyncCheckpointMonotonicAcrossBatches(t *testing.T) {
	ctx := context.Background()

	var items []entity.Appointment
	phones := []string{"(11) 91111-1111", "(11) 92222-2222", "(11) 93333-3333", "(11) 94444-4444", "(11) 95555-5555"}
	for i, phone := range phones {
		items = append(items, appointment(string(rune('a'+i)), "Cliente "+phone, phone, ""))
	}

	appointments := &fakeAppointmentRepo{items: items}
	leads := &fakeLeadRepo{}
	checkpoint := newFakeCheckpointRepo()
	uc := newSyncForTest(appointments, leads, checkpoint, nil)

	out1, err := uc.Execute(ctx, SyncLeadsInput{BatchSize: 2})
	assert.NoError(t, err)
	assert.Equal(t, 2, out1.Processed)
	assert.NotNil(t, out1.NextIndex)
	assert.Equal(t, 2, *out1.NextIndex)
	assert.Equal(t, 2, checkpoint.cp.Index)

	out2, err := uc.Execute(ctx, SyncLeadsInput{BatchSize: 2})
	assert.NoError(t, err)
	assert.Equal(t, 4, checkpoint.cp.Index)
	assert.Equal(t, 4, *out2.NextIndex)

	out3, err := uc.Execute(ctx, SyncLeadsInput{BatchSize: 2})
	assert.NoError(t, err)
	assert.Equal(t, 1, out3.Processed)
	assert.Nil(t, out3.NextIndex)
	assert.True(t, out3.BacklogExhausted)
	assert.Equal(t, 5, checkpoint.cp.Index)

	// Backlog esgotado: invocação seguinte é no-op
	out4, err := uc.Execute(ctx, SyncLeadsInput{BatchSize: 2})
	assert.NoError(t, err)
	assert.Equal(t, 0, out4.Processed)
	assert.Len(t, leads.items, 5)
}

func TestSyncResumableFromStaleIndex(t *testing.T) {
	ctx := context.Background()

	appointments := &fakeAppointmentRepo{items: []entity.Appointment{
		appointment("ag-1", "Cliente Um", "(11) 91111-1111", ""),
		appointment("ag-2", "Cliente Dois", "(11) 92222-2222", ""),
	}}
	leads := &fakeLeadRepo{}
	checkpoint := newFakeCheckpointRepo()
	uc := newSyncForTest(appointments, leads, checkpoint, nil)

	_, err := uc.Execute(ctx, SyncLeadsInput{BatchSize: 10})
	assert.NoError(t, err)
	assert.Len(t, leads.items, 2)

	// Reprocessar do zero (índice obsoleto pós-crash) não duplica leads nem
	// rebobina o checkpoint
	start := 0
	out, err := uc.Execute(ctx, SyncLeadsInput{StartIndex: &start, BatchSize: 10})
	assert.NoError(t, err)
	assert.Equal(t, 2, out.Updated)
	assert.Equal(t, 0, out.Created)
	assert.Len(t, leads.items, 2)
	assert.Equal(t, 2, checkpoint.cp.Index)
}

func TestSyncUnattendedLockIsNoOp(t *testing.T) {
	ctx := context.Background()

	checkpoint := newFakeCheckpointRepo()
	checkpoint.cp.InProgress = true

	appointments := &fakeAppointmentRepo{items: []entity.Appointment{
		appointment("ag-1", "Cliente Um", "(11) 91111-1111", ""),
	}}
	leads := &fakeLeadRepo{}
	uc := newSyncForTest(appointments, leads, checkpoint, nil)

	out, err := uc.Execute(ctx, SyncLeadsInput{Unattended: true})
	assert.NoError(t, err)
	assert.True(t, out.AlreadyRunning)
	assert.Equal(t, 0, out.Processed)
	assert.Empty(t, leads.items)
}

func TestSyncUnattendedDisablesTriggerWhenExhausted(t *testing.T) {
	ctx := context.Background()

	appointments := &fakeAppointmentRepo{items: []entity.Appointment{
		appointment("ag-1", "Cliente Um", "(11) 91111-1111", ""),
	}}
	leads := &fakeLeadRepo{}
	checkpoint := newFakeCheckpointRepo()

	triggers := new(MockTriggerRegistry)
	triggers.On("DisableJob", mock.Anything, "sync-leads").Return(nil)

	uc := newSyncForTest(appointments, leads, checkpoint, triggers)
	out, err := uc.Execute(ctx, SyncLeadsInput{Unattended: true})

	assert.NoError(t, err)
	assert.True(t, out.BacklogExhausted)
	assert.False(t, checkpoint.cp.InProgress)
	triggers.AssertCalled(t, "DisableJob", mock.Anything, "sync-leads")
}

func TestSyncPerRecordErrorContinuesAndReleasesLock(t *testing.T) {
	ctx := context.Background()

	appointments := &fakeAppointmentRepo{items: []entity.Appointment{
		appointment("ag-1", "Cliente Um", "(11) 91111-1111", ""),
		appointment("ag-2", "Cliente Dois", "(11) 92222-2222", ""),
	}}
	leads := &fakeLeadRepo{failCreate: true}
	checkpoint := newFakeCheckpointRepo()

	triggers := new(MockTriggerRegistry)
	triggers.On("DisableJob", mock.Anything, mock.Anything).Return(nil)

	uc := newSyncForTest(appointments, leads, checkpoint, triggers)
	out, err := uc.Execute(ctx, SyncLeadsInput{Unattended: true})

	assert.NoError(t, err)
	assert.Equal(t, 2, out.Processed)
	assert.Equal(t, 2, out.Errored)
	assert.False(t, checkpoint.cp.InProgress)
	assert.Equal(t, 2, checkpoint.cp.Index)
}
