package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vivaclin/agenda-sync/internal/entity"
)

// Fakes em memória para os repositórios; mocks testify para colaboradores
// onde a asserção de chamada importa.

type fakeAppointmentRepo struct {
	items []entity.Appointment
}

func (f *fakeAppointmentRepo) List(ctx context.Context, limit, offset int) ([]entity.Appointment, error) {
	if offset >= len(f.items) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.items) {
		end = len(f.items)
	}
	page := make([]entity.Appointment, end-offset)
	copy(page, f.items[offset:end])
	return page, nil
}

func (f *fakeAppointmentRepo) FindByID(ctx context.Context, id string) (*entity.Appointment, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			a := f.items[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) ListByUnitAndDate(ctx context.Context, unitID, date, status string) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.items {
		if a.UnitID == unitID && a.Date == date && a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListByPhoneAndStatus(ctx context.Context, phoneDigits string, statuses []string) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.items {
		digits := OnlyDigits(a.ClientPhone)
		if digits == "" {
			continue
		}
		if !strings.Contains(digits, phoneDigits) && !strings.Contains(phoneDigits, digits) {
			continue
		}
		for _, s := range statuses {
			if a.Status == s {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Status = status
			return nil
		}
	}
	return errors.New("agendamento não encontrado")
}

func (f *fakeAppointmentRepo) MarkReminderSent(ctx context.Context, id string, sentAt time.Time) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].ReminderSent = true
			f.items[i].ReminderSentAt = &sentAt
			return nil
		}
	}
	return errors.New("agendamento não encontrado")
}

func (f *fakeAppointmentRepo) Delete(ctx context.Context, id string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return errors.New("agendamento não encontrado")
}

type fakeLeadRepo struct {
	items      []entity.Lead
	failCreate bool
}

func (f *fakeLeadRepo) List(ctx context.Context, limit, offset int) ([]entity.Lead, error) {
	if offset >= len(f.items) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.items) {
		end = len(f.items)
	}
	page := make([]entity.Lead, end-offset)
	copy(page, f.items[offset:end])
	return page, nil
}

func (f *fakeLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	if f.failCreate {
		return errors.New("falha simulada no create")
	}
	f.items = append(f.items, *lead)
	return nil
}

func (f *fakeLeadRepo) Update(ctx context.Context, lead *entity.Lead) error {
	for i := range f.items {
		if f.items[i].ID == lead.ID {
			f.items[i] = *lead
			return nil
		}
	}
	return errors.New("lead não encontrado")
}

type fakeCheckpointRepo struct {
	cp    entity.SyncCheckpoint
	saves int
}

func newFakeCheckpointRepo() *fakeCheckpointRepo {
	return &fakeCheckpointRepo{cp: entity.SyncCheckpoint{ID: entity.SyncCheckpointID}}
}

func (f *fakeCheckpointRepo) Get(ctx context.Context) (*entity.SyncCheckpoint, error) {
	cp := f.cp
	return &cp, nil
}

func (f *fakeCheckpointRepo) Save(ctx context.Context, cp *entity.SyncCheckpoint) error {
	f.cp = *cp
	f.saves++
	return nil
}

type fakeConfigRepo struct {
	items []entity.NotificationConfig
}

func (f *fakeConfigRepo) ListActive(ctx context.Context) ([]entity.NotificationConfig, error) {
	var out []entity.NotificationConfig
	for _, c := range f.items {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConfigRepo) FindByUnit(ctx context.Context, unitID string) (*entity.NotificationConfig, error) {
	for i := range f.items {
		if f.items[i].UnitID == unitID {
			c := f.items[i]
			return &c, nil
		}
	}
	return nil, nil
}

type fakeDeliveryRepo struct {
	records []entity.DeliveryRecord
}

func (f *fakeDeliveryRepo) Create(ctx context.Context, rec *entity.DeliveryRecord) error {
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeDeliveryRepo) HasSent(ctx context.Context, appointmentID string) (bool, error) {
	for _, r := range f.records {
		if r.AppointmentID == appointmentID && r.Outcome == entity.DeliverySent {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDeliveryRepo) sentCount() int {
	n := 0
	for _, r := range f.records {
		if r.Outcome == entity.DeliverySent {
			n++
		}
	}
	return n
}

type fakeAuditRepo struct {
	entries []entity.AuditEntry
}

func (f *fakeAuditRepo) Create(ctx context.Context, entry *entity.AuditEntry) error {
	f.entries = append(f.entries, *entry)
	return nil
}

// fakeSender grava cada chamada e simula falha por telefone.
type fakeSender struct {
	calls      []sentMessage
	failPhones map[string]bool
}

type sentMessage struct {
	Phone   string
	Message string
}

func (f *fakeSender) SendText(ctx context.Context, phone, message string) error {
	if f.failPhones[phone] {
		return errors.New("provedor indisponível")
	}
	f.calls = append(f.calls, sentMessage{Phone: phone, Message: message})
	return nil
}

// MockTriggerRegistry
type MockTriggerRegistry struct {
	mock.Mock
}

func (m *MockTriggerRegistry) DisableJob(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MockSender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendText(ctx context.Context, phone, message string) error {
	args := m.Called(ctx, phone, message)
	return args.Error(0)
}
