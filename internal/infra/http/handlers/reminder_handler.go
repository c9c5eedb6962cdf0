package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/vivaclin/agenda-sync/internal/infra/http/middleware"
	"github.com/vivaclin/agenda-sync/internal/usecase"
)

type ReminderHandler struct {
	Reminders *usecase.SendRemindersUseCase
}

func NewReminderHandler(reminders *usecase.SendRemindersUseCase) *ReminderHandler {
	return &ReminderHandler{Reminders: reminders}
}

// HandleJob é o disparo diário sem argumentos.
func (h *ReminderHandler) HandleJob(w http.ResponseWriter, r *http.Request) {
	out, err := h.Reminders.Execute(r.Context(), usecase.SendRemindersInput{Initiator: "cron"})
	if err != nil {
		log.Printf("❌ Lembretes (job): %v", err)
		http.Error(w, "erro no disparo de lembretes", http.StatusInternalServerError)
		return
	}

	h.record(out)
	writeJSON(w, http.StatusOK, out)
}

// HandleManual cobre teste de operador e "enviar agora" depois de ativar uma
// configuração.
func (h *ReminderHandler) HandleManual(w http.ResponseWriter, r *http.Request) {
	var input usecase.SendRemindersInput
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "Bad JSON", http.StatusBadRequest)
			return
		}
	}
	input.Initiator = "manual"

	out, err := h.Reminders.Execute(r.Context(), input)
	if err != nil {
		log.Printf("❌ Lembretes (manual): %v", err)
		http.Error(w, "erro no disparo de lembretes", http.StatusInternalServerError)
		return
	}

	h.record(out)
	writeJSON(w, http.StatusOK, out)
}

func (h *ReminderHandler) record(out *usecase.SendRemindersOutput) {
	for _, unit := range out.Units {
		middleware.RecordReminders(unit.Sent, unit.Errored)
	}
}
