package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/vivaclin/agenda-sync/internal/infra/http/middleware"
	"github.com/vivaclin/agenda-sync/internal/usecase"
)

type SyncHandler struct {
	Sync *usecase.SyncLeadsUseCase
}

func NewSyncHandler(sync *usecase.SyncLeadsUseCase) *SyncHandler {
	return &SyncHandler{Sync: sync}
}

// HandleManual é o disparo síncrono de operador: aceita índice e tamanho de
// lote e devolve o resumo estruturado.
func (h *SyncHandler) HandleManual(w http.ResponseWriter, r *http.Request) {
	var input usecase.SyncLeadsInput
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "Bad JSON", http.StatusBadRequest)
			return
		}
	}
	input.Unattended = false

	out, err := h.Sync.Execute(r.Context(), input)
	if err != nil {
		log.Printf("❌ Sync manual: %v", err)
		http.Error(w, "erro na sincronização", http.StatusInternalServerError)
		return
	}

	middleware.RecordSync(out.Created, out.Updated, out.Errored)
	writeJSON(w, http.StatusOK, out)
}

// HandleJob é a variante cron: lock advisory, lote grande e autodesativação
// do gatilho quando o backlog esgota.
func (h *SyncHandler) HandleJob(w http.ResponseWriter, r *http.Request) {
	out, err := h.Sync.Execute(r.Context(), usecase.SyncLeadsInput{Unattended: true})
	if err != nil {
		log.Printf("❌ Sync automático: %v", err)
		http.Error(w, "erro na sincronização", http.StatusInternalServerError)
		return
	}

	if !out.AlreadyRunning {
		middleware.RecordSync(out.Created, out.Updated, out.Errored)
	}
	writeJSON(w, http.StatusOK, out)
}
