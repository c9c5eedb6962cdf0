package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/vivaclin/agenda-sync/internal/infra/http/middleware"
	"github.com/vivaclin/agenda-sync/internal/usecase"
)

// WebhookHandler recebe os callbacks do provedor de mensagens. Responde
// sempre 200 com corpo {success, message}: erro HTTP aqui faz o provedor
// desativar o webhook ou entrar em tempestade de retries.
type WebhookHandler struct {
	Processor *usecase.ProcessReplyUseCase
}

func NewWebhookHandler(processor *usecase.ProcessReplyUseCase) *WebhookHandler {
	return &WebhookHandler{Processor: processor}
}

// HandleLiveness responde o probe GET do provedor.
func (h *WebhookHandler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, usecase.ReplyOutput{Success: true, Message: "webhook ativo"})
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Printf("⚠️ Webhook: payload inválido: %v", err)
		writeJSON(w, http.StatusOK, usecase.ReplyOutput{Success: false, Message: "payload inválido"})
		return
	}

	out := h.Processor.Execute(r.Context(), payload)
	if out.Success {
		middleware.RecordReply("ok")
	} else {
		middleware.RecordReply("error")
	}

	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
