package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vivaclin/agenda-sync/internal/config"
	"github.com/vivaclin/agenda-sync/internal/infra/database"
	"github.com/vivaclin/agenda-sync/internal/infra/http/handlers"
	"github.com/vivaclin/agenda-sync/internal/infra/http/middleware"
	"github.com/vivaclin/agenda-sync/internal/infra/integration/zapi"
	"github.com/vivaclin/agenda-sync/internal/infra/scheduler"
	"github.com/vivaclin/agenda-sync/internal/usecase"
)

func main() {
	cfg := config.Load()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Erro ao conectar no banco: %v", err)
	}
	defer db.Close()

	// Sem credenciais do provedor não há lembrete nem resposta de webhook;
	// erro de configuração é fatal, não retentável
	if err := cfg.ValidateProvider(); err != nil {
		log.Fatalf("❌ Provedor de mensagens: %v", err)
	}

	// 1. Repositórios
	appointmentRepo := database.NewAppointmentRepository(db)
	leadRepo := database.NewLeadRepository(db)
	checkpointRepo := database.NewSyncCheckpointRepository(db)
	configRepo := database.NewNotificationConfigRepository(db)
	deliveryRepo := database.NewDeliveryRecordRepository(db)
	auditRepo := database.NewAuditEntryRepository(db)

	// 2. Integrações
	sender := zapi.NewClient(cfg.ZAPIBaseURL, cfg.ZAPIInstanceID, cfg.ZAPIInstanceToken, cfg.ZAPIClientToken)
	triggers := scheduler.NewClient(cfg.SchedulerURL, cfg.SchedulerToken)

	// 3. UseCases
	syncUC := usecase.NewSyncLeadsUseCase(appointmentRepo, leadRepo, checkpointRepo, triggers, cfg.SyncJobName)
	remindersUC := usecase.NewSendRemindersUseCase(appointmentRepo, configRepo, deliveryRepo, sender)
	replyUC := usecase.NewProcessReplyUseCase(appointmentRepo, auditRepo, sender)

	// 4. Handlers
	webhookHandler := handlers.NewWebhookHandler(replyUC)
	syncHandler := handlers.NewSyncHandler(syncUC)
	reminderHandler := handlers.NewReminderHandler(remindersUC)
	healthHandler := handlers.NewHealthHandler(db, cfg)

	// 5. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/webhook/zapi", webhookHandler.HandleLiveness)
	r.Post("/webhook/zapi", webhookHandler.Handle)

	r.Post("/sync", syncHandler.HandleManual)
	r.Post("/jobs/sync", syncHandler.HandleJob)

	r.Post("/lembretes/enviar", reminderHandler.HandleManual)
	r.Post("/jobs/lembretes", reminderHandler.HandleJob)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	log.Printf("🔥 Agenda-sync rodando na porta :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("❌ Servidor encerrado: %v", err)
	}
}
