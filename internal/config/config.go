package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config reúne tudo que vem de variável de ambiente.
type Config struct {
	DatabaseURL string
	Port        string

	// Credenciais do provedor de mensagens (Z-API)
	ZAPIBaseURL       string
	ZAPIInstanceID    string
	ZAPIInstanceToken string
	ZAPIClientToken   string

	// Registro externo de gatilhos recorrentes
	SchedulerURL   string
	SchedulerToken string
	SyncJobName    string
}

// Load carrega o .env se existir; variáveis de ambiente têm precedência.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("ℹ️ Sem arquivo .env, usando variáveis de ambiente")
	}

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		Port:              os.Getenv("PORT"),
		ZAPIBaseURL:       os.Getenv("ZAPI_BASE_URL"),
		ZAPIInstanceID:    os.Getenv("ZAPI_INSTANCE_ID"),
		ZAPIInstanceToken: os.Getenv("ZAPI_INSTANCE_TOKEN"),
		ZAPIClientToken:   os.Getenv("ZAPI_CLIENT_TOKEN"),
		SchedulerURL:      os.Getenv("SCHEDULER_URL"),
		SchedulerToken:    os.Getenv("SCHEDULER_TOKEN"),
		SyncJobName:       os.Getenv("SYNC_JOB_NAME"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.ZAPIBaseURL == "" {
		cfg.ZAPIBaseURL = "https://api.z-api.io"
	}
	if cfg.SyncJobName == "" {
		cfg.SyncJobName = "sync-leads"
	}

	return cfg
}

// ValidateProvider falha quando falta qualquer credencial do provedor.
// Erro de configuração é fatal para a invocação, não uma condição retentável.
func (c *Config) ValidateProvider() error {
	if c.ZAPIInstanceID == "" {
		return fmt.Errorf("ZAPI_INSTANCE_ID não configurado")
	}
	if c.ZAPIInstanceToken == "" {
		return fmt.Errorf("ZAPI_INSTANCE_TOKEN não configurado")
	}
	if c.ZAPIClientToken == "" {
		return fmt.Errorf("ZAPI_CLIENT_TOKEN não configurado")
	}
	return nil
}
