package entity

import (
	"context"
	"time"
)

// SyncCheckpointID é o registro singleton de progresso da sincronização de leads.
const SyncCheckpointID = "leads-sync"

// SyncCheckpoint guarda o progresso entre invocações. O índice só avança:
// um backlog novo cresce a lista e a mesma posição retoma dali.
type SyncCheckpoint struct {
	ID         string     `json:"id"`
	Index      int        `json:"index"`
	Created    int        `json:"created"`
	Updated    int        `json:"updated"`
	Errored    int        `json:"errored"`
	InProgress bool       `json:"in_progress"`
	LastRunAt  *time.Time `json:"last_run_at,omitempty"`
}

type SyncCheckpointRepositoryInterface interface {

	// Get cria o registro na primeira leitura se ele ainda não existe
	Get(ctx context.Context) (*SyncCheckpoint, error)

	Save(ctx context.Context, cp *SyncCheckpoint) error
}
