package database

import (
	"context"
	"database/sql"

	"github.com/vivaclin/agenda-sync/internal/entity"
)

type SyncCheckpointRepository struct {
	DB *sql.DB
}

func NewSyncCheckpointRepository(db *sql.DB) *SyncCheckpointRepository {
	return &SyncCheckpointRepository{DB: db}
}

// Get cria o singleton na primeira leitura.
func (r *SyncCheckpointRepository) Get(ctx context.Context) (*entity.SyncCheckpoint, error) {
	query := `
		INSERT INTO sync_checkpoints (id, sync_index, created_count, updated_count, errored_count, in_progress)
		VALUES ($1, 0, 0, 0, 0, FALSE)
		ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
		RETURNING id, sync_index, created_count, updated_count, errored_count, in_progress, last_run_at
	`
	cp := &entity.SyncCheckpoint{}
	var lastRun sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, entity.SyncCheckpointID).Scan(
		&cp.ID, &cp.Index, &cp.Created, &cp.Updated, &cp.Errored, &cp.InProgress, &lastRun,
	)
	if err != nil {
		return nil, err
	}
	if lastRun.Valid {
		cp.LastRunAt = &lastRun.Time
	}
	return cp, nil
}

func (r *SyncCheckpointRepository) Save(ctx context.Context, cp *entity.SyncCheckpoint) error {
	query := `
		UPDATE sync_checkpoints
		SET sync_index = $2, created_count = $3, updated_count = $4, errored_count = $5, in_progress = $6, last_run_at = $7
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query,
		cp.ID, cp.Index, cp.Created, cp.Updated, cp.Errored, cp.InProgress, cp.LastRunAt,
	)
	return err
}
