package repository

import (
	"context"
	"errors"

	"mokka-api/internal/infra"
	"mokka-api/internal/infra/db"
	"mokka-api/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
)

const setSettingQuery = `
INSERT INTO settings (key, value)
VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

const getSettingQuery = `
SELECT value FROM settings WHERE key = $1`

const allSettingsQuery = `
SELECT key, value FROM settings`

type SettingsRepository struct {
	conn db.Conn
}

func NewSettingsRepository(conn db.Conn) shared.SettingsRepository {
	return &SettingsRepository{conn: conn}
}

func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	if _, err := r.conn.Exec(ctx, setSettingQuery, key, value); err != nil {
		return infra.ClassifyPgErr(err, "failed to set setting")
	}
	return nil
}

func (r *SettingsRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	if err := r.conn.QueryRow(ctx, getSettingQuery, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", infra.NewRepoErr(infra.KindNotFound, "setting not found", err)
		}
		return "", infra.NewRepoErr(infra.KindDBFailure, "failed to get setting", err)
	}
	return value, nil
}

func (r *SettingsRepository) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.conn.Query(ctx, allSettingsQuery)
	if err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to list settings", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to scan setting", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to read settings", err)
	}
	return out, nil
}
