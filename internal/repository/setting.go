package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/somang-church/website-api/internal/db"
	"github.com/somang-church/website-api/internal/models"
)

// SettingRepository defines operations for managing site settings.
type SettingRepository interface {
	// Get retrieves a single setting by key.
	Get(ctx context.Context, key string) (*models.Setting, error)

	// List retrieves all settings ordered by key.
	List(ctx context.Context) ([]*models.Setting, error)

	// Upsert creates or replaces the value for a key and returns the row.
	Upsert(ctx context.Context, key, value string) (*models.Setting, error)
}

type settingRepository struct {
	pool *pgxpool.Pool
}

// NewSettingRepository creates a new SettingRepository.
func NewSettingRepository(pool *pgxpool.Pool) SettingRepository {
	return &settingRepository{pool: pool}
}

func (r *settingRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	query := `SELECT key, value, updated_at FROM church_settings WHERE key = $1`

	setting := &models.Setting{}
	err := r.pool.QueryRow(ctx, query, key).Scan(&setting.Key, &setting.Value, &setting.UpdatedAt)
	if err != nil {
		return nil, db.WrapError(err, "get setting")
	}

	return setting, nil
}

func (r *settingRepository) List(ctx context.Context) ([]*models.Setting, error) {
	query := `SELECT key, value, updated_at FROM church_settings ORDER BY key`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, db.WrapError(err, "list settings")
	}
	defer rows.Close()

	var settings []*models.Setting
	for rows.Next() {
		setting := &models.Setting{}
		if err := rows.Scan(&setting.Key, &setting.Value, &setting.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings = append(settings, setting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}

	return settings, nil
}

func (r *settingRepository) Upsert(ctx context.Context, key, value string) (*models.Setting, error) {
	query := `
		INSERT INTO church_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    updated_at = now()
		RETURNING key, value, updated_at
	`

	setting := &models.Setting{}
	err := r.pool.QueryRow(ctx, query, key, value).Scan(&setting.Key, &setting.Value, &setting.UpdatedAt)
	if err != nil {
		return nil, db.WrapError(err, "upsert setting")
	}

	return setting, nil
}
