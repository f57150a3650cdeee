package procstate

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Repository персистентное KV-хранилище состояния фоновых процессов.
// Значения переживают рестарты сервиса.
type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Get значение ключа; отсутствие ключа не ошибка, а пустая строка.
func (r *Repository) Get(ctx context.Context, key string) (string, error) {
	query := `
		SELECT value
		FROM process_state
		WHERE key = $1
	`

	var value string
	err := r.querier.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("unexpected process state repository get error: %w", err)
	}
	return value, nil
}

func (r *Repository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO process_state (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := r.querier.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("unexpected process state repository set error: %w", err)
	}
	return nil
}
