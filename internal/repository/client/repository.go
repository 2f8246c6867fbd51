package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gym-portal/internal/models"
	"gym-portal/internal/repository"
)

type clientRepository struct {
	db *sqlx.DB
}

func NewClientRepository(db *sqlx.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.Client, error) {
	query := `
		SELECT id, telegram_id, first_name, last_name, created_at
		FROM gym.clients
		WHERE telegram_id = $1
	`

	var client models.Client
	if err := r.db.GetContext(ctx, &client, query, telegramID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get client by telegram id: %w", err)
	}
	return &client, nil
}
