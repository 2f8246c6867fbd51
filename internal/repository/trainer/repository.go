package trainer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gym-portal/internal/models"
	"gym-portal/internal/repository"
)

type trainerRepository struct {
	db *sqlx.DB
}

func NewTrainerRepository(db *sqlx.DB) repository.TrainerRepository {
	return &trainerRepository{db: db}
}

func (r *trainerRepository) GetByID(ctx context.Context, id int64) (*models.TrainerSchedule, error) {
	var trainer models.TrainerSchedule
	query := `SELECT id, full_name FROM gym.trainers WHERE id = $1`
	if err := r.db.GetContext(ctx, &trainer, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get trainer %d: %w", id, err)
	}
	return &trainer, nil
}

func (r *trainerRepository) GetByPlanID(ctx context.Context, planID int64) ([]models.TrainerSchedule, error) {
	query := `
		SELECT t.id, t.full_name
		FROM gym.plan_trainers pt
		JOIN gym.trainers t ON t.id = pt.trainer_id
		WHERE pt.plan_id = $1
		ORDER BY pt.position, t.id
	`

	var trainers []models.TrainerSchedule
	if err := r.db.SelectContext(ctx, &trainers, query, planID); err != nil {
		return nil, fmt.Errorf("get trainers of plan %d: %w", planID, err)
	}
	return trainers, nil
}
