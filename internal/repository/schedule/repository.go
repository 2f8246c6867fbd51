package schedule

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gym-portal/internal/models"
	"gym-portal/internal/repository"
)

type scheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) repository.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// blockRow reads TIME columns as text ("15:30:00"); the timeline parses them.
type blockRow struct {
	ID           int64  `db:"id"`
	TrainerID    int64  `db:"trainer_id"`
	DayOfWeek    string `db:"day_of_week"`
	StartTime    string `db:"start_time"`
	EndTime      string `db:"end_time"`
	SessionLabel string `db:"session_label"`
}

func (b blockRow) toModel() models.ScheduleBlock {
	return models.ScheduleBlock{
		ID:           b.ID,
		TrainerID:    b.TrainerID,
		DayOfWeek:    b.DayOfWeek,
		StartTime:    models.StringTime(b.StartTime),
		EndTime:      models.StringTime(b.EndTime),
		SessionLabel: b.SessionLabel,
	}
}

const selectBlocks = `
	SELECT id, trainer_id, day_of_week, start_time::text AS start_time,
	       end_time::text AS end_time, session_label
	FROM gym.schedule_blocks
`

func (r *scheduleRepository) GetBlocksByTrainerID(ctx context.Context, trainerID int64) ([]models.ScheduleBlock, error) {
	var rows []blockRow
	if err := r.db.SelectContext(ctx, &rows, selectBlocks+`WHERE trainer_id = $1 ORDER BY id`, trainerID); err != nil {
		return nil, fmt.Errorf("get blocks of trainer %d: %w", trainerID, err)
	}

	blocks := make([]models.ScheduleBlock, 0, len(rows))
	for _, row := range rows {
		blocks = append(blocks, row.toModel())
	}
	return blocks, nil
}

func (r *scheduleRepository) GetBlocksByTrainerIDs(ctx context.Context, trainerIDs []int64) (map[int64][]models.ScheduleBlock, error) {
	result := make(map[int64][]models.ScheduleBlock, len(trainerIDs))
	if len(trainerIDs) == 0 {
		return result, nil
	}

	var rows []blockRow
	query := selectBlocks + `WHERE trainer_id = ANY($1) ORDER BY trainer_id, id`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(trainerIDs)); err != nil {
		return nil, fmt.Errorf("get blocks of trainers %v: %w", trainerIDs, err)
	}

	for _, row := range rows {
		result[row.TrainerID] = append(result[row.TrainerID], row.toModel())
	}
	return result, nil
}
