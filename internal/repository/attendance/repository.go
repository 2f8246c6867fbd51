package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gym-portal/internal/models"
	"gym-portal/internal/repository"
)

type attendanceRepository struct {
	db *sqlx.DB
}

func NewAttendanceRepository(db *sqlx.DB) repository.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) GetBySubscription(ctx context.Context, subscriptionID int64, from, to time.Time) ([]models.AttendanceRecord, error) {
	query := `
		SELECT id, subscription_id, attendance_date, attended,
		       to_char(attendance_time, 'HH24:MI') AS attendance_time
		FROM gym.attendance_records
		WHERE subscription_id = $1 AND attendance_date BETWEEN $2 AND $3
		ORDER BY attendance_date, id
	`

	var records []models.AttendanceRecord
	err := r.db.SelectContext(ctx, &records, query, subscriptionID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("get attendance of subscription %d: %w", subscriptionID, err)
	}
	return records, nil
}

// Mark upserts the day's record. A stored check-in is never downgraded by a
// later attended=false write, and a known check-in time is kept when the new
// write carries none. The record is refreshed with the stored state.
func (r *attendanceRepository) Mark(ctx context.Context, record *models.AttendanceRecord) error {
	query := `
		INSERT INTO gym.attendance_records AS ar (subscription_id, attendance_date, attended, attendance_time)
		VALUES (:subscription_id, :attendance_date, :attended, CAST(:attendance_time AS TIME))
		ON CONFLICT (subscription_id, attendance_date)
		DO UPDATE SET
			attended = ar.attended OR EXCLUDED.attended,
			attendance_time = CASE
				WHEN ar.attended AND NOT EXCLUDED.attended THEN ar.attendance_time
				ELSE COALESCE(EXCLUDED.attendance_time, ar.attendance_time)
			END,
			recorded_at = CURRENT_TIMESTAMP
		RETURNING id, attended, to_char(attendance_time, 'HH24:MI') AS attendance_time
	`

	rows, err := r.db.NamedQueryContext(ctx, query, record)
	if err != nil {
		return fmt.Errorf("mark attendance: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.StructScan(record); err != nil {
			return fmt.Errorf("mark attendance: %w", err)
		}
	}
	return rows.Err()
}
