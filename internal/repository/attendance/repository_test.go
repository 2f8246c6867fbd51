package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"gym-portal/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestGetBySubscription(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAttendanceRepository(db)

	from := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 6)
	mock.ExpectQuery(`FROM gym\.attendance_records\s+WHERE subscription_id = \$1 AND attendance_date BETWEEN \$2 AND \$3`).
		WithArgs(int64(10), "2026-10-12", "2026-10-18").
		WillReturnRows(sqlmock.NewRows([]string{"id", "subscription_id", "attendance_date", "attended", "attendance_time"}).
			AddRow(1, 10, from, true, "09:10").
			AddRow(2, 10, from.AddDate(0, 0, 1), false, nil))

	records, err := repo.GetBySubscription(context.Background(), 10, from, to)
	if err != nil {
		t.Fatalf("GetBySubscription() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].AttendanceTime == nil || *records[0].AttendanceTime != "09:10" || !records[0].Attended {
		t.Errorf("first record = %+v", records[0])
	}
	if records[1].AttendanceTime != nil || records[1].Attended {
		t.Errorf("second record = %+v", records[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestMark(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAttendanceRepository(db)

	at := "18:05"
	record := &models.AttendanceRecord{
		SubscriptionID: 10,
		Date:           time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
		Attended:       true,
		AttendanceTime: &at,
	}

	mock.ExpectQuery(`INSERT INTO gym\.attendance_records`).
		WithArgs(int64(10), sqlmock.AnyArg(), true, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "attended", "attendance_time"}).AddRow(42, true, "18:05"))

	if err := repo.Mark(context.Background(), record); err != nil {
		t.Fatalf("Mark() error = %v", err)
	}
	if record.ID != 42 {
		t.Errorf("record id = %d, want 42", record.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestMark_KeepsStoredCheckIn(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAttendanceRepository(db)

	record := &models.AttendanceRecord{
		SubscriptionID: 10,
		Date:           time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
	}

	mock.ExpectQuery(`DO UPDATE SET\s+attended = ar\.attended OR EXCLUDED\.attended,\s+attendance_time = CASE\s+WHEN ar\.attended AND NOT EXCLUDED\.attended THEN ar\.attendance_time\s+ELSE COALESCE\(EXCLUDED\.attendance_time, ar\.attendance_time\)`).
		WithArgs(int64(10), sqlmock.AnyArg(), false, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "attended", "attendance_time"}).AddRow(42, true, "09:30"))

	if err := repo.Mark(context.Background(), record); err != nil {
		t.Fatalf("Mark() error = %v", err)
	}
	if !record.Attended || record.AttendanceTime == nil || *record.AttendanceTime != "09:30" {
		t.Errorf("record = %+v, want the stored check-in", record)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
