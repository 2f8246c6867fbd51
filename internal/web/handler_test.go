package web_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"gym-portal/internal/models"
	"gym-portal/internal/repository"
	"gym-portal/internal/service"
	"gym-portal/internal/web"
)

var today = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)

type stubTimeline struct {
	gotID   int64
	gotDate time.Time
	err     error
}

func (s *stubTimeline) GetWeek(_ context.Context, subscriptionID int64, date time.Time) (*models.WeekTimeline, error) {
	s.gotID, s.gotDate = subscriptionID, date
	if s.err != nil {
		return nil, s.err
	}
	return &models.WeekTimeline{SubscriptionID: subscriptionID, WeekStart: "2026-10-12", WeekEnd: "2026-10-18", Events: []models.CalendarEvent{}}, nil
}

func (s *stubTimeline) GetWeekForTelegramUser(context.Context, int64, time.Time) (*models.WeekTimeline, error) {
	return nil, errors.New("not used")
}

func (s *stubTimeline) GetDay(context.Context, int64, time.Time) ([]models.CalendarEvent, error) {
	return nil, errors.New("not used")
}

func (s *stubTimeline) Preview(sub *models.Subscription, date time.Time) *models.WeekTimeline {
	s.gotDate = date
	return &models.WeekTimeline{SubscriptionID: sub.ID, PlanKind: sub.PlanKind, Events: []models.CalendarEvent{}}
}

type stubAttendance struct {
	err error
}

func (s *stubAttendance) MarkAttendance(_ context.Context, subscriptionID int64, date time.Time, attended bool, attendanceTime string) (*models.AttendanceRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	rec := &models.AttendanceRecord{ID: 7, SubscriptionID: subscriptionID, Date: date, Attended: attended}
	if attendanceTime != "" {
		rec.AttendanceTime = &attendanceTime
	}
	return rec, nil
}

func newServer(t *testing.T, tl *stubTimeline, att *stubAttendance) *httptest.Server {
	h := web.NewHandler(tl, att, func() time.Time { return today }, zaptest.NewLogger(t))
	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func TestWeek(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
		wantDate   string
	}{
		{name: "explicit date", path: "/api/subscriptions/3/week?date=2026-10-20", wantStatus: http.StatusOK, wantDate: "2026-10-20"},
		{name: "defaults to today", path: "/api/subscriptions/3/week", wantStatus: http.StatusOK, wantDate: "2026-10-15"},
		{name: "bad date", path: "/api/subscriptions/3/week?date=20.10.2026", wantStatus: http.StatusBadRequest},
		{name: "bad id", path: "/api/subscriptions/abc/week", wantStatus: http.StatusBadRequest},
		{name: "unknown subscription", path: "/api/subscriptions/3/week", err: repository.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "storage failure", path: "/api/subscriptions/3/week", err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := &stubTimeline{err: tt.err}
			srv := newServer(t, tl, &stubAttendance{})

			resp, err := http.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantDate != "" {
				if got := tl.gotDate.Format("2006-01-02"); got != tt.wantDate {
					t.Errorf("date = %s, want %s", got, tt.wantDate)
				}
				var week models.WeekTimeline
				if err := json.NewDecoder(resp.Body).Decode(&week); err != nil {
					t.Fatal(err)
				}
				if week.SubscriptionID != 3 {
					t.Errorf("subscription = %d", week.SubscriptionID)
				}
			}
		})
	}
}

func TestMarkAttendance(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "check-in", body: `{"date":"2026-10-15","attended":true,"attendance_time":"09:30"}`, wantStatus: http.StatusOK},
		{name: "malformed json", body: `{"date":`, wantStatus: http.StatusBadRequest},
		{name: "bad date", body: `{"date":"15/10/2026","attended":true}`, wantStatus: http.StatusBadRequest},
		{name: "rejected by service", body: `{"date":"2026-10-15","attended":true}`, err: fmt.Errorf("%w: outside period", service.ErrInvalidAttendance), wantStatus: http.StatusBadRequest},
		{name: "unknown subscription", body: `{"date":"2026-10-15","attended":true}`, err: repository.ErrNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, &stubTimeline{}, &stubAttendance{err: tt.err})

			resp, err := http.Post(srv.URL+"/api/subscriptions/5/attendance", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var rec models.AttendanceRecord
			if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
				t.Fatal(err)
			}
			if rec.SubscriptionID != 5 || rec.AttendanceTime == nil || *rec.AttendanceTime != "09:30" {
				t.Errorf("record = %+v", rec)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	tl := &stubTimeline{}
	srv := newServer(t, tl, &stubAttendance{})

	body := `{
		"date": "2026-10-14",
		"subscription": {
			"id": 11,
			"plan_name": "Premium Personal",
			"plan_kind": "PREMIUM",
			"start_date": "2026-10-01T00:00:00Z",
			"end_date": "2026-10-31T00:00:00Z",
			"trainer": {"trainer_name": "Ana", "blocks": [
				{"day_of_week": "miércoles", "start_time": {"hour": 9, "minute": 0}, "end_time": "10:00"},
				{"day_of_week": "jueves", "start_time": {"hour": "9", "minute": "00"}, "end_time": "10:00"}
			]}
		}
	}`
	resp, err := http.Post(srv.URL+"/api/timeline/preview", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var week models.WeekTimeline
	if err := json.NewDecoder(resp.Body).Decode(&week); err != nil {
		t.Fatal(err)
	}
	if week.SubscriptionID != 11 || week.PlanKind != models.PlanPremium {
		t.Errorf("week = %+v", week)
	}
	if tl.gotDate.Day() != 14 {
		t.Errorf("date = %v", tl.gotDate)
	}

	resp, err = http.Post(srv.URL+"/api/timeline/preview", "application/json", strings.NewReader(`{"date":"2026-10-14"}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing subscription status = %d", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	srv := newServer(t, &stubTimeline{}, &stubAttendance{})

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
