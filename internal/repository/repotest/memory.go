// Package repotest provides in-memory repositories for service and handler tests.
package repotest

import (
	"context"
	"sync"
	"time"

	"gym-portal/internal/models"
	"gym-portal/internal/repository"
)

// Store backs every repository interface with maps guarded by one mutex.
type Store struct {
	mu            sync.Mutex
	Clients       map[int64]models.Client
	Trainers      map[int64]models.TrainerSchedule
	PlanTrainers  map[int64][]int64
	Subscriptions map[int64]models.Subscription
	Blocks        map[int64][]models.ScheduleBlock
	Attendance    []models.AttendanceRecord
	Err           error // returned by every call when set
}

func NewStore() *Store {
	return &Store{
		Clients:       map[int64]models.Client{},
		Trainers:      map[int64]models.TrainerSchedule{},
		PlanTrainers:  map[int64][]int64{},
		Subscriptions: map[int64]models.Subscription{},
		Blocks:        map[int64][]models.ScheduleBlock{},
	}
}

func (s *Store) Client() repository.ClientRepository             { return clientRepo{s} }
func (s *Store) Trainer() repository.TrainerRepository           { return trainerRepo{s} }
func (s *Store) Subscription() repository.SubscriptionRepository { return subscriptionRepo{s} }
func (s *Store) Schedule() repository.ScheduleRepository         { return scheduleRepo{s} }
func (s *Store) AttendanceRepo() repository.AttendanceRepository { return attendanceRepo{s} }

func day(t time.Time) string { return t.Format("2006-01-02") }

// covers treats a zero end date as open-ended.
func covers(sub models.Subscription, on time.Time) bool {
	return overlaps(sub, on, on)
}

func overlaps(sub models.Subscription, from, to time.Time) bool {
	return day(sub.StartDate) <= day(to) && (sub.EndDate.IsZero() || day(from) <= day(sub.EndDate))
}

type clientRepo struct{ s *Store }

func (r clientRepo) GetByTelegramID(_ context.Context, telegramID int64) (*models.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, c := range r.s.Clients {
		if c.TelegramID != nil && *c.TelegramID == telegramID {
			c := c
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

type trainerRepo struct{ s *Store }

func (r trainerRepo) GetByID(_ context.Context, id int64) (*models.TrainerSchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	t, ok := r.s.Trainers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r trainerRepo) GetByPlanID(_ context.Context, planID int64) ([]models.TrainerSchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var out []models.TrainerSchedule
	for _, id := range r.s.PlanTrainers[planID] {
		if t, ok := r.s.Trainers[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

type subscriptionRepo struct{ s *Store }

func (r subscriptionRepo) GetByID(_ context.Context, id int64) (*models.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	sub, ok := r.s.Subscriptions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &sub, nil
}

func (r subscriptionRepo) GetActiveByClientID(_ context.Context, clientID int64, from, to time.Time) (*models.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var found *models.Subscription
	for _, sub := range r.s.Subscriptions {
		if sub.ClientID != clientID || !overlaps(sub, from, to) {
			continue
		}
		// latest start wins, as in the SQL ordering
		if found == nil || sub.StartDate.After(found.StartDate) ||
			(sub.StartDate.Equal(found.StartDate) && sub.ID > found.ID) {
			sub := sub
			found = &sub
		}
	}
	if found == nil {
		return nil, repository.ErrNotFound
	}
	return found, nil
}

func (r subscriptionRepo) ListActiveWithTelegram(_ context.Context, on time.Time) ([]models.ActiveEnrollment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var out []models.ActiveEnrollment
	for _, sub := range r.s.Subscriptions {
		c, ok := r.s.Clients[sub.ClientID]
		if !ok || c.TelegramID == nil {
			continue
		}
		if covers(sub, on) {
			out = append(out, models.ActiveEnrollment{SubscriptionID: sub.ID, TelegramID: *c.TelegramID})
		}
	}
	return out, nil
}

type scheduleRepo struct{ s *Store }

func (r scheduleRepo) GetBlocksByTrainerID(_ context.Context, trainerID int64) ([]models.ScheduleBlock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return append([]models.ScheduleBlock(nil), r.s.Blocks[trainerID]...), nil
}

func (r scheduleRepo) GetBlocksByTrainerIDs(_ context.Context, trainerIDs []int64) (map[int64][]models.ScheduleBlock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make(map[int64][]models.ScheduleBlock, len(trainerIDs))
	for _, id := range trainerIDs {
		if blocks, ok := r.s.Blocks[id]; ok {
			out[id] = append([]models.ScheduleBlock(nil), blocks...)
		}
	}
	return out, nil
}

type attendanceRepo struct{ s *Store }

func (r attendanceRepo) GetBySubscription(_ context.Context, subscriptionID int64, from, to time.Time) ([]models.AttendanceRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var out []models.AttendanceRecord
	for _, rec := range r.s.Attendance {
		if rec.SubscriptionID == subscriptionID && day(from) <= day(rec.Date) && day(rec.Date) <= day(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r attendanceRepo) Mark(_ context.Context, record *models.AttendanceRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for i, rec := range r.s.Attendance {
		if rec.SubscriptionID == record.SubscriptionID && day(rec.Date) == day(record.Date) {
			record.ID = rec.ID
			if rec.Attended && !record.Attended {
				record.Attended = true
				record.AttendanceTime = rec.AttendanceTime
			} else if record.AttendanceTime == nil {
				record.AttendanceTime = rec.AttendanceTime
			}
			r.s.Attendance[i] = *record
			return nil
		}
	}
	record.ID = int64(len(r.s.Attendance) + 1)
	r.s.Attendance = append(r.s.Attendance, *record)
	return nil
}
