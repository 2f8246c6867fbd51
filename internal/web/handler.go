package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"gym-portal/internal/models"
	"gym-portal/internal/repository"
	"gym-portal/internal/service"
)

const dateLayout = "2006-01-02"

type Handler struct {
	timelineService   service.TimelineService
	attendanceService service.AttendanceService
	clock             service.Clock
	log               *zap.Logger
}

func NewHandler(
	timelineService service.TimelineService,
	attendanceService service.AttendanceService,
	clock service.Clock,
	log *zap.Logger,
) *Handler {
	return &Handler{
		timelineService:   timelineService,
		attendanceService: attendanceService,
		clock:             clock,
		log:               log.Named("web"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/subscriptions/{subscriptionID}/week", h.Week)
		r.Post("/subscriptions/{subscriptionID}/attendance", h.MarkAttendance)
		r.Post("/timeline/preview", h.Preview)
	})
	return r
}

// Week returns the timeline of the week containing ?date (today when absent).
func (h *Handler) Week(w http.ResponseWriter, r *http.Request) {
	subscriptionID, err := strconv.ParseInt(chi.URLParam(r, "subscriptionID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid subscription id")
		return
	}

	date, err := h.dateParam(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	week, err := h.timelineService.GetWeek(r.Context(), subscriptionID, date)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, week)
}

type markAttendanceRequest struct {
	Date           string `json:"date"`
	Attended       bool   `json:"attended"`
	AttendanceTime string `json:"attendance_time"`
}

func (h *Handler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	subscriptionID, err := strconv.ParseInt(chi.URLParam(r, "subscriptionID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid subscription id")
		return
	}

	var req markAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := h.dateParam(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	record, err := h.attendanceService.MarkAttendance(r.Context(), subscriptionID, date, req.Attended, req.AttendanceTime)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

type previewRequest struct {
	Subscription *models.Subscription `json:"subscription"`
	Date         string               `json:"date"`
}

// Preview builds a week from the snapshot in the body without reading storage.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Subscription == nil {
		writeError(w, http.StatusBadRequest, "subscription is required")
		return
	}
	date, err := h.dateParam(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	writeJSON(w, http.StatusOK, h.timelineService.Preview(req.Subscription, date))
}

func (h *Handler) dateParam(value string) (time.Time, error) {
	if value == "" {
		now := h.clock()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	return time.ParseInLocation(dateLayout, value, h.clock().Location())
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrInvalidAttendance):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(ww, r)

		h.log.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(started)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
