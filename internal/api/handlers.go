package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	"cloudeng.io/datetime"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/zapponejosh/feastcal/internal/calendar"
	"github.com/zapponejosh/feastcal/internal/config"
	"github.com/zapponejosh/feastcal/internal/database"
	"github.com/zapponejosh/feastcal/internal/logger"
	"github.com/zapponejosh/feastcal/internal/metrics"
	"github.com/zapponejosh/feastcal/internal/service"
)

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	svc     *service.Calendar
	db      *database.DB
	cache   HealthChecker
	metrics *metrics.Metrics
	cfg     *config.Config
	logger  *slog.Logger
}

// NewHandlers creates a new Handlers instance. cache may be nil when the
// service uses no external cache.
func NewHandlers(svc *service.Calendar, db *database.DB, cache HealthChecker, m *metrics.Metrics, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		svc:     svc,
		db:      db,
		cache:   cache,
		metrics: m,
		cfg:     cfg,
		logger:  logger,
	}
}

// HolidayList is the body of GET /api/v1/years/{year}/holidays.
type HolidayList struct {
	Year     int                `json:"year"`
	Lang     string             `json:"lang"`
	Count    int                `json:"count"`
	Notice   string             `json:"notice,omitempty"`
	Holidays []calendar.Holiday `json:"holidays"`
}

// FeastHistory is the body of GET /api/v1/archive/feasts/{key}.
type FeastHistory struct {
	Key    string           `json:"key"`
	Lang   string           `json:"lang"`
	From   int              `json:"from"`
	To     int              `json:"to"`
	Feasts []database.Feast `json:"feasts"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.Health(ctx); err != nil {
		h.logger.WarnContext(ctx, "health check failed", slog.String("component", "database"), slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	cacheStatus := "memory"
	if h.cache != nil {
		if err := h.cache.Health(ctx); err != nil {
			h.logger.WarnContext(ctx, "health check failed", slog.String("component", "cache"), slog.Any("error", err))
			WriteError(w, http.StatusServiceUnavailable, "Cache unhealthy", "HEALTH_CHECK_FAILED")
			return
		}
		cacheStatus = "ok"
	}

	WriteSuccess(w, map[string]string{
		"status":   "healthy",
		"database": "ok",
		"cache":    cacheStatus,
	})
}

// GetLanguages handles GET /api/v1/languages
func (h *Handlers) GetLanguages(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, h.svc.Languages())
}

// GetYear handles GET /api/v1/years/{year}
func (h *Handlers) GetYear(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	overview, err := h.svc.YearOverview(r.Context(), year, lang(r))
	if err != nil {
		h.writeError(w, r, err, "Failed to compute year")
		return
	}

	WriteSuccess(w, overview)
}

// GetEaster handles GET /api/v1/years/{year}/easter
func (h *Handlers) GetEaster(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	easter, err := h.svc.Easter(year, lang(r))
	if err != nil {
		h.writeError(w, r, err, "Failed to compute Easter")
		return
	}

	WriteSuccess(w, easter)
}

// GetHolidays handles GET /api/v1/years/{year}/holidays
func (h *Handlers) GetHolidays(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	l := lang(r)
	holidays, err := h.svc.Holidays(r.Context(), year, l)
	if err != nil {
		h.writeError(w, r, err, "Failed to compute holidays")
		return
	}

	WriteSuccess(w, HolidayList{
		Year:     year,
		Lang:     l,
		Count:    len(holidays),
		Notice:   h.svc.HolidayNotice(year, l),
		Holidays: holidays,
	})
}

// GetMonth handles GET /api/v1/years/{year}/months/{month}
//
// The month is a number (1-12) or an English month name prefix.
func (h *Handlers) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	month, ok := monthParam(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Month(r.Context(), year, month, lang(r))
	if err != nil {
		h.writeError(w, r, err, "Failed to compute month")
		return
	}

	WriteSuccess(w, view)
}

// GetSaintToday handles GET /api/v1/saints/today
func (h *Handlers) GetSaintToday(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, h.svc.SaintToday(lang(r)))
}

// GetSaint handles GET /api/v1/saints/{month}/{day}
func (h *Handlers) GetSaint(w http.ResponseWriter, r *http.Request) {
	month, day, ok := monthDayParams(w, r)
	if !ok {
		return
	}

	saint, err := h.svc.Saint(int(month), day, lang(r))
	if err != nil {
		h.writeError(w, r, err, "Failed to look up saint")
		return
	}

	WriteSuccess(w, saint)
}

// GetArchivedYear handles GET /api/v1/archive/years/{year}
func (h *Handlers) GetArchivedYear(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	archived, err := h.db.GetYear(r.Context(), year, lang(r))
	if err != nil {
		h.writeError(w, r, err, "Failed to read archive")
		return
	}

	WriteSuccess(w, archived)
}

// GetFeastHistory handles GET /api/v1/archive/feasts/{key}?from=&to=
func (h *Handlers) GetFeastHistory(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !slices.Contains(calendar.FeastKeys(), key) {
		WriteNotFound(w, "Unknown feast: "+key)
		return
	}

	from, err := intQuery(r, "from", calendar.MinYear)
	if err != nil {
		WriteBadRequest(w, "Invalid from year")
		return
	}
	to, err := intQuery(r, "to", calendar.MaxYear)
	if err != nil {
		WriteBadRequest(w, "Invalid to year")
		return
	}
	if err := errors.Join(service.ValidateYear(from), service.ValidateYear(to)); err != nil {
		h.writeError(w, r, err, "")
		return
	}
	if from > to {
		WriteBadRequest(w, "from must not be after to")
		return
	}

	l := lang(r)
	feasts, err := h.db.FeastHistory(r.Context(), key, l, from, to)
	if err != nil {
		h.writeError(w, r, err, "Failed to read archive")
		return
	}

	WriteSuccess(w, FeastHistory{Key: key, Lang: l, From: from, To: to, Feasts: feasts})
}

// GetArchivedDay handles GET /api/v1/archive/days/{month}/{day}
func (h *Handlers) GetArchivedDay(w http.ResponseWriter, r *http.Request) {
	month, day, ok := monthDayParams(w, r)
	if !ok {
		return
	}
	if day > calendar.DaysInMonth(2024, int(month)-1) {
		h.writeError(w, r, service.ErrInvalidDay, "")
		return
	}

	feasts, err := h.db.FeastsOnDay(r.Context(), int(month), day, lang(r))
	if err != nil {
		h.writeError(w, r, err, "Failed to read archive")
		return
	}

	WriteSuccess(w, feasts)
}

// ArchiveYear handles POST /api/v1/admin/archive/{year}
func (h *Handlers) ArchiveYear(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	runID := uuid.NewString()
	row, err := h.svc.ArchiveYear(r.Context(), h.db, year, lang(r), runID)
	if err != nil {
		h.writeError(w, r, err, "Failed to archive year")
		return
	}

	h.logger.InfoContext(r.Context(), "year archived via api",
		slog.Int("year", year),
		slog.String("run_id", runID),
	)
	WriteCreated(w, row)
}

// writeError maps service and storage errors to responses. Unexpected
// errors are logged and reported with message.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error, message string) {
	switch {
	case errors.Is(err, service.ErrYearOutOfRange):
		WriteError(w, http.StatusBadRequest, service.ErrYearOutOfRange.Error(), "YEAR_OUT_OF_RANGE")
	case errors.Is(err, service.ErrInvalidMonth), errors.Is(err, service.ErrInvalidDay):
		WriteBadRequest(w, err.Error())
	case database.IsNotFound(err):
		WriteNotFound(w, "Not archived")
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to write.
	default:
		h.logger.ErrorContext(r.Context(), message,
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		WriteInternalError(w, message)
	}
}

// lang returns the language chosen by LanguageMiddleware.
func lang(r *http.Request) string {
	return logger.Language(r.Context())
}

func yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "year")
	year, err := strconv.Atoi(raw)
	if err != nil {
		WriteBadRequest(w, "Invalid year: "+raw)
		return 0, false
	}
	return year, true
}

func monthParam(w http.ResponseWriter, r *http.Request) (time.Month, bool) {
	raw := chi.URLParam(r, "month")
	var m datetime.Month
	if err := m.Parse(raw); err != nil {
		WriteBadRequest(w, "Invalid month: "+raw)
		return 0, false
	}
	return time.Month(m), true
}

func monthDayParams(w http.ResponseWriter, r *http.Request) (time.Month, int, bool) {
	month, ok := monthParam(w, r)
	if !ok {
		return 0, 0, false
	}
	raw := chi.URLParam(r, "day")
	day, err := strconv.Atoi(raw)
	if err != nil || day < 1 {
		WriteBadRequest(w, "Invalid day: "+raw)
		return 0, 0, false
	}
	return month, day, true
}

func intQuery(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
