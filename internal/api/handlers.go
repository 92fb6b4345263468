package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/lunar-calendar/internal/calendar"
	"github.com/zapponejosh/lunar-calendar/internal/config"
	"github.com/zapponejosh/lunar-calendar/internal/database"
	"github.com/zapponejosh/lunar-calendar/lunar"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db       *database.DB
	cal      *lunar.Calendar
	resolver *calendar.Resolver
	cfg      *config.Config
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, cal *lunar.Calendar, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		db:       db,
		cal:      cal,
		resolver: calendar.NewResolver(cal, db, logger),
		cfg:      cfg,
		logger:   logger,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := h.db.Health(ctx)
	if err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]any{
		"status":         "healthy",
		"schema_version": report.SchemaVersion,
		"anniversaries":  report.Anniversaries,
		"leap_month":     report.LeapMonth,
		"timezone":       h.cal.Location().String(),
	})
}

// =============================================================================
// Lunar conversion
// =============================================================================

// GetToday handles GET /api/v1/lunar/today
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	h.writeSummary(w, h.cal.Now())
}

// GetDate handles GET /api/v1/lunar/date/{date}
func (h *Handlers) GetDate(w http.ResponseWriter, r *http.Request) {
	d, ok := h.parseDate(w, chi.URLParam(r, "date"))
	if !ok {
		return
	}
	h.writeSummary(w, d)
}

// GetFromLunar handles GET /api/v1/lunar/solar?year=&month=&day=&hour=&minute=&second=
//
// Missing fields default to month 1, day 1 and midnight. A negative month
// selects the leap month.
func (h *Handlers) GetFromLunar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	d, err := h.cal.Lunar(
		q.Get("year"),
		q.Get("month"),
		q.Get("day"),
		q.Get("hour"),
		q.Get("minute"),
		q.Get("second"),
	)
	if err != nil {
		h.writeError(w, r, "convert lunar fields", err)
		return
	}
	h.writeSummary(w, d)
}

// GetAdd handles GET /api/v1/lunar/add?date=&value=&unit=
//
// Units with the lunar- prefix step the lunar calendar; other units are
// ordinary time arithmetic.
func (h *Handlers) GetAdd(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	d, ok := h.parseDate(w, q.Get("date"))
	if !ok {
		return
	}

	value, err := strconv.Atoi(q.Get("value"))
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid value: %q. Use an integer", q.Get("value")))
		return
	}

	unit := q.Get("unit")
	if unit == "" {
		WriteBadRequest(w, "unit parameter is required")
		return
	}

	result, err := d.Add(value, unit)
	if err != nil {
		h.writeError(w, r, "add to date", err)
		return
	}
	h.writeSummary(w, result)
}

// GetFormat handles GET /api/v1/lunar/format?date=&layout=
func (h *Handlers) GetFormat(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	d, ok := h.parseDate(w, q.Get("date"))
	if !ok {
		return
	}

	layout := q.Get("layout")
	WriteSuccess(w, map[string]string{
		"date":      d.Time().Format("2006-01-02T15:04:05"),
		"layout":    layout,
		"formatted": d.Format(layout),
	})
}

// GetYearMonths handles GET /api/v1/lunar/months/{year}
func (h *Handlers) GetYearMonths(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, "Invalid year")
		return
	}

	months, err := h.cal.YearMonths(year)
	if err != nil {
		h.writeError(w, r, "list lunar months", err)
		return
	}

	WriteSuccess(w, map[string]any{
		"year":   year,
		"months": months,
	})
}

// =============================================================================
// Helpers
// =============================================================================

// parseDate parses a request date, writing a 400 on failure.
// An empty string means now.
func (h *Handlers) parseDate(w http.ResponseWriter, s string) (lunar.Date, bool) {
	if s == "" {
		return h.cal.Now(), true
	}

	t, err := calendar.ParseDateString(s, h.cal.Location())
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS", s))
		return lunar.Date{}, false
	}
	return h.cal.New(t), true
}

func (h *Handlers) writeSummary(w http.ResponseWriter, d lunar.Date) {
	summary, err := d.Summary()
	if err != nil {
		if writeDomainError(w, err) {
			return
		}
		h.logger.Error("failed to summarize date", slog.Any("error", err))
		WriteInternalError(w, "Failed to convert date")
		return
	}
	WriteSuccess(w, summary)
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if writeDomainError(w, err) {
		return
	}
	h.logger.Error("request failed",
		slog.String("op", op),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	WriteInternalError(w, "Internal server error")
}

// decodeJSON decodes JSON request body.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
