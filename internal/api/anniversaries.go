package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/lunar-calendar/internal/calendar"
	"github.com/zapponejosh/lunar-calendar/internal/database"
)

const (
	defaultOccurrences  = 5
	defaultUpcomingDays = 30
	maxUpcomingDays     = 366
)

// ListAnniversaries handles GET /api/v1/anniversaries?month=&limit=&offset=
func (h *Handlers) ListAnniversaries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := database.ListFilter{Limit: 50}
	if s := q.Get("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 1 || m > 12 {
			WriteBadRequest(w, "month must be between 1 and 12")
			return
		}
		filter.Month = m
	}
	if s := q.Get("limit"); s != "" {
		if l, err := strconv.Atoi(s); err == nil && l > 0 && l <= 100 {
			filter.Limit = l
		}
	}
	if s := q.Get("offset"); s != "" {
		if o, err := strconv.Atoi(s); err == nil && o >= 0 {
			filter.Offset = o
		}
	}

	list, err := h.db.ListAnniversaries(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, "list anniversaries", err)
		return
	}
	if list == nil {
		list = []database.Anniversary{}
	}

	WriteSuccess(w, map[string]any{
		"anniversaries": list,
		"limit":         filter.Limit,
		"offset":        filter.Offset,
	})
}

// CreateAnniversary handles POST /api/v1/anniversaries
func (h *Handlers) CreateAnniversary(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UID        string  `json:"uid,omitempty"`
		Name       string  `json:"name"`
		LunarMonth int     `json:"lunar_month"`
		LunarDay   int     `json:"lunar_day"`
		OriginYear *int    `json:"origin_year,omitempty"`
		Notes      *string `json:"notes,omitempty"`
	}

	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	a := &database.Anniversary{
		UID:        req.UID,
		Name:       req.Name,
		LunarMonth: req.LunarMonth,
		LunarDay:   req.LunarDay,
		OriginYear: req.OriginYear,
		Notes:      req.Notes,
	}

	if err := h.db.CreateAnniversary(r.Context(), a); err != nil {
		h.writeError(w, r, "create anniversary", err)
		return
	}

	WriteCreated(w, a)
}

// GetAnniversary handles GET /api/v1/anniversaries/{id}
func (h *Handlers) GetAnniversary(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	a, err := h.db.GetAnniversary(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "get anniversary", err)
		return
	}

	WriteSuccess(w, a)
}

// DeleteAnniversary handles DELETE /api/v1/anniversaries/{id}
func (h *Handlers) DeleteAnniversary(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.db.DeleteAnniversary(r.Context(), id); err != nil {
		h.writeError(w, r, "delete anniversary", err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Anniversary deleted"})
}

// GetOccurrences handles GET /api/v1/anniversaries/{id}/occurrences?from=&count=
func (h *Handlers) GetOccurrences(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	from, ok := h.parseDate(w, q.Get("from"))
	if !ok {
		return
	}

	count := defaultOccurrences
	if s := q.Get("count"); s != "" {
		c, err := strconv.Atoi(s)
		if err != nil || c < 1 {
			WriteBadRequest(w, "count must be a positive integer")
			return
		}
		count = c
	}

	a, occ, err := h.resolver.OccurrencesByID(r.Context(), id, from, count)
	if err != nil {
		h.writeError(w, r, "resolve occurrences", err)
		return
	}

	WriteSuccess(w, map[string]any{
		"anniversary": a,
		"occurrences": occ,
	})
}

// GetUpcoming handles GET /api/v1/anniversaries/upcoming?from=&days=
func (h *Handlers) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, ok := h.parseDate(w, q.Get("from"))
	if !ok {
		return
	}

	days := defaultUpcomingDays
	if s := q.Get("days"); s != "" {
		d, err := strconv.Atoi(s)
		if err != nil || d < 1 || d > maxUpcomingDays {
			WriteBadRequest(w, fmt.Sprintf("days must be between 1 and %d", maxUpcomingDays))
			return
		}
		days = d
	}

	occ, err := h.resolver.Upcoming(r.Context(), from, days)
	if err != nil {
		h.writeError(w, r, "resolve upcoming anniversaries", err)
		return
	}
	if occ == nil {
		occ = []calendar.Occurrence{}
	}

	WriteSuccess(w, map[string]any{
		"from":        from.Time().Format("2006-01-02"),
		"days":        days,
		"occurrences": occ,
	})
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		WriteBadRequest(w, "Invalid anniversary ID")
		return 0, false
	}
	return id, true
}
