// Package calendar resolves stored lunar anniversaries to solar dates.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/zapponejosh/lunar-calendar/internal/database"
	"github.com/zapponejosh/lunar-calendar/lunar"
)

// MaxOccurrences caps a single Occurrences request.
const MaxOccurrences = 100

// Occurrence is one yearly instance of an anniversary.
type Occurrence struct {
	AnniversaryID int64  `json:"anniversary_id"`
	Name          string `json:"name"`
	LunarYear     int    `json:"lunar_year"`
	LunarMonth    int    `json:"lunar_month"` // negative for a leap month
	LunarDay      int    `json:"lunar_day"`
	Label         string `json:"label"` // e.g. 闰三月初十
	Date          string `json:"date"`  // solar YYYY-MM-DD
	Adjusted      bool   `json:"adjusted"`
	Years         *int   `json:"years,omitempty"` // lunar years since the origin year

	solar time.Time
}

// Solar returns the solar start of the day the occurrence falls on.
func (o Occurrence) Solar() time.Time { return o.solar }

// Store is the subset of database queries the resolver needs.
// Both *database.DB and test fakes satisfy it.
type Store interface {
	GetAnniversary(ctx context.Context, id int64) (*database.Anniversary, error)
	ListAnniversaries(ctx context.Context, filter database.ListFilter) ([]database.Anniversary, error)
}

// Resolver maps anniversaries onto the solar calendar.
type Resolver struct {
	cal    *lunar.Calendar
	store  Store
	logger *slog.Logger
}

// NewResolver creates a new resolver.
func NewResolver(cal *lunar.Calendar, store Store, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{cal: cal, store: store, logger: logger}
}

// Calendar returns the lunar calendar used for conversions.
func (r *Resolver) Calendar() *lunar.Calendar { return r.cal }

// Occurrences returns up to count occurrences of a falling on or after the
// day of from. A leap-month anniversary is kept on the regular month in
// years without that leap month, and day 30 moves to day 29 in short
// months; both cases set Adjusted.
func (r *Resolver) Occurrences(ctx context.Context, a *database.Anniversary, from lunar.Date, count int) ([]Occurrence, error) {
	if count <= 0 {
		return nil, nil
	}
	count = min(count, MaxOccurrences)

	start := from.StartOfDay()
	year, err := from.ToLunarYear()
	if err != nil {
		return nil, fmt.Errorf("resolve start year: %w", err)
	}

	// The anniversary may already have passed in the start year.
	out := make([]Occurrence, 0, count)
	for y := year.Number(); len(out) < count && y <= lunar.MaxYear; y++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		occ, err := r.resolve(a, y)
		if err != nil {
			if lunar.IsOutOfRange(err) {
				break
			}
			return out, err
		}
		if occ.solar.Before(start.Time()) {
			continue
		}
		out = append(out, occ)
	}

	return out, nil
}

// Next returns the first occurrence of a on or after from.
func (r *Resolver) Next(ctx context.Context, a *database.Anniversary, from lunar.Date) (*Occurrence, error) {
	occ, err := r.Occurrences(ctx, a, from, 1)
	if err != nil {
		return nil, err
	}
	if len(occ) == 0 {
		return nil, database.ErrNotFound
	}
	return &occ[0], nil
}

// OccurrencesByID loads the anniversary and resolves its occurrences.
func (r *Resolver) OccurrencesByID(ctx context.Context, id int64, from lunar.Date, count int) (*database.Anniversary, []Occurrence, error) {
	a, err := r.store.GetAnniversary(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	occ, err := r.Occurrences(ctx, a, from, count)
	if err != nil {
		return nil, nil, err
	}
	return a, occ, nil
}

// Upcoming lists every stored anniversary that falls within days days of
// from, soonest first.
func (r *Resolver) Upcoming(ctx context.Context, from lunar.Date, days int) ([]Occurrence, error) {
	list, err := r.store.ListAnniversaries(ctx, database.ListFilter{})
	if err != nil {
		return nil, err
	}

	end := from.StartOfDay().Time().AddDate(0, 0, days)
	var out []Occurrence
	for i := range list {
		next, err := r.Next(ctx, &list[i], from)
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if next.solar.Before(end) {
			out = append(out, *next)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].solar.Before(out[j].solar)
	})

	r.logger.Debug("resolved upcoming anniversaries",
		slog.Int("candidates", len(list)),
		slog.Int("matched", len(out)),
		slog.Int("days", days),
	)

	return out, nil
}

// resolve places a in lunar year y.
func (r *Resolver) resolve(a *database.Anniversary, y int) (Occurrence, error) {
	f, err := r.cal.Normalize(y, a.LunarMonth, a.LunarDay)
	if err != nil {
		return Occurrence{}, err
	}

	d, err := r.cal.FromLunar(f.Year, f.Month, f.Day, 0, 0, 0)
	if err != nil {
		return Occurrence{}, err
	}
	day, err := d.ToLunarDay()
	if err != nil {
		return Occurrence{}, err
	}

	occ := Occurrence{
		AnniversaryID: a.ID,
		Name:          a.Name,
		LunarYear:     f.Year,
		LunarMonth:    f.Month,
		LunarDay:      f.Day,
		Label:         day.Month().Name() + day.Name(),
		Date:          FormatDate(d.Time()),
		Adjusted:      f.Month != a.LunarMonth || f.Day != a.LunarDay,
		solar:         d.Time(),
	}
	if a.OriginYear != nil {
		n := y - *a.OriginYear
		occ.Years = &n
	}

	return occ, nil
}

// ParseDateString parses YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS in loc.
func ParseDateString(dateStr string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, dateStr, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS", dateStr)
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(date time.Time) string {
	return date.Format("2006-01-02")
}
