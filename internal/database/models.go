package database

import (
	"errors"
	"strings"
	"time"

	"github.com/zapponejosh/lunar-calendar/lunar"
)

// Anniversary is a named lunar date that recurs every lunar year,
// such as a birthday kept by the lunar calendar or a festival.
type Anniversary struct {
	ID         int64     `json:"id"`
	UID        string    `json:"uid"`                   // stable external identifier
	Name       string    `json:"name"`                  // e.g. "Grandmother's birthday"
	LunarMonth int       `json:"lunar_month"`           // negative for a leap month
	LunarDay   int       `json:"lunar_day"`             // 1..30
	OriginYear *int      `json:"origin_year,omitempty"` // lunar year of the first occurrence
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ErrNameRequired is returned by Validate for an empty name.
var ErrNameRequired = errors.New("anniversary name is required")

// Validate checks the name and the lunar month/day ranges.
func (a *Anniversary) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrNameRequired
	}

	year := 2000
	if a.OriginYear != nil {
		year = *a.OriginYear
	}
	return lunar.Validate(year, a.LunarMonth, a.LunarDay, 0, 0, 0)
}

// IsLeapMonth reports whether the anniversary falls in a leap month.
func (a *Anniversary) IsLeapMonth() bool {
	return a.LunarMonth < 0
}

// ListFilter narrows ListAnniversaries.
type ListFilter struct {
	Month  int // regular month number 1..12, matching leap and regular; 0 for all
	Limit  int // 0 for no limit
	Offset int
}

// AnniversaryStats summarizes the anniversary table.
type AnniversaryStats struct {
	Total     int `json:"total"`
	LeapMonth int `json:"leap_month"` // anniversaries kept in a leap month
}
