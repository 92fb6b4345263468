package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zapponejosh/lunar-calendar/internal/database"
	"github.com/zapponejosh/lunar-calendar/internal/logger"
)

const sampleYAML = `
source: family
anniversaries:
  - uid: grandmother
    name: Grandmother's birthday
    month: 3
    leap: true
    day: 10
    origin_year: 1993
  - uid: laba
    name: Laba
    month: 12
    day: 8
    notes: congee
  - name: Spring Festival
    month: 1
    day: 1
`

func TestParseFile(t *testing.T) {
	f, err := parseFile([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("parseFile() failed: %v", err)
	}

	if f.Source != "family" {
		t.Errorf("Source = %q, want family", f.Source)
	}
	if len(f.Anniversaries) != 3 {
		t.Fatalf("got %d entries, want 3", len(f.Anniversaries))
	}

	a := f.Anniversaries[0].anniversary()
	if a.LunarMonth != -3 {
		t.Errorf("leap: true month = %d, want -3", a.LunarMonth)
	}
	if a.OriginYear == nil || *a.OriginYear != 1993 {
		t.Errorf("OriginYear = %v, want 1993", a.OriginYear)
	}
	if n := f.Anniversaries[1].anniversary().Notes; n == nil || *n != "congee" {
		t.Errorf("Notes = %v, want congee", n)
	}
}

func TestImportEntry_Anniversary(t *testing.T) {
	f, err := parseFile([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("parseFile() failed: %v", err)
	}

	origin := 1993
	want := []*database.Anniversary{
		{UID: "grandmother", Name: "Grandmother's birthday", LunarMonth: -3, LunarDay: 10, OriginYear: &origin},
		{UID: "laba", Name: "Laba", LunarMonth: 12, LunarDay: 8, Notes: ptr("congee")},
		{Name: "Spring Festival", LunarMonth: 1, LunarDay: 1},
	}

	var got []*database.Anniversary
	for _, e := range f.Anniversaries {
		got = append(got, e.anniversary())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("anniversary() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFile_Errors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "anniversaries: [", "parse YAML"},
		{"bad month", "anniversaries:\n  - {name: x, month: 13, day: 1}", "Invalid lunar month"},
		{"missing name", "anniversaries:\n  - {month: 1, day: 1}", "name is required"},
		{"repeated uid", "anniversaries:\n  - {uid: a, name: x, month: 1, day: 1}\n  - {uid: a, name: y, month: 2, day: 2}", "repeats uid"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := parseFile([]byte(c.yaml))
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Errorf("parseFile() error = %v, want containing %q", err, c.want)
			}
		})
	}
}

func TestImportAnniversaries_Idempotent(t *testing.T) {
	ctx := context.Background()
	log := logger.Discard()

	db, err := database.Open(database.DefaultConfig(filepath.Join(t.TempDir(), "lunar.db")), log)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if _, err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	f, err := parseFile([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("parseFile() failed: %v", err)
	}

	var first ImportStats
	if err := db.WithTx(ctx, func(tx *database.Tx) error {
		return importAnniversaries(ctx, tx, f.Anniversaries, log, &first)
	}); err != nil {
		t.Fatalf("first import failed: %v", err)
	}
	if first.Created != 3 || first.Updated != 0 || first.LeapMonth != 1 {
		t.Errorf("first import stats = %+v", first)
	}

	var second ImportStats
	if err := db.WithTx(ctx, func(tx *database.Tx) error {
		return importAnniversaries(ctx, tx, f.Anniversaries, log, &second)
	}); err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	// Entries with a uid update; the one without is inserted again.
	if second.Created != 1 || second.Updated != 2 {
		t.Errorf("second import stats = %+v", second)
	}

	stats, err := db.GetAnniversaryStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 4 {
		t.Errorf("Total = %d, want 4", stats.Total)
	}
}

func ptr(s string) *string { return &s }
