// Command import loads anniversaries from a YAML file into the SQLite database.
//
// Usage:
//
//	go run ./cmd/import -file data/anniversaries.example.yaml -db data/lunar.db
//
// This tool:
// 1. Parses the YAML file
// 2. Creates/opens the SQLite database
// 3. Runs migrations to ensure schema is current
// 4. Upserts every anniversary by uid in a single transaction
//
// The import is idempotent: entries with a uid are updated in place on a
// second run. Entries without a uid are always inserted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zapponejosh/lunar-calendar/internal/database"
	"github.com/zapponejosh/lunar-calendar/internal/logger"
)

func main() {
	// Parse command line flags
	filePath := flag.String("file", "data/anniversaries.example.yaml", "Path to anniversaries YAML file")
	dbPath := flag.String("db", "data/lunar.db", "Path to SQLite database")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	// Setup logger
	level := "info"
	if *verbose {
		level = "debug"
	}
	log := logger.New(level, "text", os.Stdout)

	// Run import
	if err := run(*filePath, *dbPath, log); err != nil {
		log.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("import complete")
}

// importFile is the YAML document layout.
type importFile struct {
	Source        string        `yaml:"source"`
	Anniversaries []importEntry `yaml:"anniversaries"`
}

// importEntry is one anniversary. A leap month is written either as a
// negative month or as a positive month with leap: true.
type importEntry struct {
	UID        string  `yaml:"uid"`
	Name       string  `yaml:"name"`
	Month      int     `yaml:"month"`
	Leap       bool    `yaml:"leap"`
	Day        int     `yaml:"day"`
	OriginYear *int    `yaml:"origin_year"`
	Notes      *string `yaml:"notes"`
}

func (e importEntry) anniversary() *database.Anniversary {
	month := e.Month
	if e.Leap && month > 0 {
		month = -month
	}
	return &database.Anniversary{
		UID:        e.UID,
		Name:       e.Name,
		LunarMonth: month,
		LunarDay:   e.Day,
		OriginYear: e.OriginYear,
		Notes:      e.Notes,
	}
}

// parseFile decodes and validates the YAML document.
func parseFile(data []byte) (*importFile, error) {
	var f importFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	seen := make(map[string]int)
	for i, e := range f.Anniversaries {
		if err := e.anniversary().Validate(); err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i+1, e.Name, err)
		}
		if e.UID == "" {
			continue
		}
		if prev, ok := seen[e.UID]; ok {
			return nil, fmt.Errorf("entry %d repeats uid %q from entry %d", i+1, e.UID, prev)
		}
		seen[e.UID] = i + 1
	}

	return &f, nil
}

func run(filePath, dbPath string, log *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	// =========================================================================
	// Step 1: Read and parse YAML
	// =========================================================================
	log.Info("reading YAML file", slog.String("path", filePath))

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read YAML file: %w", err)
	}

	file, err := parseFile(data)
	if err != nil {
		return err
	}

	log.Info("parsed YAML",
		slog.Int("anniversaries", len(file.Anniversaries)),
		slog.String("source", file.Source),
	)

	// =========================================================================
	// Step 2: Open database and run migrations
	// =========================================================================
	log.Info("opening database", slog.String("path", dbPath))

	db, err := database.Open(database.DefaultConfig(dbPath), log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 3: Import data in a transaction
	// =========================================================================
	log.Info("starting import")

	var stats ImportStats
	err = db.WithTx(ctx, func(tx *database.Tx) error {
		return importAnniversaries(ctx, tx, file.Anniversaries, log, &stats)
	})
	if err != nil {
		return fmt.Errorf("import data: %w", err)
	}

	// =========================================================================
	// Step 4: Verify import
	// =========================================================================
	dbStats, err := db.GetAnniversaryStats(ctx)
	if err != nil {
		return fmt.Errorf("count anniversaries: %w", err)
	}

	elapsed := time.Since(startTime)

	log.Info("import verified",
		slog.Int("total", dbStats.Total),
		slog.Int("leap_month", dbStats.LeapMonth),
		slog.Duration("elapsed", elapsed),
	)

	// Print summary
	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("Created:             %d\n", stats.Created)
	fmt.Printf("Updated:             %d\n", stats.Updated)
	fmt.Printf("Leap-month entries:  %d\n", stats.LeapMonth)
	fmt.Printf("Total in database:   %d\n", dbStats.Total)
	fmt.Printf("Time elapsed:        %v\n", elapsed.Round(time.Millisecond))

	return nil
}

// ImportStats tracks import statistics.
type ImportStats struct {
	Created   int
	Updated   int
	LeapMonth int
}

// importAnniversaries upserts every entry inside tx.
func importAnniversaries(ctx context.Context, tx *database.Tx, entries []importEntry, log *slog.Logger, stats *ImportStats) error {
	for i, e := range entries {
		a := e.anniversary()

		created, err := tx.UpsertAnniversary(ctx, a)
		if err != nil {
			return fmt.Errorf("import entry %d (%s): %w", i+1, e.Name, err)
		}

		if created {
			stats.Created++
		} else {
			stats.Updated++
		}
		if a.IsLeapMonth() {
			stats.LeapMonth++
		}

		log.Debug("imported anniversary",
			slog.String("uid", a.UID),
			slog.String("name", a.Name),
			slog.Bool("created", created),
		)
	}

	return nil
}
