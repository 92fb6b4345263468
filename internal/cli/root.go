// Package cli implements the lunarcal command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/lunar-calendar/internal/calendar"
	"github.com/zapponejosh/lunar-calendar/internal/logger"
	"github.com/zapponejosh/lunar-calendar/lunar"
)

// Execute runs the lunarcal command line and exits with status 1 on error.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// options are the persistent flags shared by every subcommand.
type options struct {
	traditional bool
	timezone    string
	asJSON      bool
	debug       bool
}

func (o *options) calendar(stderr io.Writer) (*lunar.Calendar, error) {
	loc := time.Local
	if o.timezone != "" && o.timezone != "Local" {
		var err error
		loc, err = time.LoadLocation(o.timezone)
		if err != nil {
			return nil, fmt.Errorf("unknown time zone %q: %w", o.timezone, err)
		}
	}

	level := "warn"
	if o.debug {
		level = "debug"
	}

	return lunar.New(
		lunar.WithTraditional(o.traditional),
		lunar.WithLocation(loc),
		lunar.WithLogger(logger.New(level, "text", stderr)),
	), nil
}

// parseDate reads YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS; empty means now.
func parseDate(cal *lunar.Calendar, s string) (lunar.Date, error) {
	if s == "" || s == "now" {
		return cal.Now(), nil
	}
	t, err := calendar.ParseDateString(s, cal.Location())
	if err != nil {
		return lunar.Date{}, err
	}
	return cal.New(t), nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "lunarcal",
		Short:        "Convert and step dates on the Chinese lunar calendar",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&opts.traditional, "traditional", true, "use 冬月/腊月 for the last two months")
	cmd.PersistentFlags().StringVar(&opts.timezone, "tz", "Local", "IANA time zone for input and output")
	cmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print JSON instead of text")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging to stderr")

	cmd.AddCommand(
		convertCmd(opts),
		solarCmd(opts),
		addCmd(opts),
		formatCmd(opts),
		monthsCmd(opts),
		unitsCmd(),
	)
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printSummary writes d as text or JSON.
func printSummary(w io.Writer, opts *options, d lunar.Date) error {
	s, err := d.Summary()
	if err != nil {
		return err
	}
	if opts.asJSON {
		return printJSON(w, s)
	}

	fmt.Fprintf(w, "Solar:   %s %s\n", d.Time().Format("2006-01-02 15:04:05"), s.Weekday)
	fmt.Fprintf(w, "Lunar:   %s\n", s.Text)
	fmt.Fprintf(w, "Year:    %d %s年 (%s)\n", s.Year, s.YearGanZhi, s.Zodiac)
	fmt.Fprintf(w, "Month:   %s, %d days, %s\n", s.MonthName, s.MonthDays, s.Season)
	fmt.Fprintf(w, "Hour:    %s (%s) %s\n", s.Hour, s.HourGanZhi, s.Quarter)
	return nil
}
