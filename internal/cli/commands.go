package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/lunar-calendar/lunar"
)

func convertCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "convert [DATE]",
		Short: "Show the lunar date of a solar date (default now)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := opts.calendar(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			var in string
			if len(args) == 1 {
				in = args[0]
			}
			d, err := parseDate(cal, in)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), opts, d)
		},
	}
}

func solarCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solar YEAR [MONTH [DAY [HOUR [MINUTE [SECOND]]]]]",
		Short: "Convert a lunar date to solar; a negative MONTH is a leap month",
		Args:  cobra.RangeArgs(1, 6),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := opts.calendar(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			fields := make([]any, len(args))
			for i, a := range args {
				fields[i] = a
			}
			d, err := cal.Lunar(fields...)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), opts, d)
		},
	}

	// Stop flag parsing after YEAR so a leap MONTH like -3 is positional.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func addCmd(opts *options) *cobra.Command {
	var subtract bool

	cmd := &cobra.Command{
		Use:   "add DATE VALUE UNIT",
		Short: "Add to a date; lunar-dual-hour, lunar-day, lunar-month and lunar-year step the lunar calendar",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := opts.calendar(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			d, err := parseDate(cal, args[0])
			if err != nil {
				return err
			}
			value, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[1], err)
			}

			if subtract {
				d, err = d.Subtract(value, args[2])
			} else {
				d, err = d.Add(value, args[2])
			}
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), opts, d)
		},
	}

	cmd.Flags().BoolVar(&subtract, "subtract", false, "subtract instead of add")
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func formatCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "format DATE LAYOUT",
		Short: "Format a date; LY LZ LM LD LH LB LK are lunar tokens, [..] is literal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := opts.calendar(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			d, err := parseDate(cal, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.Format(args[1]))
			return nil
		},
	}
}

func monthsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "months YEAR",
		Short: "List the months of a lunar year with their first solar day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := opts.calendar(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q: %w", args[0], err)
			}
			months, err := cal.YearMonths(year)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if opts.asJSON {
				return printJSON(w, months)
			}
			for _, m := range months {
				fmt.Fprintf(w, "%-4s %3d  %d days  %s\n", m.Name, m.Month, m.DayCount, m.FirstDay.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func unitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List the lunar arithmetic units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, u := range lunar.Units() {
				fmt.Fprintln(cmd.OutOrStdout(), lunar.LunarPrefix+string(u))
			}
			return nil
		},
	}
}
