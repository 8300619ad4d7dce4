package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/thallyson03/ceapdesk/internal/worker"
)

var holidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "Manage the holiday calendar",
}

var seedYears []int

var holidaysSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the national default holidays (current and next year unless --year is given)",
	RunE:  runHolidaysSeed,
}

var holidaysCheckCmd = &cobra.Command{
	Use:   "check YYYY-MM-DD",
	Short: "Report whether a date is a business day",
	Args:  cobra.ExactArgs(1),
	RunE:  runHolidaysCheck,
}

func init() {
	holidaysSeedCmd.Flags().IntSliceVar(&seedYears, "year", nil, "year to seed (repeatable)")
	holidaysCmd.AddCommand(holidaysSeedCmd)
	holidaysCmd.AddCommand(holidaysCheckCmd)
}

func runHolidaysSeed(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	years := seedYears
	if len(years) == 0 {
		years = worker.SeedYears(time.Now().In(env.engine.Location()))
	}
	svc := env.holidayService()
	out := cmd.OutOrStdout()
	for _, year := range years {
		result, err := svc.AddDefaultHolidays(cmd.Context(), year)
		if err != nil {
			return fmt.Errorf("seed %d: %w", year, err)
		}
		fmt.Fprintf(out, "%d: %d fixed, %d movable inserted\n", year, len(result.Fixed), len(result.Movable))
		for _, h := range result.All() {
			fmt.Fprintf(out, "  %s  %s\n", h.Date.Format(time.DateOnly), h.Name)
		}
	}
	return nil
}

func runHolidaysCheck(cmd *cobra.Command, args []string) error {
	date, err := time.Parse(time.DateOnly, args[0])
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", args[0])
	}
	env, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	check, err := env.holidayService().CheckBusinessDay(cmd.Context(), date)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s business_day=%t weekend=%t holiday=%t\n",
		check.Date.Format(time.DateOnly), check.IsBusinessDay, check.IsWeekend, check.IsHoliday)
	return nil
}
