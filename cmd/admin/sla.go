package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/thallyson03/ceapdesk/internal/service"
)

var slaCmd = &cobra.Command{
	Use:   "sla",
	Short: "Business-day deadline calculations",
}

var (
	dueStart string
	dueDays  int
)

var slaDueDateCmd = &cobra.Command{
	Use:   "due-date",
	Short: "Compute the due date N business days from a start date",
	RunE:  runSLADueDate,
}

func init() {
	slaDueDateCmd.Flags().StringVar(&dueStart, "start", "", "start date YYYY-MM-DD (default today)")
	slaDueDateCmd.Flags().IntVar(&dueDays, "days", service.DefaultBusinessDays, "business days")
	slaCmd.AddCommand(slaDueDateCmd)
}

func runSLADueDate(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	start := env.engine.Date(time.Now())
	if dueStart != "" {
		parsed, err := time.Parse(time.DateOnly, dueStart)
		if err != nil {
			return fmt.Errorf("invalid --start %q: expected YYYY-MM-DD", dueStart)
		}
		start = env.engine.Midnight(parsed)
	}

	svc := service.NewSLAService(env.engine, env.repos.Policies, env.cfg.SLA.DefaultBusinessDays, env.logger)
	due, err := svc.DueDate(cmd.Context(), start, dueDays)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "start=%s days=%d due=%s\n",
		start.Format(time.DateOnly), dueDays, due.Format(time.DateOnly))
	return nil
}
