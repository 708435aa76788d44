package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/osse101/FactorySim_Go/internal/bootstrap"
	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/factory"
	"github.com/osse101/FactorySim_Go/internal/mod"
	"github.com/osse101/FactorySim_Go/internal/report"
	"github.com/osse101/FactorySim_Go/internal/session"
)

const defaultShiftHours = 8

func newRunCommand() *cobra.Command {
	var (
		days       int
		shiftHours int
		strategy   string
		seed       int64
		noOperator bool
		reportPath string
		saveSlot   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate a number of days",
		Long: `Run the facility for --days days. Each day advances --shift-hours hours,
one hour at a time with the operator consulted on its cadence, and then rolls
over to the next morning and pays the roster.

Payroll shortfalls are reported and the run continues.

Examples:
  factorysim run --days 7
  factorysim run --days 30 --strategy conservative --seed 1 --report run.xlsx
  factorysim run --days 5 --no-operator --save day5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be at least 1, got %d", days)
			}
			if shiftHours < 0 {
				return fmt.Errorf("--shift-hours must not be negative, got %d", shiftHours)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("strategy") {
				cfg.AIStrategy = strategy
			}
			if cmd.Flags().Changed("seed") {
				cfg.AISeed = seed
			}

			ctx := context.Background()
			fac, err := bootstrap.BuildFacility(ctx, cfg, mod.NewLoader(), nil)
			if err != nil {
				return err
			}
			op, err := bootstrap.BuildOperator(cfg, fac, nil)
			if err != nil {
				return err
			}

			var opts []session.Option
			if saveSlot != "" {
				st, err := openStore(ctx, cfg)
				if err != nil {
					return err
				}
				defer st.Close()
				opts = append(opts, session.WithStore(st, ""))
			}

			sess := session.New(fac, op, opts...)
			if !noOperator {
				sess.StartOperator(ctx)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s, strategy %s, %d days of %d hours\n\n",
				fac.Name(), sess.Operator().Strategy, days, shiftHours)

			rec := report.NewRecorder()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DAY\tBALANCE\tPROFIT\tPAYROLL\tPRODUCED\tCRAFTED\tOPEN\tOVERDUE\tNOTE")

			for i := 0; i < days; i++ {
				tr, err := sess.AdvanceTime(ctx, shiftHours)
				if err != nil {
					return err
				}
				day, err := sess.NextDay(ctx)
				if err != nil && !errors.Is(err, domain.ErrInsufficientFunds) {
					return err
				}

				rec.Record(day, []factory.TimeReport{tr}, statusOf(sess))
				row := rec.Days()[i]
				note := ""
				if row.Shortfall {
					note = "payroll shortfall"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
					row.Day, domain.Money(row.Balance), domain.Money(row.Profit), domain.Money(row.Payroll),
					row.Produced, row.Crafted, row.Open, row.Overdue, note)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			final := statusOf(sess)
			fmt.Fprintf(out, "\n%s\n", sess.Analyze().Text())

			if reportPath != "" {
				if err := rec.WriteFile(reportPath, final); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				fmt.Fprintf(out, "Report written to %s\n", reportPath)
			}
			if saveSlot != "" {
				if err := sess.Save(ctx, saveSlot); err != nil {
					return err
				}
				fmt.Fprintf(out, "Saved to slot %s\n", saveSlot)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of days to simulate")
	cmd.Flags().IntVar(&shiftHours, "shift-hours", defaultShiftHours, "Hours advanced each day before the rollover")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Operator strategy: balanced, aggressive or conservative (overrides AI_STRATEGY)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for operator order creation (overrides AI_SEED)")
	cmd.Flags().BoolVar(&noOperator, "no-operator", false, "Leave the operator stopped")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a day-by-day xlsx report to this file")
	cmd.Flags().StringVar(&saveSlot, "save", "", "Save the final state into this slot of the configured store")

	return cmd
}

func statusOf(sess *session.Session) factory.Status {
	var s factory.Status
	_ = sess.Do(func(f *factory.Facility) error {
		s = f.Status()
		return nil
	})
	return s
}
