package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/turno/internal/cli/formatter"
	"github.com/alexanderramin/turno/internal/domain"
	"github.com/spf13/cobra"
)

func newSalaryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "salary",
		Short: "Show and rebuild salary aggregates",
	}

	cmd.AddCommand(
		newSalaryShowCmd(app),
		newSalaryListCmd(app),
		newSalaryRebuildCmd(app),
	)

	return cmd
}

func parsePeriodType(s string) (domain.PeriodType, error) {
	if !domain.ValidPeriodTypes[s] {
		return "", fmt.Errorf("unknown period %q (daily|weekly|monthly)", s)
	}
	return domain.PeriodType(s), nil
}

func parseAnchor(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func newSalaryShowCmd(app *App) *cobra.Command {
	var period, date string
	var watch bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the salary for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			pt, err := parsePeriodType(period)
			if err != nil {
				return err
			}
			anchor, err := parseAnchor(date, app.Loc())
			if err != nil {
				return err
			}

			show := func() error {
				s, err := app.Salaries.Get(ctx, app.UserID, pt, anchor)
				if errors.Is(err, domain.ErrNotFound) {
					// Cold cache: rebuild on demand.
					s, err = app.Salaries.Rebuild(ctx, app.UserID, pt, anchor)
				}
				if err != nil {
					return err
				}
				fmt.Print(formatter.FormatSalary(s, app.Loc()))
				return nil
			}

			if !watch {
				return show()
			}
			if !app.interactive() {
				return fmt.Errorf("--watch needs an interactive terminal")
			}

			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				fmt.Print("\033[2J\033[H")
				if _, err := app.Salaries.Rebuild(ctx, app.UserID, pt, anchor); err != nil {
					return err
				}
				if err := show(); err != nil {
					return err
				}
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}

	cmd.Flags().StringVar(&period, "period", "monthly", "Period type (daily|weekly|monthly)")
	cmd.Flags().StringVar(&date, "date", "", "Any date inside the period (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Rebuild and redraw every 30s until interrupted")

	return cmd
}

func newSalaryListCmd(app *App) *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached salary periods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pt, err := parsePeriodType(period)
			if err != nil {
				return err
			}
			salaries, err := app.Salaries.ListByUser(context.Background(), app.UserID, pt)
			if err != nil {
				return err
			}
			if len(salaries) == 0 {
				fmt.Println("No salary records found.")
				return nil
			}
			fmt.Println(formatter.FormatSalaryList(salaries, app.Loc()))
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "monthly", "Period type (daily|weekly|monthly)")

	return cmd
}

func newSalaryRebuildCmd(app *App) *cobra.Command {
	var period, date string

	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Recompute a salary period from session records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pt, err := parsePeriodType(period)
			if err != nil {
				return err
			}
			anchor, err := parseAnchor(date, app.Loc())
			if err != nil {
				return err
			}
			s, err := app.Salaries.Rebuild(context.Background(), app.UserID, pt, anchor)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatSalary(s, app.Loc()))
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "monthly", "Period type (daily|weekly|monthly)")
	cmd.Flags().StringVar(&date, "date", "", "Any date inside the period (YYYY-MM-DD, default today)")

	return cmd
}
