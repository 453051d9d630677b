package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/turno/internal/cli/formatter"
	"github.com/alexanderramin/turno/internal/domain"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start [WORKTYPE]",
		Short: "Start a work session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			if input == "" {
				settings, err := app.Settings.Get(ctx, app.UserID)
				if err != nil {
					return err
				}
				input = settings.DefaultWorkType
			}
			if input == "" && app.interactive() {
				selected, err := selectWorkTypeForm(ctx, app)
				if err != nil {
					return err
				}
				input = selected
			}
			if input == "" {
				return fmt.Errorf("work type is required (pass one or set a default with `turno settings`)")
			}

			workTypeID, err := resolveWorkTypeID(ctx, app, input)
			if err != nil {
				return err
			}
			s, err := app.Engine.Start(ctx, app.UserID, workTypeID)
			if err != nil {
				return err
			}

			fmt.Printf("Started session at %s", formatter.FormatClock(s.StartedAt, app.Loc()))
			if len(s.Snapshot) > 0 {
				fmt.Printf(" with %d checklist item(s)", len(s.Snapshot))
			}
			fmt.Println()
			return nil
		},
	}
}

func newPauseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Engine.Pause(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Printf("Paused after %s\n", formatter.FormatDuration(s.ElapsedAt(time.Now())))
			return nil
		},
	}
}

func newResumeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume the paused session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Engine.Resume(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Printf("Resumed (paused %s in total)\n", formatter.FormatDuration(s.PausedDuration(time.Now())))
			return nil
		},
	}
}

func newDoneCmd(app *App) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "done",
		Short: "Complete the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := app.Engine.Complete(ctx, app.UserID, notes)
			if err != nil {
				return err
			}

			fmt.Printf("Completed session, worked %s\n", formatter.FormatDuration(s.ElapsedAt(*s.EndedAt)))
			earnings, err := app.Engine.Earnings(ctx, s)
			if err != nil {
				return err
			}
			if earnings.Basis != domain.BasisNone {
				fmt.Printf("Earned %s (%s basis)\n", formatter.FormatMoney(earnings.Amount), earnings.Basis)
			}
			for _, w := range earnings.Warnings {
				fmt.Printf("warning: %s\n", w)
			}

			// Refresh the touched period caches so salary reads stay warm.
			for _, pt := range []domain.PeriodType{domain.PeriodDaily, domain.PeriodWeekly, domain.PeriodMonthly} {
				if _, err := app.Salaries.Rebuild(ctx, app.UserID, pt, s.StartedAt); err != nil {
					return fmt.Errorf("rebuilding %s salary: %w", pt, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Session notes")

	return cmd
}

func newCancelCmd(app *App) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel the current session without pay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Engine.Cancel(context.Background(), app.UserID, reason)
			if err != nil {
				return err
			}
			fmt.Printf("Cancelled session after %s\n", formatter.FormatDuration(s.ElapsedAt(*s.EndedAt)))
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Cancellation reason")

	return cmd
}

func newCheckCmd(app *App) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "check ITEM",
		Short: "Mark a checklist item completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setItemStatus(app, args[0], domain.ItemCompleted, notes)
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Progress notes")

	return cmd
}

func newSkipCmd(app *App) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "skip ITEM",
		Short: "Mark a checklist item skipped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setItemStatus(app, args[0], domain.ItemSkipped, notes)
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Progress notes")

	return cmd
}

func setItemStatus(app *App, input string, status domain.ItemStatus, notes string) error {
	ctx := context.Background()
	active, err := app.Engine.Active(ctx, app.UserID)
	if err != nil {
		return err
	}
	if active == nil {
		return fmt.Errorf("no open session")
	}

	ids := make([]string, len(active.Snapshot))
	names := make([]string, len(active.Snapshot))
	for i, item := range active.Snapshot {
		ids[i], names[i] = item.ID, item.Task
	}
	itemID, err := resolveID("item", input, ids, names)
	if err != nil {
		return err
	}

	s, err := app.Engine.SetItemStatus(ctx, app.UserID, itemID, status, notes)
	if err != nil {
		return err
	}
	fmt.Printf("Checklist %.0f%% complete\n", s.CompletionRate()*100)
	return nil
}

func newIssueCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Report or resolve session issues",
	}

	var issueType, severity string
	report := &cobra.Command{
		Use:   "report DESCRIPTION",
		Short: "Report an issue on the current session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Engine.ReportIssue(context.Background(), app.UserID, domain.WorkIssue{
				Type:        domain.IssueType(issueType),
				Severity:    domain.IssueSeverity(severity),
				Description: args[0],
			})
			if err != nil {
				return err
			}
			fmt.Printf("Reported issue (%d open)\n", countOpenIssues(s))
			return nil
		},
	}
	report.Flags().StringVar(&issueType, "type", string(domain.IssueOther), "Issue type (safety|equipment|delay|other)")
	report.Flags().StringVar(&severity, "severity", string(domain.SeverityLow), "Severity (low|medium|high|critical)")

	resolve := &cobra.Command{
		Use:   "resolve ID",
		Short: "Resolve an issue on the current session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			active, err := app.Engine.Active(ctx, app.UserID)
			if err != nil {
				return err
			}
			if active == nil {
				return fmt.Errorf("no open session")
			}

			ids := make([]string, len(active.Issues))
			names := make([]string, len(active.Issues))
			for i, issue := range active.Issues {
				ids[i], names[i] = issue.ID, issue.Description
			}
			issueID, err := resolveID("issue", args[0], ids, names)
			if err != nil {
				return err
			}

			if _, err := app.Engine.ResolveIssue(ctx, app.UserID, issueID); err != nil {
				return err
			}
			fmt.Println("Resolved issue")
			return nil
		},
	}

	cmd.AddCommand(report, resolve)
	return cmd
}

func countOpenIssues(s *domain.WorkSession) int {
	n := 0
	for _, issue := range s.Issues {
		if !issue.Resolved {
			n++
		}
	}
	return n
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := app.Engine.Active(ctx, app.UserID)
			if err != nil {
				return err
			}
			if s == nil {
				fmt.Println("No open session.")
				return nil
			}

			wt, err := app.WorkTypes.GetByID(ctx, s.WorkTypeID)
			if err != nil {
				return err
			}
			earnings, _, err := app.Engine.EarningsPreview(ctx, app.UserID)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatSessionStatus(s, wt, &earnings, time.Now(), app.Loc()))
			return nil
		},
	}
}

func newHistoryCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessions, err := app.Engine.Recent(ctx, app.UserID, days)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Println("No sessions found.")
				return nil
			}

			workTypes, err := app.WorkTypes.ListByUser(ctx, app.UserID, true)
			if err != nil {
				return err
			}
			byID := make(map[string]*domain.WorkType, len(workTypes))
			for _, wt := range workTypes {
				byID[wt.ID] = wt
			}

			fmt.Println(formatter.FormatSessionList(sessions, byID, app.Loc()))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "How many days back to list")

	return cmd
}
