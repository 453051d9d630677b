package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/turno/internal/domain"
	"github.com/alexanderramin/turno/internal/payroll"
	"github.com/jedib0t/go-pretty/v6/table"
)

// ProgressBar renders a fixed-width completion bar like "████░░░░░░ 40%".
func ProgressBar(rate float64, width int) string {
	if width <= 0 {
		width = 10
	}
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	filled := int(rate*float64(width) + 0.5)
	bar := StyleGreen.Render(strings.Repeat("█", filled)) +
		StyleDim.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %3.0f%%", bar, rate*100)
}

// FormatSessionStatus renders the full status view for one session: header,
// timing, checklist progress, issues, and an optional earnings preview.
func FormatSessionStatus(s *domain.WorkSession, wt *domain.WorkType, earnings *payroll.Earnings, now time.Time, loc *time.Location) string {
	var b strings.Builder

	b.WriteString(Header(wt.Name) + "\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", SessionBadge(s.Status), Dim("since "+FormatClock(s.StartedAt, loc))))
	b.WriteString(fmt.Sprintf("%s %s", Bold("Elapsed:"), FormatDuration(s.ElapsedAt(now))))
	if paused := s.PausedDuration(now); paused > 0 {
		b.WriteString(Dim(fmt.Sprintf("  (paused %s)", FormatDuration(paused))))
	}
	b.WriteString("\n")

	if len(s.Snapshot) > 0 {
		b.WriteString("\n" + Bold("Checklist") + "  " + ProgressBar(s.CompletionRate(), 10) + "\n")
		for _, item := range s.Snapshot {
			status := domain.ItemPending
			notes := ""
			for _, p := range s.Progress {
				if p.ItemID == item.ID {
					status = p.Status
					notes = p.Notes
					break
				}
			}
			line := fmt.Sprintf("  %s %s", ItemMark(status), item.Task)
			if item.Mandatory {
				line += " " + StyleRed.Render("*")
			}
			if notes != "" {
				line += "  " + Dim(notes)
			}
			b.WriteString(line + "\n")
		}
		if outstanding := s.MandatoryOutstanding(); outstanding > 0 {
			b.WriteString(Dim(fmt.Sprintf("  %d mandatory item(s) outstanding\n", outstanding)))
		}
	}

	if len(s.Issues) > 0 {
		b.WriteString("\n" + Bold("Issues") + "\n")
		for _, issue := range s.Issues {
			mark := StyleYellow.Render("!")
			if issue.Resolved {
				mark = StyleGreen.Render("✓")
			}
			b.WriteString(fmt.Sprintf("  %s %s %s %s\n", mark, SeverityTag(issue.Severity), Dim(string(issue.Type)), issue.Description))
		}
	}

	if earnings != nil {
		b.WriteString(fmt.Sprintf("\n%s %s", Bold("Earned so far:"), FormatMoney(earnings.Amount)))
		if earnings.Basis != domain.BasisNone {
			b.WriteString(Dim(fmt.Sprintf("  (%s basis, %.1fh)", earnings.Basis, earnings.Hours)))
		}
		b.WriteString("\n")
		for _, w := range earnings.Warnings {
			b.WriteString(StyleYellow.Render("  warning: "+string(w)) + "\n")
		}
	}

	return b.String()
}

// FormatSessionList renders recent sessions as a table.
func FormatSessionList(sessions []*domain.WorkSession, workTypes map[string]*domain.WorkType, loc *time.Location) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Date", "Work Type", "Status", "Duration", "Checklist"})
	for _, s := range sessions {
		name := s.WorkTypeID
		if wt, ok := workTypes[s.WorkTypeID]; ok {
			name = wt.Name
		}
		end := time.Now()
		if s.EndedAt != nil {
			end = *s.EndedAt
		}
		checklist := "—"
		if len(s.Snapshot) > 0 {
			checklist = fmt.Sprintf("%.0f%%", s.CompletionRate()*100)
		}
		tw.AppendRow(table.Row{
			FormatDate(s.StartedAt, loc),
			name,
			string(s.Status),
			FormatDuration(s.ElapsedAt(end)),
			checklist,
		})
	}
	return tw.Render()
}
