package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/turno/internal/domain"
	"github.com/jedib0t/go-pretty/v6/table"
)

// FormatSalary renders one period aggregate as a detail view.
func FormatSalary(s *domain.Salary, loc *time.Location) string {
	var b strings.Builder
	title := fmt.Sprintf("%s salary %s", s.PeriodType, FormatDate(s.PeriodStart, loc))
	b.WriteString(Header(title) + "\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Bold("Total:"), FormatMoney(s.TotalAmount)))
	b.WriteString(Dim(fmt.Sprintf("  base %s", FormatMoney(s.BasePay))))
	if s.OvertimePay != 0 {
		b.WriteString(Dim(fmt.Sprintf("  overtime %s", FormatMoney(s.OvertimePay))))
	}
	if s.Deductions != 0 {
		b.WriteString(Dim(fmt.Sprintf("  deductions -%s", FormatMoney(s.Deductions))))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %d days, %.1f hours\n", Bold("Worked:"), s.WorkDays, s.TotalHours))
	return b.String()
}

// FormatSalaryList renders period aggregates as a table, newest first.
func FormatSalaryList(salaries []*domain.Salary, loc *time.Location) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Period", "Start", "Days", "Hours", "Base", "Total"})
	for _, s := range salaries {
		tw.AppendRow(table.Row{
			string(s.PeriodType),
			FormatDate(s.PeriodStart, loc),
			s.WorkDays,
			fmt.Sprintf("%.1f", s.TotalHours),
			FormatMoney(s.BasePay),
			FormatMoney(s.TotalAmount),
		})
	}
	return tw.Render()
}
