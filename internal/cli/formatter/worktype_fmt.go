package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/turno/internal/domain"
	"github.com/jedib0t/go-pretty/v6/table"
)

// FormatCategoryList renders categories as a table.
func FormatCategoryList(categories []*domain.WorkCategory) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"ID", "Name", "Active"})
	for _, c := range categories {
		tw.AppendRow(table.Row{shortID(c.ID), c.Name, yesNo(c.Active)})
	}
	return tw.Render()
}

// FormatWorkTypeList renders work types as a table.
func FormatWorkTypeList(workTypes []*domain.WorkType, categories map[string]*domain.WorkCategory) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"ID", "Name", "Category", "Hourly", "Daily", "Active"})
	for _, w := range workTypes {
		category := "—"
		if w.CategoryID != nil {
			if c, ok := categories[*w.CategoryID]; ok {
				category = c.Name
			}
		}
		tw.AppendRow(table.Row{
			shortID(w.ID),
			w.Name,
			category,
			FormatRate(w.HourlyRate),
			FormatRate(w.DailyRate),
			yesNo(w.Active),
		})
	}
	return tw.Render()
}

// FormatWorkTypeDetail renders one work type with its contacts.
func FormatWorkTypeDetail(w *domain.WorkType, contacts []*domain.EmergencyContact) string {
	var b strings.Builder
	b.WriteString(Header(w.Name) + "\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Bold("Hourly rate:"), FormatRate(w.HourlyRate)))
	b.WriteString(fmt.Sprintf("%s %s\n", Bold("Daily rate:"), FormatRate(w.DailyRate)))
	if w.NotificationTime != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Bold("Reminder:"), w.NotificationTime))
	}
	if !w.Active {
		b.WriteString(StyleYellow.Render("archived") + "\n")
	}

	if len(contacts) > 0 {
		b.WriteString("\n" + Bold("Emergency contacts") + "\n")
		for _, c := range contacts {
			line := fmt.Sprintf("  %s  %s", c.Name, c.Phone)
			if c.Role != "" {
				line += "  " + Dim(c.Role)
			}
			if c.Primary {
				line += "  " + StyleGreen.Render("primary")
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// FormatTemplateList renders checklist templates as a table.
func FormatTemplateList(templates []*domain.ChecklistTemplate) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"ID", "Name", "Version", "Items", "Est. min", "Active"})
	for _, t := range templates {
		tw.AppendRow(table.Row{
			shortID(t.ID),
			t.Name,
			t.Version,
			len(t.Items),
			t.TotalEstimatedMin(),
			yesNo(t.Active),
		})
	}
	return tw.Render()
}

// FormatTemplateDetail renders a template's items in order.
func FormatTemplateDetail(t *domain.ChecklistTemplate) string {
	var b strings.Builder
	b.WriteString(Header(t.Name) + "\n")
	b.WriteString(Dim(fmt.Sprintf("version %d, ~%d min total", t.Version, t.TotalEstimatedMin())) + "\n\n")
	for _, item := range t.SortedItems() {
		line := fmt.Sprintf("  %2d. %s", item.OrderIndex+1, item.Task)
		if item.Mandatory {
			line += " " + StyleRed.Render("*")
		}
		line += "  " + Dim(fmt.Sprintf("%s, %dm", item.Category, item.EstimatedMin))
		b.WriteString(line + "\n")
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
