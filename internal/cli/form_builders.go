package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/turno/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// turnoHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func turnoHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// categoryForm collects a category name and optional color interactively.
func categoryForm(name, color *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Category Name").
				Placeholder("Hospitality").
				Value(name).
				Validate(validateRequired("name")),
			huh.NewInput().
				Title("Color (hex, blank for default)").
				Placeholder("#3B82F6").
				Value(color),
		),
	).WithTheme(turnoHuhTheme()).WithShowHelp(false)
}

// workTypeForm collects the essentials of a new work type interactively.
func workTypeForm(name, hourly, daily *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Work Type Name").
				Placeholder("Bar Shift").
				Value(name).
				Validate(validateRequired("name")),
			huh.NewInput().
				Title("Hourly Rate (blank for none)").
				Placeholder("12000").
				Value(hourly).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Daily Rate (blank for none)").
				Placeholder("90000").
				Value(daily).
				Validate(validateNonNegativeInt),
		),
	).WithTheme(turnoHuhTheme()).WithShowHelp(false)
}

// selectWorkTypeForm runs a select over the user's active work types.
func selectWorkTypeForm(ctx context.Context, app *App) (string, error) {
	workTypes, err := app.WorkTypes.ListByUser(ctx, app.UserID, false)
	if err != nil {
		return "", err
	}
	if len(workTypes) == 0 {
		return "", fmt.Errorf("no work types configured (run `turno worktype add` first)")
	}

	options := make([]huh.Option[string], 0, len(workTypes))
	for _, w := range workTypes {
		label := w.Name
		if w.HourlyRate != nil {
			label = fmt.Sprintf("%s (%s/h)", w.Name, formatter.FormatMoney(*w.HourlyRate))
		}
		options = append(options, huh.NewOption(label, w.ID))
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which Work Type?").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(turnoHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return "", err
	}
	return selected, nil
}

// parsePositiveInt parses s as a positive integer, returning fallback if s is
// empty, non-numeric, or non-positive.
func parsePositiveInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// parseRate parses a rate string, zero when blank or invalid.
func parseRate(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateNonNegativeInt accepts empty or a non-negative integer.
func validateNonNegativeInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}
