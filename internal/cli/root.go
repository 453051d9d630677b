package cli

import (
	"time"

	"github.com/alexanderramin/turno/internal/engine"
	"github.com/alexanderramin/turno/internal/events"
	"github.com/alexanderramin/turno/internal/service"
	"github.com/spf13/cobra"
)

// App holds everything CLI commands need: the session engine, the services,
// and the per-invocation user identity and display timezone.
type App struct {
	Engine     *engine.Engine
	Categories service.CategoryService
	WorkTypes  service.WorkTypeService
	Checklists service.ChecklistService
	Salaries   service.SalaryService
	Settings   service.SettingsService
	Bus        *events.Bus

	UserID   string
	Location *time.Location

	// IsInteractive gates huh forms and the watch view.
	IsInteractive func() bool
}

// Loc returns the display timezone, defaulting to local time.
func (a *App) Loc() *time.Location {
	if a.Location == nil {
		return time.Local
	}
	return a.Location
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "turno" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "turno",
		Short: "Shift tracker with checklists and pay",
	}

	root.AddCommand(
		newCategoryCmd(app),
		newWorkTypeCmd(app),
		newChecklistCmd(app),
		newStartCmd(app),
		newPauseCmd(app),
		newResumeCmd(app),
		newDoneCmd(app),
		newCancelCmd(app),
		newCheckCmd(app),
		newSkipCmd(app),
		newIssueCmd(app),
		newStatusCmd(app),
		newHistoryCmd(app),
		newWatchCmd(app),
		newSalaryCmd(app),
		newSettingsCmd(app),
	)

	return root
}
