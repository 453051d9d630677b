package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	var timezone, defaultWorkType string

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change user settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			settings, err := app.Settings.Get(ctx, app.UserID)
			if err != nil {
				return err
			}

			changed := false
			if cmd.Flags().Changed("timezone") {
				settings.Timezone = timezone
				changed = true
			}
			if cmd.Flags().Changed("default-worktype") {
				if defaultWorkType == "" {
					settings.DefaultWorkType = ""
				} else {
					id, err := resolveWorkTypeID(ctx, app, defaultWorkType)
					if err != nil {
						return err
					}
					settings.DefaultWorkType = id
				}
				changed = true
			}

			if changed {
				settings.UserID = app.UserID
				if err := app.Settings.Update(ctx, settings); err != nil {
					return err
				}
				fmt.Println("Settings updated.")
				return nil
			}

			tz := settings.Timezone
			if tz == "" {
				tz = "UTC (default)"
			}
			fmt.Printf("Timezone: %s\n", tz)
			if settings.DefaultWorkType != "" {
				fmt.Printf("Default work type: %s\n", settings.DefaultWorkType)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone for salary periods")
	cmd.Flags().StringVar(&defaultWorkType, "default-worktype", "", "Work type used by bare `turno start`")

	return cmd
}
