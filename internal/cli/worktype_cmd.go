package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/turno/internal/cli/formatter"
	"github.com/alexanderramin/turno/internal/domain"
	"github.com/spf13/cobra"
)

func newWorkTypeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worktype",
		Short: "Manage work types",
	}

	cmd.AddCommand(
		newWorkTypeAddCmd(app),
		newWorkTypeListCmd(app),
		newWorkTypeShowCmd(app),
		newWorkTypeEditCmd(app),
		newWorkTypeArchiveCmd(app),
		newWorkTypeRemoveCmd(app),
		newContactCmd(app),
	)

	return cmd
}

func newWorkTypeAddCmd(app *App) *cobra.Command {
	var name, category, color, icon, notify string
	var hourly, daily int64

	cmd := &cobra.Command{
		Use:   "add [NAME]",
		Short: "Create a work type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if len(args) > 0 {
				name = args[0]
			}

			var hourlyStr, dailyStr string
			if name == "" && app.interactive() {
				if err := workTypeForm(&name, &hourlyStr, &dailyStr).Run(); err != nil {
					return err
				}
				hourly = parseRate(hourlyStr)
				daily = parseRate(dailyStr)
			}

			w := &domain.WorkType{
				UserID:           app.UserID,
				Name:             name,
				Color:            color,
				Icon:             icon,
				NotificationTime: notify,
			}
			if cmd.Flags().Changed("hourly") || hourly > 0 {
				w.HourlyRate = &hourly
			}
			if cmd.Flags().Changed("daily") || daily > 0 {
				w.DailyRate = &daily
			}
			if category != "" {
				id, err := resolveCategoryID(ctx, app, category)
				if err != nil {
					return err
				}
				w.CategoryID = &id
			}

			if err := app.WorkTypes.Create(ctx, w); err != nil {
				return err
			}
			fmt.Printf("Created work type %s\n", w.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Work type name")
	cmd.Flags().StringVar(&category, "category", "", "Category name or ID")
	cmd.Flags().Int64Var(&hourly, "hourly", 0, "Hourly rate (smallest currency unit)")
	cmd.Flags().Int64Var(&daily, "daily", 0, "Daily rate (smallest currency unit)")
	cmd.Flags().StringVar(&color, "color", "", "Display color (hex)")
	cmd.Flags().StringVar(&icon, "icon", "", "Display icon name")
	cmd.Flags().StringVar(&notify, "notify", "", "Reminder time (HH:MM)")

	return cmd
}

func newWorkTypeListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work types",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			workTypes, err := app.WorkTypes.ListByUser(ctx, app.UserID, all)
			if err != nil {
				return err
			}
			if len(workTypes) == 0 {
				fmt.Println("No work types found.")
				return nil
			}

			categories, err := app.Categories.ListByUser(ctx, app.UserID, true)
			if err != nil {
				return err
			}
			byID := make(map[string]*domain.WorkCategory, len(categories))
			for _, c := range categories {
				byID[c.ID] = c
			}

			fmt.Println(formatter.FormatWorkTypeList(workTypes, byID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived work types")

	return cmd
}

func newWorkTypeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show work type details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkTypeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			w, err := app.WorkTypes.GetByID(ctx, id)
			if err != nil {
				return err
			}
			contacts, err := app.WorkTypes.ListContacts(ctx, id)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatWorkTypeDetail(w, contacts))
			return nil
		},
	}
}

func newWorkTypeEditCmd(app *App) *cobra.Command {
	var name, category, notify string
	var hourly, daily int64

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Update a work type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkTypeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			w, err := app.WorkTypes.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				w.Name = name
			}
			if cmd.Flags().Changed("hourly") {
				w.HourlyRate = &hourly
			}
			if cmd.Flags().Changed("daily") {
				w.DailyRate = &daily
			}
			if cmd.Flags().Changed("notify") {
				w.NotificationTime = notify
			}
			if cmd.Flags().Changed("category") {
				if category == "" {
					w.CategoryID = nil
				} else {
					categoryID, err := resolveCategoryID(ctx, app, category)
					if err != nil {
						return err
					}
					w.CategoryID = &categoryID
				}
			}

			if err := app.WorkTypes.Update(ctx, w); err != nil {
				return err
			}
			fmt.Printf("Updated work type %s\n", w.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Work type name")
	cmd.Flags().StringVar(&category, "category", "", "Category name or ID (empty to clear)")
	cmd.Flags().Int64Var(&hourly, "hourly", 0, "Hourly rate (smallest currency unit)")
	cmd.Flags().Int64Var(&daily, "daily", 0, "Daily rate (smallest currency unit)")
	cmd.Flags().StringVar(&notify, "notify", "", "Reminder time (HH:MM)")

	return cmd
}

func newWorkTypeArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive a work type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkTypeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.WorkTypes.Deactivate(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Archived work type %s\n", args[0])
			return nil
		},
	}
}

func newWorkTypeRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Remove a work type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkTypeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.WorkTypes.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Removed work type %s\n", args[0])
			return nil
		},
	}
}

func newContactCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage emergency contacts",
	}

	var name, phone, role, email string
	var primary bool
	add := &cobra.Command{
		Use:   "add WORKTYPE",
		Short: "Add an emergency contact to a work type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkTypeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c := &domain.EmergencyContact{
				WorkTypeID: id,
				Name:       name,
				Phone:      phone,
				Role:       role,
				Email:      email,
				Primary:    primary,
			}
			if err := app.WorkTypes.AddContact(ctx, c); err != nil {
				return err
			}
			fmt.Printf("Added contact %s\n", c.Name)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "Contact name")
	add.Flags().StringVar(&phone, "phone", "", "Contact phone number")
	add.Flags().StringVar(&role, "role", "", "Contact role")
	add.Flags().StringVar(&email, "email", "", "Contact email")
	add.Flags().BoolVar(&primary, "primary", false, "Mark as primary contact")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("phone")

	rm := &cobra.Command{
		Use:   "rm ID",
		Short: "Remove an emergency contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.WorkTypes.RemoveContact(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed contact %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, rm)
	return cmd
}
