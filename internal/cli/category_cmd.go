package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/turno/internal/cli/formatter"
	"github.com/alexanderramin/turno/internal/domain"
	"github.com/spf13/cobra"
)

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage work categories",
	}

	cmd.AddCommand(
		newCategoryAddCmd(app),
		newCategoryListCmd(app),
		newCategoryEditCmd(app),
		newCategoryArchiveCmd(app),
		newCategoryRemoveCmd(app),
	)

	return cmd
}

func newCategoryAddCmd(app *App) *cobra.Command {
	var name, color, icon string

	cmd := &cobra.Command{
		Use:   "add [NAME]",
		Short: "Create a work category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				name = args[0]
			}
			if name == "" && app.interactive() {
				if err := categoryForm(&name, &color).Run(); err != nil {
					return err
				}
			}

			c := &domain.WorkCategory{
				UserID: app.UserID,
				Name:   name,
				Color:  color,
				Icon:   icon,
			}
			if err := app.Categories.Create(context.Background(), c); err != nil {
				return err
			}
			fmt.Printf("Created category %s\n", c.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Category name")
	cmd.Flags().StringVar(&color, "color", "", "Display color (hex)")
	cmd.Flags().StringVar(&icon, "icon", "", "Display icon name")

	return cmd
}

func newCategoryListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := app.Categories.ListByUser(context.Background(), app.UserID, all)
			if err != nil {
				return err
			}
			if len(categories) == 0 {
				fmt.Println("No categories found.")
				return nil
			}
			fmt.Println(formatter.FormatCategoryList(categories))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived categories")

	return cmd
}

func newCategoryEditCmd(app *App) *cobra.Command {
	var name, color, icon string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Update a work category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveCategoryID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Categories.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				c.Name = name
			}
			if cmd.Flags().Changed("color") {
				c.Color = color
			}
			if cmd.Flags().Changed("icon") {
				c.Icon = icon
			}
			if err := app.Categories.Update(ctx, c); err != nil {
				return err
			}
			fmt.Printf("Updated category %s\n", c.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Category name")
	cmd.Flags().StringVar(&color, "color", "", "Display color (hex)")
	cmd.Flags().StringVar(&icon, "icon", "", "Display icon name")

	return cmd
}

func newCategoryArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive a work category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveCategoryID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Categories.Deactivate(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Archived category %s\n", args[0])
			return nil
		},
	}
}

func newCategoryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Remove a work category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveCategoryID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Categories.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Removed category %s\n", args[0])
			return nil
		},
	}
}
