package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/turno/internal/cli/formatter"
	"github.com/alexanderramin/turno/internal/domain"
	"github.com/spf13/cobra"
)

func newChecklistCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Manage checklist templates",
	}

	cmd.AddCommand(
		newChecklistCreateCmd(app),
		newChecklistListCmd(app),
		newChecklistShowCmd(app),
		newChecklistRemoveCmd(app),
		newChecklistItemCmd(app),
	)

	return cmd
}

func newChecklistCreateCmd(app *App) *cobra.Command {
	var name string
	var items []string

	cmd := &cobra.Command{
		Use:   "create WORKTYPE",
		Short: "Create a checklist template for a work type",
		Long: "Creates a new active template. Any previously active template for " +
			"the work type is retired; running sessions keep the snapshot they " +
			"started with.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			workTypeID, err := resolveWorkTypeID(ctx, app, args[0])
			if err != nil {
				return err
			}

			t := &domain.ChecklistTemplate{
				WorkTypeID: workTypeID,
				Name:       name,
				Active:     true,
			}
			for i, raw := range items {
				item, err := parseItemSpec(raw)
				if err != nil {
					return err
				}
				item.OrderIndex = i
				t.Items = append(t.Items, item)
			}

			if err := app.Checklists.CreateTemplate(ctx, t); err != nil {
				return err
			}
			fmt.Printf("Created template %s with %d item(s)\n", t.Name, len(t.Items))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Template name")
	cmd.Flags().StringArrayVar(&items, "item", nil,
		"Item spec: TASK[:CATEGORY[:MINUTES]] with a leading ! for mandatory")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// parseItemSpec parses "!close register:execution:15" style item flags.
func parseItemSpec(raw string) (domain.ChecklistItem, error) {
	item := domain.ChecklistItem{
		Category:     domain.CategoryExecution,
		EstimatedMin: 10,
	}
	if strings.HasPrefix(raw, "!") {
		item.Mandatory = true
		raw = raw[1:]
	}
	parts := strings.SplitN(raw, ":", 3)
	item.Task = strings.TrimSpace(parts[0])
	if len(parts) > 1 && parts[1] != "" {
		if !domain.ValidItemCategories[parts[1]] {
			return item, fmt.Errorf("unknown item category %q", parts[1])
		}
		item.Category = domain.ItemCategory(parts[1])
	}
	if len(parts) > 2 {
		min := parsePositiveInt(parts[2], 0)
		if min <= 0 {
			return item, fmt.Errorf("invalid estimated minutes %q", parts[2])
		}
		item.EstimatedMin = min
	}
	return item, nil
}

func newChecklistListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list WORKTYPE",
		Short: "List checklist templates for a work type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			workTypeID, err := resolveWorkTypeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			templates, err := app.Checklists.ListTemplates(ctx, workTypeID)
			if err != nil {
				return err
			}
			if len(templates) == 0 {
				fmt.Println("No templates found.")
				return nil
			}
			fmt.Println(formatter.FormatTemplateList(templates))
			return nil
		},
	}
}

func newChecklistShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show WORKTYPE [TEMPLATE]",
		Short: "Show a checklist template (active one by default)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			workTypeID, err := resolveWorkTypeID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var t *domain.ChecklistTemplate
			if len(args) == 2 {
				id, err := resolveTemplateID(ctx, app, workTypeID, args[1])
				if err != nil {
					return err
				}
				t, err = app.Checklists.GetTemplate(ctx, id)
				if err != nil {
					return err
				}
			} else {
				t, err = app.Checklists.GetActiveTemplate(ctx, workTypeID)
				if err != nil {
					return err
				}
				if t == nil {
					fmt.Println("No active template.")
					return nil
				}
			}

			fmt.Print(formatter.FormatTemplateDetail(t))
			return nil
		},
	}
}

func newChecklistRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm WORKTYPE TEMPLATE",
		Short: "Remove a checklist template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			workTypeID, err := resolveWorkTypeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			id, err := resolveTemplateID(ctx, app, workTypeID, args[1])
			if err != nil {
				return err
			}
			if err := app.Checklists.DeleteTemplate(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Removed template %s\n", args[1])
			return nil
		},
	}
}

func newChecklistItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage template items",
	}

	add := &cobra.Command{
		Use:   "add WORKTYPE TEMPLATE SPEC",
		Short: "Append an item to a template",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			workTypeID, err := resolveWorkTypeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			templateID, err := resolveTemplateID(ctx, app, workTypeID, args[1])
			if err != nil {
				return err
			}
			item, err := parseItemSpec(args[2])
			if err != nil {
				return err
			}
			t, err := app.Checklists.AddItem(ctx, templateID, item)
			if err != nil {
				return err
			}
			fmt.Printf("Added item to %s (now version %d)\n", t.Name, t.Version)
			return nil
		},
	}

	move := &cobra.Command{
		Use:   "move WORKTYPE TEMPLATE ITEM INDEX",
		Short: "Move an item to a new position (0-based)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			workTypeID, err := resolveWorkTypeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			templateID, err := resolveTemplateID(ctx, app, workTypeID, args[1])
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, templateID, args[2])
			if err != nil {
				return err
			}
			newIndex := parsePositiveInt(args[3], -1)
			if args[3] == "0" {
				newIndex = 0
			}
			if newIndex < 0 {
				return fmt.Errorf("invalid index %q", args[3])
			}
			t, err := app.Checklists.ReorderItem(ctx, templateID, itemID, newIndex)
			if err != nil {
				return err
			}
			fmt.Printf("Reordered %s (now version %d)\n", t.Name, t.Version)
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm WORKTYPE TEMPLATE ITEM",
		Short: "Remove an item from a template",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			workTypeID, err := resolveWorkTypeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			templateID, err := resolveTemplateID(ctx, app, workTypeID, args[1])
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, templateID, args[2])
			if err != nil {
				return err
			}
			t, err := app.Checklists.RemoveItem(ctx, templateID, itemID)
			if err != nil {
				return err
			}
			fmt.Printf("Removed item from %s (now version %d)\n", t.Name, t.Version)
			return nil
		},
	}

	cmd.AddCommand(add, move, rm)
	return cmd
}

// resolveItemID matches an item by task text, exact ID, or ID prefix within
// a template.
func resolveItemID(ctx context.Context, app *App, templateID, input string) (string, error) {
	t, err := app.Checklists.GetTemplate(ctx, templateID)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(t.Items))
	names := make([]string, len(t.Items))
	for i, item := range t.Items {
		ids[i], names[i] = item.ID, item.Task
	}
	return resolveID("item", input, ids, names)
}
