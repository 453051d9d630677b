package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveID matches input against a list of (id, name) pairs: exact name
// match first (case-insensitive), then exact ID, then unique ID prefix.
func resolveID(kind, input string, ids, names []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}

	for i, name := range names {
		if strings.EqualFold(name, input) {
			return ids[i], nil
		}
	}
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolveCategoryID(ctx context.Context, app *App, input string) (string, error) {
	categories, err := app.Categories.ListByUser(ctx, app.UserID, true)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(categories))
	names := make([]string, len(categories))
	for i, c := range categories {
		ids[i], names[i] = c.ID, c.Name
	}
	return resolveID("category", input, ids, names)
}

func resolveWorkTypeID(ctx context.Context, app *App, input string) (string, error) {
	workTypes, err := app.WorkTypes.ListByUser(ctx, app.UserID, true)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(workTypes))
	names := make([]string, len(workTypes))
	for i, w := range workTypes {
		ids[i], names[i] = w.ID, w.Name
	}
	return resolveID("work type", input, ids, names)
}

func resolveTemplateID(ctx context.Context, app *App, workTypeID, input string) (string, error) {
	templates, err := app.Checklists.ListTemplates(ctx, workTypeID)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(templates))
	names := make([]string, len(templates))
	for i, t := range templates {
		ids[i], names[i] = t.ID, t.Name
	}
	return resolveID("template", input, ids, names)
}
