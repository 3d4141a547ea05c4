package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/orientation/core"
)

const orderingParam = "ordering"

// orderingFromContext reads the `?ordering=field,-other` query param.
func orderingFromContext(ctx echo.Context) []core.DBOrdering {
	return parseOrdering(ctx.QueryParam(orderingParam))
}

// parseOrdering skips blank entries; a field listed twice keeps its first direction.
func parseOrdering(raw string) []core.DBOrdering {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var orderings []core.DBOrdering
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		field := strings.TrimPrefix(part, "-")
		if field == "" || seen[field] {
			continue
		}
		seen[field] = true
		orderings = append(orderings, core.DBOrdering{Field: field, Ascending: field == part})
	}
	return orderings
}
