package module

import (
	"streaks/internal/core/badge"
	"streaks/internal/modkit/swaggerkit"
)

func init() { swaggerkit.Register(documentTiers) }

// documentTiers pins the Tier.name enum to the live tier table
func documentTiers(spec map[string]any) {
	comps, _ := spec["components"].(map[string]any)
	schemas, _ := comps["schemas"].(map[string]any)
	tier, _ := schemas["Tier"].(map[string]any)
	props, _ := tier["properties"].(map[string]any)
	name, ok := props["name"].(map[string]any)
	if !ok {
		return
	}
	var names []any
	for _, t := range badge.Tiers() {
		names = append(names, t.Name)
	}
	name["enum"] = names
}
