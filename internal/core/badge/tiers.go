// Package badge renders streak stats as an SVG card with a tiered reward scheme
package badge

// Tier is a cosmetic reward level reached at Min consecutive days
type Tier struct {
	Min   int    `json:"min" example:"7"`
	Name  string `json:"name" example:"Week Warrior"`
	Color string `json:"color" example:"#f97316"`
	Icon  string `json:"icon" example:"flame"`
}

// tiers is ascending by Min, bounds are inclusive
var tiers = []Tier{
	{Min: 0, Name: "Getting Started", Color: "#9ca3af", Icon: "seed"},
	{Min: 3, Name: "Kindling", Color: "#facc15", Icon: "spark"},
	{Min: 7, Name: "Week Warrior", Color: "#f97316", Icon: "flame"},
	{Min: 14, Name: "Fortnight Focus", Color: "#ef4444", Icon: "flame"},
	{Min: 21, Name: "Habit Formed", Color: "#ec4899", Icon: "flame"},
	{Min: 30, Name: "Monthly Master", Color: "#a855f7", Icon: "bolt"},
	{Min: 50, Name: "Half Century", Color: "#6366f1", Icon: "bolt"},
	{Min: 100, Name: "Centurion", Color: "#3b82f6", Icon: "star"},
	{Min: 250, Name: "Relentless", Color: "#06b6d4", Icon: "star"},
	{Min: 365, Name: "Year Round", Color: "#10b981", Icon: "crown"},
	{Min: 500, Name: "Unstoppable", Color: "#22c55e", Icon: "crown"},
	{Min: 750, Name: "Legendary", Color: "#eab308", Icon: "gem"},
	{Min: 1000, Name: "Mythic", Color: "#f43f5e", Icon: "gem"},
}

// Tiers returns a copy of the tier table ascending by Min
func Tiers() []Tier { return append([]Tier(nil), tiers...) }

// Thresholds returns the streak lengths that unlock a tier above the base one
func Thresholds() []int {
	out := make([]int, 0, len(tiers)-1)
	for _, t := range tiers[1:] {
		out = append(out, t.Min)
	}
	return out
}

// TierFor returns the highest tier whose bound is at most days
func TierFor(days int) Tier {
	best := tiers[0]
	for _, t := range tiers {
		if days >= t.Min {
			best = t
		}
	}
	return best
}

// NextTier returns the tier after the one reached at days and false at the top
func NextTier(days int) (Tier, bool) {
	for _, t := range tiers {
		if t.Min > days {
			return t, true
		}
	}
	return Tier{}, false
}
