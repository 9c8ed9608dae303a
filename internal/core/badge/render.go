package badge

import (
	"strings"
	"text/template"

	"streaks/internal/core/streak"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Badge dimensions are part of the embedding contract, keep them stable
const (
	Width  = 495
	Height = 195
)

// Options tweaks rendering
type Options struct {
	// Username is printed in the header when set
	Username string
	// Lang picks the number format, defaults to English
	Lang language.Tag
}

type view struct {
	Width, Height int
	Title         string
	Total         string
	Current       string
	Longest       string
	LastActive    string
	Tier          Tier
	NextHint      string
}

var card = template.Must(template.New("card").Funcs(template.FuncMap{
	"esc": template.HTMLEscapeString,
}).Parse(`<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}" role="img" aria-label="{{esc .Title}}">
<title>{{esc .Title}}</title>
<rect x="0.5" y="0.5" rx="4.5" width="{{.Width}}" height="{{.Height}}" fill="#fffefe" stroke="#e4e2e2"/>
<line x1="165" y1="28" x2="165" y2="170" stroke="#e4e2e2"/>
<line x1="330" y1="28" x2="330" y2="170" stroke="#e4e2e2"/>
<g font-family="Segoe UI, Ubuntu, sans-serif" text-anchor="middle">
<text x="82.5" y="79" font-size="28" font-weight="700" fill="#151515">{{.Total}}</text>
<text x="82.5" y="115" font-size="14" fill="#151515">Total Contributions</text>
<text x="82.5" y="145" font-size="12" fill="#464646">{{esc .LastActive}}</text>
<circle cx="247.5" cy="71" r="40" fill="none" stroke="{{.Tier.Color}}" stroke-width="5"/>
<text x="247.5" y="80" font-size="28" font-weight="700" fill="#151515">{{.Current}}</text>
<text x="247.5" y="140" font-size="14" font-weight="700" fill="{{.Tier.Color}}">Current Streak</text>
<text x="247.5" y="160" font-size="12" fill="#464646" data-tier="{{.Tier.Min}}">{{esc .Tier.Name}}</text>
<text x="247.5" y="178" font-size="10" fill="#9a9a9a">{{esc .NextHint}}</text>
<text x="412.5" y="79" font-size="28" font-weight="700" fill="#151515">{{.Longest}}</text>
<text x="412.5" y="115" font-size="14" fill="#151515">Longest Streak</text>
</g>
</svg>
`))

// Render formats stats into the SVG card
func Render(s streak.Stats, opt Options) (string, error) {
	lang := opt.Lang
	if lang == language.Und {
		lang = language.English
	}
	p := message.NewPrinter(lang)

	tier := TierFor(s.CurrentStreak)
	v := view{
		Width:   Width,
		Height:  Height,
		Title:   "Contribution streak",
		Total:   p.Sprintf("%d", s.TotalCommits),
		Current: p.Sprintf("%d", s.CurrentStreak),
		Longest: p.Sprintf("%d", s.LongestStreak),
		Tier:    tier,
	}
	if opt.Username != "" {
		v.Title = opt.Username + " contribution streak"
	}
	if last, ok := s.LastActive(); ok {
		v.LastActive = "Last active " + humanDate(last)
	} else {
		v.LastActive = "No activity yet"
	}
	if next, ok := NextTier(s.CurrentStreak); ok {
		v.NextHint = p.Sprintf("%d days to %s", next.Min-s.CurrentStreak, next.Name)
	}

	var sb strings.Builder
	if err := card.Execute(&sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// humanDate turns a date key into "Jan 2, 2006", falling back to the raw key
func humanDate(key string) string {
	t, ok := streak.ParseDateKey(key)
	if !ok {
		return key
	}
	return t.Format("Jan 2, 2006")
}
