package github

// GraphQL request and response shapes, only the fields we read

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type gqlResponse[T any] struct {
	Data   T          `json:"data"`
	Errors []gqlError `json:"errors"`
}

type calendarDay struct {
	Date string `json:"date"`
	// nil when upstream omits the count, such days are skipped
	ContributionCount *int `json:"contributionCount"`
}

type calendarWeek struct {
	ContributionDays []calendarDay `json:"contributionDays"`
}

type calendar struct {
	TotalContributions int            `json:"totalContributions"`
	Weeks              []calendarWeek `json:"weeks"`
}

type calendarData struct {
	User *struct {
		ContributionsCollection struct {
			ContributionCalendar calendar `json:"contributionCalendar"`
		} `json:"contributionsCollection"`
	} `json:"user"`
}

type yearsData struct {
	User *struct {
		ContributionsCollection struct {
			ContributionYears []int `json:"contributionYears"`
		} `json:"contributionsCollection"`
	} `json:"user"`
}
