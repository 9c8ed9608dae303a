package github

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	perr "streaks/internal/platform/errors"
)

const (
	calendarQuery = `query($login: String!, $from: DateTime!, $to: DateTime!) {
  user(login: $login) {
    contributionsCollection(from: $from, to: $to) {
      contributionCalendar {
        totalContributions
        weeks { contributionDays { date contributionCount } }
      }
    }
  }
}`

	yearsQuery = `query($login: String!) {
  user(login: $login) {
    contributionsCollection { contributionYears }
  }
}`
)

// graphQL posts query and decodes data into T
// a NOT_FOUND error maps to a not found project error, any other error to unavailable
func graphQL[T any](ctx context.Context, c *Client, kind, query string, vars map[string]any) (T, error) {
	var zero T
	body, err := json.Marshal(gqlRequest{Query: query, Variables: vars})
	if err != nil {
		return zero, perr.Wrap(err, perr.ErrorCodeJSON, "github graphql encode failed")
	}
	resp, err := c.Do(ctx, kind, http.MethodPost, c.opts.GraphQLURL, body)
	if err != nil {
		return zero, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("kind", kind).Msg("github close body failed")
		}
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return zero, perr.Wrap(err, perr.ErrorCodeUnavailable, "github graphql read failed")
	}
	var out gqlResponse[T]
	if err := json.Unmarshal(b, &out); err != nil {
		return zero, perr.Wrap(err, perr.ErrorCodeUpstream, "github graphql decode failed")
	}
	if len(out.Errors) > 0 {
		msgs := make([]string, 0, len(out.Errors))
		for _, e := range out.Errors {
			if e.Type == "NOT_FOUND" {
				return zero, perr.NotFoundf("github user not found")
			}
			msgs = append(msgs, e.Message)
		}
		return zero, perr.Newf(perr.ErrorCodeUnavailable, "github graphql: %s", strings.Join(msgs, "; "))
	}
	return out.Data, nil
}
