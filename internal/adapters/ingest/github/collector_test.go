package github

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"streaks/internal/core/history"
	perr "streaks/internal/platform/errors"
	pnet "streaks/internal/platform/net"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type gqlCapture struct {
	auth string
	req  gqlRequest
}

func graphqlHandler(t *testing.T, capt *gqlCapture, reply string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/graphql" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		capt.auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&capt.req); err != nil {
			t.Errorf("decode graphql body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reply))
	}
}

func TestFetchYear_GraphQLCalendar(t *testing.T) {
	var capt gqlCapture
	reply := `{"data":{"user":{"contributionsCollection":{"contributionCalendar":{
		"totalContributions":5,
		"weeks":[
			{"contributionDays":[{"date":"2025-01-01","contributionCount":2},{"date":"2025-01-02","contributionCount":0}]},
			{"contributionDays":[{"date":"2025-01-08","contributionCount":3},{"date":"2025-01-09"}]}
		]}}}}}`
	col := NewCollector(newTestClient(t, graphqlHandler(t, &capt, reply), "srv-token"))

	y, err := col.FetchYear(context.Background(), history.YearRequest{Username: "octo", Year: 2025})
	if err != nil {
		t.Fatalf("FetchYear err: %v", err)
	}
	if y.Year != 2025 || y.Total != 5 || len(y.Days) != 3 {
		t.Fatalf("year = %+v", y)
	}
	if capt.auth != "Bearer srv-token" {
		t.Fatalf("auth header = %q", capt.auth)
	}
	if capt.req.Variables["login"] != "octo" || capt.req.Variables["from"] != "2025-01-01T00:00:00Z" || capt.req.Variables["to"] != "2025-12-31T23:59:59Z" {
		t.Fatalf("variables = %v", capt.req.Variables)
	}
	if got := testutil.ToFloat64(col.c.metrics.dropped); got != 1 {
		t.Fatalf("dropped metric = %v, want 1", got)
	}
}

func TestFetchYear_RequestCredentialOverrides(t *testing.T) {
	var capt gqlCapture
	reply := `{"data":{"user":{"contributionsCollection":{"contributionCalendar":{"totalContributions":0,"weeks":[]}}}}}`
	col := NewCollector(newTestClient(t, graphqlHandler(t, &capt, reply), ""))

	ctx := pnet.WithCredential(context.Background(), "caller-token")
	if _, err := col.FetchYear(ctx, history.YearRequest{Username: "octo", Year: 2024}); err != nil {
		t.Fatalf("FetchYear err: %v", err)
	}
	if capt.auth != "Bearer caller-token" {
		t.Fatalf("auth header = %q", capt.auth)
	}
}

func TestFetchYear_UnknownUser(t *testing.T) {
	var capt gqlCapture
	reply := `{"data":{"user":null},"errors":[{"type":"NOT_FOUND","message":"Could not resolve to a User"}]}`
	col := NewCollector(newTestClient(t, graphqlHandler(t, &capt, reply), "t"))

	_, err := col.FetchYear(context.Background(), history.YearRequest{Username: "ghost", Year: 2025})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestFetchYear_GraphQLErrorIsUnavailable(t *testing.T) {
	var capt gqlCapture
	reply := `{"errors":[{"type":"INTERNAL","message":"Something went wrong"}]}`
	col := NewCollector(newTestClient(t, graphqlHandler(t, &capt, reply), "t"))

	_, err := col.FetchYear(context.Background(), history.YearRequest{Username: "octo", Year: 2025})
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v, want unavailable", err)
	}
}

func TestFetchYear_TokenlessUsesPublicEvents(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octo/events/public", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("tokenless call sent credentials")
		}
		_, _ = w.Write([]byte(`[
			{"type":"PushEvent","created_at":"2025-03-01T23:30:00Z"},
			{"type":"PushEvent","created_at":"2025-03-01T10:00:00Z"},
			{"type":"IssuesEvent","created_at":"2024-12-31T23:00:00Z"}
		]`))
	})
	col := NewCollector(newTestClient(t, mux, ""))

	// UTC+2: the late event lands on Mar 2, the Dec 31 event on Jan 1 2025
	y, err := col.FetchYear(context.Background(), history.YearRequest{Username: "octo", Year: 2025, OffsetMinutes: 120})
	if err != nil {
		t.Fatalf("FetchYear err: %v", err)
	}
	if y.Total != 3 || len(y.Days) != 3 {
		t.Fatalf("year = %+v", y)
	}
	if y.Days[0].Date != "2025-01-01" || y.Days[1].Date != "2025-03-01" || y.Days[2].Date != "2025-03-02" {
		t.Fatalf("days = %+v", y.Days)
	}
}

func TestFetchUserMeta(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octo", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"login":"octo","created_at":"2016-04-05T06:07:08Z"}`))
	})
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"user":{"contributionsCollection":{"contributionYears":[2025,2019,2018]}}}}`))
	})

	col := NewCollector(newTestClient(t, mux, "t"))
	meta, err := col.FetchUserMeta(context.Background(), "octo")
	if err != nil {
		t.Fatalf("FetchUserMeta err: %v", err)
	}
	if meta.Login != "octo" || !meta.CreatedAt.Equal(time.Date(2016, 4, 5, 6, 7, 8, 0, time.UTC)) {
		t.Fatalf("meta = %+v", meta)
	}
	if meta.FloorYear() != 2018 {
		t.Fatalf("floor = %d, want 2018", meta.FloorYear())
	}

	tokenless := NewCollector(newTestClient(t, mux, ""))
	meta, err = tokenless.FetchUserMeta(context.Background(), "octo")
	if err != nil {
		t.Fatalf("tokenless FetchUserMeta err: %v", err)
	}
	if len(meta.ContributionYears) != 0 || meta.FloorYear() != 2016 {
		t.Fatalf("tokenless meta = %+v", meta)
	}
}

func TestFetchUserMeta_YearsBestEffort(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octo", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"login":"octo","created_at":"2016-04-05T06:07:08Z"}`))
	})
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	col := NewCollector(newTestClient(t, mux, "t"))
	meta, err := col.FetchUserMeta(context.Background(), "octo")
	if err != nil {
		t.Fatalf("FetchUserMeta err: %v", err)
	}
	if meta.FloorYear() != 2016 {
		t.Fatalf("floor = %d", meta.FloorYear())
	}
}

func TestFetchUserMeta_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/ghost", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	})
	col := NewCollector(newTestClient(t, mux, ""))
	_, err := col.FetchUserMeta(context.Background(), "ghost")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}
