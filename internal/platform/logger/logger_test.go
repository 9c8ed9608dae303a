package logger

import (
	"bytes"
	"context"
	"testing"

	kit "streaks/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"INFO":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		" error ": zerolog.ErrorLevel,
		"panic":   zerolog.PanicLevel,
		"":        zerolog.DebugLevel,
		"loud":    zerolog.DebugLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// Init runs once per process, so every root assertion lives in this test
func TestInit_RootNamedAndRequestScoped(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Format: "json", Service: "streaks-api", Writer: &buf, WithCaller: true})

	// a second Init is ignored
	Init(Options{Level: "error", Writer: &bytes.Buffer{}})

	Get().Info().Msg("root-msg")
	Named("github").Info().Msg("named-msg")
	Named("").Debug().Msg("below-level")

	ctx := WithRequest(context.Background(), "req-123", "octocat")
	C(ctx).Info().Msg("ctx-msg")
	C(context.Background()).Info().Msg("bare-msg")

	out := buf.String()
	kit.MustContain(t, out, `"message":"root-msg"`)
	kit.MustContain(t, out, `"service":"streaks-api"`)
	kit.MustContain(t, out, `"component":"github"`)
	kit.MustContain(t, out, `"request_id":"req-123"`)
	kit.MustContain(t, out, `"login":"octocat"`)
	kit.MustContain(t, out, `"caller":`)
	kit.MustContain(t, out, `"message":"bare-msg"`)
	if bytes.Contains(buf.Bytes(), []byte("below-level")) {
		t.Fatalf("debug line leaked at info level")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_SERVICE", "streaks-cli")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv("warn")
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "streaks-cli" {
		t.Fatalf("FromEnv = %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("FromEnv caller/sample = %+v", opt)
	}

	t.Setenv("LOG_LEVEL", "Error")
	if got := FromEnv("warn").Level; got != "error" {
		t.Fatalf("LOG_LEVEL should win, got %q", got)
	}
}

func TestWithRequest_SkipsEmpty(t *testing.T) {
	ctx := WithRequest(context.Background(), "", "")
	if ctx.Value(keyRequestID) != nil || ctx.Value(keyLogin) != nil {
		t.Fatalf("empty values should not be stored")
	}
}
