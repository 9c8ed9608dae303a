package module

import (
	"strings"
	"testing"

	"streaks/internal/modkit"
	kit "streaks/internal/platform/testkit"
)

type FooPort interface {
	Foo() int
}

type fooImpl struct{ v int }

func (f fooImpl) Foo() int { return f.v }

type fakeModule struct {
	name  string
	ports any
}

func (m fakeModule) Name() string   { return m.name }
func (m fakeModule) Ports() PortSet { return m.ports }

// every modkit.Module is usable for lookup
var _ Module = modkit.Module(nil)

func TestPortsOf_NilPorts(t *testing.T) {
	t.Parallel()

	if _, ok := PortsOf[FooPort](fakeModule{name: "nil"}); ok {
		t.Fatalf("expected ok=false when Ports() is nil")
	}
}

func TestPortsOf_DirectInterfaceMatch(t *testing.T) {
	t.Parallel()

	got, ok := PortsOf[FooPort](fakeModule{name: "direct", ports: FooPort(fooImpl{v: 42})})
	if !ok || got.Foo() != 42 {
		t.Fatalf("direct match: ok=%v", ok)
	}
}

func TestPortsOf_Bundles(t *testing.T) {
	t.Parallel()

	type Ports struct {
		Foo FooPort
		Bar int
	}
	type hidden struct {
		foo FooPort
	}

	cases := []struct {
		name  string
		ports any
		want  int
		ok    bool
	}{
		{"value bundle", Ports{Foo: fooImpl{v: 7}, Bar: 1}, 7, true},
		{"pointer bundle", &Ports{Foo: fooImpl{v: 8}}, 8, true},
		{"nil pointer bundle", (*Ports)(nil), 0, false},
		{"unexported field ignored", hidden{foo: fooImpl{v: 1}}, 0, false},
		{"primitive", 123, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := PortsOf[FooPort](fakeModule{name: tc.name, ports: tc.ports})
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && got.Foo() != tc.want {
				t.Fatalf("Foo = %d, want %d", got.Foo(), tc.want)
			}
		})
	}
}

func TestMustPortsOf_PanicsWithModuleName(t *testing.T) {
	t.Parallel()

	defer func() {
		msg, _ := recover().(string)
		if !strings.Contains(msg, "meta") || !strings.Contains(msg, "requested port not found") {
			t.Fatalf("panic message should name the module, got %q", msg)
		}
	}()
	_ = MustPortsOf[FooPort](fakeModule{name: "meta"})
}

func TestMustPortsOf_ReturnsValue(t *testing.T) {
	t.Parallel()

	kit.MustNotPanic(t, func() {
		if got := MustPortsOf[FooPort](fakeModule{name: "ok", ports: FooPort(fooImpl{v: 99})}); got.Foo() != 99 {
			t.Fatalf("Foo = %d, want 99", got.Foo())
		}
	})
}
