package hook

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func record(log *[]string, name string) Func[int] {
	return func(ctx context.Context, v int) error {
		*log = append(*log, name)
		return nil
	}
}

func TestChainOrdering(t *testing.T) {
	ctx := context.Background()

	t.Run("after constraint", func(t *testing.T) {
		var log []string
		c := NewChain[int]()
		c.Register(Hook[int]{Name: "b", After: []string{"a"}, Fn: record(&log, "b")})
		c.Register(Hook[int]{Name: "a", Fn: record(&log, "a")})
		if err := c.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if err := c.Run(ctx, 0); err != nil {
			t.Fatalf("run: %v", err)
		}
		if !reflect.DeepEqual(log, []string{"a", "b"}) {
			t.Fatalf("unexpected order: %v", log)
		}
	})

	t.Run("before constraint", func(t *testing.T) {
		var log []string
		c := NewChain[int]()
		c.Register(Hook[int]{Name: "x", Fn: record(&log, "x")})
		c.Register(Hook[int]{Name: "y", Before: []string{"x"}, Fn: record(&log, "y")})
		if err := c.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if err := c.Run(ctx, 0); err != nil {
			t.Fatalf("run: %v", err)
		}
		if !reflect.DeepEqual(log, []string{"y", "x"}) {
			t.Fatalf("unexpected order: %v", log)
		}
	})

	t.Run("registration order is the tiebreaker", func(t *testing.T) {
		var log []string
		c := NewChain[int]()
		c.Register(Hook[int]{Name: "one", Fn: record(&log, "one")})
		c.Register(Hook[int]{Name: "two", Fn: record(&log, "two")})
		c.Register(Hook[int]{Name: "three", Fn: record(&log, "three")})
		if err := c.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if err := c.Run(ctx, 0); err != nil {
			t.Fatalf("run: %v", err)
		}
		if !reflect.DeepEqual(log, []string{"one", "two", "three"}) {
			t.Fatalf("unexpected order: %v", log)
		}
	})

	t.Run("unknown references are ignored", func(t *testing.T) {
		c := NewChain[int]()
		c.Register(Hook[int]{Name: "a", After: []string{"no-such-hook"}, Fn: func(ctx context.Context, v int) error { return nil }})
		if err := c.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if got := c.Names(); !reflect.DeepEqual(got, []string{"a"}) {
			t.Fatalf("unexpected names: %v", got)
		}
	})

	t.Run("every hook appears exactly once", func(t *testing.T) {
		c := NewChain[int]()
		noop := func(ctx context.Context, v int) error { return nil }
		c.Register(Hook[int]{Name: "a", Fn: noop})
		c.Register(Hook[int]{Name: "b", After: []string{"a"}, Fn: noop})
		c.Register(Hook[int]{Name: "c", Before: []string{"a"}, Fn: noop})
		if err := c.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		seen := map[string]int{}
		for _, n := range c.Names() {
			seen[n]++
		}
		for _, n := range []string{"a", "b", "c"} {
			if seen[n] != 1 {
				t.Fatalf("hook %s appears %d times", n, seen[n])
			}
		}
	})
}

func TestChainCycle(t *testing.T) {
	c := NewChain[int]()
	noop := func(ctx context.Context, v int) error { return nil }
	c.Register(Hook[int]{Name: "a", After: []string{"b"}, Fn: noop})
	c.Register(Hook[int]{Name: "b", After: []string{"a"}, Fn: noop})
	err := c.Finalize()
	if err == nil {
		t.Fatal("expected cycle error")
	}
	if !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestChainOverrideByName(t *testing.T) {
	var log []string
	c := NewChain[int]()
	c.Register(Hook[int]{Name: "validate", Fn: record(&log, "base")})
	c.Register(Hook[int]{Name: "other", Fn: record(&log, "other")})
	// A composing service replaces the base hook, keeping its position.
	c.Register(Hook[int]{Name: "validate", Fn: record(&log, "override")})
	if err := c.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if err := c.Run(context.Background(), 0); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !reflect.DeepEqual(log, []string{"override", "other"}) {
		t.Fatalf("unexpected order: %v", log)
	}
}

func TestChainAbortsOnError(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	c := NewChain[int]()
	c.Register(Hook[int]{Name: "first", Fn: record(&log, "first")})
	c.Register(Hook[int]{Name: "failing", After: []string{"first"}, Fn: func(ctx context.Context, v int) error { return boom }})
	c.Register(Hook[int]{Name: "last", After: []string{"failing"}, Fn: record(&log, "last")})
	if err := c.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	err := c.Run(context.Background(), 0)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if !reflect.DeepEqual(log, []string{"first"}) {
		t.Fatalf("later hooks should be skipped: %v", log)
	}
}
