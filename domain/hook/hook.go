// Package hook implements named lifecycle callbacks with declarative
// ordering. A service composes one chain per lifecycle phase
// (before/after x create/update/delete), registers hooks by name, and
// finalizes the chain once at construction time. Finalization
// topologically sorts the hooks; a cycle is a construction error.
package hook

import (
	"context"
	"fmt"
)

// Func is one lifecycle callback. The payload type is fixed per chain:
// create/delete chains carry the model, update chains carry the model
// together with its patch.
type Func[T any] func(ctx context.Context, v T) error

// Hook is a named callback with optional ordering constraints. Before
// names hooks that must run after this one; After names hooks this one
// must run after. References to unknown names are ignored.
type Hook[T any] struct {
	Name   string
	Before []string
	After  []string
	Fn     Func[T]
}

// Chain holds the hooks of one lifecycle phase. Register order is the
// tiebreaker among unconstrained hooks, so chains are deterministic.
type Chain[T any] struct {
	hooks  []Hook[T]
	byName map[string]int
	sorted []Hook[T]
	final  bool
}

// NewChain returns an empty chain.
func NewChain[T any]() *Chain[T] {
	return &Chain[T]{byName: map[string]int{}}
}

// Register adds a hook. Registering a name that already exists replaces
// the earlier hook in place, keeping its position; this is how a
// composing service overrides a hook contributed by its base.
func (c *Chain[T]) Register(h Hook[T]) {
	if c.final {
		panic("hook: register after finalize")
	}
	if h.Name == "" {
		panic("hook: hook name must not be empty")
	}
	if i, ok := c.byName[h.Name]; ok {
		c.hooks[i] = h
		return
	}
	c.byName[h.Name] = len(c.hooks)
	c.hooks = append(c.hooks, h)
}

// Finalize resolves ordering constraints into a fixed execution order.
// It fails when the constraints form a cycle. After Finalize the chain is
// immutable and safe for concurrent Run calls.
func (c *Chain[T]) Finalize() error {
	if c.final {
		return nil
	}
	sorted, err := toposort(c.hooks, c.byName)
	if err != nil {
		return err
	}
	c.sorted = sorted
	c.final = true
	return nil
}

// Run invokes the sorted hooks in turn. The first error aborts the run;
// hooks not yet reached are skipped. Already-run hooks are not rolled
// back, the surrounding transaction supplies rollback.
func (c *Chain[T]) Run(ctx context.Context, v T) error {
	if !c.final {
		return fmt.Errorf("hook: chain not finalized")
	}
	for _, h := range c.sorted {
		if err := h.Fn(ctx, v); err != nil {
			return fmt.Errorf("hook %q: %w", h.Name, err)
		}
	}
	return nil
}

// Names returns the execution order. Finalize must have succeeded.
func (c *Chain[T]) Names() []string {
	out := make([]string, len(c.sorted))
	for i, h := range c.sorted {
		out[i] = h.Name
	}
	return out
}

// toposort orders hooks with Kahn's algorithm. Edges: x.After = [y] means
// y -> x; x.Before = [y] means x -> y. Ready hooks are picked in
// registration order.
func toposort[T any](hooks []Hook[T], byName map[string]int) ([]Hook[T], error) {
	n := len(hooks)
	succ := make([][]int, n)
	indeg := make([]int, n)

	addEdge := func(from, to int) {
		succ[from] = append(succ[from], to)
		indeg[to]++
	}
	for i, h := range hooks {
		for _, name := range h.After {
			if j, ok := byName[name]; ok {
				addEdge(j, i)
			}
		}
		for _, name := range h.Before {
			if j, ok := byName[name]; ok {
				addEdge(i, j)
			}
		}
	}

	sorted := make([]Hook[T], 0, n)
	done := make([]bool, n)
	for len(sorted) < n {
		picked := -1
		for i := 0; i < n; i++ {
			if !done[i] && indeg[i] == 0 {
				picked = i
				break
			}
		}
		if picked < 0 {
			remaining := []string{}
			for i := 0; i < n; i++ {
				if !done[i] {
					remaining = append(remaining, hooks[i].Name)
				}
			}
			return nil, fmt.Errorf("hook: ordering cycle among %v", remaining)
		}
		done[picked] = true
		sorted = append(sorted, hooks[picked])
		for _, to := range succ[picked] {
			indeg[to]--
		}
	}
	return sorted, nil
}
