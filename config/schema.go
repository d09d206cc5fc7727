package config

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/chazu/lazyk/graph"
)

// schema bounds every field a TOML config file can set. Node and root
// capacities get generous but finite ranges; a config outside them is
// almost certainly a typo (e.g. a missing digit), not an intentional
// extreme value, so it's rejected rather than clamped. The node_capacity
// floor matches graph.MinNodeCapacity exactly: anything smaller can't
// even finish constructing the heap's fixed startup state.
var schema = fmt.Sprintf(`
#Config: {
	node_capacity: int & >=%d & <=134217728
	root_capacity: int & >=16 & <=1000000
	verbose:       bool
	cache_path:    string & !=""
}
`, graph.MinNodeCapacity)

// Validate checks cfg against the #Config CUE schema, returning a
// descriptive error for the first constraint violation.
func Validate(cfg Config) error {
	ctx := cuecontext.New()

	schemaVal := ctx.CompileString(schema)
	if err := schemaVal.Err(); err != nil {
		return fmt.Errorf("internal schema error: %w", err)
	}
	def := schemaVal.LookupPath(cue.ParsePath("#Config"))

	instance := ctx.Encode(cfg)
	if err := instance.Err(); err != nil {
		return fmt.Errorf("encoding config value: %w", err)
	}

	unified := def.Unify(instance)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
