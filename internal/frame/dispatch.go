package frame

import (
	"fmt"
	"sort"
	"sync"
)

// Op is a raw operation implementation. It receives the target container
// and positional arguments and returns the result container. An Op that
// mutates its target strictly in place returns a nil Container; callers
// that need a result treat the live target as the outcome.
type Op func(target Container, args []interface{}) (Container, error)

// The dispatch table is the live operation surface, the moral equivalent
// of a patchable method set. Typed container methods and Apply resolve
// through it, so replacing an entry reroutes every call site at once.
var (
	dispatchMu sync.RWMutex
	dispatch   = map[Kind]map[string]Op{
		KindFrame:  frameOps(),
		KindSeries: seriesOps(),
	}
)

// Resolve returns the currently registered implementation for the given
// operation, which may be an instrumented wrapper.
func Resolve(kind Kind, name string) (Op, bool) {
	dispatchMu.RLock()
	defer dispatchMu.RUnlock()
	op, ok := dispatch[kind][name]
	return op, ok
}

// Replace swaps the registered implementation for an existing operation
// and returns the previous one. Only operations present in the table can
// be replaced; the surface itself is fixed.
func Replace(kind Kind, name string, op Op) (Op, error) {
	dispatchMu.Lock()
	defer dispatchMu.Unlock()
	prev, ok := dispatch[kind][name]
	if !ok {
		return nil, fmt.Errorf("unknown %s operation %q", kind, name)
	}
	dispatch[kind][name] = op
	return prev, nil
}

// KnownOp reports whether the named operation exists for the given kind.
func KnownOp(kind Kind, name string) bool {
	dispatchMu.RLock()
	defer dispatchMu.RUnlock()
	_, ok := dispatch[kind][name]
	return ok
}

// OperationNames returns the full operation surface for a kind, sorted.
func OperationNames(kind Kind) []string {
	dispatchMu.RLock()
	defer dispatchMu.RUnlock()
	names := make([]string, 0, len(dispatch[kind]))
	for name := range dispatch[kind] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply invokes the named operation on the container through the dispatch
// table. A nil result from an in-place operation is normalized to the
// live container, so callers always get a usable result back.
func Apply(target Container, name string, args ...interface{}) (Container, error) {
	out, err := call(target, name, args...)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = target
	}
	return out, nil
}

// call invokes the named operation without normalizing in-place results.
func call(target Container, name string, args ...interface{}) (Container, error) {
	op, ok := Resolve(target.Kind(), name)
	if !ok {
		return nil, fmt.Errorf("unknown %s operation %q", target.Kind(), name)
	}
	return op(target, args)
}
