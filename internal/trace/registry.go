package trace

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dbsmedya/framelog/internal/frame"
)

// Registry misuse errors. Both indicate a programming error at the call
// site and are surfaced immediately, never retried.
var (
	ErrAlreadyInstalled = errors.New("operation already installed")
	ErrNotInstalled     = errors.New("operation not installed")
)

// OperationDescriptor records one installed operation: its target kind,
// name, and the original implementation stored at install time. Wrappers
// must always invoke Original, never re-resolve through the dispatch
// table, so instrumented operations calling each other internally do not
// re-enter instrumentation.
type OperationDescriptor struct {
	Kind     frame.Kind
	Name     string
	Original frame.Op
}

// WrapFunc builds the instrumented wrapper for an operation from its
// descriptor.
type WrapFunc func(desc OperationDescriptor) frame.Op

type opKey struct {
	kind frame.Kind
	name string
}

// Registry tracks which operations are currently wrapped and holds their
// originals so they can be restored. A single mutex guards every state
// transition; install/uninstall and suspend/resume are atomic per
// operation and safe to call from concurrent goroutines.
//
// The live dispatch table itself is process-wide (it is the patched
// operation surface), so two registries must not wrap overlapping
// operations at the same time.
type Registry struct {
	mu        sync.Mutex
	installed map[opKey]OperationDescriptor
	// setAside stacks the wrapped implementations removed by Suspend,
	// one layer per nesting level, so Resume restores the exact closures
	// rather than rebuilding them from configuration.
	setAside []map[opKey]frame.Op
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{installed: make(map[opKey]OperationDescriptor)}
}

// Install stores the current implementation of the operation and replaces
// it with the wrapper produced by build. Installing the same operation
// twice without an intervening Uninstall fails with ErrAlreadyInstalled.
func (r *Registry) Install(kind frame.Kind, name string, build WrapFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.installLocked(kind, name, build)
}

func (r *Registry) installLocked(kind frame.Kind, name string, build WrapFunc) error {
	k := opKey{kind: kind, name: name}
	if _, exists := r.installed[k]; exists {
		return fmt.Errorf("%s operation %q: %w", kind, name, ErrAlreadyInstalled)
	}
	original, ok := frame.Resolve(kind, name)
	if !ok {
		return fmt.Errorf("unknown %s operation %q", kind, name)
	}
	desc := OperationDescriptor{Kind: kind, Name: name, Original: original}
	if _, err := frame.Replace(kind, name, build(desc)); err != nil {
		return fmt.Errorf("failed to wrap %s operation %q: %w", kind, name, err)
	}
	r.installed[k] = desc
	return nil
}

// Uninstall restores the stored original implementation and drops the
// descriptor. Fails with ErrNotInstalled if the operation is not wrapped.
func (r *Registry) Uninstall(kind frame.Kind, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := opKey{kind: kind, name: name}
	desc, exists := r.installed[k]
	if !exists {
		return fmt.Errorf("%s operation %q: %w", kind, name, ErrNotInstalled)
	}
	if _, err := frame.Replace(kind, name, desc.Original); err != nil {
		return fmt.Errorf("failed to restore %s operation %q: %w", kind, name, err)
	}
	delete(r.installed, k)
	return nil
}

// InstallAll wraps every operation in the allow-list. On any failure the
// operations installed so far by this call are rolled back, so a failed
// bulk install never leaks patched state.
func (r *Registry) InstallAll(allow map[frame.Kind][]string, build WrapFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var done []opKey
	for _, kind := range []frame.Kind{frame.KindFrame, frame.KindSeries} {
		for _, name := range allow[kind] {
			if err := r.installLocked(kind, name, build); err != nil {
				for _, k := range done {
					desc := r.installed[k]
					_, _ = frame.Replace(k.kind, k.name, desc.Original)
					delete(r.installed, k)
				}
				return err
			}
			done = append(done, opKey{kind: kind, name: name})
		}
	}
	return nil
}

// UninstallAll restores every installed operation and clears any pending
// suspend layers. It is safe to call regardless of how much of an
// allow-list was ever installed.
func (r *Registry) UninstallAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, desc := range r.installed {
		_, _ = frame.Replace(k.kind, k.name, desc.Original)
		delete(r.installed, k)
	}
	r.setAside = nil
}

// Suspend swaps every installed operation back to its original
// implementation, keeping the wrapped closure on a stack. Nestable to
// arbitrary depth.
func (r *Registry) Suspend() {
	r.mu.Lock()
	defer r.mu.Unlock()
	layer := make(map[opKey]frame.Op, len(r.installed))
	for k, desc := range r.installed {
		current, ok := frame.Resolve(k.kind, k.name)
		if !ok {
			continue
		}
		layer[k] = current
		_, _ = frame.Replace(k.kind, k.name, desc.Original)
	}
	r.setAside = append(r.setAside, layer)
}

// Resume restores the wrapped implementations set aside by the most
// recent Suspend. Resuming with no pending suspend is a no-op.
func (r *Registry) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.setAside) == 0 {
		return
	}
	layer := r.setAside[len(r.setAside)-1]
	r.setAside = r.setAside[:len(r.setAside)-1]
	for k, wrapped := range layer {
		_, _ = frame.Replace(k.kind, k.name, wrapped)
	}
}

// SuspendDepth returns the current suspend nesting depth.
func (r *Registry) SuspendDepth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.setAside)
}

// OriginalOf returns the stored original implementation for an installed
// operation. Used by the capture path to copy a container without
// re-entering instrumentation.
func (r *Registry) OriginalOf(kind frame.Kind, name string) (frame.Op, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	desc, ok := r.installed[opKey{kind: kind, name: name}]
	if !ok {
		return nil, false
	}
	return desc.Original, true
}

// Installed returns descriptors for every wrapped operation, ordered by
// kind then name.
func (r *Registry) Installed() []OperationDescriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	descs := make([]OperationDescriptor, 0, len(r.installed))
	for _, desc := range r.installed {
		descs = append(descs, desc)
	}
	sort.Slice(descs, func(i, j int) bool {
		if descs[i].Kind != descs[j].Kind {
			return descs[i].Kind < descs[j].Kind
		}
		return descs[i].Name < descs[j].Name
	})
	return descs
}
