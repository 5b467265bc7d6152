package trace

import (
	"fmt"
	"sync"

	"github.com/dbsmedya/framelog/internal/frame"
)

// Reporter consumes one diff record per intercepted call. The core calls
// it exactly once per call, synchronously, before control returns to the
// caller. Implementations live outside the core (see internal/report).
type Reporter interface {
	Report(step StepStats)
}

type nopReporter struct{}

func (nopReporter) Report(StepStats) {}

// Controller is the activation state machine over a Registry. Enable and
// Disable are idempotent; Suspend/Resume nest. The zero-config default
// controller is process-wide for parity with a global toggle, but
// independent controllers can be built for test isolation — as long as
// their registries do not wrap overlapping operations concurrently.
type Controller struct {
	mu       sync.Mutex
	reg      *Registry
	reporter Reporter
	active   bool
	opts     Options
	records  []StepStats
}

// New builds a Controller over its own registry. A nil reporter discards
// records.
func New(rep Reporter) *Controller {
	return NewWithRegistry(NewRegistry(), rep)
}

// NewWithRegistry builds a Controller over an existing registry.
func NewWithRegistry(reg *Registry, rep Reporter) *Controller {
	if rep == nil {
		rep = nopReporter{}
	}
	return &Controller{reg: reg, reporter: rep}
}

var defaultController = New(nil)

// Default returns the process-wide controller.
func Default() *Controller { return defaultController }

// SetReporter replaces the reporter used by subsequent activations. It
// does not affect an activation already in progress, whose wrappers hold
// the reporter they were built with.
func (c *Controller) SetReporter(rep Reporter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rep == nil {
		rep = nopReporter{}
	}
	c.reporter = rep
}

// Registry exposes the controller's registry.
func (c *Controller) Registry() *Registry { return c.reg }

// Active reports whether instrumentation is installed.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Enable installs wrappers for the configured allow-list and starts a
// fresh trace log. Calling Enable while already active is a no-op: the
// operations stay wrapped exactly once and no descriptors leak.
func (c *Controller) Enable(opts Options) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active {
		return nil
	}
	allow := opts.allowlist()
	for kind, names := range allow {
		for _, name := range names {
			if !frame.KnownOp(kind, name) {
				return fmt.Errorf("cannot enable tracing: unknown %s operation %q", kind, name)
			}
		}
	}
	if err := c.reg.InstallAll(allow, c.wrap(opts, c.reporter)); err != nil {
		return fmt.Errorf("failed to install instrumentation: %w", err)
	}
	c.opts = opts
	c.records = nil
	c.active = true
	return nil
}

// Disable restores every original implementation. A no-op when already
// inactive; always safe to call defensively.
func (c *Controller) Disable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return
	}
	c.reg.UninstallAll()
	c.active = false
}

// WithEnabled runs fn with instrumentation active and guarantees Disable
// on every path, including a panic inside fn.
func (c *Controller) WithEnabled(opts Options, fn func() error) error {
	if err := c.Enable(opts); err != nil {
		return err
	}
	defer c.Disable()
	return fn()
}

// Suspend temporarily swaps every wrapped operation back to its original
// implementation. The wrapped closures are preserved, so Resume restores
// prior behavior exactly rather than rebuilding it from configuration.
// Nestable; a no-op when inactive.
func (c *Controller) Suspend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return
	}
	c.reg.Suspend()
}

// Resume undoes the most recent Suspend. Resuming with no pending
// suspend is a no-op, never an error.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return
	}
	c.reg.Resume()
}

// WithSuspended runs fn with instrumentation suspended, restoring the
// wrapped state on every path.
func (c *Controller) WithSuspended(fn func() error) error {
	c.Suspend()
	defer c.Resume()
	return fn()
}

// Records returns a copy of the trace log accumulated since the last
// Enable. The log survives Disable so callers can collect it after a
// scoped run.
func (c *Controller) Records() []StepStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]StepStats, len(c.records))
	copy(out, c.records)
	return out
}

func (c *Controller) persist(st StepStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, st)
}

// Package-level helpers over the default controller, mirroring a global
// enable/disable toggle.

// Enable activates instrumentation on the default controller.
func Enable(opts Options) error { return defaultController.Enable(opts) }

// Disable deactivates instrumentation on the default controller.
func Disable() { defaultController.Disable() }

// WithEnabled scopes activation of the default controller around fn.
func WithEnabled(opts Options, fn func() error) error {
	return defaultController.WithEnabled(opts, fn)
}

// WithSuspended scopes suspension of the default controller around fn.
func WithSuspended(fn func() error) error {
	return defaultController.WithSuspended(fn)
}
