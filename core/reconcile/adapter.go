package reconcile

import (
	"sync"

	"go.uber.org/zap"
)

// Driver observes a reconciliation call once its effects are queued.
// Drivers may queue further effects on rc.Effects or start nested
// reconciliation of their own.
type Driver interface {
	OnReconciled(rc *Context)
}

// DriverFunc adapts a function to the Driver interface.
type DriverFunc func(rc *Context)

// OnReconciled calls f.
func (f DriverFunc) OnReconciled(rc *Context) {
	f(rc)
}

// LogDriver writes one structured log line per top-level call.
type LogDriver struct {
	Logger *zap.Logger
	// Nested also logs nested calls at debug level.
	Nested bool
}

// NewLogDriver creates a LogDriver. A nil logger is replaced by a no-op.
func NewLogDriver(l *zap.Logger, nested bool) *LogDriver {
	if l == nil {
		l = zap.NewNop()
	}
	return &LogDriver{Logger: l, Nested: nested}
}

// OnReconciled logs the call.
func (d *LogDriver) OnReconciled(rc *Context) {
	if rc.Depth > 0 {
		if d.Nested {
			d.Logger.Debug("Reconciled nested children",
				zap.String("tag", rc.Next.Tag),
				zap.Int("depth", rc.Depth),
			)
		}
		return
	}

	s := Summarize(rc.Effects.Effects())
	d.Logger.Info("Reconciled children",
		zap.String("tag", rc.Next.Tag),
		zap.String("flag", rc.Next.Flag.String()),
		zap.Int("effects", s.Total),
		zap.Int("creates", s.Creates),
		zap.Int("moves", s.Moves),
		zap.Int("recycled", s.Recycled),
		zap.Int("updates", s.Updates),
		zap.Int("removes", s.Removes),
		zap.Int("replaces", s.Replaces),
	)
}

// StatsDriver accumulates counters across passes.
type StatsDriver struct {
	mu     sync.Mutex
	passes int
	calls  int
	last   Summary
}

// OnReconciled records the call.
func (d *StatsDriver) OnReconciled(rc *Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls++
	if rc.Depth == 0 {
		d.passes++
		d.last = Summarize(rc.Effects.Effects())
	}
}

// Passes returns the number of top-level calls observed.
func (d *StatsDriver) Passes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.passes
}

// Calls returns the number of calls observed, nested ones included.
func (d *StatsDriver) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

// Last returns the summary of the most recent top-level call.
func (d *StatsDriver) Last() Summary {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}
