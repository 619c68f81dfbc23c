package runtime

import (
	"context"
	"fmt"
	goruntime "runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/specialistvlad/beanbridge/internal/beanid"
	"github.com/specialistvlad/beanbridge/internal/jsonbean"
	"github.com/specialistvlad/beanbridge/internal/registry"
)

// Name is the identity of the runtime bean. Its domain is left to the
// registry's default.
var Name = beanid.MustParse(":type=Runtime")

// Module implements the app.Module interface for this package.
type Module struct{}

// Register registers a Runtime bean.
func (m *Module) Register(ctx context.Context, srv registry.Server) error {
	_, err := srv.Register(ctx, New(), Name)
	return err
}

// MemoryStats is the subset of runtime.MemStats the bean exposes.
type MemoryStats struct {
	Alloc       uint64 `cty:"alloc"`
	TotalAlloc  uint64 `cty:"total_alloc"`
	Sys         uint64 `cty:"sys"`
	HeapObjects uint64 `cty:"heap_objects"`
	NumGC       uint32 `cty:"num_gc"`
}

// Runtime exposes the Go runtime of the current process.
type Runtime struct {
	jsonbean.Marker

	started time.Time

	mu        sync.Mutex
	gcPercent int
}

func New() *Runtime {
	// SetGCPercent is the only way to read the current setting.
	current := debug.SetGCPercent(-1)
	debug.SetGCPercent(current)
	return &Runtime{started: time.Now(), gcPercent: current}
}

func (r *Runtime) Description() string {
	return "Go runtime of the current process"
}

func (r *Runtime) GetGoVersion() string {
	return goruntime.Version()
}

func (r *Runtime) GetNumCPU() int {
	return goruntime.NumCPU()
}

func (r *Runtime) GetNumGoroutine() int {
	return goruntime.NumGoroutine()
}

func (r *Runtime) GetUptime() time.Duration {
	return time.Since(r.started).Round(time.Millisecond)
}

func (r *Runtime) GetMemory() MemoryStats {
	var ms goruntime.MemStats
	goruntime.ReadMemStats(&ms)
	return MemoryStats{
		Alloc:       ms.Alloc,
		TotalAlloc:  ms.TotalAlloc,
		Sys:         ms.Sys,
		HeapObjects: ms.HeapObjects,
		NumGC:       ms.NumGC,
	}
}

func (r *Runtime) GetGCPercent() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gcPercent
}

// SetGCPercent sets the garbage collection target percentage. A negative
// value below -1 is rejected; -1 disables the collector.
func (r *Runtime) SetGCPercent(percent int) error {
	if percent < -1 {
		return fmt.Errorf("invalid GC percent %d", percent)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	debug.SetGCPercent(percent)
	r.gcPercent = percent
	return nil
}

// GC runs a garbage collection and returns the number of completed cycles.
func (r *Runtime) GC() uint32 {
	goruntime.GC()
	return r.GetMemory().NumGC
}
