package mock

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jonwraymond/clforge/device"
)

var _ device.API = (*DeviceAPI)(nil)

// DeviceAPI is a mock device binding. Its methods record their arguments,
// then delegate to the corresponding function field.
type DeviceAPI struct {
	CreateProgramF  func(gctx *device.Context, source string) (device.Program, device.Status)
	BuildProgramF   func(gctx *device.Context, p device.Program, options string) device.Status
	WaitBuildF      func(gctx *device.Context, p device.Program) device.Status
	ReleaseProgramF func(p device.Program)
	ReleaseKernelF  func(k device.Kernel)
	DeviceIdentityF func(gctx *device.Context) (string, device.Status)

	mu               sync.Mutex
	creates          int
	builds           int
	waits            int
	sources          []string
	options          []string
	releasedPrograms []device.Program
	releasedKernels  []device.Kernel
}

// NewDeviceAPI returns a mock whose methods succeed: programs get unique
// handles, builds and waits return CL_SUCCESS, and each device index gets a
// distinct identity string.
func NewDeviceAPI() *DeviceAPI {
	var handles atomic.Int64
	return &DeviceAPI{
		CreateProgramF: func(gctx *device.Context, source string) (device.Program, device.Status) {
			return fmt.Sprintf("program-%d", handles.Add(1)), device.Success
		},
		BuildProgramF: func(gctx *device.Context, p device.Program, options string) device.Status {
			return device.Success
		},
		WaitBuildF: func(gctx *device.Context, p device.Program) device.Status {
			return device.Success
		},
		ReleaseProgramF: func(p device.Program) {},
		ReleaseKernelF:  func(k device.Kernel) {},
		DeviceIdentityF: func(gctx *device.Context) (string, device.Status) {
			return fmt.Sprintf("Mock Device gfx900 [%d]", gctx.Index), device.Success
		},
	}
}

// CreateProgram records the source and calls CreateProgramF.
func (m *DeviceAPI) CreateProgram(gctx *device.Context, source string) (device.Program, device.Status) {
	m.mu.Lock()
	m.creates++
	m.sources = append(m.sources, source)
	m.mu.Unlock()
	return m.CreateProgramF(gctx, source)
}

// BuildProgram records the options and calls BuildProgramF.
func (m *DeviceAPI) BuildProgram(gctx *device.Context, p device.Program, options string) device.Status {
	m.mu.Lock()
	m.builds++
	m.options = append(m.options, options)
	m.mu.Unlock()
	return m.BuildProgramF(gctx, p, options)
}

// WaitBuild calls WaitBuildF.
func (m *DeviceAPI) WaitBuild(gctx *device.Context, p device.Program) device.Status {
	m.mu.Lock()
	m.waits++
	m.mu.Unlock()
	return m.WaitBuildF(gctx, p)
}

// ReleaseProgram records the handle and calls ReleaseProgramF.
func (m *DeviceAPI) ReleaseProgram(p device.Program) {
	m.mu.Lock()
	m.releasedPrograms = append(m.releasedPrograms, p)
	m.mu.Unlock()
	m.ReleaseProgramF(p)
}

// ReleaseKernel records the handle and calls ReleaseKernelF.
func (m *DeviceAPI) ReleaseKernel(k device.Kernel) {
	m.mu.Lock()
	m.releasedKernels = append(m.releasedKernels, k)
	m.mu.Unlock()
	m.ReleaseKernelF(k)
}

// DeviceIdentity calls DeviceIdentityF.
func (m *DeviceAPI) DeviceIdentity(gctx *device.Context) (string, device.Status) {
	return m.DeviceIdentityF(gctx)
}

// Creates reports how many programs were created.
func (m *DeviceAPI) Creates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creates
}

// Builds reports how many builds were started.
func (m *DeviceAPI) Builds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.builds
}

// Waits reports how many build waits occurred.
func (m *DeviceAPI) Waits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.waits
}

// Sources returns a copy of every source passed to CreateProgram.
func (m *DeviceAPI) Sources() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sources...)
}

// Options returns a copy of every options string passed to BuildProgram.
func (m *DeviceAPI) Options() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.options...)
}

// ReleasedPrograms returns a copy of every released program handle.
func (m *DeviceAPI) ReleasedPrograms() []device.Program {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]device.Program(nil), m.releasedPrograms...)
}

// ReleasedKernels returns a copy of every released kernel handle.
func (m *DeviceAPI) ReleasedKernels() []device.Kernel {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]device.Kernel(nil), m.releasedKernels...)
}
