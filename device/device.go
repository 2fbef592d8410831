package device

// Program is an opaque handle to a device program object. Its concrete
// representation belongs to the binding; the forge never inspects one.
type Program any

// Kernel is an opaque handle to an invocable entry point within a built
// program.
type Kernel any

// API is the device binding surface the forge drives.
//
// Contract:
//   - Concurrency: CreateProgram, BuildProgram and WaitBuild are only
//     invoked while the forge holds its build serialization lock, so they
//     never overlap each other. Release calls and DeviceIdentity may arrive
//     from any goroutine at any time.
//   - Blocking: BuildProgram and WaitBuild may block for a substantial,
//     variable duration.
//   - Errors: any non-Success status is terminal for the current request.
//     ReleaseProgram and ReleaseKernel have no failure path.
type API interface {
	// CreateProgram creates an unbuilt program object from source text for
	// gctx's device.
	CreateProgram(gctx *Context, source string) (Program, Status)

	// BuildProgram compiles and links p against gctx's device with the
	// given option string.
	BuildProgram(gctx *Context, p Program, options string) Status

	// WaitBuild blocks until the pending build of p completes and reports
	// the final build status.
	WaitBuild(gctx *Context, p Program) Status

	// ReleaseProgram releases a program handle.
	ReleaseProgram(p Program)

	// ReleaseKernel releases a kernel handle.
	ReleaseKernel(k Kernel)

	// DeviceIdentity reports the stable, human-readable identity string of
	// gctx's device. The identity participates in content hashes, so it
	// must capture everything that distinguishes otherwise-equal devices
	// (model, driver, platform). Called at most once per context by
	// Context.Identity.
	DeviceIdentity(gctx *Context) (string, Status)
}
