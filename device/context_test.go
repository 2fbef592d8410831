package device

import (
	"errors"
	"testing"
)

// identityAPI is a test double that only answers DeviceIdentity.
type identityAPI struct {
	calls    int
	identity string
	status   Status
}

func (a *identityAPI) CreateProgram(*Context, string) (Program, Status) { return nil, InvalidValue }
func (a *identityAPI) BuildProgram(*Context, Program, string) Status    { return InvalidValue }
func (a *identityAPI) WaitBuild(*Context, Program) Status               { return InvalidValue }
func (a *identityAPI) ReleaseProgram(Program)                           {}
func (a *identityAPI) ReleaseKernel(Kernel)                             {}

func (a *identityAPI) DeviceIdentity(*Context) (string, Status) {
	a.calls++
	return a.identity, a.status
}

var _ API = (*identityAPI)(nil)

// TestContext_Identity_ComputedOnce verifies the identity string is computed
// through the API exactly once and cached on the context.
func TestContext_Identity_ComputedOnce(t *testing.T) {
	api := &identityAPI{identity: "gfx906 [Radeon VII]", status: Success}
	gctx := &Context{Index: 2}

	for i := 0; i < 3; i++ {
		id, err := gctx.Identity(api)
		if err != nil {
			t.Fatalf("Identity() call %d returned error: %v", i+1, err)
		}
		if id != "gfx906 [Radeon VII]" {
			t.Fatalf("Identity() = %q, want %q", id, "gfx906 [Radeon VII]")
		}
	}

	if api.calls != 1 {
		t.Errorf("DeviceIdentity called %d times, want 1", api.calls)
	}
}

// TestContext_Identity_FailureNotCached verifies a failed computation is
// retried on the next call instead of being cached.
func TestContext_Identity_FailureNotCached(t *testing.T) {
	api := &identityAPI{status: DeviceNotAvailable}
	gctx := &Context{Index: 0}

	_, err := gctx.Identity(api)
	if err == nil {
		t.Fatal("Identity() = nil error, want failure")
	}
	if !errors.Is(err, DeviceNotAvailable) {
		t.Errorf("errors.Is(err, DeviceNotAvailable) = false, want true")
	}

	api.identity = "pitcairn [R9 270]"
	api.status = Success

	id, err := gctx.Identity(api)
	if err != nil {
		t.Fatalf("Identity() after recovery returned error: %v", err)
	}
	if id != "pitcairn [R9 270]" {
		t.Errorf("Identity() = %q, want %q", id, "pitcairn [R9 270]")
	}
	if api.calls != 2 {
		t.Errorf("DeviceIdentity called %d times, want 2", api.calls)
	}
}
