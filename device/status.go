package device

import "fmt"

// Status is a device-API status code. The vocabulary mirrors the OpenCL
// error space: zero means success, failures are negative.
type Status int32

// Status codes returned by API implementations.
const (
	Success              Status = 0
	DeviceNotFound       Status = -1
	DeviceNotAvailable   Status = -2
	CompilerNotAvailable Status = -3
	OutOfResources       Status = -5
	OutOfHostMemory      Status = -6
	BuildProgramFailure  Status = -11
	InvalidValue         Status = -30
	InvalidDevice        Status = -33
	InvalidContext       Status = -34
	InvalidBinary        Status = -42
	InvalidBuildOptions  Status = -43
	InvalidProgram       Status = -44
	InvalidKernelName    Status = -46
)

// String translates a status code into its symbolic name.
func (s Status) String() string {
	switch s {
	case Success:
		return "CL_SUCCESS"
	case DeviceNotFound:
		return "CL_DEVICE_NOT_FOUND"
	case DeviceNotAvailable:
		return "CL_DEVICE_NOT_AVAILABLE"
	case CompilerNotAvailable:
		return "CL_COMPILER_NOT_AVAILABLE"
	case OutOfResources:
		return "CL_OUT_OF_RESOURCES"
	case OutOfHostMemory:
		return "CL_OUT_OF_HOST_MEMORY"
	case BuildProgramFailure:
		return "CL_BUILD_PROGRAM_FAILURE"
	case InvalidValue:
		return "CL_INVALID_VALUE"
	case InvalidDevice:
		return "CL_INVALID_DEVICE"
	case InvalidContext:
		return "CL_INVALID_CONTEXT"
	case InvalidBinary:
		return "CL_INVALID_BINARY"
	case InvalidBuildOptions:
		return "CL_INVALID_BUILD_OPTIONS"
	case InvalidProgram:
		return "CL_INVALID_PROGRAM"
	case InvalidKernelName:
		return "CL_INVALID_KERNEL_NAME"
	default:
		return fmt.Sprintf("CL_UNKNOWN_ERROR(%d)", int32(s))
	}
}

// Error makes a non-success Status usable as an error value, in the manner
// of syscall.Errno.
func (s Status) Error() string {
	return s.String()
}

// Err returns nil for Success and the status itself otherwise.
func (s Status) Err() error {
	if s == Success {
		return nil
	}
	return s
}
