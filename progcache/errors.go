package progcache

import "errors"

// Sentinel errors for program requests.
var (
	// ErrNilAPI indicates New was given a nil device API.
	ErrNilAPI = errors.New("progcache: device API is nil")

	// ErrNilGenerator indicates New was given a nil instruction generator.
	ErrNilGenerator = errors.New("progcache: instruction generator is nil")

	// ErrNilContext indicates a request carried a nil device context.
	ErrNilContext = errors.New("progcache: device context is nil")

	// ErrMissingMarker indicates the source template does not contain the
	// insertion marker. This is a configuration error: no device call has
	// happened when it is reported.
	ErrMissingMarker = errors.New("progcache: source template is missing the insertion marker")
)
