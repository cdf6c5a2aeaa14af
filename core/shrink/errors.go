// core/shrink/errors.go
package shrink

import "errors"

// ErrInvalidAnnotation covers every way an annotation can fail to identify a
// single contiguous splice on the morphology. The specific causes below wrap
// it, so callers can match either the family or the exact cause.
var ErrInvalidAnnotation = errors.New("invalid annotation")

var (
	// ErrNoAxon: the morphology has no axonal root section.
	ErrNoAxon = wrap("neuron has no axon")
	// ErrTooManyAxons: more than one axonal root section.
	ErrTooManyAxons = wrap("neuron has more than one axon")
	// ErrNoSectionToCut: no main-branch section crosses the cut or graft plane.
	ErrNoSectionToCut = wrap("no section to cut")
	// ErrSpliceForked: the splice region is not a single unbranched path.
	ErrSpliceForked = wrap("splice region crosses a branch point")
)

// ErrInvalidLength is returned for target lengths outside [0, originalLength].
var ErrInvalidLength = errors.New("target length outside [0, original length]")

func wrap(msg string) error {
	return &annotationError{msg: msg}
}

type annotationError struct{ msg string }

func (e *annotationError) Error() string { return e.msg }
func (e *annotationError) Unwrap() error { return ErrInvalidAnnotation }
