package vertex

import (
	"errors"
	"fmt"
)

var (
	// ErrContract is matched by every ContractError. Contract violations are programmer errors and are
	// raised as panics; use errors.Is on a recovered value to tell them apart from other panics.
	ErrContract = errors.New("vertex contract violation")

	// ErrAllocation is returned when the driver fails to create a buffer or vertex array object.
	ErrAllocation = errors.New("vertex buffer allocation failed")

	// ErrUpload is returned when the driver rejects a data upload.
	ErrUpload = errors.New("vertex buffer upload failed")

	// ErrDraw is returned when the driver fails to issue a draw call.
	ErrDraw = errors.New("vertex buffer draw failed")
)

// ContractError describes a violated precondition such as an out of range format count, an oversized
// staged attribute or an exhausted VertexArray capacity.
type ContractError struct {
	// Op is the operation that detected the violation, e.g. "VertexArray.AddVertex".
	Op string
	// Reason describes the violated bound.
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrContract, e.Op, e.Reason)
}

// Is reports whether target is ErrContract.
func (e *ContractError) Is(target error) bool {
	return target == ErrContract
}

// violate panics with a ContractError built from op and the formatted reason.
func violate(op, format string, args ...any) {
	panic(&ContractError{Op: op, Reason: fmt.Sprintf(format, args...)})
}
