package omni

import "fmt"

// InvariantError reports a graph mutation that would break a model invariant,
// such as placing a non-supertype where only a supertype is allowed.
type InvariantError struct {
	Op      string
	Type    Type
	Message string
}

func (e *InvariantError) Error() string {
	if e.Type == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Message, Describe(e.Type))
}

// NewInvariantError returns an InvariantError for op concerning t.
func NewInvariantError(op string, t Type, format string, args ...any) *InvariantError {
	return &InvariantError{Op: op, Type: t, Message: fmt.Sprintf(format, args...)}
}
