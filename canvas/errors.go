package canvas

import "fmt"

// UsageError reports a drawing call with invalid arguments or a call
// that is not legal in the current state. It surfaces at the call
// site, before anything is recorded.
type UsageError struct {
	Op      string
	Message string
}

func (e *UsageError) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Usagef builds a UsageError with a formatted message.
func Usagef(op, format string, args ...any) *UsageError {
	return &UsageError{Op: op, Message: fmt.Sprintf(format, args...)}
}

// ResourceError reports a failure involving an external resource such
// as a font file, an image, or an output path.
type ResourceError struct {
	Op   string
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// UnbalancedRestoreError reports a Restore call with no matching Save.
type UnbalancedRestoreError struct{}

func (*UnbalancedRestoreError) Error() string {
	return "can't restore graphics state: no matching save()"
}
