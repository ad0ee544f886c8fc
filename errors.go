package inkdraw

import "github.com/inkdraw/inkdraw/canvas"

// UsageError reports a drawing call with invalid arguments or a call
// that is not legal in the current state. It surfaces at the call
// site, before anything is recorded.
type UsageError = canvas.UsageError

// ResourceError reports a failure involving an external resource such
// as a font file, an image, or an output path.
type ResourceError = canvas.ResourceError

// UnbalancedRestoreError reports a Restore call with no matching Save.
type UnbalancedRestoreError = canvas.UnbalancedRestoreError
