package tailoring

import "fmt"

// TailoringError is the pipeline's one hard failure mode: the main tailoring
// call succeeded but its response was not valid JSON. RawPath points at the
// diagnostic file holding the model's verbatim output.
type TailoringError struct {
	RawPath string
	Cause   error
}

func (e *TailoringError) Error() string {
	return fmt.Sprintf("failed to parse tailored resume as JSON, raw output saved to %s: %v", e.RawPath, e.Cause)
}

func (e *TailoringError) Unwrap() error {
	return e.Cause
}
