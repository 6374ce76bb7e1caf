package synth

import "fmt"

// SynthesisError reports a synthesis attempt that produced no usable meal,
// whether the generator failed outright or returned a malformed response.
type SynthesisError struct {
	Stage string // "generate", "parse" or "validate"
	Err   error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("meal synthesis failed at %s: %v", e.Stage, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }
