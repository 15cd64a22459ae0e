package robot

import (
	"errors"
	"fmt"
)

// ErrTransportInit indicates the serial port could not be opened.
// CLI programs treat it as fatal and exit nonzero.
var ErrTransportInit = errors.New("transport init failed")

// ActuationError reports a position write rejected by the transport for
// a single joint. Batch operations log it and keep issuing commands to
// the remaining joints.
type ActuationError struct {
	Joint JointName
	Err   error
}

func (e *ActuationError) Error() string {
	return fmt.Sprintf("actuation failed for joint %s: %v", e.Joint, e.Err)
}

func (e *ActuationError) Unwrap() error {
	return e.Err
}

// FeedbackError reports a failed position or status read for a single
// joint. The reading is treated as unavailable for that tick.
type FeedbackError struct {
	Joint JointName
	Err   error
}

func (e *FeedbackError) Error() string {
	return fmt.Sprintf("feedback failed for joint %s: %v", e.Joint, e.Err)
}

func (e *FeedbackError) Unwrap() error {
	return e.Err
}
