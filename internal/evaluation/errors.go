package evaluation

import (
	"errors"
	"fmt"
)

// ErrAlreadyVoted means the device already submitted an evaluation on
// the current local calendar day. Maps to 409 at the HTTP boundary.
var ErrAlreadyVoted = errors.New("device already voted today")

// ValidationError marks a submission missing one of the required
// fields. Client-visible and distinguishable from server errors.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
