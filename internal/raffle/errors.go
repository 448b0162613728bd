// Package raffle implements the raffle domain: order lifecycle, the sold
// number registry, the prize image gallery and read-side statistics.
package raffle

import (
	"errors"
	"fmt"
)

// ErrOrderNotFound indicates an operation on a nonexistent order.
var ErrOrderNotFound = errors.New("raffle: order not found")

// ValidationError reports rejected input. Handlers map it to a 400 response.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("raffle: %s", e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
