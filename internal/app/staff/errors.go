package staff

import (
	"errors"
	"fmt"

	"github.com/dalemusser/staffhub/internal/app/store"
	"github.com/dalemusser/staffhub/internal/domain/models"
)

// Error classes callers branch on with errors.Is.
var (
	ErrValidation = models.ErrValidation
	ErrInvalidID  = store.ErrInvalidID
	ErrNotFound   = store.ErrNotFound
	ErrDuplicate  = store.ErrDuplicate
)

// PartialFailureError reports a multi-step write that stopped half way and
// could not be undone. The first step's effect is still in the store.
type PartialFailureError struct {
	Op           string
	Committed    string // what is left behind, e.g. "metric 65a..."
	Err          error  // the step that failed
	Compensation error  // the undo that also failed
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s: partial failure (%s left in place): %v; undo failed: %v",
		e.Op, e.Committed, e.Err, e.Compensation)
}

func (e *PartialFailureError) Unwrap() []error {
	return []error{e.Err, e.Compensation}
}

// IsPartialFailure reports whether err is or wraps a PartialFailureError.
func IsPartialFailure(err error) bool {
	var pf *PartialFailureError
	return errors.As(err, &pf)
}

func invalid(field, msg string) error {
	return &models.ValidationError{Field: field, Msg: msg}
}
