package apperrors

import (
	"errors"
	"fmt"

	"github.com/saralbooks/bank_recon_app/internal/core/domain"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrLookupInProgress indicates a suggestion lookup for the same
// transaction is still outstanding; callers should not start another.
var ErrLookupInProgress = errors.New("suggestion lookup already in progress")

// ErrUnavailable indicates the record store could not be reached; the
// operation is retryable and no local state was rolled back.
var ErrUnavailable = errors.New("record store unavailable")

// DuplicateReferenceError reports an external reference already held by
// another transaction, with enough of the conflicting transaction's
// summary for the caller to present it to the user.
type DuplicateReferenceError struct {
	Reference string
	Conflict  domain.ReferenceConflict
}

func (e *DuplicateReferenceError) Error() string {
	return fmt.Sprintf("external reference %q already used by transaction %s (%s, %s)",
		e.Reference, e.Conflict.TransactionID,
		e.Conflict.Date.Format("2006-01-02"), e.Conflict.Amount.String())
}

// Unwrap lets errors.Is(err, ErrDuplicate) keep working on the typed error.
func (e *DuplicateReferenceError) Unwrap() error { return ErrDuplicate }
