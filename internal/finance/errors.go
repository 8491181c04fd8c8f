package finance

import (
	"errors"
	"fmt"

	"github.com/mmynk/republica/internal/storage"
)

// Failures returned by the ledger engine. Callers match them with errors.Is.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("permission denied")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrAmbiguousTarget = errors.New("exactly one of obligation or member must be given")
	ErrAlreadySettled  = errors.New("obligation already settled")
	ErrNoPendingDebt   = errors.New("member has no pending debt")
	ErrNoTemplates     = errors.New("no expense templates configured")
	ErrEmptyGroup      = errors.New("group has no members")
	ErrAlreadyBilled   = errors.New("templates already billed for period")
	ErrConflict        = errors.New("concurrent update conflict")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// translate maps storage failures onto the engine's taxonomy.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, storage.ErrConflict):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, storage.ErrAlreadyBilled):
		return fmt.Errorf("%w: %w", ErrAlreadyBilled, err)
	case errors.Is(err, storage.ErrAmountOutOfRange):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
