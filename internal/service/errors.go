package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/republica/internal/finance"
)

// toConnectError maps a ledger failure onto a Connect status code.
func toConnectError(procedure string, err error) error {
	code := connect.CodeInternal
	switch {
	case errors.Is(err, finance.ErrUnauthenticated):
		code = connect.CodeUnauthenticated
	case errors.Is(err, finance.ErrForbidden):
		code = connect.CodePermissionDenied
	case errors.Is(err, finance.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, finance.ErrInvalidInput), errors.Is(err, finance.ErrAmbiguousTarget):
		code = connect.CodeInvalidArgument
	case errors.Is(err, finance.ErrAlreadySettled),
		errors.Is(err, finance.ErrNoPendingDebt),
		errors.Is(err, finance.ErrNoTemplates),
		errors.Is(err, finance.ErrEmptyGroup):
		code = connect.CodeFailedPrecondition
	case errors.Is(err, finance.ErrAlreadyBilled):
		code = connect.CodeAlreadyExists
	case errors.Is(err, finance.ErrConflict):
		code = connect.CodeAborted
	}

	if code == connect.CodeInternal {
		slog.Error("Ledger operation failed", "procedure", procedure, "error", err)
	}
	return connect.NewError(code, err)
}
