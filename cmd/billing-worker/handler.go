package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmynk/republica/internal/finance"
	"github.com/mmynk/republica/internal/queue"
)

// permanentBillingErrors cannot be fixed by running the same request again.
var permanentBillingErrors = []error{
	finance.ErrUnauthenticated,
	finance.ErrForbidden,
	finance.ErrInvalidInput,
	finance.ErrNoTemplates,
	finance.ErrEmptyGroup,
	finance.ErrAlreadyBilled,
}

// newBillingHandler runs monthly billing on behalf of the requesting member.
func newBillingHandler(ledger *finance.Service) queue.Handler {
	return func(ctx context.Context, msg *queue.BillingRequest) error {
		caller, err := ledger.IdentityOf(ctx, msg.RequestedBy)
		if err != nil {
			return classify(err)
		}

		res, err := ledger.RunMonthlyBilling(ctx, caller, finance.BillingOptions{
			Period:         msg.Period,
			AllowDuplicate: msg.AllowDuplicate,
		})
		if err != nil {
			return classify(err)
		}

		slog.InfoContext(ctx, "Billing request completed",
			"group_id", caller.GroupID,
			"period", res.Period,
			"generated", res.Generated,
			"skipped", res.Skipped,
		)
		return nil
	}
}

func classify(err error) error {
	for _, target := range permanentBillingErrors {
		if errors.Is(err, target) {
			return queue.Permanent(err)
		}
	}
	return err
}
