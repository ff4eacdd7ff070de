package orderedit

import (
	"context"

	"github.com/softloom/storefront/lib/mylog"
	"github.com/softloom/storefront/services/orderapi"
	"github.com/softloom/storefront/services/ordergateway"
)

// sequencer executes a batch of line-item operations strictly sequentially.
// Line-item mutations touch shared order totals on the backend, so requests
// against one order must never overlap. There is no atomic multi-item
// endpoint: partial commit is a first-class outcome, and the count of
// committed operations is the caller's only way to learn about it.
type sequencer struct {
	gateway ordergateway.OrderGateway
	logger  mylog.Logger
}

func newSequencer(gateway ordergateway.OrderGateway, logger mylog.Logger) *sequencer {
	return &sequencer{
		gateway: gateway,
		logger:  logger,
	}
}

// commit runs the operations in the order supplied and stops at the first
// failure. Remaining operations are never attempted.
func (s *sequencer) commit(c context.Context, orderID string, token string, operations []Operation) orderapi.BatchOutcome {
	committed := 0

	for _, operation := range operations {
		var err error

		switch operation.Kind {
		case OpAdd:
			_, err = s.gateway.AddLineItem(c, orderID, token, operation.VariantID, operation.Quantity)
		case OpUpdateQuantity:
			_, err = s.gateway.UpdateLineItemQuantity(c, orderID, token, operation.LineItemID, operation.Quantity)
		default:
			err = orderapi.NewValidationFailure("unknown operation kind: " + string(operation.Kind))
		}

		if err != nil {
			mutErr := orderapi.AsMutationError(err)
			s.logger.Log(c, orderID, mylog.SeverityWarn, "Batch stopped after %d of %d operations: %s", committed, len(operations), mutErr)

			return orderapi.BatchOutcome{
				ItemsCommitted: committed,
				Failure:        mutErr,
			}
		}

		committed++
	}

	return orderapi.BatchOutcome{ItemsCommitted: committed}
}
