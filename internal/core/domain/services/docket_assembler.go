package services

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
)

// docketNamespace scopes docket numbers so they never collide with other name-based UUIDs.
var docketNamespace = uuid.MustParse("0b6f3b4e-7d8a-4f55-9a0c-5c1f2f0f6d21")

// DocketAssembler assigns the driver to an order and builds its docket.
//
// Business rules:
//   - Commission is round(rate × total, 2)
//   - The docket number is derived from store, date and order id, so assembling the
//     same order twice yields the same number
//   - The rendered artifact is stored verbatim
//
// Example usage:
//
//	assembler := services.NewDocketAssembler(renderer)
//	docket, err := assembler.Assemble(ctx, o, d)
//	if err != nil {
//	    return err
//	}
//	err = o.AttachDocket(docket)
type DocketAssembler struct {
	renderer ports.DocumentRenderer
}

func NewDocketAssembler(renderer ports.DocumentRenderer) DocketAssembler {
	return DocketAssembler{renderer: renderer}
}

// Assemble assigns d to o and renders the docket. It does not attach the docket.
func (a DocketAssembler) Assemble(ctx context.Context, o *order.Order, d *driver.Driver) (*order.Docket, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	assignment, err := d.Assignment()
	if err != nil {
		return nil, err
	}
	if err = o.AssignDriver(assignment); err != nil {
		return nil, err
	}

	number := DocketNumber(o)
	artifact, err := a.renderer.Render(ctx, order.DocketFields(number, o))
	if err != nil {
		return nil, fmt.Errorf("render docket for order %d: %w", o.ID(), err)
	}

	return order.NewDocket(number, o, artifact)
}

// DocketNumber is the name-based UUID of the order's store, date and id.
func DocketNumber(o *order.Order) uuid.UUID {
	return uuid.NewSHA1(docketNamespace, fmt.Appendf(nil, "%s/%s/%d", o.StoreID(), o.Date(), o.ID()))
}
