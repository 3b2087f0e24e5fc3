// Package commands contains the operations that change stored state: syncing a
// business date, creating a single order and closing a day.
//
// Handlers receive the ports.Session to work with on every call. The caller opens
// the session, and on failure opens a fresh one before retrying.
package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"go.uber.org/zap"
)

// fulfiller locates a driver for a formatted order and attaches its docket.
type fulfiller struct {
	locator   services.DriverLocator
	assembler services.DocketAssembler
	logger    *zap.Logger
}

func newFulfiller(renderer ports.DocumentRenderer, logger *zap.Logger) fulfiller {
	return fulfiller{
		locator:   services.NewDriverLocator(),
		assembler: services.NewDocketAssembler(renderer),
		logger:    logger,
	}
}

// fulfil takes o from Formatted to Docketed. An order whose post code is not numeric
// gets no driver and fails the operation.
func (f fulfiller) fulfil(ctx context.Context, registry ports.DriverRegistry, o *order.Order) error {
	pc, err := kernel.ParsePostCode(o.Customer().PostCode())
	if err != nil {
		return fmt.Errorf("order %d: %w", o.ID(), err)
	}

	d, err := f.locate(ctx, registry, pc)
	if err != nil {
		return fmt.Errorf("order %d: %w", o.ID(), err)
	}

	docket, err := f.assembler.Assemble(ctx, o, d)
	if err != nil {
		return err
	}

	return o.AttachDocket(docket)
}

func (f fulfiller) locate(ctx context.Context, registry ports.DriverRegistry, pc kernel.PostCode) (*driver.Driver, error) {
	covering, err := registry.FindCovering(ctx, pc)
	if err != nil {
		return nil, err
	}

	d, err := f.locator.PickCovering(pc, covering)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, services.ErrDriverNotFound) {
		return nil, err
	}

	all, err := registry.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	d, err = f.locator.PickNearest(pc, all)
	if err != nil {
		return nil, err
	}

	f.logger.Info("no driver covers post code, using nearest",
		zap.Int("postCode", pc.Int()),
		zap.Int64("driverId", d.ID()))
	return d, nil
}
