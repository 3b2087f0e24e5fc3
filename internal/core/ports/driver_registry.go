package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
)

// DriverRegistry reads drivers from the document store. Both methods return drivers
// in registry order so that first-match selection is deterministic.
type DriverRegistry interface {
	// FindCovering returns the drivers whose coverage range contains pc.
	FindCovering(ctx context.Context, pc kernel.PostCode) ([]*driver.Driver, error)

	// GetAll returns every registered driver.
	GetAll(ctx context.Context) ([]*driver.Driver, error)
}
