package services

import (
	"errors"
	"math"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
)

// ErrDriverNotFound is returned when no driver can be picked, i.e. the candidate list
// is empty or no driver has a complete coverage range.
var ErrDriverNotFound = errors.New("driver not found")

// DriverLocator picks the driver for a post code in two phases.
//
// Selection algorithm:
//   - Coverage match: the first candidate whose range contains the post code
//   - Fallback: among drivers with both endpoints, the one minimising
//     min(|start-pc|, |end-pc|), ties to the first encountered
//
// Overlapping ranges are resolved by first match. Candidates are expected in
// registry order.
//
// Example usage:
//
//	locator := services.NewDriverLocator()
//	d, err := locator.PickCovering(pc, covering)
//	if errors.Is(err, services.ErrDriverNotFound) {
//	    d, err = locator.PickNearest(pc, all)
//	}
type DriverLocator struct{}

func NewDriverLocator() DriverLocator {
	return DriverLocator{}
}

// Locate runs both phases over the full registry.
func (l DriverLocator) Locate(pc kernel.PostCode, drivers []*driver.Driver) (*driver.Driver, error) {
	d, err := l.PickCovering(pc, drivers)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, ErrDriverNotFound) {
		return nil, err
	}

	return l.PickNearest(pc, drivers)
}

// PickCovering returns the first driver covering pc.
func (l DriverLocator) PickCovering(pc kernel.PostCode, candidates []*driver.Driver) (*driver.Driver, error) {
	for _, d := range candidates {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if d.Covers(pc) {
			return d, nil
		}
	}

	return nil, ErrDriverNotFound
}

// PickNearest returns the driver whose range endpoint is closest to pc.
func (l DriverLocator) PickNearest(pc kernel.PostCode, drivers []*driver.Driver) (*driver.Driver, error) {
	var (
		best         *driver.Driver
		bestDistance = math.MaxInt
	)

	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return nil, err
		}

		distance, ok := d.DistanceTo(pc)
		if !ok {
			continue
		}

		if distance < bestDistance {
			bestDistance = distance
			best = d
		}
	}

	if best == nil {
		return nil, ErrDriverNotFound
	}

	return best, nil
}
