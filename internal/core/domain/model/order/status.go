package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the fulfillment stage of an order.
//
// State transitions:
//
//	Formatted ──┬──> Assigned ──> Docketed
//	            │        │
//	            └────────┘
//	       (reassignment allowed)
//
// Items may be appended while Formatted or Assigned. Docketed is final: once a
// docket is attached the order is immutable.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Formatted is an order built from source rows or a new-order payload,
	// without a driver.
	Formatted

	// Assigned has a driver and a commission computed from the running total.
	Assigned

	// Docketed has its docket attached.
	Docketed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Formatted: "Formatted",
		Assigned:  "Assigned",
		Docketed:  "Docketed",
	}
}

// Validate rejects Unknown and out-of-range values, e.g. a status read from storage.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateAddItem checks that the order still accepts items.
func (s Status) ValidateAddItem() error {
	if s != Formatted && s != Assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to add items", s.String()),
		)
	}
	return nil
}

// ValidateCanHaveDriver checks that a driver is present exactly when the status requires one.
func (s Status) ValidateCanHaveDriver(driver bool) error {
	if driver && s == Formatted {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a driver", s.String()),
		)
	}

	if !driver && (s == Assigned || s == Docketed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no driver", s.String()),
		)
	}

	return nil
}

// Assign transitions Formatted or Assigned to Assigned.
func (s Status) Assign() (Status, error) {
	if s != Formatted && s != Assigned {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign", s.String()),
		)
	}

	return Assigned, nil
}

// Docket transitions Assigned to Docketed.
func (s Status) Docket() (Status, error) {
	if s != Assigned {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to attach a docket", s.String()),
		)
	}

	return Docketed, nil
}
