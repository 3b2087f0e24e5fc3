package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCloseDayCommandIsNotConstructed = errors.New(
	"CloseDayCommand must be created via NewCloseDayCommand constructor",
)

// CloseDayCommand syncs a business date and then records its summary.
type CloseDayCommand struct { //nolint:recvcheck //using for validation
	date kernel.BusinessDate

	guard guard.ConstructorGuard
}

func NewCloseDayCommand(date kernel.BusinessDate) (CloseDayCommand, error) {
	if err := date.Validate(); err != nil {
		return CloseDayCommand{}, err
	}

	return CloseDayCommand{date: date, guard: guard.NewConstructorGuard()}, nil
}

func (c CloseDayCommand) Validate() error {
	return c.guard.Validate(ErrCloseDayCommandIsNotConstructed)
}

func (c CloseDayCommand) Date() kernel.BusinessDate {
	return c.date
}
