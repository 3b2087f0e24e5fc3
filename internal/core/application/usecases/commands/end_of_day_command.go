package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrEndOfDayCommandIsNotConstructed = errors.New(
	"EndOfDayCommand must be created via NewEndOfDayCommand constructor",
)

// EndOfDayCommand computes and records the daily summary of a business date.
type EndOfDayCommand struct { //nolint:recvcheck //using for validation
	date kernel.BusinessDate

	guard guard.ConstructorGuard
}

func NewEndOfDayCommand(date kernel.BusinessDate) (EndOfDayCommand, error) {
	if err := date.Validate(); err != nil {
		return EndOfDayCommand{}, err
	}

	return EndOfDayCommand{date: date, guard: guard.NewConstructorGuard()}, nil
}

func (c EndOfDayCommand) Validate() error {
	return c.guard.Validate(ErrEndOfDayCommandIsNotConstructed)
}

func (c EndOfDayCommand) Date() kernel.BusinessDate {
	return c.date
}
