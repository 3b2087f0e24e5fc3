package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSyncDayCommandIsNotConstructed = errors.New(
	"SyncDayCommand must be created via NewSyncDayCommand constructor",
)

// SyncDayCommand mirrors one business date from the head office into the document store.
type SyncDayCommand struct { //nolint:recvcheck //using for validation
	date kernel.BusinessDate

	guard guard.ConstructorGuard
}

func NewSyncDayCommand(date kernel.BusinessDate) (SyncDayCommand, error) {
	if err := date.Validate(); err != nil {
		return SyncDayCommand{}, err
	}

	return SyncDayCommand{date: date, guard: guard.NewConstructorGuard()}, nil
}

func (c SyncDayCommand) Validate() error {
	return c.guard.Validate(ErrSyncDayCommandIsNotConstructed)
}

func (c SyncDayCommand) Date() kernel.BusinessDate {
	return c.date
}
