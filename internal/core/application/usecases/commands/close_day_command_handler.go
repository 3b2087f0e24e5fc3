package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// CloseDayResult combines the two steps of closing a day.
type CloseDayResult struct {
	Sync     SyncDayResult
	EndOfDay EndOfDayResult
}

// CloseDayCommandHandler runs SyncDay followed by EndOfDay for one date. Both steps
// are idempotent per date, so a closed day can be closed again safely.
type CloseDayCommandHandler struct {
	syncDay  SyncDayCommandHandler
	endOfDay EndOfDayCommandHandler
}

func NewCloseDayCommandHandler(syncDay SyncDayCommandHandler, endOfDay EndOfDayCommandHandler) CloseDayCommandHandler {
	return CloseDayCommandHandler{syncDay: syncDay, endOfDay: endOfDay}
}

func (h CloseDayCommandHandler) Handle(ctx context.Context, session ports.Session, cmd CloseDayCommand) (CloseDayResult, error) {
	if err := cmd.Validate(); err != nil {
		return CloseDayResult{}, err
	}

	syncCmd, err := NewSyncDayCommand(cmd.Date())
	if err != nil {
		return CloseDayResult{}, err
	}

	synced, err := h.syncDay.Handle(ctx, session, syncCmd)
	if err != nil {
		return CloseDayResult{}, err
	}

	endCmd, err := NewEndOfDayCommand(cmd.Date())
	if err != nil {
		return CloseDayResult{Sync: synced}, err
	}

	summarized, err := h.endOfDay.Handle(ctx, session, endCmd)
	if err != nil {
		return CloseDayResult{Sync: synced}, err
	}

	return CloseDayResult{Sync: synced, EndOfDay: summarized}, nil
}
