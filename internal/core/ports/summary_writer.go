package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/summary"
)

// SummaryWriter inserts a daily summary row into one relational target.
//
// A target rejecting a second row for the same date returns errs.ErrDuplicateWrite.
type SummaryWriter interface {
	// Target names the table for logs and results, e.g. "head office".
	Target() string

	WriteSummary(ctx context.Context, s summary.DailySummary) error
}
