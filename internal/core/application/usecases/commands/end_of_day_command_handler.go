package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/summary"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/logger"

	"go.uber.org/zap"
)

// TargetStatus is the outcome of writing the summary to one relational target.
type TargetStatus string

const (
	TargetWritten           TargetStatus = "written"
	TargetAlreadySummarized TargetStatus = "already_summarized"
	TargetFailed            TargetStatus = "failed"
)

// TargetOutcome reports one summary write. Err is set only for TargetFailed.
type TargetOutcome struct {
	Target string
	Status TargetStatus
	Err    error
}

// EndOfDayResult carries the computed summary and what happened at each target.
type EndOfDayResult struct {
	Summary summary.DailySummary
	Targets []TargetOutcome
}

// Summarized reports whether every target now holds a row for the date.
func (r EndOfDayResult) Summarized() bool {
	for _, t := range r.Targets {
		if t.Status == TargetFailed {
			return false
		}
	}
	return len(r.Targets) > 0
}

// EndOfDayCommandHandler aggregates a business date from the document store and
// writes one summary row into each relational target.
//
// Each write stands on its own: a target that rejects the row as a duplicate is
// reported as already summarized, and a target that fails is reported as failed,
// while the remaining targets are still written. The summary is returned whenever
// the aggregation itself succeeded.
//
// Example:
//
//	handler := NewEndOfDayCommandHandler(publisher, log)
//	cmd, _ := NewEndOfDayCommand(date)
//	result, err := handler.Handle(ctx, session, cmd)
//	if err != nil {
//	    // the document store could not be aggregated
//	}
//	fmt.Println(result.Summary.MostPopularProduct())
type EndOfDayCommandHandler struct {
	publisher ports.EventPublisher
	now       func() time.Time
	logger    *zap.Logger
}

func NewEndOfDayCommandHandler(publisher ports.EventPublisher, log *zap.Logger) EndOfDayCommandHandler {
	return EndOfDayCommandHandler{
		publisher: publisher,
		now:       time.Now,
		logger:    logger.Component(log, "end-of-day"),
	}
}

func (h EndOfDayCommandHandler) Handle(ctx context.Context, session ports.Session, cmd EndOfDayCommand) (EndOfDayResult, error) {
	if err := cmd.Validate(); err != nil {
		return EndOfDayResult{}, err
	}

	daily, err := h.summarize(ctx, session.Orders(), cmd)
	if err != nil {
		return EndOfDayResult{}, err
	}

	result := EndOfDayResult{Summary: daily}
	written := false

	for _, target := range session.SummaryTargets() {
		outcome := TargetOutcome{Target: target.Target(), Status: TargetWritten}

		writeErr := target.WriteSummary(ctx, daily)
		switch {
		case writeErr == nil:
			written = true
		case errors.Is(writeErr, errs.ErrDuplicateWrite):
			outcome.Status = TargetAlreadySummarized
			h.logger.Info("summary already recorded",
				zap.String("target", outcome.Target), zap.Stringer("date", daily.Date()))
		default:
			outcome.Status = TargetFailed
			outcome.Err = writeErr
			h.logger.Error("failed to record summary",
				zap.String("target", outcome.Target), zap.Stringer("date", daily.Date()), zap.Error(writeErr))
		}

		result.Targets = append(result.Targets, outcome)
	}

	if written {
		publish(ctx, h.publisher, h.logger, summaryCreatedEvent(daily, h.now()))
	}

	return result, nil
}

func (h EndOfDayCommandHandler) summarize(
	ctx context.Context,
	store ports.OrderRepository,
	cmd EndOfDayCommand,
) (summary.DailySummary, error) {
	agg, err := store.SummarizeDay(ctx, cmd.Date())
	if err != nil {
		return summary.DailySummary{}, err
	}

	if agg.OrderCount == 0 {
		return summary.NoOrders(cmd.Date())
	}

	return summary.NewDailySummary(cmd.Date(), agg.OrderCount, agg.TotalSales, agg.TotalCommission, agg.TopProduct)
}
