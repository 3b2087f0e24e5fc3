package jobs

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultCloseDaySchedule runs five minutes before midnight, store time.
const DefaultCloseDaySchedule = "0 55 23 * * *"

// CloseDayJob closes the store's current business date on a cron schedule.
type CloseDayJob struct {
	handler  commands.CloseDayCommandHandler
	runner   usecases.SessionRunner
	schedule string
	location *time.Location
	clock    func() time.Time
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewCloseDayJob schedules the handler with a six-field cron expression evaluated in
// the store's time zone.
func NewCloseDayJob(
	handler commands.CloseDayCommandHandler,
	runner usecases.SessionRunner,
	schedule string,
	location *time.Location,
	log *zap.Logger,
) *CloseDayJob {
	if schedule == "" {
		schedule = DefaultCloseDaySchedule
	}
	if location == nil {
		location = time.UTC
	}

	return &CloseDayJob{
		handler:  handler,
		runner:   runner,
		schedule: schedule,
		location: location,
		clock:    time.Now,
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(location)),
		logger:   logger.Component(log, "close-day-job"),
	}
}

func (j *CloseDayJob) Name() string {
	return "close day"
}

// Start registers the schedule and starts the scheduler.
func (j *CloseDayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		// Failures are logged inside Run; the next tick tries again.
		_, _ = j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("close day job started",
		zap.String("schedule", j.schedule),
		zap.String("timezone", j.location.String()))
	return nil
}

// Stop stops the scheduler and waits for a running close to finish.
func (j *CloseDayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("close day job stopped")
}

// Run closes the business date the store is currently in. A date that already holds
// orders counts as synced, including one whose only orders were created individually
// during the day; its head office rows are then not read.
func (j *CloseDayJob) Run(ctx context.Context) (commands.CloseDayResult, error) {
	date := kernel.NewBusinessDate(j.clock().In(j.location))

	cmd, err := commands.NewCloseDayCommand(date)
	if err != nil {
		return commands.CloseDayResult{}, err
	}

	result, err := usecases.Run(ctx, j.runner,
		func(ctx context.Context, session ports.Session) (commands.CloseDayResult, error) {
			return j.handler.Handle(ctx, session, cmd)
		})
	if err != nil {
		j.logger.Error("close day failed", zap.Stringer("date", date), zap.Error(err))
		return commands.CloseDayResult{}, err
	}

	if result.Sync.AlreadySynced {
		j.logger.Warn("business date already held orders, head office rows were not read",
			zap.Stringer("date", date),
			zap.Int("storedOrders", len(result.Sync.Orders)))
	}

	j.logger.Info("day closed",
		zap.Stringer("date", date),
		zap.Int("orders", len(result.Sync.Orders)),
		zap.Bool("alreadySynced", result.Sync.AlreadySynced),
		zap.Bool("summarized", result.EndOfDay.Summarized()))
	return result, nil
}
