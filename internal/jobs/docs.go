// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with
// seconds) and managed through JobManager:
//
//	closeDay := jobs.NewCloseDayJob(handler, runner, cfg.CloseDaySchedule, cfg.StoreLocation, logger)
//	jobManager := jobs.NewJobManager(closeDay)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// CloseDayJob syncs the store's current business date and writes its daily summary.
// Both steps are idempotent per date, so a tick that runs twice, or after an operator
// already closed the day over HTTP, changes nothing.
package jobs
