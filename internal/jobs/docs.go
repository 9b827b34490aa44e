// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3. Schedules use six fields (seconds first) and are
// evaluated in Korea Standard Time.
//
// # Available Jobs
//
//  1. ExchangeRateRefreshJob fetches the CNY/KRW rate every hour.
//  2. SequencePruningJob drops daily order number counters once their date
//     can no longer issue numbers. Only stores without their own expiry need it.
//
// # Usage
//
//	manager := jobs.NewJobManager(logger, refreshJob, pruneJob)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// A failed tick is logged and retried on the next one.
package jobs
