// Package jobs provides scheduled background tasks for the delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. AutoAssignJob - Runs every 15 seconds to hand READY orders without a
// delivery to the nearest available agent
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(uowFactory, assignDeliveryHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The auto-assign job treats "no available agents" and "delivery already
// assigned" as expected outcomes: the first resolves itself when an agent
// frees up, the second means an admin or a concurrent sweep won the race.
// Everything else is logged as an error.
package jobs
