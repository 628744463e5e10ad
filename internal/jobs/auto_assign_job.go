package jobs

import (
	"context"
	"errors"
	"log/slog"

	"bazaarlink/internal/core/application/usecases/commands"
	"bazaarlink/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// autoAssignSchedule sweeps every 15 seconds. Frequent enough that a READY
// order never waits long, rare enough not to hammer the agent roster query.
const autoAssignSchedule = "*/15 * * * * *"

// AutoAssignJob periodically assigns uncovered READY orders to the nearest
// available agent, so orders flow even when no admin is watching the board.
type AutoAssignJob struct {
	uowFactory commands.UoWFactory
	handler    commands.AssignDeliveryCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewAutoAssignJob creates the auto-assign job.
func NewAutoAssignJob(
	uowFactory commands.UoWFactory,
	handler commands.AssignDeliveryCommandHandler,
	logger *slog.Logger,
) *AutoAssignJob {
	return &AutoAssignJob{
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "auto_assign_job"),
	}
}

// Start schedules the sweep.
func (j *AutoAssignJob) Start() error {
	_, err := j.cron.AddFunc(autoAssignSchedule, j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto-assign job started (running every 15 seconds)")
	return nil
}

// Stop stops the sweep.
func (j *AutoAssignJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Auto-assign job stopped")
}

// sweep assigns each uncovered READY order independently: one failed order
// must not block the rest of the batch.
func (j *AutoAssignJob) sweep() {
	ctx := context.Background()

	uow := j.uowFactory.Create()
	orders, err := uow.OrderRepository().GetAllReadyWithoutDelivery(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Auto-assign sweep failed to list orders", "error", err)
		return
	}

	for _, ord := range orders {
		cmd, cmdErr := commands.NewAssignDeliveryCommand(ord.ID(), nil)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Auto-assign command rejected",
				"orderId", ord.ID(), "error", cmdErr)
			continue
		}

		if _, handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			// No agents free and already-covered orders are expected here.
			if errors.Is(handleErr, errs.ErrUnavailable) || errors.Is(handleErr, errs.ErrConflict) {
				j.logger.DebugContext(ctx, "Auto-assign skipped order",
					"orderId", ord.ID(), "reason", handleErr)
				continue
			}
			j.logger.ErrorContext(ctx, "Auto-assign failed",
				"orderId", ord.ID(), "error", handleErr)
		}
	}
}
