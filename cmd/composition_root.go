package cmd

import (
	"log/slog"
	"net/http"

	inhttp "bazaarlink/internal/adapters/in/http"
	"bazaarlink/internal/adapters/in/livebridge"
	"bazaarlink/internal/adapters/out/postgres"
	"bazaarlink/internal/core/application/usecases/commands"
	"bazaarlink/internal/core/application/usecases/queries"
	"bazaarlink/internal/core/domain/services"
	"bazaarlink/internal/core/ports"
	"bazaarlink/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use cases. Handlers are cheap value
// types; each Create method builds a fresh one on the shared dependencies.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	pusher     ports.LivePusher
	selector   services.AgentSelector
	logger     *slog.Logger
}

// NewCompositionRoot creates the composition root on the shared
// infrastructure dependencies.
func NewCompositionRoot(
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	pusher ports.LivePusher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		pusher:     pusher,
		selector:   services.NewNearestAgentSelector(logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

// CreateAssignDeliveryCommandHandler builds the assignment use case.
func (c *CompositionRoot) CreateAssignDeliveryCommandHandler() commands.AssignDeliveryCommandHandler {
	return commands.NewAssignDeliveryCommandHandler(
		c.createUoWFactory(), c.selector, c.publisher, c.logger,
	)
}

// CreateUpdateDeliveryStatusCommandHandler builds the status update use case.
func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	return commands.NewUpdateDeliveryStatusCommandHandler(
		c.createUoWFactory(), c.publisher, c.logger,
	)
}

// CreateUpdateDeliveryLocationCommandHandler builds the location report use case.
func (c *CompositionRoot) CreateUpdateDeliveryLocationCommandHandler() commands.UpdateDeliveryLocationCommandHandler {
	return commands.NewUpdateDeliveryLocationCommandHandler(
		c.createUoWFactory(), c.publisher, c.pusher, c.logger,
	)
}

// CreateGetDeliveryAgentsQueryHandler builds the agent roster query.
func (c *CompositionRoot) CreateGetDeliveryAgentsQueryHandler() queries.GetDeliveryAgentsQueryHandler {
	return queries.NewGetDeliveryAgentsQueryHandler(c.gormDB)
}

// CreateGetAgentDeliveriesQueryHandler builds the "my deliveries" query.
func (c *CompositionRoot) CreateGetAgentDeliveriesQueryHandler() queries.GetAgentDeliveriesQueryHandler {
	return queries.NewGetAgentDeliveriesQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the REST server; ws serves websocket upgrades.
func (c *CompositionRoot) CreateHTTPServer(ws http.Handler) *inhttp.Server {
	return inhttp.NewServer(
		c.CreateAssignDeliveryCommandHandler(),
		c.CreateUpdateDeliveryStatusCommandHandler(),
		c.CreateUpdateDeliveryLocationCommandHandler(),
		c.CreateGetDeliveryAgentsQueryHandler(),
		c.CreateGetAgentDeliveriesQueryHandler(),
		ws,
	)
}

// CreateLiveBridge builds the bus-to-hub fan-out.
func (c *CompositionRoot) CreateLiveBridge() *livebridge.Bridge {
	return livebridge.NewBridge(c.pusher, livebridge.NewGormDirectory(c.gormDB), c.logger)
}

// CreateJobManager builds the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.createUoWFactory(),
		c.CreateAssignDeliveryCommandHandler(),
		c.logger,
	)
}

// FuncUoWFactory adapts a closure to the commands.UoWFactory interface.
type FuncUoWFactory func() commands.UoW

// Create implements commands.UoWFactory.
func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
