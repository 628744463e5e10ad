package commands_test

import (
	"context"
	"testing"

	"bazaarlink/internal/core/application/usecases/commands"
	"bazaarlink/internal/core/domain/events"
	"bazaarlink/internal/core/domain/model/agent"
	"bazaarlink/internal/core/domain/model/delivery"
	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/core/domain/model/notification"
	"bazaarlink/internal/core/domain/model/order"
	"bazaarlink/internal/core/domain/services"
	"bazaarlink/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type assignFixture struct {
	handler          commands.AssignDeliveryCommandHandler
	uow              *MockUoW
	orderRepo        *MockOrderRepository
	deliveryRepo     *MockDeliveryRepository
	agentRepo        *MockAgentRepository
	shopRepo         *MockShopRepository
	notificationRepo *MockNotificationRepository
	publisher        *MockEventPublisher
}

func newAssignFixture(ctx context.Context) *assignFixture {
	f := &assignFixture{
		uow:              new(MockUoW),
		orderRepo:        new(MockOrderRepository),
		deliveryRepo:     new(MockDeliveryRepository),
		agentRepo:        new(MockAgentRepository),
		shopRepo:         new(MockShopRepository),
		notificationRepo: new(MockNotificationRepository),
		publisher:        new(MockEventPublisher),
	}

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil)
	f.uow.On("OrderRepository").Return(f.orderRepo)
	f.uow.On("DeliveryRepository").Return(f.deliveryRepo)
	f.uow.On("AgentRepository").Return(f.agentRepo)
	f.uow.On("ShopRepository").Return(f.shopRepo)
	f.uow.On("NotificationRepository").Return(f.notificationRepo)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(f.uow).Once()

	f.handler = commands.NewAssignDeliveryCommandHandler(
		factory,
		services.NewNearestAgentSelector(testLogger()),
		f.publisher,
		testLogger(),
	)
	return f
}

func notFound(name string, id kernel.UUID) error {
	return errs.NewObjectNotFoundError(name, id)
}

func TestAssignDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	ord := fixtureReadyOrder(t)
	shp := fixtureShopFor(t, ord)
	near := fixtureAgentAt(t, 12.9720, 77.5950)
	far := fixtureAgentAt(t, 13.0827, 80.2707)

	f := newAssignFixture(ctx)
	f.orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	f.deliveryRepo.On("GetByOrderID", ctx, ord.ID()).
		Return(nil, notFound("delivery", ord.ID())).Once()
	f.shopRepo.On("Get", ctx, ord.ShopID()).Return(shp, nil).Once()
	f.agentRepo.On("GetAllAvailable", ctx).Return([]*agent.Agent{far, near}, nil).Once()
	f.deliveryRepo.On("Add", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once()
	f.orderRepo.On("Update", ctx, ord).Return(nil).Once()
	f.notificationRepo.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).
		Return(nil).Twice()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("Publish", ctx, mock.MatchedBy(func(e events.DeliveryAssigned) bool {
		return e.OrderID == ord.ID().String() &&
			e.DeliveryAgentID == near.ID().String() &&
			e.UserID == ord.UserID().String() &&
			e.ShopID == ord.ShopID().String()
	})).Return(nil).Once()

	cmd, err := commands.NewAssignDeliveryCommand(ord.ID(), nil)
	require.NoError(t, err)

	dlv, err := f.handler.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, dlv)

	assert.True(t, dlv.AgentID().IsEqual(near.ID()))
	assert.Equal(t, delivery.Pending, dlv.Status())
	pickupEqual, err := dlv.PickupLocation().IsEqual(shp.Location())
	require.NoError(t, err)
	assert.True(t, pickupEqual)
	dropEqual, err := dlv.DropLocation().IsEqual(ord.DeliveryLocation())
	require.NoError(t, err)
	assert.True(t, dropEqual)
	require.NotNil(t, dlv.CurrentPosition())
	currentEqual, err := dlv.CurrentPosition().IsEqual(*near.Position())
	require.NoError(t, err)
	assert.True(t, currentEqual)

	assert.Equal(t, order.OutForDelivery, ord.Status())
	require.NotNil(t, ord.DeliveryAgent())
	assert.True(t, ord.DeliveryAgent().IsEqual(near.ID()))

	f.uow.AssertExpectations(t)
	f.deliveryRepo.AssertExpectations(t)
	f.notificationRepo.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestAssignDeliveryCommandHandler_Handle_NotificationRecipients(t *testing.T) {
	ctx := t.Context()

	ord := fixtureReadyOrder(t)
	shp := fixtureShopFor(t, ord)
	assignee := fixtureAgentAt(t, 12.9720, 77.5950)

	f := newAssignFixture(ctx)
	f.orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	f.deliveryRepo.On("GetByOrderID", ctx, ord.ID()).
		Return(nil, notFound("delivery", ord.ID())).Once()
	f.shopRepo.On("Get", ctx, ord.ShopID()).Return(shp, nil).Once()
	f.agentRepo.On("GetAllAvailable", ctx).Return([]*agent.Agent{assignee}, nil).Once()
	f.deliveryRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.orderRepo.On("Update", ctx, ord).Return(nil).Once()
	f.notificationRepo.On("Add", ctx, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.UserID().IsEqual(assignee.UserID()) &&
			n.Kind() == notification.KindDeliveryAssigned
	})).Return(nil).Once()
	f.notificationRepo.On("Add", ctx, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.UserID().IsEqual(ord.UserID()) &&
			n.Kind() == notification.KindDeliveryAssigned
	})).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

	cmd, err := commands.NewAssignDeliveryCommand(ord.ID(), nil)
	require.NoError(t, err)

	_, err = f.handler.Handle(ctx, cmd)
	require.NoError(t, err)
	f.notificationRepo.AssertExpectations(t)
}

func TestAssignDeliveryCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	f := newAssignFixture(ctx)
	f.orderRepo.On("Get", ctx, orderID).Return(nil, notFound("order", orderID)).Once()

	cmd, err := commands.NewAssignDeliveryCommand(orderID, nil)
	require.NoError(t, err)

	_, err = f.handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAssignDeliveryCommandHandler_Handle_OrderNotReady(t *testing.T) {
	ctx := t.Context()

	ord := fixtureReadyOrder(t)
	require.NoError(t, ord.Assign(kernel.NewUUID()))

	f := newAssignFixture(ctx)
	f.orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()

	cmd, err := commands.NewAssignDeliveryCommand(ord.ID(), nil)
	require.NoError(t, err)

	_, err = f.handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Contains(t, err.Error(), "not ready")
}

func TestAssignDeliveryCommandHandler_Handle_DeliveryAlreadyExists(t *testing.T) {
	ctx := t.Context()

	ord := fixtureReadyOrder(t)
	existing := fixtureDelivery(t, ord.ID(), kernel.NewUUID())

	f := newAssignFixture(ctx)
	f.orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	f.deliveryRepo.On("GetByOrderID", ctx, ord.ID()).Return(existing, nil).Once()

	cmd, err := commands.NewAssignDeliveryCommand(ord.ID(), nil)
	require.NoError(t, err)

	_, err = f.handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestAssignDeliveryCommandHandler_Handle_ConcurrentAssignmentIsConflict(t *testing.T) {
	ctx := t.Context()

	ord := fixtureReadyOrder(t)
	shp := fixtureShopFor(t, ord)
	assignee := fixtureAgentAt(t, 12.9720, 77.5950)

	// A rival transaction commits between the pre-check and the insert;
	// the unique index on the delivery's order is what surfaces it.
	f := newAssignFixture(ctx)
	f.orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	f.deliveryRepo.On("GetByOrderID", ctx, ord.ID()).
		Return(nil, notFound("delivery", ord.ID())).Once()
	f.shopRepo.On("Get", ctx, ord.ShopID()).Return(shp, nil).Once()
	f.agentRepo.On("GetAllAvailable", ctx).Return([]*agent.Agent{assignee}, nil).Once()
	f.deliveryRepo.On("Add", ctx, mock.AnythingOfType("*delivery.Delivery")).
		Return(errs.NewConflictError("delivery already assigned for this order")).Once()

	cmd, err := commands.NewAssignDeliveryCommand(ord.ID(), nil)
	require.NoError(t, err)

	dlv, err := f.handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Nil(t, dlv)

	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.notificationRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestAssignDeliveryCommandHandler_Handle_NoAvailableAgents(t *testing.T) {
	ctx := t.Context()

	ord := fixtureReadyOrder(t)
	shp := fixtureShopFor(t, ord)

	f := newAssignFixture(ctx)
	f.orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	f.deliveryRepo.On("GetByOrderID", ctx, ord.ID()).
		Return(nil, notFound("delivery", ord.ID())).Once()
	f.shopRepo.On("Get", ctx, ord.ShopID()).Return(shp, nil).Once()
	f.agentRepo.On("GetAllAvailable", ctx).Return([]*agent.Agent{}, nil).Once()

	cmd, err := commands.NewAssignDeliveryCommand(ord.ID(), nil)
	require.NoError(t, err)

	_, err = f.handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUnavailable)
	assert.Contains(t, err.Error(), "no available delivery agents")
}

func TestAssignDeliveryCommandHandler_Handle_ExplicitAgent(t *testing.T) {
	ctx := t.Context()

	t.Run("inactive agent", func(t *testing.T) {
		ord := fixtureReadyOrder(t)
		shp := fixtureShopFor(t, ord)
		assignee := fixtureAgentAt(t, 12.9720, 77.5950)
		assignee.Deactivate()
		agentID := assignee.ID()

		f := newAssignFixture(ctx)
		f.orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
		f.deliveryRepo.On("GetByOrderID", ctx, ord.ID()).
			Return(nil, notFound("delivery", ord.ID())).Once()
		f.shopRepo.On("Get", ctx, ord.ShopID()).Return(shp, nil).Once()
		f.agentRepo.On("Get", ctx, agentID).Return(assignee, nil).Once()

		cmd, err := commands.NewAssignDeliveryCommand(ord.ID(), &agentID)
		require.NoError(t, err)

		_, err = f.handler.Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Contains(t, err.Error(), "inactive")
	})

	t.Run("agent at capacity", func(t *testing.T) {
		ord := fixtureReadyOrder(t)
		shp := fixtureShopFor(t, ord)
		assignee := fixtureAgentAt(t, 12.9720, 77.5950)
		agentID := assignee.ID()

		f := newAssignFixture(ctx)
		f.orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
		f.deliveryRepo.On("GetByOrderID", ctx, ord.ID()).
			Return(nil, notFound("delivery", ord.ID())).Once()
		f.shopRepo.On("Get", ctx, ord.ShopID()).Return(shp, nil).Once()
		f.agentRepo.On("Get", ctx, agentID).Return(assignee, nil).Once()
		f.deliveryRepo.On("CountActiveByAgent", ctx, agentID).
			Return(agent.MaxActiveDeliveries, nil).Once()

		cmd, err := commands.NewAssignDeliveryCommand(ord.ID(), &agentID)
		require.NoError(t, err)

		_, err = f.handler.Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrUnavailable)
	})

	t.Run("agent below capacity is assigned", func(t *testing.T) {
		ord := fixtureReadyOrder(t)
		shp := fixtureShopFor(t, ord)
		assignee := fixtureAgentAt(t, 12.9720, 77.5950)
		agentID := assignee.ID()

		f := newAssignFixture(ctx)
		f.orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
		f.deliveryRepo.On("GetByOrderID", ctx, ord.ID()).
			Return(nil, notFound("delivery", ord.ID())).Once()
		f.shopRepo.On("Get", ctx, ord.ShopID()).Return(shp, nil).Once()
		f.agentRepo.On("Get", ctx, agentID).Return(assignee, nil).Once()
		f.deliveryRepo.On("CountActiveByAgent", ctx, agentID).
			Return(agent.MaxActiveDeliveries-1, nil).Once()
		f.deliveryRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
		f.orderRepo.On("Update", ctx, ord).Return(nil).Once()
		f.notificationRepo.On("Add", ctx, mock.Anything).Return(nil).Twice()
		f.uow.On("Commit", ctx).Return(nil).Once()
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

		cmd, err := commands.NewAssignDeliveryCommand(ord.ID(), &agentID)
		require.NoError(t, err)

		dlv, err := f.handler.Handle(ctx, cmd)
		require.NoError(t, err)
		assert.True(t, dlv.AgentID().IsEqual(agentID))
	})
}

func TestAssignDeliveryCommandHandler_Handle_PublishFailureDoesNotFail(t *testing.T) {
	ctx := t.Context()

	ord := fixtureReadyOrder(t)
	shp := fixtureShopFor(t, ord)
	assignee := fixtureAgentAt(t, 12.9720, 77.5950)

	f := newAssignFixture(ctx)
	f.orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	f.deliveryRepo.On("GetByOrderID", ctx, ord.ID()).
		Return(nil, notFound("delivery", ord.ID())).Once()
	f.shopRepo.On("Get", ctx, ord.ShopID()).Return(shp, nil).Once()
	f.agentRepo.On("GetAllAvailable", ctx).Return([]*agent.Agent{assignee}, nil).Once()
	f.deliveryRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.orderRepo.On("Update", ctx, ord).Return(nil).Once()
	f.notificationRepo.On("Add", ctx, mock.Anything).Return(nil).Twice()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("Publish", ctx, mock.Anything).
		Return(errs.NewUnavailableError("broker down")).Once()

	cmd, err := commands.NewAssignDeliveryCommand(ord.ID(), nil)
	require.NoError(t, err)

	dlv, err := f.handler.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, dlv)
}
