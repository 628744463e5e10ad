// Package http exposes the delivery core over REST and hosts the websocket
// upgrade endpoint. Authentication happens at the gateway; handlers trust
// the X-User-Id header the gateway injects.
package http

import (
	"net/http"

	"bazaarlink/internal/core/application/usecases/commands"
	"bazaarlink/internal/core/application/usecases/queries"
	"bazaarlink/internal/core/domain/model/delivery"
	"bazaarlink/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// userIDHeader carries the authenticated caller's user id, injected by the
// API gateway after token verification.
const userIDHeader = "X-User-Id"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	assignDeliveryHandler         commands.AssignDeliveryCommandHandler
	updateDeliveryStatusHandler   commands.UpdateDeliveryStatusCommandHandler
	updateDeliveryLocationHandler commands.UpdateDeliveryLocationCommandHandler

	getDeliveryAgentsHandler  queries.GetDeliveryAgentsQueryHandler
	getAgentDeliveriesHandler queries.GetAgentDeliveriesQueryHandler

	ws http.Handler
}

// NewServer creates the HTTP server. ws handles websocket upgrades on /ws.
func NewServer(
	assignDeliveryHandler commands.AssignDeliveryCommandHandler,
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	updateDeliveryLocationHandler commands.UpdateDeliveryLocationCommandHandler,
	getDeliveryAgentsHandler queries.GetDeliveryAgentsQueryHandler,
	getAgentDeliveriesHandler queries.GetAgentDeliveriesQueryHandler,
	ws http.Handler,
) *Server {
	return &Server{
		assignDeliveryHandler:         assignDeliveryHandler,
		updateDeliveryStatusHandler:   updateDeliveryStatusHandler,
		updateDeliveryLocationHandler: updateDeliveryLocationHandler,
		getDeliveryAgentsHandler:      getDeliveryAgentsHandler,
		getAgentDeliveriesHandler:     getAgentDeliveriesHandler,
		ws:                            ws,
	}
}

// RegisterRoutes mounts all endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(middleware.Recover())
	e.Use(requestMetrics)

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/ws", echo.WrapHandler(s.ws))

	api := e.Group("/api/v1/deliveries")
	api.POST("/assign", s.AssignDelivery)
	api.PATCH("/:id/status", s.UpdateDeliveryStatus)
	api.PATCH("/:id/location", s.UpdateDeliveryLocation)
	api.GET("/agents", s.GetDeliveryAgents)
	api.GET("/my", s.GetMyDeliveries)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// AssignDelivery handles POST /api/v1/deliveries/assign. The agent id is
// optional; without it the nearest available agent is selected.
func (s *Server) AssignDelivery(ctx echo.Context) error {
	var req AssignDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var explicitAgentID *kernel.UUID
	if req.DeliveryAgentID != nil {
		agentID, agentErr := kernel.UUIDFromString(*req.DeliveryAgentID)
		if agentErr != nil {
			return badRequest(ctx, "Invalid delivery agent id")
		}
		explicitAgentID = &agentID
	}

	cmd, err := commands.NewAssignDeliveryCommand(orderID, explicitAgentID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	dlv, err := s.assignDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, deliveryFromDomain(dlv))
}

// UpdateDeliveryStatus handles PATCH /api/v1/deliveries/:id/status.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	agentUserID, err := callerUserID(ctx)
	if err != nil {
		return unauthorized(ctx)
	}

	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	var req UpdateDeliveryStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	newStatus, err := delivery.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid delivery status")
	}

	var position *kernel.GeoPoint
	if req.Latitude != nil && req.Longitude != nil {
		p, posErr := kernel.NewGeoPoint(*req.Latitude, *req.Longitude)
		if posErr != nil {
			return errorResponse(ctx, posErr)
		}
		position = &p
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(deliveryID, agentUserID, newStatus, position)
	if err != nil {
		return errorResponse(ctx, err)
	}

	dlv, err := s.updateDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryFromDomain(dlv))
}

// UpdateDeliveryLocation handles PATCH /api/v1/deliveries/:id/location.
func (s *Server) UpdateDeliveryLocation(ctx echo.Context) error {
	agentUserID, err := callerUserID(ctx)
	if err != nil {
		return unauthorized(ctx)
	}

	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	var req UpdateDeliveryLocationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	position, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewUpdateDeliveryLocationCommand(deliveryID, agentUserID, position)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.updateDeliveryLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetDeliveryAgents handles GET /api/v1/deliveries/agents.
func (s *Server) GetDeliveryAgents(ctx echo.Context) error {
	query := queries.NewGetDeliveryAgentsQuery()

	agents, err := s.getDeliveryAgentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]DeliveryAgentResponse, len(agents))
	for i, a := range agents {
		response[i] = DeliveryAgentResponse{
			ID:               a.ID.String(),
			UserID:           a.UserID.String(),
			IsActive:         a.IsActive,
			Latitude:         a.Latitude,
			Longitude:        a.Longitude,
			ActiveDeliveries: a.ActiveDeliveries,
			IsAvailable:      a.IsAvailable,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetMyDeliveries handles GET /api/v1/deliveries/my, the calling agent's
// active deliveries.
func (s *Server) GetMyDeliveries(ctx echo.Context) error {
	agentUserID, err := callerUserID(ctx)
	if err != nil {
		return unauthorized(ctx)
	}

	query, err := queries.NewGetAgentDeliveriesQuery(agentUserID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	deliveries, err := s.getAgentDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]AgentDeliveryResponse, len(deliveries))
	for i, d := range deliveries {
		response[i] = AgentDeliveryResponse{
			ID:          d.ID.String(),
			OrderID:     d.OrderID.String(),
			OrderNumber: d.OrderNumber,
			Status:      d.Status,
			PickupLocation: Coordinates{
				Latitude:  d.PickupLatitude,
				Longitude: d.PickupLongitude,
			},
			DropLocation: Coordinates{
				Latitude:  d.DropLatitude,
				Longitude: d.DropLongitude,
			},
			AssignedAt: d.AssignedAt,
		}
		if d.Latitude != nil && d.Longitude != nil {
			response[i].CurrentPosition = &Coordinates{
				Latitude:  *d.Latitude,
				Longitude: *d.Longitude,
			}
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// callerUserID resolves the authenticated caller from the gateway header.
func callerUserID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Request().Header.Get(userIDHeader))
}
