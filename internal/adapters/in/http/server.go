// Package http exposes the orders API over echo. Handlers translate between
// the wire DTOs and the application use cases and map every error through
// the problems package.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"orders/internal/adapters/in/http/problems"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/auth"
	"orders/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Service identity reported by GET /.
const (
	ServiceName    = "orders"
	ServiceVersion = "1.0.0"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler commands.CreateOrderCommandHandler
	updateOrderHandler commands.UpdateOrderStatusCommandHandler

	// Query handlers
	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler

	openapiDoc *openapi3.T
	logger     *zap.Logger
}

// NewServer creates the HTTP server with the required command and query
// handlers plus the contract document served at /openapi.json.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	openapiDoc *openapi3.T,
	logger *zap.Logger,
) *Server {
	return &Server{
		createOrderHandler: createOrderHandler,
		updateOrderHandler: updateOrderHandler,
		getOrderHandler:    getOrderHandler,
		listOrdersHandler:  listOrdersHandler,
		openapiDoc:         openapiDoc,
		logger:             logger,
	}
}

// RegisterRoutes installs the request validator and binds all API routes on
// the echo instance. The auth gate is composed separately in the composition
// root so these handlers can assume claims are present on protected paths.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	e.GET("/", s.GetServiceInfo)
	e.GET("/healthz", s.GetHealth)
	e.GET("/readyz", s.GetReadiness)
	e.GET("/openapi.json", s.GetOpenAPI)

	e.POST("/orders", s.CreateOrder)
	e.GET("/orders", s.ListOrders)
	e.GET("/orders/:orderId", s.GetOrder)
	e.PATCH("/orders/:orderId", s.UpdateOrder)
}

// GetServiceInfo handles GET / - reports the service name and version.
func (s *Server) GetServiceInfo(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, ServiceInfoResponse{
		Name:    ServiceName,
		Version: ServiceVersion,
	})
}

// GetHealth handles GET /healthz - liveness probe.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// GetReadiness handles GET /readyz - readiness probe. The store is in
// memory, so ready follows alive.
func (s *Server) GetReadiness(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// GetOpenAPI handles GET /openapi.json - serves the embedded contract.
func (s *Server) GetOpenAPI(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, s.openapiDoc)
}

// CreateOrder handles POST /orders - creates a new order in the pending
// status. Requires the orders.write scope.
func (s *Server) CreateOrder(ctx echo.Context) error {
	if err := s.requireScope(ctx, auth.ScopeOrdersWrite); err != nil {
		return err
	}

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return problems.Render(ctx, problems.Validation("invalid request body"))
	}
	if err := ctx.Validate(&req); err != nil {
		return problems.Render(ctx, problems.Validation("customerId and a non-empty items list are required"))
	}

	cmd, err := commands.NewCreateOrderCommand(req.CustomerID, req.Items)
	if err != nil {
		return s.renderError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// GetOrder handles GET /orders/:orderId - retrieves a single order.
// Requires the orders.read scope.
func (s *Server) GetOrder(ctx echo.Context) error {
	if err := s.requireScope(ctx, auth.ScopeOrdersRead); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return problems.Render(ctx, problems.Validation("orderId must be a valid UUID"))
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	found, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(found))
}

// UpdateOrder handles PATCH /orders/:orderId - requests a status transition,
// or only refreshes updatedAt when the body carries no status. Requires the
// orders.write scope.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	if err := s.requireScope(ctx, auth.ScopeOrdersWrite); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return problems.Render(ctx, problems.Validation("orderId must be a valid UUID"))
	}

	var req UpdateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return problems.Render(ctx, problems.Validation("invalid request body"))
	}

	var cmd commands.UpdateOrderStatusCommand
	if req.Status != nil {
		newStatus, statusErr := order.StatusFromString(*req.Status)
		if statusErr != nil {
			return problems.Render(ctx, problems.Validation("status must be one of: pending, paid, shipped, delivered"))
		}

		cmd, err = commands.NewUpdateOrderStatusCommand(orderID, newStatus)
	} else {
		cmd, err = commands.NewTouchOrderCommand(orderID)
	}
	if err != nil {
		return s.renderError(ctx, err)
	}

	updated, err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// ListOrders handles GET /orders - retrieves a page of orders, newest
// first. Requires the orders.read scope.
func (s *Server) ListOrders(ctx echo.Context) error {
	if err := s.requireScope(ctx, auth.ScopeOrdersRead); err != nil {
		return err
	}

	limit, err := queryInt(ctx, "limit", queries.DefaultListLimit)
	if err != nil {
		return problems.Render(ctx, problems.Validation("limit must be an integer"))
	}

	offset, err := queryInt(ctx, "offset", 0)
	if err != nil {
		return problems.Render(ctx, problems.Validation("offset must be an integer"))
	}

	page, err := s.listOrdersHandler.Handle(ctx.Request().Context(), queries.NewListOrdersQuery(limit, offset))
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, listToResponse(page))
}

// requireScope checks that the authenticated caller holds the scope. The
// returned error, if any, is an already rendered problem response.
func (s *Server) requireScope(ctx echo.Context, scope string) error {
	claims, ok := auth.FromContext(ctx.Request().Context())
	if !ok {
		return problems.Render(ctx, problems.Unauthorized("authentication required"))
	}

	if err := auth.CheckScopes(claims, scope); err != nil {
		var missing *auth.MissingScopeError
		if errors.As(err, &missing) {
			return problems.Render(ctx, problems.Forbidden("missing required scope: "+missing.Scope))
		}

		return problems.Render(ctx, problems.Forbidden("insufficient scope"))
	}

	return nil
}

// renderError maps application and domain errors to problem responses.
func (s *Server) renderError(ctx echo.Context, err error) error {
	var transitionErr *order.InvalidStatusTransitionError
	if errors.As(err, &transitionErr) {
		return problems.Render(ctx, problems.Conflict(transitionErr.Error()))
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return problems.Render(ctx, problems.NotFound("order not found"))
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return problems.Render(ctx, problems.Validation(err.Error()))
	default:
		s.logger.Error("request failed",
			zap.String("path", ctx.Request().URL.Path),
			zap.Error(err),
		)
		return problems.Render(ctx, problems.Internal())
	}
}

func queryInt(ctx echo.Context, name string, fallback int) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}

	return strconv.Atoi(raw)
}
