// Package http exposes the fulfillment operations over HTTP.
package http

import (
	"context"
	"net/http"

	"fulfillment/internal/core/application/usecases"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Server coordinates between HTTP handlers and application use cases. Every request
// runs through the session runner, so each attempt gets its own connections.
type Server struct {
	runner usecases.SessionRunner

	// Command handlers
	syncDayHandler     commands.SyncDayCommandHandler
	endOfDayHandler    commands.EndOfDayCommandHandler
	createOrderHandler *commands.CreateOrderCommandHandler

	// Query handlers
	getDailyOrdersHandler queries.GetDailyOrdersQueryHandler

	logger *zap.Logger
}

func NewServer(
	runner usecases.SessionRunner,
	syncDayHandler commands.SyncDayCommandHandler,
	endOfDayHandler commands.EndOfDayCommandHandler,
	createOrderHandler *commands.CreateOrderCommandHandler,
	getDailyOrdersHandler queries.GetDailyOrdersQueryHandler,
	log *zap.Logger,
) *Server {
	return &Server{
		runner:                runner,
		syncDayHandler:        syncDayHandler,
		endOfDayHandler:       endOfDayHandler,
		createOrderHandler:    createOrderHandler,
		getDailyOrdersHandler: getDailyOrdersHandler,
		logger:                logger.Component(log, "http"),
	}
}

// NewEcho builds the echo instance with CORS, OpenAPI request validation and all routes.
func NewEcho(s *Server) (*echo.Echo, error) {
	doc, err := LoadOpenAPI()
	if err != nil {
		return nil, err
	}
	validateRequest, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = NewRequestValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(validateRequest)

	s.Register(e)
	return e, nil
}

// Register mounts the routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/orders")
	api.GET("/process/:date", s.ProcessOrders)
	api.GET("/endofday/:date", s.EndOfDay)
	api.POST("/new", s.CreateOrder)
	api.GET("/:date", s.GetOrders)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// GetOrders handles GET /api/orders/:date - formats the head office orders of a day.
func (s *Server) GetOrders(c echo.Context) error {
	date, err := bindDate(c)
	if err != nil {
		return s.badRequest(c, err)
	}

	query, err := queries.NewGetDailyOrdersQuery(date)
	if err != nil {
		return s.badRequest(c, err)
	}

	orders, err := usecases.Run(c.Request().Context(), s.runner,
		func(ctx context.Context, session ports.Session) ([]queries.DailyOrderResponse, error) {
			return s.getDailyOrdersHandler.Handle(ctx, session, query)
		})
	if err != nil {
		return s.failure(c, "get orders", err)
	}

	return c.JSON(http.StatusOK, toDailyOrderResponses(orders))
}

// ProcessOrders handles GET /api/orders/process/:date - syncs the day and returns its dockets.
func (s *Server) ProcessOrders(c echo.Context) error {
	date, err := bindDate(c)
	if err != nil {
		return s.badRequest(c, err)
	}

	cmd, err := commands.NewSyncDayCommand(date)
	if err != nil {
		return s.badRequest(c, err)
	}

	result, err := usecases.Run(c.Request().Context(), s.runner,
		func(ctx context.Context, session ports.Session) (commands.SyncDayResult, error) {
			return s.syncDayHandler.Handle(ctx, session, cmd)
		})
	if err != nil {
		return s.failure(c, "process orders", err)
	}

	return c.JSON(http.StatusOK, toDocketResponses(result.Orders))
}

// EndOfDay handles GET /api/orders/endofday/:date - writes the daily summary.
func (s *Server) EndOfDay(c echo.Context) error {
	date, err := bindDate(c)
	if err != nil {
		return s.badRequest(c, err)
	}

	cmd, err := commands.NewEndOfDayCommand(date)
	if err != nil {
		return s.badRequest(c, err)
	}

	result, err := usecases.Run(c.Request().Context(), s.runner,
		func(ctx context.Context, session ports.Session) (commands.EndOfDayResult, error) {
			return s.endOfDayHandler.Handle(ctx, session, cmd)
		})
	if err != nil {
		return s.failure(c, "end of day", err)
	}

	return c.JSON(http.StatusOK, toSummaryResponse(result))
}

// CreateOrder handles POST /api/orders/new - stores a walk-in order and returns its docket.
func (s *Server) CreateOrder(c echo.Context) error {
	var req NewOrderRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return s.badRequest(c, err)
	}

	cmd, err := req.toCommand()
	if err != nil {
		return s.badRequest(c, err)
	}

	created, err := usecases.Run(c.Request().Context(), s.runner,
		func(ctx context.Context, session ports.Session) (*order.Order, error) {
			return s.createOrderHandler.Handle(ctx, session, cmd)
		})
	if err != nil {
		return s.failure(c, "create order", err)
	}

	return c.JSON(http.StatusCreated, toDocketResponse(created))
}

func (s *Server) badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

func (s *Server) failure(c echo.Context, operation string, err error) error {
	status := statusFor(err)
	s.logger.Error("request failed",
		zap.String("operation", operation),
		zap.String("path", c.Request().URL.Path),
		zap.Int("status", status),
		zap.Error(err))

	return c.JSON(status, ErrorResponse{Error: err.Error()})
}
