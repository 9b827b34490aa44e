// Package http exposes the order workflows over a JSON REST API built on echo.
package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"yuandi/internal/core/application/usecases/commands"
	"yuandi/internal/core/application/usecases/queries"
	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/core/domain/model/staff"
	"yuandi/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/rs/zerolog"
)

type (
	LoginHandler interface {
		Handle(ctx context.Context, cmd commands.LoginCommand) (commands.LoginResult, error)
	}
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	UpdateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
	}
	ShipOrderHandler interface {
		Handle(ctx context.Context, cmd commands.ShipOrderCommand) (*order.Order, error)
	}
	CompleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CompleteOrderCommand) (*order.Order, error)
	}
	RefundOrderHandler interface {
		Handle(ctx context.Context, cmd commands.RefundOrderCommand) (*order.Order, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (order.Snapshot, error)
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersResponse, error)
	}
	TrackOrdersHandler interface {
		Handle(ctx context.Context, query queries.TrackOrdersQuery) ([]queries.TrackedOrder, error)
	}
	ExchangeRateHandler interface {
		Handle(ctx context.Context, query queries.GetExchangeRateQuery) (queries.ExchangeRateResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	Login         LoginHandler
	CreateOrder   CreateOrderHandler
	UpdateOrder   UpdateOrderHandler
	ShipOrder     ShipOrderHandler
	CompleteOrder CompleteOrderHandler
	RefundOrder   RefundOrderHandler
	GetOrder      GetOrderHandler
	ListOrders    ListOrdersHandler
	TrackOrders   TrackOrdersHandler
	ExchangeRate  ExchangeRateHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	tokens   TokenParser
	logger   zerolog.Logger
}

func NewServer(handlers Handlers, tokens TokenParser, logger zerolog.Logger) (*Server, error) {
	switch {
	case handlers.Login == nil:
		return nil, errs.NewValueIsRequiredError("login handler")
	case handlers.CreateOrder == nil:
		return nil, errs.NewValueIsRequiredError("create order handler")
	case handlers.UpdateOrder == nil:
		return nil, errs.NewValueIsRequiredError("update order handler")
	case handlers.ShipOrder == nil:
		return nil, errs.NewValueIsRequiredError("ship order handler")
	case handlers.CompleteOrder == nil:
		return nil, errs.NewValueIsRequiredError("complete order handler")
	case handlers.RefundOrder == nil:
		return nil, errs.NewValueIsRequiredError("refund order handler")
	case handlers.GetOrder == nil:
		return nil, errs.NewValueIsRequiredError("get order handler")
	case handlers.ListOrders == nil:
		return nil, errs.NewValueIsRequiredError("list orders handler")
	case handlers.TrackOrders == nil:
		return nil, errs.NewValueIsRequiredError("track orders handler")
	case handlers.ExchangeRate == nil:
		return nil, errs.NewValueIsRequiredError("exchange rate handler")
	case tokens == nil:
		return nil, errs.NewValueIsRequiredError("token parser")
	}

	return &Server{
		handlers: handlers,
		tokens:   tokens,
		logger:   logger,
	}, nil
}

// NewRouter builds an echo instance with every route registered.
func NewRouter(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.Validator = newRequestValidator()

	e.Use(middleware.RequestID())
	e.Use(RequestLogger(s.logger))
	e.Use(middleware.Recover())

	s.Register(e)
	return e
}

// Register mounts the API routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")
	api.POST("/auth/login", s.Login)
	api.GET("/track", s.TrackOrders)

	authed := api.Group("", Authenticate(s.tokens))
	allStaff := RequireRoles(staff.RoleOrderManager, staff.RoleShipManager)
	orderManagers := RequireRoles(staff.RoleOrderManager)
	shipManagers := RequireRoles(staff.RoleShipManager)

	authed.GET("/orders", s.ListOrders, allStaff)
	authed.GET("/orders/:id", s.GetOrder, allStaff)
	authed.POST("/orders", s.CreateOrder, orderManagers)
	authed.PUT("/orders/:id", s.UpdateOrder, orderManagers)
	authed.POST("/orders/:id/ship", s.ShipOrder, shipManagers)
	authed.POST("/orders/:id/complete", s.CompleteOrder, allStaff)
	authed.POST("/orders/:id/refund", s.RefundOrder, orderManagers)
	authed.GET("/exchange-rate", s.ExchangeRate, allStaff)
}

// Login handles POST /api/v1/auth/login.
func (s *Server) Login(c echo.Context) error {
	var req LoginRequest
	if err := s.bind(c, &req); err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewLoginCommand(req.Email, req.Password)
	if err != nil {
		return s.writeError(c, err)
	}

	result, err := s.handlers.Login.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, toLoginResponse(result))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req OrderRequest
	if err := s.bind(c, &req); err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewCreateOrderCommand(req.toInput(), req.OrderNumber)
	if err != nil {
		return s.writeError(c, err)
	}

	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, created.Snapshot())
}

// UpdateOrder handles PUT /api/v1/orders/:id. Only paid orders are editable.
func (s *Server) UpdateOrder(c echo.Context) error {
	id, err := pathOrderID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var req OrderRequest
	if err = s.bind(c, &req); err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewUpdateOrderCommand(id, req.toInput())
	if err != nil {
		return s.writeError(c, err)
	}

	updated, err := s.handlers.UpdateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, updated.Snapshot())
}

// ShipOrder handles POST /api/v1/orders/:id/ship.
func (s *Server) ShipOrder(c echo.Context) error {
	id, err := pathOrderID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var req ShipRequest
	if err = s.bind(c, &req); err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewShipOrderCommand(id, req.CourierCompany, req.TrackingNumber, req.TrackingPhotoURL)
	if err != nil {
		return s.writeError(c, err)
	}

	shipped, err := s.handlers.ShipOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, shipped.Snapshot())
}

// CompleteOrder handles POST /api/v1/orders/:id/complete.
func (s *Server) CompleteOrder(c echo.Context) error {
	id, err := pathOrderID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewCompleteOrderCommand(id)
	if err != nil {
		return s.writeError(c, err)
	}

	completed, err := s.handlers.CompleteOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, completed.Snapshot())
}

// RefundOrder handles POST /api/v1/orders/:id/refund. The body is optional.
func (s *Server) RefundOrder(c echo.Context) error {
	id, err := pathOrderID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var req RefundRequest
	if c.Request().ContentLength != 0 {
		if err = s.bind(c, &req); err != nil {
			return s.writeError(c, err)
		}
	}

	cmd, err := commands.NewRefundOrderCommand(id, req.Reason)
	if err != nil {
		return s.writeError(c, err)
	}

	refunded, err := s.handlers.RefundOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, refunded.Snapshot())
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathOrderID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.writeError(c, err)
	}

	snapshot, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, snapshot)
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	var params ListOrdersParams
	if err := s.bind(c, &params); err != nil {
		return s.writeError(c, err)
	}

	from, err := parseDateParam("from", params.From, false)
	if err != nil {
		return s.writeError(c, err)
	}
	to, err := parseDateParam("to", params.To, true)
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewListOrdersQuery(params.Page, params.Limit, params.Status, from, to)
	if err != nil {
		return s.writeError(c, err)
	}

	page, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, page)
}

// TrackOrders handles GET /api/v1/track, the public customer lookup.
func (s *Server) TrackOrders(c echo.Context) error {
	var params TrackParams
	if err := s.bind(c, &params); err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewTrackOrdersQuery(params.Name, params.Phone)
	if err != nil {
		return s.writeError(c, err)
	}

	tracked, err := s.handlers.TrackOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, tracked)
}

// ExchangeRate handles GET /api/v1/exchange-rate.
func (s *Server) ExchangeRate(c echo.Context) error {
	var params ExchangeRateParams
	if err := s.bind(c, &params); err != nil {
		return s.writeError(c, err)
	}

	rate, err := s.handlers.ExchangeRate.Handle(
		c.Request().Context(),
		queries.NewGetExchangeRateQuery(params.Base, params.Quote),
	)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, rate)
}

func (s *Server) bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequestBody, err)
	}
	return c.Validate(dst)
}

func pathOrderID(c echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return id, nil
}

const dateOnly = "2006-01-02"

// parseDateParam accepts RFC 3339 or a bare KST calendar date. A bare date
// used as an upper bound covers the whole day.
func parseDateParam(name, raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}

	day, err := time.ParseInLocation(dateOnly, raw, kernel.KST)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%q is neither RFC 3339 nor YYYY-MM-DD", raw))
	}
	if endOfDay {
		day = day.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &day, nil
}
