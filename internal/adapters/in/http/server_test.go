package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpapi "yuandi/internal/adapters/in/http"
	"yuandi/internal/adapters/out/auth"
	"yuandi/internal/core/application/usecases/commands"
	"yuandi/internal/core/application/usecases/queries"
	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/core/domain/model/staff"
	"yuandi/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	adminToken   = "admin-token"
	orderToken   = "order-token"
	shipperToken = "ship-token"
)

type ServerTestSuite struct {
	suite.Suite

	tokens   *MockTokenParser
	login    *MockLoginHandler
	create   *MockOrderCommandHandler[commands.CreateOrderCommand]
	update   *MockOrderCommandHandler[commands.UpdateOrderCommand]
	ship     *MockOrderCommandHandler[commands.ShipOrderCommand]
	complete *MockOrderCommandHandler[commands.CompleteOrderCommand]
	refund   *MockOrderCommandHandler[commands.RefundOrderCommand]
	get      *MockGetOrderHandler
	list     *MockListOrdersHandler
	track    *MockTrackOrdersHandler
	rate     *MockExchangeRateHandler

	router *echo.Echo
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	s.tokens = new(MockTokenParser)
	s.login = new(MockLoginHandler)
	s.create = new(MockOrderCommandHandler[commands.CreateOrderCommand])
	s.update = new(MockOrderCommandHandler[commands.UpdateOrderCommand])
	s.ship = new(MockOrderCommandHandler[commands.ShipOrderCommand])
	s.complete = new(MockOrderCommandHandler[commands.CompleteOrderCommand])
	s.refund = new(MockOrderCommandHandler[commands.RefundOrderCommand])
	s.get = new(MockGetOrderHandler)
	s.list = new(MockListOrdersHandler)
	s.track = new(MockTrackOrdersHandler)
	s.rate = new(MockExchangeRateHandler)

	s.tokens.On("Parse", adminToken).Return(principal(staff.RoleAdmin), nil).Maybe()
	s.tokens.On("Parse", orderToken).Return(principal(staff.RoleOrderManager), nil).Maybe()
	s.tokens.On("Parse", shipperToken).Return(principal(staff.RoleShipManager), nil).Maybe()
	s.tokens.On("Parse", mock.Anything).Return(auth.Principal{}, auth.ErrInvalidToken).Maybe()

	server, err := httpapi.NewServer(httpapi.Handlers{
		Login:         s.login,
		CreateOrder:   s.create,
		UpdateOrder:   s.update,
		ShipOrder:     s.ship,
		CompleteOrder: s.complete,
		RefundOrder:   s.refund,
		GetOrder:      s.get,
		ListOrders:    s.list,
		TrackOrders:   s.track,
		ExchangeRate:  s.rate,
	}, s.tokens, zerolog.Nop())
	s.Require().NoError(err)

	s.router = httpapi.NewRouter(server)
}

func (s *ServerTestSuite) TearDownTest() {
	s.login.AssertExpectations(s.T())
	s.create.AssertExpectations(s.T())
	s.ship.AssertExpectations(s.T())
	s.complete.AssertExpectations(s.T())
	s.refund.AssertExpectations(s.T())
	s.list.AssertExpectations(s.T())
	s.track.AssertExpectations(s.T())
}

func (s *ServerTestSuite) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) decodeError(rec *httptest.ResponseRecorder) httpapi.ErrorResponse {
	var body httpapi.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (s *ServerTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Healthy", rec.Body.String())
	s.NotEmpty(rec.Header().Get(echo.HeaderXRequestID))
}

func (s *ServerTestSuite) TestLogin() {
	s.Run("returns the token and the user", func() {
		user, err := staff.NewUser(kernel.NewUUID(), "admin@yuandi.kr", "관리자", "hash", staff.RoleAdmin, true)
		s.Require().NoError(err)
		expires := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		s.login.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.LoginCommand) bool {
			return cmd.Email() == "admin@yuandi.kr"
		})).Return(commands.LoginResult{Token: "jwt", ExpiresAt: expires, User: user}, nil).Once()

		rec := s.do(http.MethodPost, "/api/v1/auth/login", "", `{"email":"admin@yuandi.kr","password":"secret"}`)

		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		var body httpapi.LoginResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal("jwt", body.Token)
		s.Equal("admin", body.User.Role)
		s.True(expires.Equal(body.ExpiresAt))
	})

	s.Run("rejects wrong credentials with 401", func() {
		s.login.On("Handle", mock.Anything, mock.Anything).
			Return(commands.LoginResult{}, commands.ErrInvalidCredentials).Once()

		rec := s.do(http.MethodPost, "/api/v1/auth/login", "", `{"email":"a@b.kr","password":"wrong"}`)

		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("rejects an inactive account with 403", func() {
		s.login.On("Handle", mock.Anything, mock.Anything).
			Return(commands.LoginResult{}, commands.ErrUserIsInactive).Once()

		rec := s.do(http.MethodPost, "/api/v1/auth/login", "", `{"email":"a@b.kr","password":"pw"}`)

		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("reports request field errors", func() {
		rec := s.do(http.MethodPost, "/api/v1/auth/login", "", `{"email":"not-an-email"}`)

		s.Require().Equal(http.StatusBadRequest, rec.Code)
		body := s.decodeError(rec)
		s.Contains(body.Errors, "password is required")
		s.Contains(body.Errors, "email failed email validation")
	})

	s.Run("rejects malformed JSON", func() {
		rec := s.do(http.MethodPost, "/api/v1/auth/login", "", `{"email":`)

		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("Invalid request body", s.decodeError(rec).Message)
	})
}

func (s *ServerTestSuite) TestAuthorization() {
	s.Run("missing token", func() {
		rec := s.do(http.MethodGet, "/api/v1/orders", "", "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("invalid token", func() {
		rec := s.do(http.MethodGet, "/api/v1/orders", "forged", "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("ship manager cannot create orders", func() {
		rec := s.do(http.MethodPost, "/api/v1/orders", shipperToken, orderBody)
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("order manager cannot ship", func() {
		rec := s.do(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/ship", orderToken,
			`{"courierCompany":"CJ","trackingNumber":"1"}`)
		s.Equal(http.StatusForbidden, rec.Code)
	})
}

const orderBody = `{
	"customerName": "김철수",
	"customerPhone": "010-1234-5678",
	"pccc": "P123456789012",
	"shippingAddress": "서울특별시 강남구",
	"items": [{"productId": "p1", "quantity": 2, "price": "100.50"}]
}`

func (s *ServerTestSuite) TestCreateOrder() {
	s.Run("returns the created order snapshot", func() {
		created := paidOrder(s.T())
		s.create.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
			items := cmd.Input().Items
			return len(items) == 1 && items[0].Price.Equal(decimal.RequireFromString("100.50"))
		})).Return(created, nil).Once()

		rec := s.do(http.MethodPost, "/api/v1/orders", orderToken, orderBody)

		s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
		var snapshot order.Snapshot
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &snapshot))
		s.Equal("ORD-240101-001", snapshot.OrderNumber)
		s.Equal("PAID", snapshot.Status)
	})

	s.Run("reports every business rule violation", func() {
		s.create.On("Handle", mock.Anything, mock.Anything).
			Return(nil, order.NewValidationError([]string{"Customer name is required", "Invalid PCCC format"})).Once()

		rec := s.do(http.MethodPost, "/api/v1/orders", adminToken, orderBody)

		s.Require().Equal(http.StatusBadRequest, rec.Code)
		s.Equal([]string{"Customer name is required", "Invalid PCCC format"}, s.decodeError(rec).Errors)
	})

	s.Run("maps a duplicate order number to 409", func() {
		s.create.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectAlreadyExistsError("orderNumber", "ORD-240101-001")).Once()

		rec := s.do(http.MethodPost, "/api/v1/orders", adminToken, orderBody)

		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("hides unexpected failures", func() {
		s.create.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errors.New("connection reset")).Once()

		rec := s.do(http.MethodPost, "/api/v1/orders", adminToken, orderBody)

		s.Require().Equal(http.StatusInternalServerError, rec.Code)
		s.NotContains(rec.Body.String(), "connection reset")
	})
}

func (s *ServerTestSuite) TestShipOrder() {
	id := kernel.NewUUID()
	path := "/api/v1/orders/" + id.String() + "/ship"

	s.Run("passes courier and tracking number through", func() {
		shipped := paidOrder(s.T())
		s.Require().NoError(shipped.Ship("CJ대한통운", "123456789", nil))
		s.ship.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ShipOrderCommand) bool {
			return cmd.OrderID() == id && cmd.CourierCompany() == "CJ대한통운" && cmd.TrackingNumber() == "123456789"
		})).Return(shipped, nil).Once()

		rec := s.do(http.MethodPost, path, shipperToken, `{"courierCompany":"CJ대한통운","trackingNumber":"123456789"}`)

		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		var snapshot order.Snapshot
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &snapshot))
		s.Equal("SHIPPED", snapshot.Status)
	})

	s.Run("maps an illegal transition to 409", func() {
		s.ship.On("Handle", mock.Anything, mock.Anything).
			Return(nil, order.NewInvalidTransitionError(order.Refunded, "ship")).Once()

		rec := s.do(http.MethodPost, path, adminToken, `{"courierCompany":"CJ","trackingNumber":"1"}`)

		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("reports an illegal transition before blank details", func() {
		s.ship.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ShipOrderCommand) bool {
			return cmd.CourierCompany() == "" && cmd.TrackingNumber() == ""
		})).Return(nil, order.NewInvalidTransitionError(order.Refunded, "ship")).Once()

		rec := s.do(http.MethodPost, path, adminToken, `{}`)

		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("requires tracking details on a paid order", func() {
		blank := paidOrder(s.T())
		s.ship.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ShipOrderCommand) bool {
			return cmd.CourierCompany() == "CJ" && cmd.TrackingNumber() == ""
		})).Return(nil, blank.Ship("CJ", "", nil)).Once()

		rec := s.do(http.MethodPost, path, adminToken, `{"courierCompany":"CJ"}`)

		s.Require().Equal(http.StatusBadRequest, rec.Code)
		s.Contains(s.decodeError(rec).Errors[0], "trackingNumber")
	})

	s.Run("caps tracking number length", func() {
		body := `{"courierCompany":"CJ","trackingNumber":"` + strings.Repeat("1", 101) + `"}`

		rec := s.do(http.MethodPost, path, adminToken, body)

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ServerTestSuite) TestCompleteAndRefund() {
	id := kernel.NewUUID()

	s.Run("ship manager may complete", func() {
		s.complete.On("Handle", mock.Anything, mock.Anything).Return(paidOrder(s.T()), nil).Once()

		rec := s.do(http.MethodPost, "/api/v1/orders/"+id.String()+"/complete", shipperToken, "")

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("refund body is optional", func() {
		s.refund.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RefundOrderCommand) bool {
			return cmd.Reason() == ""
		})).Return(paidOrder(s.T()), nil).Once()

		rec := s.do(http.MethodPost, "/api/v1/orders/"+id.String()+"/refund", orderToken, "")

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("refund reason is forwarded", func() {
		s.refund.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RefundOrderCommand) bool {
			return cmd.Reason() == "damaged"
		})).Return(paidOrder(s.T()), nil).Once()

		rec := s.do(http.MethodPost, "/api/v1/orders/"+id.String()+"/refund", orderToken, `{"reason":"damaged"}`)

		s.Equal(http.StatusOK, rec.Code)
	})
}

func (s *ServerTestSuite) TestGetOrder() {
	s.Run("unknown order", func() {
		s.get.On("Handle", mock.Anything, mock.Anything).
			Return(order.Snapshot{}, errs.NewObjectNotFoundError("orderId", "x")).Once()

		rec := s.do(http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), shipperToken, "")

		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("malformed id", func() {
		rec := s.do(http.MethodGet, "/api/v1/orders/not-a-uuid", shipperToken, "")

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ServerTestSuite) TestListOrders() {
	s.Run("date-only bounds cover whole KST days", func() {
		wantFrom := time.Date(2024, 1, 1, 0, 0, 0, 0, kernel.KST)
		wantTo := time.Date(2024, 1, 2, 0, 0, 0, 0, kernel.KST).Add(-time.Nanosecond)
		s.list.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
			return q.Page() == 2 && q.Limit() == 10 &&
				q.Status() != nil && *q.Status() == order.Shipped &&
				q.From().Equal(wantFrom) && q.To().Equal(wantTo)
		})).Return(queries.ListOrdersResponse{Items: []order.Snapshot{}, Page: 2, Limit: 10}, nil).Once()

		rec := s.do(http.MethodGet,
			"/api/v1/orders?page=2&limit=10&status=SHIPPED&from=2024-01-01&to=2024-01-01", shipperToken, "")

		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})

	s.Run("accepts RFC 3339 bounds", func() {
		s.list.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
			return q.From() != nil && q.From().Equal(time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)) && q.To() == nil
		})).Return(queries.ListOrdersResponse{Items: []order.Snapshot{}}, nil).Once()

		rec := s.do(http.MethodGet, "/api/v1/orders?from=2024-01-01T12:00:00%2B09:00", orderToken, "")

		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})

	s.Run("rejects an unparseable date", func() {
		rec := s.do(http.MethodGet, "/api/v1/orders?from=yesterday", orderToken, "")

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("rejects a non-numeric page", func() {
		rec := s.do(http.MethodGet, "/api/v1/orders?page=two", orderToken, "")

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ServerTestSuite) TestTrackOrders() {
	s.Run("is public", func() {
		s.track.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.TrackOrdersQuery) bool {
			return q.Name() == "김철수" && q.PhoneDigits() == "01012345678"
		})).Return([]queries.TrackedOrder{{OrderNumber: "ORD-240101-001", Status: "PAID"}}, nil).Once()

		rec := s.do(http.MethodGet, "/api/v1/track?name=%EA%B9%80%EC%B2%A0%EC%88%98&phone=010-1234-5678", "", "")

		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		var tracked []queries.TrackedOrder
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &tracked))
		s.Len(tracked, 1)
	})

	s.Run("needs name and phone", func() {
		rec := s.do(http.MethodGet, "/api/v1/track?name=kim", "", "")

		s.Require().Equal(http.StatusBadRequest, rec.Code)
		s.Contains(s.decodeError(rec).Errors, "phone is required")
	})
}

func (s *ServerTestSuite) TestExchangeRate() {
	s.rate.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetExchangeRateQuery) bool {
		return q.Base() == "CNY" && q.Quote() == "KRW"
	})).Return(queries.ExchangeRateResponse{
		Base:  "CNY",
		Quote: "KRW",
		Rate:  decimal.RequireFromString("190.12"),
	}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/exchange-rate?base=cny&quote=krw", orderToken, "")

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Contains(rec.Body.String(), `"rate":"190.12"`)

	rec = s.do(http.MethodGet, "/api/v1/exchange-rate?base=yuan", orderToken, "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func TestNewServer_RequiresHandlers(t *testing.T) {
	_, err := httpapi.NewServer(httpapi.Handlers{}, nil, zerolog.Nop())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func principal(role staff.Role) auth.Principal {
	return auth.Principal{UserID: kernel.NewUUID(), Email: string(role) + "@yuandi.kr", Role: role}
}

func paidOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder("ORD-240101-001", order.Input{
		CustomerName:    "김철수",
		CustomerPhone:   "010-1234-5678",
		PCCC:            "P123456789012",
		ShippingAddress: "서울특별시 강남구",
		Items:           []order.ItemInput{{ProductID: "p1", Quantity: 2, Price: decimal.NewFromInt(100)}},
	}, &kernel.FixedClock{At: time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)}, nil)
	require.NoError(t, err)
	require.NoError(t, o.AssignID(kernel.NewUUID()))
	assert.Equal(t, order.Paid, o.Status())
	return o
}
