package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trottiparts/trottiparts-api/checkout"
	"github.com/trottiparts/trottiparts-api/initializers"
	"github.com/trottiparts/trottiparts-api/models"
	"github.com/trottiparts/trottiparts-api/orders"
	"github.com/trottiparts/trottiparts-api/payments"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type fakeCatalog struct {
	parts []models.Part
}

func (f *fakeCatalog) PartsByIDs(ids []int) ([]models.Part, error) {
	var matched []models.Part
	for _, part := range f.parts {
		for _, id := range ids {
			if int(part.ID) == id {
				matched = append(matched, part)
			}
		}
	}
	return matched, nil
}

type fakeWriter struct {
	created      *orders.CreateParams
	createErr    error
	sessionSaved string
}

func (f *fakeWriter) Create(params orders.CreateParams) (*models.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = &params
	return &models.Order{
		Model:          gorm.Model{ID: 7},
		OrderNumber:    "TRT-TESTORDER123",
		CorrelationID:  "corr-test",
		Email:          params.Customer.Email,
		DeliveryMethod: params.DeliveryMethod,
		Subtotal:       params.Totals.Subtotal,
		TaxAmount:      params.Totals.Tax,
		DeliveryFee:    params.Totals.DeliveryFee,
		Total:          params.Totals.Total,
		LoyaltyPoints:  params.Totals.LoyaltyPoints,
		Status:         params.Status,
	}, nil
}

func (f *fakeWriter) SetPaymentSession(orderID uint, sessionID string) error {
	f.sessionSaved = sessionID
	return nil
}

type fakeSessions struct {
	request payments.SessionRequest
	err     error
}

func (f *fakeSessions) CreateSession(req payments.SessionRequest) (*payments.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.request = req
	return &payments.Session{ID: "cs_test", URL: "https://pay.example.com/cs_test"}, nil
}

func jwtClaims(userID int) jwt.MapClaims {
	return jwt.MapClaims{"user_id": float64(userID), "role": "user"}
}

func tirePart() models.Part {
	stock := 10
	return models.Part{
		Model: gorm.Model{ID: 1},
		Name:  "Pneu 10 pouces",
		Price: 25.00,
		Stock: &stock,
	}
}

func checkoutBody(t *testing.T, items []map[string]any) []byte {
	t.Helper()
	payload := map[string]any{
		"items": items,
		"customerInfo": map[string]any{
			"firstName":  "Jean",
			"lastName":   "Dupont",
			"email":      "jean.dupont@example.fr",
			"address":    "12 rue de la République",
			"postalCode": "69002",
			"city":       "Lyon",
		},
		"deliveryMethod": "standard",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return body
}

func postCheckout(t *testing.T, controller *CheckoutController, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := gin.New()
	server.POST("/checkout", controller.Checkout)

	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder
}

func TestCheckoutHappyPath(t *testing.T) {
	catalog := &fakeCatalog{parts: []models.Part{tirePart()}}
	writer := &fakeWriter{}
	sessions := &fakeSessions{}
	controller := NewCheckoutController(catalog, writer, sessions)

	body := checkoutBody(t, []map[string]any{{"id": 1, "quantity": 2}})
	recorder := postCheckout(t, controller, body)

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var response struct {
		SessionUrl  string `json:"sessionUrl"`
		OrderNumber string `json:"orderNumber"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "https://pay.example.com/cs_test", response.SessionUrl)
	assert.Equal(t, "TRT-TESTORDER123", response.OrderNumber)

	// Order was written with server-computed totals and awaiting_payment.
	require.NotNil(t, writer.created)
	assert.Equal(t, models.OrderStatusAwaitingPayment, writer.created.Status)
	assert.Equal(t, 50.00, writer.created.Totals.Subtotal)
	assert.Equal(t, 10.00, writer.created.Totals.Tax)
	assert.Equal(t, 4.90, writer.created.Totals.DeliveryFee)
	assert.Equal(t, 64.90, writer.created.Totals.Total)
	assert.Equal(t, 64, writer.created.Totals.LoyaltyPoints)

	// Line price came from the catalog, not the request.
	require.Len(t, writer.created.Lines, 1)
	assert.Equal(t, 25.00, writer.created.Lines[0].UnitPrice)

	// The session carries the correlation metadata and TTC line prices,
	// plus a delivery line.
	assert.Equal(t, "corr-test", sessions.request.Metadata["correlationId"])
	assert.Equal(t, "TRT-TESTORDER123", sessions.request.Metadata["orderNumber"])
	assert.Equal(t, 64.90, sessions.request.Amount)
	require.Len(t, sessions.request.Lines, 2)
	assert.Equal(t, 30.00, sessions.request.Lines[0].UnitPrice)
	assert.Equal(t, 4.90, sessions.request.Lines[1].UnitPrice)

	// Session id persisted for reconciliation lookups.
	assert.Equal(t, "cs_test", writer.sessionSaved)
}

func TestCheckoutIgnoresClientPrices(t *testing.T) {
	catalog := &fakeCatalog{parts: []models.Part{tirePart()}}
	writer := &fakeWriter{}
	controller := NewCheckoutController(catalog, writer, &fakeSessions{})

	// Client echoes a hostile price; only id and quantity are bound.
	body := checkoutBody(t, []map[string]any{{"id": 1, "quantity": 2, "price": 0.01}})
	recorder := postCheckout(t, controller, body)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 50.00, writer.created.Totals.Subtotal)
}

func TestCheckoutEmptyCart(t *testing.T) {
	controller := NewCheckoutController(&fakeCatalog{}, &fakeWriter{}, &fakeSessions{})

	body := checkoutBody(t, []map[string]any{})
	recorder := postCheckout(t, controller, body)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCheckoutUnknownPart(t *testing.T) {
	controller := NewCheckoutController(&fakeCatalog{}, &fakeWriter{}, &fakeSessions{})

	body := checkoutBody(t, []map[string]any{{"id": 404, "quantity": 1}})
	recorder := postCheckout(t, controller, body)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	writer := &fakeWriter{}
	controller := NewCheckoutController(&fakeCatalog{parts: []models.Part{tirePart()}}, writer, &fakeSessions{})

	body := checkoutBody(t, []map[string]any{{"id": 1, "quantity": 11}})
	recorder := postCheckout(t, controller, body)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "refresh your cart")
	assert.Nil(t, writer.created, "no order may be written for an oversold cart")
}

func TestCheckoutStockRaceAtWriteTime(t *testing.T) {
	// Validation passed but the conditional decrement lost the race.
	writer := &fakeWriter{createErr: &checkout.InsufficientStockError{
		PartID: 1, Name: "Pneu 10 pouces", Requested: 2,
	}}
	controller := NewCheckoutController(&fakeCatalog{parts: []models.Part{tirePart()}}, writer, &fakeSessions{})

	body := checkoutBody(t, []map[string]any{{"id": 1, "quantity": 2}})
	recorder := postCheckout(t, controller, body)

	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestCheckoutBadDeliveryMethod(t *testing.T) {
	controller := NewCheckoutController(&fakeCatalog{parts: []models.Part{tirePart()}}, &fakeWriter{}, &fakeSessions{})

	payload := map[string]any{
		"items": []map[string]any{{"id": 1, "quantity": 1}},
		"customerInfo": map[string]any{
			"firstName": "Jean", "lastName": "Dupont",
			"email": "jean@example.fr", "address": "1 rue Test",
			"postalCode": "75001", "city": "Paris",
		},
		"deliveryMethod": "teleportation",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	recorder := postCheckout(t, controller, body)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCheckoutSessionFailureReturns500(t *testing.T) {
	writer := &fakeWriter{}
	controller := NewCheckoutController(
		&fakeCatalog{parts: []models.Part{tirePart()}},
		writer,
		&fakeSessions{err: assert.AnError},
	)

	body := checkoutBody(t, []map[string]any{{"id": 1, "quantity": 1}})
	recorder := postCheckout(t, controller, body)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	// The order exists and stays awaiting_payment; the reaper will
	// cancel it if the customer never retries.
	assert.NotNil(t, writer.created)
}

func TestCreateOrderRequiresAuthentication(t *testing.T) {
	gin.SetMode(gin.TestMode)
	controller := NewCheckoutController(&fakeCatalog{}, &fakeWriter{}, &fakeSessions{})

	server := gin.New()
	server.POST("/order", controller.CreateOrder)

	body := checkoutBody(t, []map[string]any{{"id": 1, "quantity": 1}})
	req := httptest.NewRequest(http.MethodPost, "/order", bytes.NewReader(body))
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestCreateOrderSynchronousFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	writer := &fakeWriter{}
	controller := NewCheckoutController(&fakeCatalog{parts: []models.Part{tirePart()}}, writer, &fakeSessions{})

	server := gin.New()
	server.POST("/order", func(ctx *gin.Context) {
		ctx.Set("user", jwtClaims(42))
		controller.CreateOrder(ctx)
	})

	body := checkoutBody(t, []map[string]any{{"id": 1, "quantity": 2}})
	req := httptest.NewRequest(http.MethodPost, "/order", bytes.NewReader(body))
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.Contains(t, recorder.Body.String(), "TRT-TESTORDER123")

	require.NotNil(t, writer.created)
	assert.Equal(t, models.OrderStatusPending, writer.created.Status)
	require.NotNil(t, writer.created.UserID)
	assert.Equal(t, 42, *writer.created.UserID)
}

func mockGlobalDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	previous := initializers.DB
	initializers.DB = db
	t.Cleanup(func() { initializers.DB = previous })

	return mock
}

func TestGetOrdersCountHonorsStatusFilter(t *testing.T) {
	// The pagination metadata must count the same filtered set the page
	// query returns, not the whole orders table.
	mock := mockGlobalDB(t)

	mock.ExpectQuery("SELECT .+ FROM `orders`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT count").
		WithArgs(models.OrderStatusPaid).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(30))

	gin.SetMode(gin.TestMode)
	server := gin.New()
	server.GET("/admin/order", GetOrders)

	req := httptest.NewRequest(http.MethodGet, "/admin/order?status=paid", nil)
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var body struct {
		Metadata struct {
			Total       int  `json:"total"`
			HasNextPage bool `json:"hasNextPage"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, 30, body.Metadata.Total)
	assert.True(t, body.Metadata.HasNextPage)
	assert.NoError(t, mock.ExpectationsWereMet())
}
