package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/trottiparts/trottiparts-api/checkout"
	"github.com/trottiparts/trottiparts-api/initializers"
	"github.com/trottiparts/trottiparts-api/middlewares"
	"github.com/trottiparts/trottiparts-api/models"
	"github.com/trottiparts/trottiparts-api/orders"
	"github.com/trottiparts/trottiparts-api/payments"
)

// CheckoutRequest is the client's checkout submission. Item prices are
// never part of it: the server re-reads every price from the catalog.
type CheckoutRequest struct {
	Items          []checkout.CartLine `json:"items" binding:"required"`
	CustomerInfo   orders.CustomerInfo `json:"customerInfo" binding:"required"`
	DeliveryMethod string              `json:"deliveryMethod" binding:"required"`
	Notes          string              `json:"notes"`
}

type orderCreator interface {
	Create(params orders.CreateParams) (*models.Order, error)
	SetPaymentSession(orderID uint, sessionID string) error
}

type sessionCreator interface {
	CreateSession(req payments.SessionRequest) (*payments.Session, error)
}

// CheckoutController wires the validator, totals calculator, order
// writer and payment-session initiator behind the two order-creation
// endpoints.
type CheckoutController struct {
	parts    checkout.PartReader
	writer   orderCreator
	sessions sessionCreator
}

func NewCheckoutController(parts checkout.PartReader, writer orderCreator, sessions sessionCreator) *CheckoutController {
	return &CheckoutController{parts: parts, writer: writer, sessions: sessions}
}

// respondCheckoutError maps validation failures to user-facing responses.
func respondCheckoutError(ctx *gin.Context, err error) {
	var notFound *checkout.PartNotFoundError
	var noStock *checkout.InsufficientStockError

	switch {
	case errors.As(err, &notFound):
		sendErrorResponse(ctx, http.StatusNotFound, err.Error())
	case errors.As(err, &noStock):
		sendJSONResponse(ctx, http.StatusConflict, gin.H{
			"message": err.Error() + ", please refresh your cart",
		})
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrTooManyLines),
		errors.Is(err, checkout.ErrBadQuantity),
		errors.Is(err, checkout.ErrDuplicateLine),
		errors.Is(err, checkout.ErrUnknownDeliveryMethod):
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		log.Println("Checkout error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
	}
}

// Checkout validates the cart, creates an awaiting_payment order and a
// hosted payment session, and returns the redirect URL. Guest checkout
// is allowed: the user id is attached only when a valid token is present.
func (cc *CheckoutController) Checkout(ctx *gin.Context) {
	var req CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	lines, err := checkout.ValidateCart(cc.parts, req.Items)
	if err != nil {
		respondCheckoutError(ctx, err)
		return
	}

	totals, err := checkout.ComputeTotals(lines, req.DeliveryMethod)
	if err != nil {
		respondCheckoutError(ctx, err)
		return
	}

	var userID *int
	if id := middlewares.UserIDFromContext(ctx); id != 0 {
		userID = &id
	}

	order, err := cc.writer.Create(orders.CreateParams{
		UserID:         userID,
		Customer:       req.CustomerInfo,
		DeliveryMethod: req.DeliveryMethod,
		Notes:          req.Notes,
		Lines:          lines,
		Totals:         totals,
		Status:         models.OrderStatusAwaitingPayment,
	})
	if err != nil {
		respondCheckoutError(ctx, err)
		return
	}

	session, err := cc.sessions.CreateSession(buildSessionRequest(order, lines))
	if err != nil {
		log.Printf("Payment session error for order %s: %v", order.OrderNumber, err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to initiate payment")
		return
	}

	if err := cc.writer.SetPaymentSession(order.ID, session.ID); err != nil {
		log.Printf("Order %s created, but session ID not saved: %s", order.OrderNumber, session.ID)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"sessionUrl":  session.URL,
		"orderNumber": order.OrderNumber,
	})
}

// CreateOrder is the authenticated synchronous flow: the order is
// persisted as pending without a hosted payment step.
func (cc *CheckoutController) CreateOrder(ctx *gin.Context) {
	userId := middlewares.UserIDFromContext(ctx)
	if userId == 0 {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	lines, err := checkout.ValidateCart(cc.parts, req.Items)
	if err != nil {
		respondCheckoutError(ctx, err)
		return
	}

	totals, err := checkout.ComputeTotals(lines, req.DeliveryMethod)
	if err != nil {
		respondCheckoutError(ctx, err)
		return
	}

	order, err := cc.writer.Create(orders.CreateParams{
		UserID:         &userId,
		Customer:       req.CustomerInfo,
		DeliveryMethod: req.DeliveryMethod,
		Notes:          req.Notes,
		Lines:          lines,
		Totals:         totals,
		Status:         models.OrderStatusPending,
	})
	if err != nil {
		respondCheckoutError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"success":     true,
		"orderNumber": order.OrderNumber,
		"orderId":     order.ID,
	})
}

// buildSessionRequest assembles the provider line items: one TTC line
// per order item plus one for the delivery fee. The correlation id rides
// along as metadata and comes back on the webhook.
func buildSessionRequest(order *models.Order, lines []checkout.ValidatedLine) payments.SessionRequest {
	sessionLines := make([]payments.SessionLine, 0, len(lines)+1)
	for _, line := range lines {
		sessionLines = append(sessionLines, payments.SessionLine{
			Name:      line.Name,
			ImageUrl:  line.ImageUrl,
			UnitPrice: checkout.TTCUnitPrice(line.UnitPrice),
			Quantity:  line.Quantity,
		})
	}
	sessionLines = append(sessionLines, payments.SessionLine{
		Name:      "Livraison (" + order.DeliveryMethod + ")",
		UnitPrice: order.DeliveryFee,
		Quantity:  1,
	})

	frontend := os.Getenv("FRONTEND_URL")
	return payments.SessionRequest{
		Amount:        order.Total,
		Currency:      "EUR",
		CustomerEmail: order.Email,
		Lines:         sessionLines,
		Metadata: map[string]string{
			"correlationId": order.CorrelationID,
			"orderNumber":   order.OrderNumber,
		},
		SuccessURL: frontend + "/commande/confirmation?numero=" + order.OrderNumber,
		CancelURL:  frontend + "/panier",
	}
}

func GetOrders(ctx *gin.Context) {
	var orderList []models.Order

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	offset := (page - 1) * limit

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := initializers.DB.Preload("OrderItems")

	if search := ctx.Query("search"); search != "" {
		query = query.Where("order_number LIKE ?", "%"+search+"%")
	}

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	query = query.Order("created_at " + sortOrder)

	result := query.Limit(limit).Offset(offset).Find(&orderList)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	var count int64
	countQuery := initializers.DB.Model(&models.Order{})
	if search := ctx.Query("search"); search != "" {
		countQuery = countQuery.Where("order_number LIKE ?", "%"+search+"%")
	}
	if status := ctx.Query("status"); status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}
	countQuery.Count(&count)

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	ctx.JSON(http.StatusOK, gin.H{
		"orders": orderList,
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

func GetOrdersByCustomerId(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := initializers.DB.Preload("OrderItems").Where("user_id = ?", userId)

	if search := ctx.Query("search"); search != "" {
		query = query.Where("order_number LIKE ?", "%"+search+"%")
	}

	var orderList []models.Order
	if result := query.Order("created_at " + sortOrder).Find(&orderList); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to fetch orders.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orders": orderList,
	})
}

func GetOrderById(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var order models.Order
	if result := initializers.DB.Preload("OrderItems").Where("id = ?", orderId).First(&order); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusNotFound, "Failed to fetch order.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"order": order,
	})
}

// UpdateOrderStatus lets an admin move a paid order through fulfillment
// (shipped, completed). The paid transition itself only ever happens
// through the payment webhook.
func UpdateOrderStatus(ctx *gin.Context) {
	var orderStatusData struct {
		Status string `json:"status" binding:"required"`
	}
	err := ctx.ShouldBindJSON(&orderStatusData)
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	switch orderStatusData.Status {
	case models.OrderStatusShipped, models.OrderStatusCompleted, models.OrderStatusCancelled:
	default:
		sendErrorResponse(ctx, http.StatusBadRequest, "Unsupported status transition")
		return
	}

	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}
	if result := initializers.DB.Model(&models.Order{}).Where("id = ?", orderId).Update("status", orderStatusData.Status); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to update order status")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully.",
	})
}

func GetUndeliveredOrders(ctx *gin.Context) {
	var count int64

	result := initializers.DB.
		Model(&models.Order{}).
		Where("status IN ?", []string{models.OrderStatusPaid, models.OrderStatusPending, models.OrderStatusShipped}).
		Count(&count)

	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count undelivered orders"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"undeliveredOrderCount": count})
}

// GetDeliveryMethods exposes the server-side fee table so the storefront
// always displays the amounts the server will charge.
func GetDeliveryMethods(ctx *gin.Context) {
	methods := make([]gin.H, 0, 3)
	for _, name := range checkout.DeliveryMethods() {
		fee, err := checkout.DeliveryFee(name)
		if err != nil {
			continue
		}
		methods = append(methods, gin.H{"method": name, "fee": fee})
	}
	ctx.JSON(http.StatusOK, gin.H{"deliveryMethods": methods})
}
