package delivery

import (
	"net/http"

	"canteen_service/internal/domain"
	"canteen_service/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type OrderHandler struct {
	useCase domain.OrderUseCase
	log     *logrus.Logger
}

func NewOrderHandler(uc domain.OrderUseCase, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		useCase: uc,
		log:     logger,
	}
}

// RegisterRoutes mounts the order endpoints on an authenticated router group.
func (h *OrderHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/place-order", h.PlaceOrder)
	router.GET("/my-orders", h.MyOrders)
}

// PlaceOrderResponse is the 201 payload of POST /place-order.
type PlaceOrderResponse struct {
	Message     string  `json:"message"`
	OrderID     string  `json:"orderId"`
	TotalAmount float64 `json:"totalAmount"`
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		h.log.Error("Identity missing from context in PlaceOrder")
		ErrorResponse(c, http.StatusUnauthorized, "User identification missing")
		return
	}

	var req domain.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind place-order request for user %d: %v", identity.UserID, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.useCase.PlaceOrder(c.Request.Context(), identity, &req)
	if err != nil {
		if isValidationError(err) {
			ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Errorf("Order placement failed for user %d: %v", identity.UserID, err)
		ErrorResponseWithDetail(c, http.StatusInternalServerError, "Order placement failed", err)
		return
	}

	c.JSON(http.StatusCreated, PlaceOrderResponse{
		Message:     "Order placed successfully",
		OrderID:     order.ID,
		TotalAmount: order.TotalAmount,
	})
}

func (h *OrderHandler) MyOrders(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		h.log.Error("Identity missing from context in MyOrders")
		ErrorResponse(c, http.StatusUnauthorized, "User identification missing")
		return
	}

	list, err := h.useCase.MyOrders(c.Request.Context(), identity)
	if err != nil {
		h.log.Errorf("Failed to fetch orders for user %d: %v", identity.UserID, err)
		ErrorResponseWithDetail(c, http.StatusInternalServerError, "Failed to fetch orders", err)
		return
	}

	c.JSON(http.StatusOK, list)
}
