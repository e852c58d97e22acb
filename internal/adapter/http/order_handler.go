package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xuanmo666/order-management-system/internal/entity"
	"github.com/xuanmo666/order-management-system/internal/idgen"
	"github.com/xuanmo666/order-management-system/internal/logging"
	"github.com/xuanmo666/order-management-system/internal/usecase"
)

type OrderHandler struct {
	processor *usecase.OrderProcessor
	customers *usecase.CustomerRegistry
	idem      usecase.IdempotencyStore
}

func NewOrderHandler(processor *usecase.OrderProcessor, customers *usecase.CustomerRegistry,
	idem usecase.IdempotencyStore) *OrderHandler {
	return &OrderHandler{processor: processor, customers: customers, idem: idem}
}

type orderItemReq struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type createOrderReq struct {
	OrderID    string         `json:"orderId"`
	CustomerID string         `json:"customerId" binding:"required"`
	Items      []orderItemReq `json:"items" binding:"required,min=1"`
}

// CreateOrder translates the request into a draft order. A repeated
// X-Idempotency-Key returns the originally created order id instead of
// creating a duplicate.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	idemKey := c.GetHeader("X-Idempotency-Key")
	if idemKey != "" {
		if id, ok, _ := h.idem.Recall(ctx, req.CustomerID, idemKey); ok {
			c.JSON(http.StatusOK, gin.H{"orderId": id, "status": string(entity.StatusPending), "duplicate": true})
			return
		}
		ok, err := h.idem.TryLock(ctx, req.CustomerID, idemKey)
		if err != nil {
			logging.From(c).Warn("idempotency store unavailable", "err", err)
		} else if !ok {
			c.JSON(http.StatusConflict, gin.H{"error": "duplicate_request"})
			return
		}
	}

	customer, err := h.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		writeError(c, err)
		return
	}

	orderID := req.OrderID
	if orderID == "" {
		orderID = idgen.NewOrderID()
	}
	items := make([]entity.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, entity.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	order := &entity.Order{
		OrderID:  orderID,
		Customer: customer,
		Items:    items,
	}

	if err := h.processor.CreateOrder(ctx, order); err != nil {
		writeError(c, err)
		return
	}
	if idemKey != "" {
		_ = h.idem.Remember(ctx, req.CustomerID, idemKey, order.OrderID)
	}

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	order, err := h.processor.GetByID(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListOrders doubles as search: customer_id and status query params are
// each optional.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := entity.Status(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": "unknown status"})
		return
	}
	orders, err := h.processor.SearchOrders(ctx, c.Query("customer_id"), status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.processor.UpdateOrderStatus(ctx, c.Param("id"), entity.Status(req.Status)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.processor.CancelOrder(ctx, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *OrderHandler) Statistics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	stats, err := h.processor.Statistics(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *OrderHandler) HotProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	limit := 10
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": "invalid limit"})
			return
		}
		limit = n
	}
	products, err := h.processor.HotProducts(ctx, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
