package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xuanmo666/order-management-system/internal/entity"
	"github.com/xuanmo666/order-management-system/internal/idgen"
	"github.com/xuanmo666/order-management-system/internal/usecase"
)

type CustomerHandler struct {
	registry *usecase.CustomerRegistry
}

func NewCustomerHandler(registry *usecase.CustomerRegistry) *CustomerHandler {
	return &CustomerHandler{registry: registry}
}

type createCustomerReq struct {
	ID    string `json:"id"`
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req createCustomerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	if req.ID == "" {
		req.ID = idgen.NewCustomerID()
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	cust := &entity.Customer{ID: req.ID, Name: req.Name, Phone: req.Phone}
	if err := h.registry.AddCustomer(ctx, cust); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cust)
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	cust, err := h.registry.GetByID(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	customers, err := h.registry.GetAll(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}
