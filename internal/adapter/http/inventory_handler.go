package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xuanmo666/order-management-system/internal/entity"
	"github.com/xuanmo666/order-management-system/internal/usecase"
)

type InventoryHandler struct {
	ledger *usecase.InventoryLedger
}

func NewInventoryHandler(ledger *usecase.InventoryLedger) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

type inventoryReq struct {
	ProductID    string `json:"productId" binding:"required"`
	Quantity     int    `json:"quantity" binding:"gte=0"`
	MinThreshold *int   `json:"minThreshold"`
	MaxCapacity  *int   `json:"maxCapacity"`
}

func (r *inventoryReq) toEntity() *entity.Inventory {
	inv := entity.NewInventory(r.ProductID)
	inv.Quantity = r.Quantity
	if r.MinThreshold != nil {
		inv.MinThreshold = *r.MinThreshold
	}
	if r.MaxCapacity != nil {
		inv.MaxCapacity = *r.MaxCapacity
	}
	return inv
}

func (h *InventoryHandler) CreateInventory(c *gin.Context) {
	var req inventoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	inv := req.toEntity()
	if err := h.ledger.AddInventory(ctx, inv); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (h *InventoryHandler) UpdateInventory(c *gin.Context) {
	var req inventoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	req.ProductID = c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	inv := req.toEntity()
	if err := h.ledger.UpdateInventory(ctx, inv); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

type adjustReq struct {
	Amount    int    `json:"amount" binding:"required"`
	Operation string `json:"operation" binding:"required"`
}

func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req adjustReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	err := h.ledger.Adjust(ctx, c.Param("id"), req.Amount, usecase.AdjustOp(req.Operation))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *InventoryHandler) GetInventory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	inv, err := h.ledger.GetByProductID(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *InventoryHandler) DeleteInventory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.ledger.Delete(ctx, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (h *InventoryHandler) ListInventory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	// Optional quantity window: ?min_qty=&max_qty=
	minStr, maxStr := c.Query("min_qty"), c.Query("max_qty")
	if minStr != "" || maxStr != "" {
		min, err := strconv.Atoi(minStr)
		if minStr != "" && err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": "invalid min_qty"})
			return
		}
		max := int(^uint(0) >> 1)
		if maxStr != "" {
			max, err = strconv.Atoi(maxStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": "invalid max_qty"})
				return
			}
		}
		items, err := h.ledger.FindByQuantityRange(ctx, min, max)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
		return
	}

	items, err := h.ledger.GetAll(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) LowStock(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	items, err := h.ledger.LowStockItems(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) Statistics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	stats, err := h.ledger.Statistics(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *InventoryHandler) SortedByQuantity(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	ascending := c.DefaultQuery("order", "asc") != "desc"
	items, err := h.ledger.SortedByQuantity(ctx, ascending)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
