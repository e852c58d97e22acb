package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xuanmo666/order-management-system/internal/entity"
	"github.com/xuanmo666/order-management-system/internal/idgen"
	"github.com/xuanmo666/order-management-system/internal/usecase"
)

type ProductHandler struct {
	catalog *usecase.ProductCatalog
	ledger  *usecase.InventoryLedger
}

func NewProductHandler(catalog *usecase.ProductCatalog, ledger *usecase.InventoryLedger) *ProductHandler {
	return &ProductHandler{catalog: catalog, ledger: ledger}
}

type createProductReq struct {
	ID       string  `json:"id"`
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Category string  `json:"category" binding:"required"`
	Stock    int     `json:"stock" binding:"gte=0"`
}

// CreateProduct stores the product and pairs a ledger record with the same
// quantity; the catalog itself does not cascade.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req createProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	if req.ID == "" {
		req.ID = idgen.NewProductID()
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	p := &entity.Product{
		ID:       req.ID,
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		Stock:    req.Stock,
	}
	if err := h.catalog.AddProduct(ctx, p); err != nil {
		writeError(c, err)
		return
	}

	inv := entity.NewInventory(p.ID)
	inv.Quantity = p.Stock
	if err := h.ledger.AddInventory(ctx, inv); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req createProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	p := &entity.Product{
		ID:       c.Param("id"),
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		Stock:    req.Stock,
	}
	if err := h.catalog.UpdateProduct(ctx, p); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProduct removes both the product and its paired ledger record; the
// ledger delete is idempotent so an unpaired product is fine.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	id := c.Param("id")
	if err := h.catalog.DeleteProduct(ctx, id); err != nil {
		writeError(c, err)
		return
	}
	if err := h.ledger.Delete(ctx, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	p, err := h.catalog.GetByID(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListProducts doubles as search: keyword, category, min_price, max_price
// query params are each optional.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	f := usecase.SearchFilter{
		Keyword:  c.Query("keyword"),
		Category: c.Query("category"),
	}
	if v := c.Query("min_price"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": "invalid min_price"})
			return
		}
		f.MinPrice = &min
	}
	if v := c.Query("max_price"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": "invalid max_price"})
			return
		}
		f.MaxPrice = &max
	}

	products, err := h.catalog.Search(ctx, f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

type stockAmountReq struct {
	Amount int `json:"amount" binding:"required"`
}

func (h *ProductHandler) StockIn(c *gin.Context) {
	var req stockAmountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.catalog.StockIn(ctx, c.Param("id"), req.Amount); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ProductHandler) StockOut(c *gin.Context) {
	var req stockAmountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	ok, err := h.catalog.StockOut(ctx, c.Param("id"), req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": ok})
}

func (h *ProductHandler) CategoryStatistics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	stats, err := h.catalog.CategoryStatistics(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *ProductHandler) SortedByPrice(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	ascending := c.DefaultQuery("order", "asc") != "desc"
	products, err := h.catalog.SortedByPrice(ctx, ascending)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
