package handler

import (
	"net/http"
	"strconv"

	"agrimart-be/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type setStockRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Stock     int       `json:"stock"`
}

func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	inStock, _ := strconv.ParseBool(c.Query("inStock"))

	products, err := h.products.List(c.Request.Context(), product.ListFilter{
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Search:      c.Query("search"),
		InStock:     inStock,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		fail(c, "ListProducts", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, "GetProduct", err)
		return
	}

	p, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, "GetProduct", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": p})
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var input product.CreateProductInput
	if err := decodeStrict(c, &input); err != nil {
		fail(c, "CreateProduct", err)
		return
	}

	p, err := h.products.Create(c.Request.Context(), input)
	if err != nil {
		fail(c, "CreateProduct", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product Added", "product": p})
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, "UpdateProduct", err)
		return
	}

	var input product.UpdateProductInput
	if err := decodeStrict(c, &input); err != nil {
		fail(c, "UpdateProduct", err)
		return
	}
	input.ID = id

	p, err := h.products.Update(c.Request.Context(), input)
	if err != nil {
		fail(c, "UpdateProduct", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": p})
}

func (h *Handler) SetStock(c *gin.Context) {
	var req setStockRequest
	if err := decodeStrict(c, &req); err != nil {
		fail(c, "SetStock", err)
		return
	}

	p, err := h.products.SetStock(c.Request.Context(), req.ProductID, req.Stock)
	if err != nil {
		fail(c, "SetStock", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Stock Updated", "product": p})
}
