package handler

import (
	"errors"
	"net/http"

	"agrimart-be/internal/category"

	"github.com/gin-gonic/gin"
)

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		fail(c, "ListCategories", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req nameRequest
	if err := decodeStrict(c, &req); err != nil {
		fail(c, "CreateCategory", err)
		return
	}

	cat, err := h.categories.Create(c.Request.Context(), req.Name)
	if err != nil {
		fail(c, "CreateCategory", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "category": cat})
}

func (h *Handler) CreateSubcategory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, "CreateSubcategory", err)
		return
	}

	var req nameRequest
	if err := decodeStrict(c, &req); err != nil {
		fail(c, "CreateSubcategory", err)
		return
	}

	sub, err := h.categories.CreateSubcategory(c.Request.Context(), id, req.Name)
	if err != nil {
		// the path names the category, so a missing one is a 404 here
		if errors.Is(err, category.ErrCategoryNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
			return
		}
		fail(c, "CreateSubcategory", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "subcategory": sub})
}
