package handler

import (
	"net/http"

	"agrimart-be/internal/address"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateAddress(c *gin.Context) {
	var input address.CreateAddressInput
	if err := decodeStrict(c, &input); err != nil {
		fail(c, "CreateAddress", err)
		return
	}

	a, err := h.addresses.Create(c.Request.Context(), input)
	if err != nil {
		fail(c, "CreateAddress", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Address added successfully", "address": a})
}

func (h *Handler) ListAddresses(c *gin.Context) {
	addresses, err := h.addresses.List(c.Request.Context())
	if err != nil {
		fail(c, "ListAddresses", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "addresses": addresses})
}

func (h *Handler) GetAddress(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, "GetAddress", err)
		return
	}

	a, err := h.addresses.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, "GetAddress", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "address": a})
}

func (h *Handler) DeleteAddress(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, "DeleteAddress", err)
		return
	}

	if err := h.addresses.Delete(c.Request.Context(), id); err != nil {
		fail(c, "DeleteAddress", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Address removed"})
}
