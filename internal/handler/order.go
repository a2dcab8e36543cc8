package handler

import (
	"net/http"
	"strconv"

	"agrimart-be/internal/order"
	"agrimart-be/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type statusRequest struct {
	OrderID uuid.UUID    `json:"orderId" binding:"required"`
	Status  order.Status `json:"status" binding:"required"`
}

func (h *Handler) PlaceCOD(c *gin.Context) {
	var input order.PlaceOrderInput
	if err := decodeStrict(c, &input); err != nil {
		fail(c, "PlaceCOD", err)
		return
	}

	o, err := h.orders.PlaceCOD(c.Request.Context(), currentUser(c), input)
	if err != nil {
		fail(c, "PlaceCOD", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Order Placed", "orderId": o.ID})
}

func (h *Handler) CreateRazorpayOrder(c *gin.Context) {
	var input order.PlaceOrderInput
	if err := decodeStrict(c, &input); err != nil {
		fail(c, "CreateRazorpayOrder", err)
		return
	}

	_, checkout, err := h.orders.CreateOnline(c.Request.Context(), currentUser(c), input)
	if err != nil {
		fail(c, "CreateRazorpayOrder", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "order": checkout})
}

func (h *Handler) VerifyPayment(c *gin.Context) {
	var input order.VerifyPaymentInput
	if err := decodeStrict(c, &input); err != nil {
		fail(c, "VerifyPayment", err)
		return
	}

	o, err := h.orders.VerifyPayment(c.Request.Context(), currentUser(c), input)
	if err != nil {
		fail(c, "VerifyPayment", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment Successful", "order": o})
}

func (h *Handler) UserOrders(c *gin.Context) {
	orders, err := h.orders.ListUserOrders(c.Request.Context(), currentUser(c))
	if err != nil {
		fail(c, "UserOrders", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (h *Handler) SellerOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	orders, err := h.orders.ListAllOrders(c.Request.Context(), order.ListFilter{
		Status:      order.Status(c.Query("status")),
		PaymentType: order.PaymentType(c.Query("paymentType")),
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		fail(c, "SellerOrders", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, "GetOrder", err)
		return
	}

	ctx := c.Request.Context()
	o, err := h.orders.GetOrder(ctx, currentUser(c), id, utils.IsSeller(ctx))
	if err != nil {
		fail(c, "GetOrder", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": o})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := decodeStrict(c, &req); err != nil {
		fail(c, "UpdateStatus", err)
		return
	}

	o, err := h.orders.UpdateStatus(c.Request.Context(), req.OrderID, req.Status)
	if err != nil {
		fail(c, "UpdateStatus", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Status Updated", "order": o})
}
