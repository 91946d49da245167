package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/ordersvc/internal/domain/model"
	"github.com/polkiloo/ordersvc/internal/server/http/dto"
	"github.com/polkiloo/ordersvc/internal/usecase"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	facade OrderFacade
	logger *slog.Logger
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{facade: facade, logger: logger}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Validation failed", err.Error()))
		return
	}

	items := make([]model.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.LineItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), usecase.CreateOrderCommand{
		UserID:          req.UserID,
		Credential:      CurrentCredential(c),
		Items:           items,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Envelope{
		Success: true,
		Message: "Order created successfully",
		Data:    dto.OrderData{Order: order},
	})
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{Success: true, Data: dto.OrderData{Order: order}})
}

// Events handles GET /api/orders/:id/events.
func (h *OrderHandler) Events(c *gin.Context) {
	list, err := h.facade.OrderEvents(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{Success: true, Data: dto.EventListData{Events: list}})
}

// ListByUser handles GET /api/orders/user/:userId.
func (h *OrderHandler) ListByUser(c *gin.Context) {
	page, err := h.facade.OrdersByUser(c.Request.Context(), c.Param("userId"), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{
		Success: true,
		Data: dto.OrderListData{
			Orders: page.Orders,
			Pagination: dto.Pagination{
				Page:  page.Page,
				Limit: page.Limit,
				Total: page.Total,
				Pages: page.Pages,
			},
		},
	})
}

// UpdateStatus handles PUT /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Validation failed", err.Error()))
		return
	}

	order, err := h.facade.UpdateStatus(c.Request.Context(), c.Param("id"), model.Status(strings.TrimSpace(req.Status)))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{
		Success: true,
		Message: "Order status updated successfully",
		Data:    dto.OrderData{Order: order},
	})
}

// Cancel handles POST /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	order, err := h.facade.CancelOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{
		Success: true,
		Message: "Order cancelled successfully",
		Data:    dto.OrderData{Order: order},
	})
}
