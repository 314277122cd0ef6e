package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/Hala-ashour/Restaurant98/internal/application/order"
	domain "github.com/Hala-ashour/Restaurant98/internal/domain/order"
	"github.com/Hala-ashour/Restaurant98/internal/domain/repository"
	"github.com/Hala-ashour/Restaurant98/pkg/logger"
)

type OrderHandler struct {
	svc *app.Service
	log logger.Logger
}

func NewOrderHandler(svc *app.Service, log logger.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log}
}

type addItemRequest struct {
	Product  string `json:"product" binding:"required"`
	Quantity *int   `json:"quantity"`
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var cmd app.CreateOrderCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.svc.CreateOrder(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toOrder(*order))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.svc.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toOrder(*order))
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, err := pageQuery(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	f := repository.OrderFilter{Customer: c.Query("customer")}
	if raw := c.Query("status"); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		f.Status = &status
	}

	result, err := h.svc.ListOrders(c.Request.Context(), f, page)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(result, toOrder))
}

// UpdateOrder changes customer and notes only. Status goes through SetStatus.
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var cmd app.UpdateOrderCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.svc.UpdateOrder(c.Request.Context(), c.Param("id"), cmd)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toOrder(*order))
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.svc.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	quantity := domain.DefaultQuantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	item, err := h.svc.AddItem(c.Request.Context(), c.Param("id"), req.Product, quantity)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toItem(*item))
}

func (h *OrderHandler) SetStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toOrder(*order))
}

func (h *OrderHandler) RecomputeTotal(c *gin.Context) {
	order, err := h.svc.RecomputeTotal(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toOrder(*order))
}
