package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/Hala-ashour/Restaurant98/internal/application/customer"
	"github.com/Hala-ashour/Restaurant98/internal/domain/repository"
	"github.com/Hala-ashour/Restaurant98/internal/interfaces/http/middleware"
	"github.com/Hala-ashour/Restaurant98/pkg/logger"
)

type CustomerHandler struct {
	svc *app.Service
	log logger.Logger
}

func NewCustomerHandler(svc *app.Service, log logger.Logger) *CustomerHandler {
	return &CustomerHandler{svc: svc, log: log}
}

// CreateCustomer links the record to the caller when the body names no user.
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var cmd app.CustomerCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		badRequest(c, err)
		return
	}
	if cmd.UserID == nil {
		if p, ok := middleware.PrincipalFrom(c); ok {
			cmd.UserID = &p.UserID
		}
	}
	customer, err := h.svc.CreateCustomer(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var cmd app.CustomerCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		badRequest(c, err)
		return
	}
	customer, err := h.svc.UpdateCustomer(c.Request.Context(), c.Param("id"), cmd)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customer, err := h.svc.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	page, err := pageQuery(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	result, err := h.svc.ListCustomers(c.Request.Context(), repository.CustomerFilter{Phone: c.Query("phone")}, page)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	if err := h.svc.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
