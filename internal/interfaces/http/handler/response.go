package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Hala-ashour/Restaurant98/internal/domain/apperr"
	"github.com/Hala-ashour/Restaurant98/internal/domain/catalog"
	"github.com/Hala-ashour/Restaurant98/internal/domain/order"
	"github.com/Hala-ashour/Restaurant98/internal/domain/repository"
	"github.com/Hala-ashour/Restaurant98/pkg/logger"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrReferentialIntegrity), errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrPermissionDenied):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with the status of its kind. Unclassified errors are logged and hidden.
func respondError(c *gin.Context, log logger.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		log.WithContext(c.Request.Context()).Error("request failed", logger.String("path", c.FullPath()), logger.Error(err))
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

type pageResponse[T any] struct {
	Count   int  `json:"count"`
	Page    int  `json:"page"`
	HasNext bool `json:"has_next"`
	Results []T  `json:"results"`
}

func mapPage[T, R any](p repository.PageResult[T], fn func(T) R) pageResponse[R] {
	out := make([]R, 0, len(p.Results))
	for _, v := range p.Results {
		out = append(out, fn(v))
	}
	return pageResponse[R]{Count: p.Count, Page: p.Page, HasNext: p.HasNext, Results: out}
}

type productResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           string    `json:"price"`
	Category        *string   `json:"category"`
	IsAvailable     bool      `json:"is_available"`
	PreparationTime int       `json:"preparation_time"`
	CreatedAt       time.Time `json:"created_at"`
}

func toProduct(p catalog.Product) productResponse {
	return productResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price.StringFixed(2),
		Category:        p.CategoryID,
		IsAvailable:     p.IsAvailable,
		PreparationTime: p.PreparationTime,
		CreatedAt:       p.CreatedAt,
	}
}

func toProducts(ps []catalog.Product) []productResponse {
	out := make([]productResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProduct(p))
	}
	return out
}

type itemResponse struct {
	ID               string `json:"id"`
	Order            string `json:"order"`
	Product          string `json:"product"`
	Quantity         int    `json:"quantity"`
	UnitPrice        string `json:"unit_price"`
	LineTotal        string `json:"line_total"`
	ProductAvailable bool   `json:"product_available"`
}

func toItem(i order.Item) itemResponse {
	return itemResponse{
		ID:               i.ID,
		Order:            i.OrderID,
		Product:          i.ProductID,
		Quantity:         i.Quantity,
		UnitPrice:        i.UnitPrice.StringFixed(2),
		LineTotal:        i.LineTotal().StringFixed(2),
		ProductAvailable: i.ProductAvailable,
	}
}

type orderResponse struct {
	ID          string         `json:"id"`
	Customer    string         `json:"customer"`
	OrderDate   time.Time      `json:"order_date"`
	TotalAmount string         `json:"total_amount"`
	Status      order.Status   `json:"status"`
	Notes       string         `json:"notes"`
	Items       []itemResponse `json:"items"`
}

func toOrder(o order.Order) orderResponse {
	items := make([]itemResponse, 0, len(o.Items))
	for _, i := range o.Items {
		items = append(items, toItem(i))
	}
	return orderResponse{
		ID:          o.ID,
		Customer:    o.Customer,
		OrderDate:   o.CreatedAt,
		TotalAmount: o.TotalAmount.StringFixed(2),
		Status:      o.Status,
		Notes:       o.Notes,
		Items:       items,
	}
}
