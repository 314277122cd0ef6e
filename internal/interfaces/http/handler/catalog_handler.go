package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/Hala-ashour/Restaurant98/internal/application/catalog"
	"github.com/Hala-ashour/Restaurant98/internal/domain/repository"
	"github.com/Hala-ashour/Restaurant98/pkg/logger"
)

type CatalogHandler struct {
	svc *app.Service
	log logger.Logger
}

func NewCatalogHandler(svc *app.Service, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: log}
}

/* ================= categories ================= */

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var cmd app.CategoryCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		badRequest(c, err)
		return
	}
	category, err := h.svc.CreateCategory(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var cmd app.CategoryCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		badRequest(c, err)
		return
	}
	category, err := h.svc.UpdateCategory(c.Request.Context(), c.Param("id"), cmd)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category, err := h.svc.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	page, err := pageQuery(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	active, err := boolQuery(c, "is_active")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	result, err := h.svc.ListCategories(c.Request.Context(), repository.CategoryFilter{Active: active}, page)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.svc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

/* ================= products ================= */

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var cmd app.ProductCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		badRequest(c, err)
		return
	}
	product, err := h.svc.CreateProduct(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toProduct(*product))
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var cmd app.ProductCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		badRequest(c, err)
		return
	}
	product, err := h.svc.UpdateProduct(c.Request.Context(), c.Param("id"), cmd)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toProduct(*product))
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.svc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toProduct(*product))
}

// ListProducts filters by category, is_available, price_gt and price_lt (both exclusive).
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	page, err := pageQuery(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	f := repository.ProductFilter{CategoryID: stringQuery(c, "category")}
	if f.Available, err = boolQuery(c, "is_available"); err != nil {
		respondError(c, h.log, err)
		return
	}
	if f.PriceGT, err = decimalQuery(c, "price_gt"); err != nil {
		respondError(c, h.log, err)
		return
	}
	if f.PriceLT, err = decimalQuery(c, "price_lt"); err != nil {
		respondError(c, h.log, err)
		return
	}

	result, err := h.svc.ListProducts(c.Request.Context(), f, page)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(result, toProduct))
}

func (h *CatalogHandler) ListAvailableProducts(c *gin.Context) {
	page, err := pageQuery(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	result, err := h.svc.ListAvailableProducts(c.Request.Context(), page)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(result, toProduct))
}

func (h *CatalogHandler) MenuByCategory(c *gin.Context) {
	menu, err := h.svc.MenuByCategory(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	type section struct {
		CategoryID   string            `json:"category_id"`
		CategoryName string            `json:"category_name"`
		Products     []productResponse `json:"products"`
	}
	out := make([]section, 0, len(menu))
	for _, m := range menu {
		out = append(out, section{CategoryID: m.CategoryID, CategoryName: m.CategoryName, Products: toProducts(m.Products)})
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) CheckAvailability(c *gin.Context) {
	a, err := h.svc.CheckAvailability(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.svc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
