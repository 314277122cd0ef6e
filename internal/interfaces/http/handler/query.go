package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Hala-ashour/Restaurant98/internal/domain/apperr"
	"github.com/Hala-ashour/Restaurant98/internal/domain/repository"
)

func pageQuery(c *gin.Context) (repository.Page, error) {
	raw := c.Query("page")
	if raw == "" {
		return repository.NewPage(1), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > repository.MaxPage {
		return repository.Page{}, fmt.Errorf("%w: invalid page %q", apperr.ErrValidation, raw)
	}
	return repository.NewPage(n), nil
}

func boolQuery(c *gin.Context, key string) (*bool, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s %q", apperr.ErrValidation, key, raw)
	}
	return &v, nil
}

func decimalQuery(c *gin.Context, key string) (*decimal.Decimal, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s %q", apperr.ErrValidation, key, raw)
	}
	return &v, nil
}

func stringQuery(c *gin.Context, key string) *string {
	if raw := c.Query(key); raw != "" {
		return &raw
	}
	return nil
}
