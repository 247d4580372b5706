package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/romilkhanna/turing-backend/apperrors"
	"github.com/romilkhanna/turing-backend/services"
)

type pageQuery struct {
	Page              int `form:"page" binding:"omitempty,min=1,max=100000"`
	Limit             int `form:"limit" binding:"omitempty,min=1,max=100"`
	DescriptionLength int `form:"description_length" binding:"omitempty,min=1"`
}

func (q pageQuery) toService() services.PageQuery {
	return services.PageQuery{Page: q.Page, Limit: q.Limit, DescriptionLength: q.DescriptionLength}
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperrors.Validation("invalid request body: " + err.Error())
	}
	return nil
}

func bindQuery(c *gin.Context, dst any) error {
	if err := c.ShouldBindQuery(dst); err != nil {
		return apperrors.Validation("invalid query: " + err.Error())
	}
	return nil
}

func pathID(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, apperrors.Validation(name + " must be a positive integer")
	}
	return id, nil
}

// formatTTL renders token lifetimes the way clients expect, e.g. "24h".
func formatTTL(d time.Duration) string {
	if d > 0 && d%time.Hour == 0 {
		return fmt.Sprintf("%dh", int(d/time.Hour))
	}
	return d.String()
}
