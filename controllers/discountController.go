package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-restaurant-ordering/models"
	"go-restaurant-ordering/repository"
	"go-restaurant-ordering/validation"
)

type DiscountStore interface {
	FindDiscountSetting(ctx context.Context) (*models.DiscountSetting, error)
	SaveDiscountSetting(ctx context.Context, setting *models.DiscountSetting) error
}

type DiscountController struct {
	store   DiscountStore
	timeout time.Duration
	log     *zap.Logger
}

func NewDiscountController(store DiscountStore, timeout time.Duration, log *zap.Logger) *DiscountController {
	return &DiscountController{store: store, timeout: timeout, log: log.Named("discount")}
}

type discountInput struct {
	Percentage *float64 `json:"percentage" validate:"required,gte=0,lte=100"`
	IsActive   *bool    `json:"isActive" validate:"required"`
}

// GetDiscount reports the storewide discount, inactive at zero when none has
// been saved.
func (dc *DiscountController) GetDiscount() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), dc.timeout)
		defer cancel()

		setting, err := dc.store.FindDiscountSetting(ctx)
		if errors.Is(err, repository.ErrNotFound) {
			setting, err = &models.DiscountSetting{ID: models.DiscountSettingID}, nil
		}
		if err != nil {
			respondError(c, dc.log, err)
			return
		}
		c.JSON(http.StatusOK, setting)
	}
}

func (dc *DiscountController) SaveDiscount() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), dc.timeout)
		defer cancel()

		var in discountInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		if err := validation.Struct(&in); err != nil {
			respondError(c, dc.log, err)
			return
		}
		setting := &models.DiscountSetting{Percentage: *in.Percentage, IsActive: *in.IsActive}
		if err := dc.store.SaveDiscountSetting(ctx, setting); err != nil {
			respondError(c, dc.log, err)
			return
		}
		dc.log.Info("discount updated", zap.Float64("percentage", setting.Percentage), zap.Bool("active", setting.IsActive))
		c.JSON(http.StatusOK, setting)
	}
}
