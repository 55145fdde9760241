package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"go-restaurant-ordering/models"
	"go-restaurant-ordering/validation"
)

type PromoCodeStore interface {
	ListPromoCodes(ctx context.Context) ([]models.PromoCode, error)
	CreatePromoCode(ctx context.Context, promo *models.PromoCode) error
	UpdatePromoCode(ctx context.Context, id primitive.ObjectID, promo *models.PromoCode) error
	DeletePromoCode(ctx context.Context, id primitive.ObjectID) error
}

type PromoCodeController struct {
	store   PromoCodeStore
	timeout time.Duration
	log     *zap.Logger
}

func NewPromoCodeController(store PromoCodeStore, timeout time.Duration, log *zap.Logger) *PromoCodeController {
	return &PromoCodeController{store: store, timeout: timeout, log: log.Named("promo_codes")}
}

type promoCodeUpdate struct {
	Code     string  `json:"code" validate:"omitempty,max=32"`
	Discount float64 `json:"discount" validate:"omitempty,gt=0,lte=100"`
}

func (pc *PromoCodeController) GetPromoCodes() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pc.timeout)
		defer cancel()

		promos, err := pc.store.ListPromoCodes(ctx)
		if err != nil {
			respondError(c, pc.log, err)
			return
		}
		listResponse(c, "Promo codes fetched successfully", promos)
	}
}

// CreatePromoCode stores a code upper-cased. Codes are unique.
func (pc *PromoCodeController) CreatePromoCode() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pc.timeout)
		defer cancel()

		var promo models.PromoCode
		if err := c.ShouldBindJSON(&promo); err != nil {
			bindError(c, err)
			return
		}
		promo.Code = validation.NormalizePromoCode(promo.Code)
		if err := validation.Struct(&promo); err != nil {
			respondError(c, pc.log, err)
			return
		}
		if err := pc.store.CreatePromoCode(ctx, &promo); err != nil {
			respondError(c, pc.log, err)
			return
		}
		c.JSON(http.StatusCreated, promo)
	}
}

func (pc *PromoCodeController) UpdatePromoCode() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pc.timeout)
		defer cancel()

		id, ok := objectIDParam(c, "promo_id")
		if !ok {
			return
		}
		var in promoCodeUpdate
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		in.Code = validation.NormalizePromoCode(in.Code)
		if err := validation.Struct(&in); err != nil {
			respondError(c, pc.log, err)
			return
		}
		promo := &models.PromoCode{ID: id, Code: in.Code, Discount: in.Discount}
		if err := pc.store.UpdatePromoCode(ctx, id, promo); err != nil {
			respondError(c, pc.log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "promo code updated"})
	}
}

func (pc *PromoCodeController) DeletePromoCode() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pc.timeout)
		defer cancel()

		id, ok := objectIDParam(c, "promo_id")
		if !ok {
			return
		}
		if err := pc.store.DeletePromoCode(ctx, id); err != nil {
			respondError(c, pc.log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "promo code deleted"})
	}
}
