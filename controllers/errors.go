package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"go-restaurant-ordering/checkout"
	"go-restaurant-ordering/orderstatus"
	"go-restaurant-ordering/pricing"
	"go-restaurant-ordering/repository"
	"go-restaurant-ordering/validation"
)

// respondError maps domain errors onto HTTP responses. Anything unrecognised
// is logged and reported as a generic 500.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var (
		verrs validation.Errors
		ipe   *checkout.InvalidPromoCodeError
		nfe   *checkout.NotFoundError
		mcr   *orderstatus.MissingCancelReasonError
		ise   *orderstatus.InvalidStatusError
		tse   *orderstatus.TerminalStateError
		pe    *pricing.InvalidPriceError
	)
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": verrs[0].Message, "errors": verrs})
	case errors.As(err, &mcr):
		c.JSON(http.StatusBadRequest, gin.H{"error": mcr.Error(), "errors": validation.Errors{{Field: "cancelReason", Message: mcr.Error()}}})
	case errors.As(err, &ise), errors.As(err, &ipe), errors.As(err, &pe):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &nfe):
		c.JSON(http.StatusNotFound, gin.H{"error": nfe.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &tse):
		c.JSON(http.StatusConflict, gin.H{"error": tse.Error()})
	case errors.Is(err, repository.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "order was modified concurrently, reload and retry"})
	default:
		_ = c.Error(err)
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// objectIDParam reads a hex id from the path, writing a 400 when it is
// malformed.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return primitive.NilObjectID, false
	}
	return id, true
}

func listResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"status":  http.StatusOK,
		"message": message,
		"data":    data,
	})
}
