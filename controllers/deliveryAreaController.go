package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"go-restaurant-ordering/models"
	"go-restaurant-ordering/repository"
	"go-restaurant-ordering/validation"
)

type DeliveryAreaStore interface {
	FindBranchByID(ctx context.Context, id primitive.ObjectID) (*models.Branch, error)
	FindActiveDeliveryAreasByBranch(ctx context.Context, branchID primitive.ObjectID) ([]models.DeliveryArea, error)
	ListDeliveryAreas(ctx context.Context, branchID *primitive.ObjectID) ([]models.DeliveryArea, error)
	CreateDeliveryArea(ctx context.Context, area *models.DeliveryArea) error
	UpdateDeliveryArea(ctx context.Context, id primitive.ObjectID, area *models.DeliveryArea) error
	DeleteDeliveryArea(ctx context.Context, id primitive.ObjectID) error
}

type DeliveryAreaController struct {
	store   DeliveryAreaStore
	timeout time.Duration
	log     *zap.Logger
}

func NewDeliveryAreaController(store DeliveryAreaStore, timeout time.Duration, log *zap.Logger) *DeliveryAreaController {
	return &DeliveryAreaController{store: store, timeout: timeout, log: log.Named("delivery_areas")}
}

// deliveryAreaInput is used for both create and update; fee and isActive are
// always written.
type deliveryAreaInput struct {
	Name     string `json:"name" validate:"required"`
	Fee      *int64 `json:"fee" validate:"required,gte=0"`
	Branch   string `json:"branch" validate:"required"`
	IsActive *bool  `json:"isActive"`
}

// GetBranchDeliveryAreas lists the active areas a branch delivers to.
func (dc *DeliveryAreaController) GetBranchDeliveryAreas() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), dc.timeout)
		defer cancel()

		branchID, ok := objectIDParam(c, "branch_id")
		if !ok {
			return
		}
		if _, err := dc.store.FindBranchByID(ctx, branchID); err != nil {
			respondError(c, dc.log, err)
			return
		}
		areas, err := dc.store.FindActiveDeliveryAreasByBranch(ctx, branchID)
		if err != nil {
			respondError(c, dc.log, err)
			return
		}
		listResponse(c, "Delivery areas fetched successfully", areas)
	}
}

// GetDeliveryAreas lists every area, optionally for one branch.
func (dc *DeliveryAreaController) GetDeliveryAreas() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), dc.timeout)
		defer cancel()

		var branchID *primitive.ObjectID
		if b := c.Query("branch"); b != "" {
			id, err := primitive.ObjectIDFromHex(b)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid branch"})
				return
			}
			branchID = &id
		}
		areas, err := dc.store.ListDeliveryAreas(ctx, branchID)
		if err != nil {
			respondError(c, dc.log, err)
			return
		}
		listResponse(c, "Delivery areas fetched successfully", areas)
	}
}

func (dc *DeliveryAreaController) CreateDeliveryArea() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), dc.timeout)
		defer cancel()

		area, ok := dc.bindArea(ctx, c)
		if !ok {
			return
		}
		if err := dc.store.CreateDeliveryArea(ctx, area); err != nil {
			respondError(c, dc.log, err)
			return
		}
		c.JSON(http.StatusCreated, area)
	}
}

func (dc *DeliveryAreaController) UpdateDeliveryArea() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), dc.timeout)
		defer cancel()

		id, ok := objectIDParam(c, "area_id")
		if !ok {
			return
		}
		area, ok := dc.bindArea(ctx, c)
		if !ok {
			return
		}
		if err := dc.store.UpdateDeliveryArea(ctx, id, area); err != nil {
			respondError(c, dc.log, err)
			return
		}
		area.ID = id
		c.JSON(http.StatusOK, area)
	}
}

func (dc *DeliveryAreaController) DeleteDeliveryArea() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), dc.timeout)
		defer cancel()

		id, ok := objectIDParam(c, "area_id")
		if !ok {
			return
		}
		if err := dc.store.DeleteDeliveryArea(ctx, id); err != nil {
			respondError(c, dc.log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "delivery area deleted"})
	}
}

// bindArea decodes and checks the request body, confirming the branch exists.
func (dc *DeliveryAreaController) bindArea(ctx context.Context, c *gin.Context) (*models.DeliveryArea, bool) {
	var in deliveryAreaInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return nil, false
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(&in); err != nil {
		respondError(c, dc.log, err)
		return nil, false
	}
	branchID, err := primitive.ObjectIDFromHex(in.Branch)
	if err != nil {
		respondError(c, dc.log, validation.Errors{{Field: "branch", Message: "branch is not a valid id"}})
		return nil, false
	}
	if _, err := dc.store.FindBranchByID(ctx, branchID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, dc.log, validation.Errors{{Field: "branch", Message: "branch does not exist"}})
		} else {
			respondError(c, dc.log, err)
		}
		return nil, false
	}

	area := &models.DeliveryArea{Name: in.Name, Fee: *in.Fee, Branch: branchID, IsActive: true}
	if in.IsActive != nil {
		area.IsActive = *in.IsActive
	}
	return area, true
}
