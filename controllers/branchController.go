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

type BranchStore interface {
	ListBranches(ctx context.Context) ([]models.Branch, error)
	FindBranchByID(ctx context.Context, id primitive.ObjectID) (*models.Branch, error)
	CreateBranch(ctx context.Context, branch *models.Branch) error
	UpdateBranch(ctx context.Context, id primitive.ObjectID, branch *models.Branch) error
	DeleteBranch(ctx context.Context, id primitive.ObjectID) error
}

type BranchController struct {
	store   BranchStore
	timeout time.Duration
	log     *zap.Logger
}

func NewBranchController(store BranchStore, timeout time.Duration, log *zap.Logger) *BranchController {
	return &BranchController{store: store, timeout: timeout, log: log.Named("branches")}
}

type branchUpdate struct {
	Name    string `json:"name" validate:"omitempty,min=2,max=100"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (bc *BranchController) GetBranches() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), bc.timeout)
		defer cancel()

		branches, err := bc.store.ListBranches(ctx)
		if err != nil {
			respondError(c, bc.log, err)
			return
		}
		listResponse(c, "Branches fetched successfully", branches)
	}
}

func (bc *BranchController) GetBranch() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), bc.timeout)
		defer cancel()

		id, ok := objectIDParam(c, "branch_id")
		if !ok {
			return
		}
		branch, err := bc.store.FindBranchByID(ctx, id)
		if err != nil {
			respondError(c, bc.log, err)
			return
		}
		c.JSON(http.StatusOK, branch)
	}
}

func (bc *BranchController) CreateBranch() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), bc.timeout)
		defer cancel()

		var branch models.Branch
		if err := c.ShouldBindJSON(&branch); err != nil {
			bindError(c, err)
			return
		}
		if err := validation.Struct(&branch); err != nil {
			respondError(c, bc.log, err)
			return
		}
		if err := bc.store.CreateBranch(ctx, &branch); err != nil {
			respondError(c, bc.log, err)
			return
		}
		c.JSON(http.StatusCreated, branch)
	}
}

func (bc *BranchController) UpdateBranch() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), bc.timeout)
		defer cancel()

		id, ok := objectIDParam(c, "branch_id")
		if !ok {
			return
		}
		var in branchUpdate
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		if err := validation.Struct(&in); err != nil {
			respondError(c, bc.log, err)
			return
		}
		if err := bc.store.UpdateBranch(ctx, id, &models.Branch{Name: in.Name, Address: in.Address, Phone: in.Phone}); err != nil {
			respondError(c, bc.log, err)
			return
		}
		branch, err := bc.store.FindBranchByID(ctx, id)
		if err != nil {
			respondError(c, bc.log, err)
			return
		}
		c.JSON(http.StatusOK, branch)
	}
}

func (bc *BranchController) DeleteBranch() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), bc.timeout)
		defer cancel()

		id, ok := objectIDParam(c, "branch_id")
		if !ok {
			return
		}
		if err := bc.store.DeleteBranch(ctx, id); err != nil {
			respondError(c, bc.log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "branch deleted"})
	}
}
