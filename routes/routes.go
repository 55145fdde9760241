// Package routes wires the HTTP handlers onto a gin engine.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-restaurant-ordering/controllers"
	"go-restaurant-ordering/helpers"
	"go-restaurant-ordering/middleware"
	"go-restaurant-ordering/models"
)

type Controllers struct {
	Orders        *controllers.OrderController
	Feed          *controllers.Hub
	Branches      *controllers.BranchController
	DeliveryAreas *controllers.DeliveryAreaController
	PromoCodes    *controllers.PromoCodeController
	Discount      *controllers.DiscountController
	Uploads       *controllers.UploadController
	Users         *controllers.UserController
}

// Register mounts the storefront API under /api and the back office under
// /admin, which requires an ADMIN token.
func Register(router *gin.Engine, ctrls Controllers, tokens *helpers.TokenHelper, uploadDir string) {
	public := router.Group("/api")
	admin := router.Group("/admin", middleware.Authentication(tokens), middleware.RequireRole(models.RoleAdmin))

	UserRoutes(router, ctrls.Users, tokens)
	OrderRoutes(public, admin, ctrls.Orders)
	OrderFeedRoutes(admin, ctrls.Feed)
	BranchRoutes(public, admin, ctrls.Branches)
	DeliveryAreaRoutes(public, admin, ctrls.DeliveryAreas)
	PromoCodeRoutes(admin, ctrls.PromoCodes)
	DiscountRoutes(public, admin, ctrls.Discount)
	UploadRoutes(router, public, ctrls.Uploads, uploadDir)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Page not found"})
	})
}
