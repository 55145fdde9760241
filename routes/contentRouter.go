package routes

import (
	"github.com/gin-gonic/gin"

	"go-restaurant-ordering/controllers"
)

func BranchRoutes(public, admin *gin.RouterGroup, bc *controllers.BranchController) {
	public.GET("/branches", bc.GetBranches())

	admin.GET("/branches", bc.GetBranches())
	admin.GET("/branches/:branch_id", bc.GetBranch())
	admin.POST("/branches", bc.CreateBranch())
	admin.PATCH("/branches/:branch_id", bc.UpdateBranch())
	admin.DELETE("/branches/:branch_id", bc.DeleteBranch())
}

func DeliveryAreaRoutes(public, admin *gin.RouterGroup, dc *controllers.DeliveryAreaController) {
	public.GET("/branches/:branch_id/delivery-areas", dc.GetBranchDeliveryAreas())

	admin.GET("/delivery-areas", dc.GetDeliveryAreas())
	admin.POST("/delivery-areas", dc.CreateDeliveryArea())
	admin.PUT("/delivery-areas/:area_id", dc.UpdateDeliveryArea())
	admin.DELETE("/delivery-areas/:area_id", dc.DeleteDeliveryArea())
}

func PromoCodeRoutes(admin *gin.RouterGroup, pc *controllers.PromoCodeController) {
	admin.GET("/promo-codes", pc.GetPromoCodes())
	admin.POST("/promo-codes", pc.CreatePromoCode())
	admin.PATCH("/promo-codes/:promo_id", pc.UpdatePromoCode())
	admin.DELETE("/promo-codes/:promo_id", pc.DeletePromoCode())
}

func DiscountRoutes(public, admin *gin.RouterGroup, dc *controllers.DiscountController) {
	public.GET("/discount", dc.GetDiscount())

	admin.GET("/discount", dc.GetDiscount())
	admin.PUT("/discount", dc.SaveDiscount())
}

func UploadRoutes(router *gin.Engine, public *gin.RouterGroup, uc *controllers.UploadController, dir string) {
	public.POST("/uploads/receipt", uc.UploadReceipt())
	router.Static("/uploads", dir)
}
