package routes

import (
	"github.com/gin-gonic/gin"

	"go-restaurant-ordering/controllers"
)

func OrderRoutes(public, admin *gin.RouterGroup, oc *controllers.OrderController) {
	public.POST("/checkout", oc.Checkout())
	public.POST("/checkout/quote", oc.Quote())
	public.POST("/promo-codes/apply", oc.ApplyPromoCode())

	admin.GET("/orders", oc.GetOrders())
	admin.GET("/orders/export", oc.ExportOrders())
	admin.GET("/orders/:order_id", oc.GetOrder())
	admin.PATCH("/orders/:order_id/status", oc.UpdateOrderStatus())
	admin.PATCH("/orders/:order_id/items", oc.UpdateOrderItems())
	admin.DELETE("/orders/:order_id", oc.DeleteOrder())
}

func OrderFeedRoutes(admin *gin.RouterGroup, hub *controllers.Hub) {
	admin.GET("/ws", hub.HandleWebSocket())
}
