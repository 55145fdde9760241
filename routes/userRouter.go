package routes

import (
	"github.com/gin-gonic/gin"

	"go-restaurant-ordering/controllers"
	"go-restaurant-ordering/helpers"
	"go-restaurant-ordering/middleware"
)

func UserRoutes(incomingRoutes *gin.Engine, uc *controllers.UserController, tokens *helpers.TokenHelper) {
	incomingRoutes.POST("/users/signup", middleware.OptionalAuthentication(tokens), uc.SignUp())
	incomingRoutes.POST("/users/login", uc.Login())
}
