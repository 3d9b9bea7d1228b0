package routes

import (
	"worksheethub/controllers"

	"github.com/gin-gonic/gin"
)

func GetPreferenceRouteHandler(ctx *gin.Context) {
	controllers.GetPreference(ctx)
}

func SavePreferenceRouteHandler(ctx *gin.Context) {
	controllers.SavePreference(ctx)
}
