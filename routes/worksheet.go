package routes

import (
	"worksheethub/controllers"

	"github.com/gin-gonic/gin"
)

func GenerateWorksheetRouteHandler(ctx *gin.Context) {
	controllers.GenerateWorksheet(ctx)
}

func RenderWorksheetRouteHandler(ctx *gin.Context) {
	controllers.RenderWorksheet(ctx)
}

func BuildPromptRouteHandler(ctx *gin.Context) {
	controllers.BuildPrompt(ctx)
}
