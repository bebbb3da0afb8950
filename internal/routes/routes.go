package routes

import (
	"wonderlens/internal/config"
	"wonderlens/internal/controllers"
	"wonderlens/internal/middleware"
	"wonderlens/internal/pkg/vision"
	"wonderlens/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires controllers and middleware into the API surface.
func SetupRouter(db *gorm.DB, cfg *config.Config, store storage.ObjectStore, analyzer vision.ObjectAnalyzer) *gin.Engine {
	scanController := controllers.ScanController{DB: db, Store: store, Vision: analyzer}
	contentController := controllers.ContentController{DB: db}
	historyController := controllers.HistoryController{DB: db}

	router := gin.Default()
	router.Use(middleware.CORS())
	router.Use(middleware.BodySizeLimit(middleware.MaxBodyBytes))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/analyze-image", scanController.AnalyzeImage)

		api.GET("/kidnews", contentController.GetKidNews)
		api.GET("/quiz", contentController.GetQuiz)

		scans := api.Group("/scans")
		{
			scans.GET("/history", historyController.GetHistory)
			scans.GET("/community", historyController.GetCommunity)
			scans.DELETE("/:id", historyController.DeleteScan)
		}
	}

	return router
}
