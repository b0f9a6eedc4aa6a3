package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/koyamahr/engagement-survey-server/controllers"
	"github.com/koyamahr/engagement-survey-server/middleware"
)

func SetupRoutes(r *gin.Engine) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	{
		surveys := api.Group("/surveys")
		{
			surveys.GET("/:surveyCode/meta", controllers.GetSurveyMeta)
			surveys.POST("/:surveyCode/submit", middleware.RateLimitSubmit(), controllers.SubmitResponse)
			surveys.GET("/:surveyCode/responses", controllers.ListResponses)
			surveys.GET("/:surveyCode/dashboard", controllers.GetSurveyDashboard)
			surveys.POST("/:surveyCode/export", controllers.CreateExport)
		}
		api.GET("/exports/:job_id", controllers.GetExport)
	}
}
