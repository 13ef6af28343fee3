package routes

import (
	"net/http"
	"time"

	"plannerly/handlers"
	"plannerly/middleware"
	"plannerly/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPlanRoutes sets up the plan session endpoints.
func RegisterPlanRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/plans")
	{
		// Creating a plan is public; it issues the session token.
		api.POST("", hb.CreatePlan)

		// Everything else requires the session token for that plan.
		protected := api.Group("")
		protected.Use(middleware.PlanAuthMiddleware())
		protected.GET("/:id", hb.GetPlan)
		protected.POST("/:id/message", hb.PostMessage)
		protected.POST("/:id/selections", hb.AddSelection)
		protected.DELETE("/:id/selections/:category", hb.RemoveSelection)
		protected.PUT("/:id/priorities", hb.SetPriorities)
		protected.GET("/:id/budget", hb.GetBudget)
		protected.DELETE("/:id", hb.CancelPlan)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Hi, I'm Plannerly",
			"health":  utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes wires CORS and every route group onto the engine.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterPlanRoutes(r, hb)
}
