package match

import (
	"github.com/gin-gonic/gin"

	mw "github.com/DhavalSuthar-24/crickit/internal/middleware"
)

// MatchRoutes sets up all match scoring routes.
func MatchRoutes(router *gin.RouterGroup, service *ScoringService) {
	controller := NewMatchController(service)

	// Scoring mutations require an authenticated scorer.
	scorerRoutes := router.Group("/matches")
	scorerRoutes.Use(mw.AuthMiddleware())
	{
		scorerRoutes.POST("", controller.CreateMatch)
		scorerRoutes.POST("/:id/toss", controller.RecordToss)
		scorerRoutes.POST("/:id/batters", controller.SelectBatter)
		scorerRoutes.POST("/:id/bowler", controller.SelectBowler)
		scorerRoutes.POST("/:id/deliveries", controller.RecordDelivery)
		scorerRoutes.POST("/:id/wickets", controller.RecordWicket)
	}

	// Read endpoints are public; spectators poll these.
	publicRoutes := router.Group("/matches")
	{
		publicRoutes.GET("", controller.GetMatches)
		publicRoutes.GET("/:id", controller.GetMatchByID)
		publicRoutes.GET("/:id/summary", controller.GetSummary)
		publicRoutes.GET("/:id/scorecard", controller.GetScorecard)
		publicRoutes.GET("/:id/commentary", controller.GetCommentary)
	}
}
