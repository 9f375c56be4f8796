package team

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TeamRoutes sets up the public roster read routes.
func TeamRoutes(router *gin.RouterGroup, db *gorm.DB) {
	controller := NewTeamController(NewGormTeamRepository(db))

	teams := router.Group("/teams")
	{
		teams.GET("/:id", controller.GetTeamByID)
	}
}
