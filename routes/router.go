package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/DhavalSuthar-24/crickit/config"
	"github.com/DhavalSuthar-24/crickit/internal/match"
	"github.com/DhavalSuthar-24/crickit/internal/team"
)

func SetupRoutes(service *match.ScoringService) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	// Welcome page
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`
			<html>
				<head><title>Crickit</title></head>
				<body style="text-align:center; margin-top: 40px;">
				<h1>Crickit scoring API 🏏</h1>
				<div>
					<a href="/swagger/index.html">swagger</a>
				</div>
				</body>
			</html>
		`))
	})

	// Swagger route (regenerate docs with `swag init`)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	match.MatchRoutes(api, service)
	team.TeamRoutes(api, config.DB)

	return r
}
