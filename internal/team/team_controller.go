package team

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/crickit/pkg/responses"
)

// TeamController serves roster snapshot reads.
type TeamController struct {
	repo TeamRepository
}

// NewTeamController creates a new team controller.
func NewTeamController(repo TeamRepository) *TeamController {
	return &TeamController{repo: repo}
}

// GetTeamByID returns one roster snapshot with its players.
func (tc *TeamController) GetTeamByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid team ID format")
		return
	}

	t, err := tc.repo.GetTeamByID(uint(id))
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch team: "+err.Error())
		return
	}
	if t == nil {
		responses.ErrorResponse(c, http.StatusNotFound, "Team not found")
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{"team": t})
}
