package match

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/crickit/internal/scoring"
	"github.com/DhavalSuthar-24/crickit/pkg/responses"
)

// MatchController handles match scoring HTTP requests.
type MatchController struct {
	service *ScoringService
}

// NewMatchController creates a new match controller.
func NewMatchController(service *ScoringService) *MatchController {
	return &MatchController{service: service}
}

// --- DTOs for requests ---

// RosterPlayerRequest is one player entry in a roster payload.
type RosterPlayerRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=100"`
	Role           string `json:"role" binding:"omitempty,oneof=batter bowler all_rounder wicketkeeper"`
	IsCaptain      bool   `json:"is_captain"`
	IsViceCaptain  bool   `json:"is_vice_captain"`
	IsWicketkeeper bool   `json:"is_wicketkeeper"`
}

// RosterRequest is a team name plus its player list, in batting order.
type RosterRequest struct {
	Name    string                `json:"name" binding:"required,min=1,max=100"`
	Players []RosterPlayerRequest `json:"players" binding:"required,min=2,max=11,dive"`
}

// CreateMatchRequest defines the payload for starting a new match.
type CreateMatchRequest struct {
	OversLimit int           `json:"overs_limit" binding:"required,min=1"`
	Team1      RosterRequest `json:"team1" binding:"required"`
	Team2      RosterRequest `json:"team2" binding:"required"`
}

// TossRequest records which team won the toss and what they chose.
type TossRequest struct {
	WinnerTeamID uint   `json:"winner_team_id" binding:"required"`
	Decision     string `json:"decision" binding:"required,oneof=bat bowl"`
}

// SelectBatterRequest fills one crease slot with a batter.
type SelectBatterRequest struct {
	Slot     string `json:"slot" binding:"required,oneof=striker non_striker"`
	PlayerID uint   `json:"player_id" binding:"required"`
}

// SelectBowlerRequest sets the bowler for upcoming deliveries.
type SelectBowlerRequest struct {
	PlayerID uint `json:"player_id" binding:"required"`
}

// DeliveryRequest records one ball. Runs are the runs physically run or hit
// off the ball; extras classification decides who they are credited to.
type DeliveryRequest struct {
	Runs   int    `json:"runs" binding:"min=0,max=6"`
	Extras string `json:"extras" binding:"omitempty,oneof=none wide no_ball bye leg_bye"`
}

// WicketRequest records a dismissal.
type WicketRequest struct {
	Kind        string `json:"kind" binding:"required,oneof=bowled caught lbw run_out stumped hit_wicket"`
	PlayerOutID uint   `json:"player_out_id" binding:"required"`
	FielderID   *uint  `json:"fielder_id,omitempty"`
}

// --- Helpers ---

func matchIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid match ID format")
		return 0, false
	}
	return uint(id), true
}

// respondServiceError translates engine errors into HTTP statuses:
// malformed input 400, missing prerequisite state 422, invariant-breaking
// actions 409, unknown match 404.
func respondServiceError(c *gin.Context, err error) {
	var (
		validation   *scoring.ValidationError
		precondition *scoring.PreconditionError
		invariant    *scoring.InvariantViolation
	)
	switch {
	case errors.Is(err, ErrMatchNotFound):
		responses.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.As(err, &validation):
		responses.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &precondition):
		responses.ErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &invariant):
		responses.ErrorResponse(c, http.StatusConflict, err.Error())
	default:
		responses.ErrorResponse(c, http.StatusInternalServerError, "Internal error: "+err.Error())
	}
}

func toRosterInput(r RosterRequest) RosterInput {
	in := RosterInput{Name: r.Name}
	for _, p := range r.Players {
		in.Players = append(in.Players, RosterPlayerInput{
			Name:           p.Name,
			Role:           p.Role,
			IsCaptain:      p.IsCaptain,
			IsViceCaptain:  p.IsViceCaptain,
			IsWicketkeeper: p.IsWicketkeeper,
		})
	}
	return in
}

// --- Handlers: match lifecycle ---

// CreateMatch starts a new match from two fixed rosters.
func (mc *MatchController) CreateMatch(c *gin.Context) {
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	m, err := mc.service.StartMatch(req.OversLimit, toRosterInput(req.Team1), toRosterInput(req.Team2))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Match created successfully",
		"match":   m,
	})
}

// RecordToss records the toss winner and their decision.
func (mc *MatchController) RecordToss(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	var req TossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	m, err := mc.service.RecordToss(matchID, req.WinnerTeamID, TossDecision(req.Decision))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Toss recorded successfully",
		"match":   m,
	})
}

// SelectBatter assigns a batter to the striker or non-striker slot.
func (mc *MatchController) SelectBatter(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	var req SelectBatterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	m, err := mc.service.SelectBatter(matchID, BatterSlot(req.Slot), req.PlayerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Batter selected successfully",
		"match":   m,
	})
}

// SelectBowler assigns the current bowler.
func (mc *MatchController) SelectBowler(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	var req SelectBowlerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	m, err := mc.service.SelectBowler(matchID, req.PlayerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Bowler selected successfully",
		"match":   m,
	})
}

// --- Handlers: scoring ---

// RecordDelivery appends one ball to the match ledger.
func (mc *MatchController) RecordDelivery(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	var req DeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	m, err := mc.service.RecordDelivery(matchID, req.Runs, scoring.ExtrasKind(req.Extras))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Delivery recorded successfully",
		"match":   m,
	})
}

// RecordWicket appends a dismissal to the match ledger.
func (mc *MatchController) RecordWicket(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	var req WicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	m, err := mc.service.RecordDismissal(matchID, scoring.DismissalKind(req.Kind), req.PlayerOutID, req.FielderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Wicket recorded successfully",
		"match":   m,
	})
}

// --- Handlers: reads ---

// GetMatchByID returns the raw match row with both rosters.
func (mc *MatchController) GetMatchByID(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	m, err := mc.service.GetMatch(matchID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{"match": m})
}

// GetMatches lists matches, optionally filtered by status.
func (mc *MatchController) GetMatches(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	filters := make(map[string]interface{})
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}

	matches, total, err := mc.service.ListMatches(filters, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses.PaginatedResponse(c, http.StatusOK, matches, page, pageSize, total)
}

// GetSummary returns the derived score summary for a match.
func (mc *MatchController) GetSummary(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	summary, err := mc.service.Summary(matchID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{"summary": summary})
}

// GetScorecard returns per-player batting and bowling figures.
func (mc *MatchController) GetScorecard(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	card, err := mc.service.BuildScorecard(matchID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{"scorecard": card})
}

// GetCommentary returns a paginated ball-by-ball feed.
func (mc *MatchController) GetCommentary(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	innings, _ := strconv.Atoi(c.DefaultQuery("innings", "0"))
	if innings < 0 || innings > 2 {
		responses.ErrorResponse(c, http.StatusBadRequest, "innings must be 1 or 2")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "30"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 30
	}

	rows, total, err := mc.service.CommentaryFeed(matchID, innings, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses.PaginatedResponse(c, http.StatusOK, rows, page, pageSize, total)
}
