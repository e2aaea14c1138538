package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/caioogatalabs/dashboard-workshop/internal/analytics"
	"github.com/caioogatalabs/dashboard-workshop/internal/models"
	"github.com/caioogatalabs/dashboard-workshop/internal/pagination"
	"github.com/caioogatalabs/dashboard-workshop/internal/services"
)

// GoalHandler handles savings goal requests.
type GoalHandler struct {
	goalService  services.GoalServicer
	auditService services.AuditServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer, auditService services.AuditServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService, auditService: auditService}
}

// CreateGoalRequest represents the request payload for creating a goal
type CreateGoalRequest struct {
	Title         string             `json:"title" binding:"required,min=3,max=100"`
	Description   *string            `json:"description" binding:"omitempty,max=500"`
	TargetAmount  decimal.Decimal    `json:"target_amount" binding:"required,gt=0"`
	CurrentAmount *decimal.Decimal   `json:"current_amount" binding:"omitempty,gte=0"`
	Deadline      string             `json:"deadline" binding:"required"`
	Category      *string            `json:"category" binding:"omitempty,max=50"`
	MemberID      *string            `json:"member_id" binding:"omitempty,uuid"`
	Status        *models.GoalStatus `json:"status" binding:"omitempty,goal_status"`
}

// UpdateGoalRequest represents the request payload for updating a goal
type UpdateGoalRequest struct {
	Title         *string            `json:"title" binding:"omitempty,min=3,max=100"`
	Description   *string            `json:"description" binding:"omitempty,max=500"`
	TargetAmount  *decimal.Decimal   `json:"target_amount" binding:"omitempty,gt=0"`
	CurrentAmount *decimal.Decimal   `json:"current_amount" binding:"omitempty,gte=0"`
	Deadline      *string            `json:"deadline"`
	Category      *string            `json:"category" binding:"omitempty,max=50"`
	MemberID      *string            `json:"member_id" binding:"omitempty,uuid"`
	Status        *models.GoalStatus `json:"status" binding:"omitempty,goal_status"`
}

// GoalResponse is a goal with its completion percentage
type GoalResponse struct {
	models.Goal
	Progress float64 `json:"progress"`
}

func goalResponse(goal *models.Goal) GoalResponse {
	return GoalResponse{Goal: *goal, Progress: analytics.GoalProgress(*goal)}
}

// CreateGoal adds a savings goal
// @Summary     Create a goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} GoalResponse "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	deadline, err := parseFlexibleTime(req.Deadline, "deadline")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.CreateGoal(services.GoalInput{
		Title:         &req.Title,
		Description:   req.Description,
		TargetAmount:  &req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      &deadline,
		Category:      req.Category,
		MemberID:      req.MemberID,
		Status:        req.Status,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_GOAL", "goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"title": req.Title, "target_amount": req.TargetAmount.String()})

	c.JSON(http.StatusCreated, gin.H{"goal": goalResponse(goal)})
}

// GetGoals lists goals by deadline
// @Summary     List goals
// @Tags        goals
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Goal] "Paginated goals"
// @Router      /goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		invalidInput(c, err)
		return
	}

	result, err := h.goalService.GetGoals(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetGoalByID returns one goal with its progress
// @Summary     Get goal
// @Tags        goals
// @Produce     json
// @Param       id path string true "Goal ID"
// @Success     200 {object} GoalResponse "Goal"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [get]
func (h *GoalHandler) GetGoalByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.GetGoalByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goalResponse(goal)})
}

// UpdateGoal changes the given fields of a goal
// @Summary     Update goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       id path string true "Goal ID"
// @Param       request body UpdateGoalRequest true "Fields to change"
// @Success     200 {object} GoalResponse "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	deadline, err := parseOptionalTime(req.Deadline, "deadline")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.UpdateGoal(id, services.GoalInput{
		Title:         req.Title,
		Description:   req.Description,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      deadline,
		Category:      req.Category,
		MemberID:      req.MemberID,
		Status:        req.Status,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_GOAL", "goal", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"goal": goalResponse(goal)})
}

// DeleteGoal removes a goal
// @Summary     Delete goal
// @Tags        goals
// @Produce     json
// @Param       id path string true "Goal ID"
// @Success     200 {object} MessageResponse "Goal deleted"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_GOAL", "goal", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Goal deleted successfully"})
}
