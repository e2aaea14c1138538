package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/caioogatalabs/dashboard-workshop/internal/pagination"
	"github.com/caioogatalabs/dashboard-workshop/internal/services"
)

// MemberHandler handles family member requests.
type MemberHandler struct {
	memberService services.MemberServicer
	auditService  services.AuditServicer
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService services.MemberServicer, auditService services.AuditServicer) *MemberHandler {
	return &MemberHandler{memberService: memberService, auditService: auditService}
}

// CreateMemberRequest represents the request payload for adding a family member
type CreateMemberRequest struct {
	Name          string           `json:"name" binding:"required,min=3,max=100"`
	Role          string           `json:"role" binding:"required,max=50"`
	AvatarURL     string           `json:"avatar_url" binding:"omitempty,url"`
	Email         *string          `json:"email" binding:"omitempty,email"`
	MonthlyIncome *decimal.Decimal `json:"monthly_income" binding:"omitempty,gte=0"`
}

// UpdateMemberRequest represents the request payload for updating a family member
type UpdateMemberRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=3,max=100"`
	Role          *string          `json:"role" binding:"omitempty,min=1,max=50"`
	AvatarURL     *string          `json:"avatar_url" binding:"omitempty,url"`
	Email         *string          `json:"email" binding:"omitempty,email"`
	MonthlyIncome *decimal.Decimal `json:"monthly_income" binding:"omitempty,gte=0"`
}

// CreateMember adds a family member
// @Summary     Create a family member
// @Tags        members
// @Accept      json
// @Produce     json
// @Param       request body CreateMemberRequest true "Member details"
// @Success     201 {object} models.FamilyMember "Member created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /members [post]
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	member, err := h.memberService.CreateMember(services.MemberInput{
		Name:          &req.Name,
		Role:          &req.Role,
		AvatarURL:     &req.AvatarURL,
		Email:         req.Email,
		MonthlyIncome: req.MonthlyIncome,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_MEMBER", "member", member.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "role": req.Role})

	c.JSON(http.StatusCreated, gin.H{"member": member})
}

// GetMembers lists family members
// @Summary     List family members
// @Tags        members
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.FamilyMember] "Paginated members"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /members [get]
func (h *MemberHandler) GetMembers(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		invalidInput(c, err)
		return
	}

	result, err := h.memberService.GetMembers(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMemberByID returns one family member
// @Summary     Get family member
// @Tags        members
// @Produce     json
// @Param       id path string true "Member ID"
// @Success     200 {object} models.FamilyMember "Member"
// @Failure     400 {object} ErrorResponse "Invalid member ID"
// @Failure     404 {object} ErrorResponse "Member not found"
// @Router      /members/{id} [get]
func (h *MemberHandler) GetMemberByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	member, err := h.memberService.GetMemberByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": member})
}

// UpdateMember changes the given fields of a family member
// @Summary     Update family member
// @Tags        members
// @Accept      json
// @Produce     json
// @Param       id path string true "Member ID"
// @Param       request body UpdateMemberRequest true "Fields to change"
// @Success     200 {object} models.FamilyMember "Updated member"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Member not found"
// @Router      /members/{id} [put]
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	member, err := h.memberService.UpdateMember(id, services.MemberInput{
		Name:          req.Name,
		Role:          req.Role,
		AvatarURL:     req.AvatarURL,
		Email:         req.Email,
		MonthlyIncome: req.MonthlyIncome,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_MEMBER", "member", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"member": member})
}

// DeleteMember removes a family member. Transactions and goals that point at
// the member keep their reference.
// @Summary     Delete family member
// @Tags        members
// @Produce     json
// @Param       id path string true "Member ID"
// @Success     200 {object} MessageResponse "Member deleted"
// @Failure     404 {object} ErrorResponse "Member not found"
// @Router      /members/{id} [delete]
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.memberService.DeleteMember(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_MEMBER", "member", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Member deleted successfully"})
}
