package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kashieternal/rewardsgate/internal/domain/model"
	"github.com/kashieternal/rewardsgate/internal/server/http/dto"
)

const defaultAdminLimit = 50

// AdminHandler serves the back-office surface.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler creates AdminHandler instance.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Dashboard handles GET /api/admin/dashboard.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	session := CurrentSession(c)

	analytics, err := h.facade.AdminDashboard(c.Request.Context(), session.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAnalyticsResponse(analytics))
}

// Users handles GET /api/admin/users.
func (h *AdminHandler) Users(c *gin.Context) {
	session := CurrentSession(c)
	limit := queryInt(c, "limit", defaultAdminLimit)

	users, err := h.facade.AdminUsers(c.Request.Context(), session.ID, c.Query("search"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.ProfileResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.NewProfileResponse(&users[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Credit handles POST /api/admin/users/:id/credit.
func (h *AdminHandler) Credit(c *gin.Context) {
	session := CurrentSession(c)
	userID := c.Param("id")

	var req dto.CreditPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Points == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	credit := model.CreditRequest{Points: req.Points, Reason: req.Reason}
	if err := h.facade.CreditPoints(c.Request.Context(), session.ID, userID, credit); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Transactions handles GET /api/admin/transactions.
func (h *AdminHandler) Transactions(c *gin.Context) {
	session := CurrentSession(c)
	limit := queryInt(c, "limit", defaultAdminLimit)

	transactions, err := h.facade.AdminTransactions(c.Request.Context(), session.ID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		resp = append(resp, dto.NewTransactionResponse(tx))
	}
	c.JSON(http.StatusOK, resp)
}

// Rewards handles GET /api/admin/rewards. The catalog includes inactive
// entries; redeemability is not computed for operators.
func (h *AdminHandler) Rewards(c *gin.Context) {
	session := CurrentSession(c)

	rewards, err := h.facade.AdminRewards(c.Request.Context(), session.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.RewardResponse, 0, len(rewards))
	for _, reward := range rewards {
		item := dto.NewRewardResponse(reward, 0)
		item.CanRedeem = false
		item.Message = ""
		resp = append(resp, item)
	}
	c.JSON(http.StatusOK, resp)
}

// CreateReward handles POST /api/admin/rewards.
func (h *AdminHandler) CreateReward(c *gin.Context) {
	session := CurrentSession(c)

	var req dto.CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.PointsRequired <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	reward := model.NewReward{
		Name:           req.Name,
		Description:    req.Description,
		PointsRequired: req.PointsRequired,
		Category:       req.Category,
		Property:       req.Property,
		MinTier:        model.Tier(req.MinTier),
	}
	if err := h.facade.CreateReward(c.Request.Context(), session.ID, reward); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// ToggleReward handles PUT /api/admin/rewards/:id.
func (h *AdminHandler) ToggleReward(c *gin.Context) {
	session := CurrentSession(c)
	rewardID := c.Param("id")

	var req dto.ToggleRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.SetRewardActive(c.Request.Context(), session.ID, rewardID, req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// UploadCSV handles POST /api/admin/upload-csv. The multipart file passes
// through to the loyalty API untouched.
func (h *AdminHandler) UploadCSV(c *gin.Context) {
	session := CurrentSession(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	defer file.Close()

	summary, err := h.facade.UploadCSV(c.Request.Context(), session.ID, fileHeader.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UploadResponse{Success: summary.Success, Failed: summary.Failed})
}
