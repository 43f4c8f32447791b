package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kashieternal/rewardsgate/internal/domain/model"
	"github.com/kashieternal/rewardsgate/internal/server/http/dto"
	"github.com/kashieternal/rewardsgate/internal/usecase"
)

const (
	defaultHistoryLimit = 20
	defaultRewardLimit  = 50
)

// MemberHandler serves the authenticated member surface.
type MemberHandler struct {
	facade MemberFacade
}

// NewMemberHandler creates MemberHandler instance.
func NewMemberHandler(facade MemberFacade) *MemberHandler {
	return &MemberHandler{facade: facade}
}

// Dashboard handles GET /api/user/dashboard. It re-fetches the profile so the
// landing figures are never stale.
func (h *MemberHandler) Dashboard(c *gin.Context) {
	session := CurrentSession(c)

	dashboard, err := h.facade.Dashboard(c.Request.Context(), session.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDashboardResponse(dashboard))
}

// Profile handles GET /api/user/profile.
func (h *MemberHandler) Profile(c *gin.Context) {
	session := CurrentSession(c)

	profile, err := h.facade.Profile(c.Request.Context(), session.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileResponse(profile))
}

// UpdateProfile handles PUT /api/user/profile.
func (h *MemberHandler) UpdateProfile(c *gin.Context) {
	session := CurrentSession(c)

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	update := model.ProfileUpdate{Name: req.Name, Email: req.Email, DateOfBirth: req.DateOfBirth}
	profile, err := h.facade.UpdateProfile(c.Request.Context(), session.ID, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileResponse(profile))
}

// Transactions handles GET /api/user/transactions.
func (h *MemberHandler) Transactions(c *gin.Context) {
	session := CurrentSession(c)
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", defaultHistoryLimit)

	history, err := h.facade.Transactions(c.Request.Context(), session.ID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionsResponse(history))
}

// Offers handles GET /api/user/offers.
func (h *MemberHandler) Offers(c *gin.Context) {
	session := CurrentSession(c)

	offers, err := h.facade.Offers(c.Request.Context(), session.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.OfferResponse, 0, len(offers))
	for _, offer := range offers {
		resp = append(resp, dto.OfferResponse{
			Icon:        offer.Icon,
			Title:       offer.Title,
			TitleHindi:  offer.TitleHindi,
			Description: offer.Description,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Rewards handles GET /api/user/rewards. Each entry carries its redeemability
// against the member's current balance; an optional category query filters
// the catalog.
func (h *MemberHandler) Rewards(c *gin.Context) {
	session := CurrentSession(c)
	limit := queryInt(c, "limit", defaultRewardLimit)

	rewards, points, err := h.facade.Rewards(c.Request.Context(), session.ID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.RewardsResponse{Points: points, Rewards: make([]dto.RewardResponse, 0, len(rewards))}
	for _, reward := range usecase.FilterRewards(rewards, c.Query("category")) {
		resp.Rewards = append(resp.Rewards, dto.NewRewardResponse(reward, points))
	}
	c.JSON(http.StatusOK, resp)
}

// Redeem handles POST /api/user/rewards/redeem. The response carries the
// profile re-fetched after the redemption.
func (h *MemberHandler) Redeem(c *gin.Context) {
	session := CurrentSession(c)

	var req dto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RewardID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	profile, err := h.facade.Redeem(c.Request.Context(), session.ID, req.RewardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileResponse(profile))
}

// QR handles GET /api/user/qr.
func (h *MemberHandler) QR(c *gin.Context) {
	session := CurrentSession(c)

	payload, err := h.facade.QRPayload(c.Request.Context(), session.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.QRResponse{Payload: payload})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
