package leaderboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"

	"github.com/grupo-estuda/study-backend/internal/model/response/wrapper"
	"github.com/grupo-estuda/study-backend/internal/service/leaderboard"
)

type LeaderboardHandler struct {
	srv *leaderboard.LeaderboardService
}

func NewLeaderboardHandler(srv *leaderboard.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{srv: srv}
}

// GetGlobalLeaderboard godoc
// @Summary Global leaderboard
// @Description Top users by points across all groups, with the caller's row flagged
// @Tags leaderboard
// @Produce json
// @Success 200 {object} wrapper.ResponseWrapper{data=[]entity.LeaderboardEntry}
// @Failure 401 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /leaderboard [get]
func (h *LeaderboardHandler) GetGlobalLeaderboard(c *gin.Context) {
	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	entries, err := h.srv.Global(c.Request.Context(), userUUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: entries, Success: true})
}

// GetGroupLeaderboards godoc
// @Summary Per-group leaderboards
// @Description One ranked leaderboard per group the authenticated user belongs to
// @Tags leaderboard
// @Produce json
// @Success 200 {object} wrapper.ResponseWrapper{data=[]entity.GroupLeaderboard}
// @Failure 401 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /leaderboard/groups [get]
func (h *LeaderboardHandler) GetGroupLeaderboards(c *gin.Context) {
	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	boards, err := h.srv.Groups(c.Request.Context(), userUUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: boards, Success: true})
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{Message: "User ID not found", Success: false})
		return uuid.Nil, false
	}

	userUUID, err := uuid.FromString(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return uuid.Nil, false
	}

	return userUUID, true
}
