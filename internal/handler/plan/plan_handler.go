package plan

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"

	"github.com/grupo-estuda/study-backend/internal/model/response/wrapper"
	"github.com/grupo-estuda/study-backend/internal/plans"
	"github.com/grupo-estuda/study-backend/internal/service/user"
)

type PlanHandler struct {
	users *user.UserService
}

func NewPlanHandler(users *user.UserService) *PlanHandler {
	return &PlanHandler{users: users}
}

// GetPlans godoc
// @Summary List subscription plans
// @Description Every plan with its limits and prices
// @Tags plans
// @Produce json
// @Success 200 {object} wrapper.ResponseWrapper{data=map[string]plans.PlanLimits}
// @Router /plans [get]
func (h *PlanHandler) GetPlans(c *gin.Context) {
	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: plans.All(), Success: true})
}

// GetMyPlan godoc
// @Summary Get the user's plan
// @Description The authenticated user's plan name and effective limits
// @Tags plans
// @Produce json
// @Success 200 {object} wrapper.ResponseWrapper
// @Failure 401 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /plans/me [get]
func (h *PlanHandler) GetMyPlan(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{Message: "User ID not found", Success: false})
		return
	}

	userUUID, err := uuid.FromString(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	profile, err := h.users.GetUserById(userUUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data: gin.H{
			"plan":   profile.Plan,
			"limits": plans.GetPlanLimits(profile.Plan),
		},
		Success: true,
	})
}
