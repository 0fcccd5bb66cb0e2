package goal

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"

	"github.com/grupo-estuda/study-backend/internal/entity"
	"github.com/grupo-estuda/study-backend/internal/model/response/wrapper"
	"github.com/grupo-estuda/study-backend/internal/service/goal"
)

type GoalHandler struct {
	srv *goal.GoalService
}

func NewGoalHandler(srv *goal.GoalService) *GoalHandler {
	return &GoalHandler{srv: srv}
}

// CreateGoal godoc
// @Summary Create a group goal
// @Description Create a time, pages or exercises goal for a group, optionally bound to a subject
// @Tags goals
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param goal body entity.CreateGoalRequest true "Goal object"
// @Success 201 {object} wrapper.ResponseWrapper{data=entity.Goal}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /groups/{id}/goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	groupID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid group id", Success: false})
		return
	}

	var req entity.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	created, err := h.srv.CreateGoal(c.Request.Context(), groupID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{Data: created, Success: true})
}

// GetGoals godoc
// @Summary List group goals
// @Description All goals of a group in creation order
// @Tags goals
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} wrapper.ResponseWrapper{data=[]entity.Goal}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /groups/{id}/goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
	groupID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid group id", Success: false})
		return
	}

	goals, err := h.srv.ListGoals(c.Request.Context(), groupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: goals, Success: true})
}

// RecordProgress godoc
// @Summary Record goal progress
// @Description Apply a signed delta to a goal's current value; negative deltas are corrections
// @Tags goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param progress body entity.RecordGoalProgressRequest true "Progress delta"
// @Success 200 {object} wrapper.ResponseWrapper{data=entity.Goal}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /goals/{id}/progress [post]
func (h *GoalHandler) RecordProgress(c *gin.Context) {
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

	goalID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid goal id", Success: false})
		return
	}

	var req entity.RecordGoalProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	updated, err := h.srv.RecordProgress(c.Request.Context(), goalID, userUUID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: updated, Success: true})
}

// DeleteGoal godoc
// @Summary Delete a goal
// @Description Delete a group goal
// @Tags goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} wrapper.SuccessWrapper
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
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

	goalID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid goal id", Success: false})
		return
	}

	if err := h.srv.DeleteGoal(c.Request.Context(), goalID, userUUID); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.SuccessWrapper{Message: "Goal deleted", Success: true})
}
