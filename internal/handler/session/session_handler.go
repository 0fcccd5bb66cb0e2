package session

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"

	"github.com/grupo-estuda/study-backend/internal/entity"
	"github.com/grupo-estuda/study-backend/internal/model/response"
	"github.com/grupo-estuda/study-backend/internal/model/response/wrapper"
	"github.com/grupo-estuda/study-backend/internal/service/session"
)

type SessionHandler struct {
	srv *session.SessionService
}

func NewSessionHandler(srv *session.SessionService) *SessionHandler {
	return &SessionHandler{srv: srv}
}

// CreateSession godoc
// @Summary Record a finished study session
// @Description Store a completed study session, credit group time goals and award points
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body entity.CreateStudySessionRequest true "Session object"
// @Success 201 {object} wrapper.ResponseWrapper{data=entity.StudySession}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	var req entity.CreateStudySessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	created, err := h.srv.CreateSession(c.Request.Context(), userUUID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{Data: created, Success: true})
}

// GetSessions godoc
// @Summary List study sessions
// @Description Paginated study sessions of the authenticated user, newest first
// @Tags sessions
// @Accept json
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Param group_id query string false "Filter by group"
// @Param subject_id query string false "Filter by subject"
// @Param start_time query string false "Only sessions started at or after (RFC3339)"
// @Param end_time query string false "Only sessions started before (RFC3339)"
// @Success 200 {object} wrapper.PaginatedResponseWrapper{data=[]entity.StudySession}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /sessions [get]
func (h *SessionHandler) GetSessions(c *gin.Context) {
	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := entity.StudySessionFilter{
		UserID: userUUID,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	if groupIDStr := c.Query("group_id"); groupIDStr != "" {
		groupID, err := uuid.FromString(groupIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid group_id", Success: false})
			return
		}
		filter.GroupID = &groupID
	}

	if subjectIDStr := c.Query("subject_id"); subjectIDStr != "" {
		subjectID, err := uuid.FromString(subjectIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid subject_id", Success: false})
			return
		}
		filter.SubjectID = &subjectID
	}

	if startStr := c.Query("start_time"); startStr != "" {
		startTime, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid start_time format, use RFC3339", Success: false})
			return
		}
		filter.StartTime = &startTime
	}

	if endStr := c.Query("end_time"); endStr != "" {
		endTime, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid end_time format, use RFC3339", Success: false})
			return
		}
		filter.EndTime = &endTime
	}

	sessions, total, err := h.srv.ListSessions(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	totalPages := (total + limit - 1) / limit

	c.JSON(http.StatusOK, wrapper.PaginatedResponseWrapper{
		Data: sessions,
		Meta: response.PaginationMeta{
			CurrentPage: page,
			PerPage:     limit,
			TotalItems:  total,
			TotalPages:  totalPages,
		},
		Success: true,
	})
}

// DeleteSession godoc
// @Summary Delete a study session
// @Description Delete one of the authenticated user's sessions
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} wrapper.SuccessWrapper
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /sessions/{id} [delete]
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	sessionID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid session id", Success: false})
		return
	}

	if err := h.srv.DeleteSession(c.Request.Context(), sessionID, userUUID); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.SuccessWrapper{Message: "Session deleted", Success: true})
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
