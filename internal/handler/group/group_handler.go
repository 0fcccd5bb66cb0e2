package group

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"

	"github.com/grupo-estuda/study-backend/internal/entity"
	"github.com/grupo-estuda/study-backend/internal/model/response/wrapper"
	"github.com/grupo-estuda/study-backend/internal/service/group"
)

type GroupHandler struct {
	srv *group.GroupService
}

func NewGroupHandler(srv *group.GroupService) *GroupHandler {
	return &GroupHandler{srv: srv}
}

// CreateGroup godoc
// @Summary Create a study group
// @Description Create a group with the authenticated user as admin, subject to plan limits
// @Tags groups
// @Accept json
// @Produce json
// @Param group body entity.CreateGroupRequest true "Group object"
// @Success 201 {object} wrapper.ResponseWrapper{data=entity.Group}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /groups [post]
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	var req entity.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	created, err := h.srv.CreateGroup(c.Request.Context(), userUUID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{Data: created, Success: true})
}

// GetGroups godoc
// @Summary List the user's groups
// @Description All groups the authenticated user belongs to
// @Tags groups
// @Produce json
// @Success 200 {object} wrapper.ResponseWrapper{data=[]entity.Group}
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /groups [get]
func (h *GroupHandler) GetGroups(c *gin.Context) {
	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	groups, err := h.srv.ListGroups(c.Request.Context(), userUUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: groups, Success: true})
}

// GetGroup godoc
// @Summary Get a group with members
// @Description One group plus its member list
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} wrapper.ResponseWrapper{data=entity.GroupWithMembers}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 404 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /groups/{id} [get]
func (h *GroupHandler) GetGroup(c *gin.Context) {
	groupID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid group id", Success: false})
		return
	}

	found, err := h.srv.GetGroup(c.Request.Context(), groupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}
	if found == nil {
		c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{Message: "Group not found", Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: found, Success: true})
}

// AddMember godoc
// @Summary Add a group member
// @Description Add a user to a group, subject to the plan's member limit
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param member body entity.AddGroupMemberRequest true "Member object"
// @Success 200 {object} wrapper.SuccessWrapper
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /groups/{id}/members [post]
func (h *GroupHandler) AddMember(c *gin.Context) {
	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	groupID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid group id", Success: false})
		return
	}

	var req entity.AddGroupMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	if err := h.srv.AddMember(c.Request.Context(), groupID, userUUID, req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.SuccessWrapper{Message: "Member added", Success: true})
}

// CreateSubject godoc
// @Summary Create a subject
// @Description Add a subject to a group
// @Tags subjects
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param subject body entity.CreateSubjectRequest true "Subject object"
// @Success 201 {object} wrapper.ResponseWrapper{data=entity.Subject}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /groups/{id}/subjects [post]
func (h *GroupHandler) CreateSubject(c *gin.Context) {
	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	groupID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid group id", Success: false})
		return
	}

	var req entity.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	created, err := h.srv.CreateSubject(c.Request.Context(), groupID, userUUID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{Data: created, Success: true})
}

// GetSubjects godoc
// @Summary List group subjects
// @Description All subjects of a group, alphabetically
// @Tags subjects
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} wrapper.ResponseWrapper{data=[]entity.Subject}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /groups/{id}/subjects [get]
func (h *GroupHandler) GetSubjects(c *gin.Context) {
	groupID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid group id", Success: false})
		return
	}

	subjects, err := h.srv.ListSubjects(c.Request.Context(), groupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: subjects, Success: true})
}

// GetUserSubjects godoc
// @Summary List the user's subjects
// @Description Subjects across every group the authenticated user belongs to
// @Tags subjects
// @Produce json
// @Success 200 {object} wrapper.ResponseWrapper{data=[]entity.Subject}
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /subjects [get]
func (h *GroupHandler) GetUserSubjects(c *gin.Context) {
	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	subjects, err := h.srv.ListUserSubjects(c.Request.Context(), userUUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: subjects, Success: true})
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
