package progress

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"

	"github.com/grupo-estuda/study-backend/internal/entity"
	"github.com/grupo-estuda/study-backend/internal/model/response/wrapper"
	"github.com/grupo-estuda/study-backend/internal/service/progress"
)

type ProgressHandler struct {
	srv      *progress.Service
	notifier progress.Notifier
	logger   *slog.Logger
}

func NewProgressHandler(srv *progress.Service, notifier progress.Notifier, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{srv: srv, notifier: notifier, logger: logger}
}

// GetProgress godoc
// @Summary Get progress stats
// @Description Aggregated study stats for the authenticated user over a calendar window
// @Tags progress
// @Accept json
// @Produce json
// @Param range query string false "Window: day, week, month or year (default week)"
// @Param metric query string false "Metric for subject shares: time, pages or exercises (default time)"
// @Param group_id query string false "Restrict to one group"
// @Success 200 {object} wrapper.ResponseWrapper{data=entity.ProgressStats}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /progress [get]
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	filter, ok := h.buildFilter(c)
	if !ok {
		return
	}

	stats, err := h.srv.Stats(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: stats, Success: true})
}

// WatchProgress godoc
// @Summary Stream live progress stats
// @Description Server-sent events stream of recomputed progress stats, pushed when the underlying data changes
// @Tags progress
// @Produce text/event-stream
// @Param range query string false "Window: day, week, month or year (default week)"
// @Param metric query string false "Metric for subject shares: time, pages or exercises (default time)"
// @Param group_id query string false "Restrict to one group"
// @Success 200 {object} entity.ProgressStats
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /progress/watch [get]
func (h *ProgressHandler) WatchProgress(c *gin.Context) {
	filter, ok := h.buildFilter(c)
	if !ok {
		return
	}

	tracker, err := h.srv.Watch(c.Request.Context(), h.notifier, filter, h.logger)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}
	defer tracker.Close()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.SSEvent("progress", tracker.Stats())
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case stats := <-tracker.Updates():
			c.SSEvent("progress", stats)
			return true
		}
	})
}

func (h *ProgressHandler) buildFilter(c *gin.Context) (entity.ProgressFilter, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{Message: "User ID not found", Success: false})
		return entity.ProgressFilter{}, false
	}

	userUUID, err := uuid.FromString(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return entity.ProgressFilter{}, false
	}

	granularity, err := entity.ParseGranularity(c.Query("range"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return entity.ProgressFilter{}, false
	}

	metric, err := entity.ParseMetric(c.Query("metric"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return entity.ProgressFilter{}, false
	}

	filter := entity.ProgressFilter{
		UserID:      userUUID,
		Granularity: granularity,
		Metric:      metric,
	}

	if groupIDStr := c.Query("group_id"); groupIDStr != "" {
		groupID, err := uuid.FromString(groupIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid group_id", Success: false})
			return entity.ProgressFilter{}, false
		}
		filter.GroupID = &groupID
	}

	return filter, true
}
