package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cineasta-server/internal/model"
	"cineasta-server/internal/service"
)

// parseIDParam разбирает числовой path-параметр.
func parseIDParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: некорректный параметр %s", model.ErrBadRequest, name)
	}
	return id, nil
}

func (h *Handler) createStory(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req service.CreateStoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body for createStory", zap.Int64("userID", userID), zap.Error(err))
		handleServiceError(c, fmt.Errorf("%w: %s", model.ErrBadRequest, err), h.logger)
		return
	}

	story, err := h.stories.CreateStory(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, story)
}

func (h *Handler) listStories(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	stories, err := h.stories.ListStories(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	if stories == nil {
		stories = []model.Story{}
	}
	c.JSON(http.StatusOK, stories)
}

func (h *Handler) getStory(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	storyID, err := parseIDParam(c, "id")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	details, err := h.stories.GetStoryDetails(c.Request.Context(), userID, storyID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *Handler) deleteStory(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	storyID, err := parseIDParam(c, "id")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	if err := h.stories.DeleteStory(c.Request.Context(), userID, storyID); err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	c.Status(http.StatusNoContent)
}

type generateScriptRequest struct {
	CharacterIDs     []int64 `json:"characterIds" binding:"required"`
	NumberOfChapters int     `json:"numberOfChapters" binding:"required"`
}

func (h *Handler) generateScript(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	storyID, err := parseIDParam(c, "id")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	var req generateScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body for generateScript", zap.Int64("userID", userID), zap.Error(err))
		handleServiceError(c, fmt.Errorf("%w: %s", model.ErrBadRequest, err), h.logger)
		return
	}

	result, err := h.stories.GenerateScript(c.Request.Context(), userID, model.GenerateScriptInput{
		StoryID:          storyID,
		CharacterIDs:     req.CharacterIDs,
		NumberOfChapters: req.NumberOfChapters,
	})
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, result)
}

type changeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// changeStoryStatus - ручная смена статуса. Целевой статус проверяется
// по таблице переходов, произвольные записи отклоняются с 409.
func (h *Handler) changeStoryStatus(c *gin.Context) {
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, fmt.Errorf("%w: %s", model.ErrBadRequest, err), h.logger)
		return
	}

	next, err := model.ParseStoryStatus(req.Status)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	h.updateStoryStatus(c, next)
}

func (h *Handler) publishStory(c *gin.Context) {
	h.updateStoryStatus(c, model.StatusPublished)
}

func (h *Handler) unpublishStory(c *gin.Context) {
	h.updateStoryStatus(c, model.StatusCompleted)
}

func (h *Handler) updateStoryStatus(c *gin.Context, next model.StoryStatus) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	storyID, err := parseIDParam(c, "id")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	story, err := h.stories.UpdateStatus(c.Request.Context(), userID, storyID, next)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, story)
}
