package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cineasta-server/internal/model"
	"cineasta-server/internal/service"
)

func (h *Handler) createAvatar(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req service.CreateAvatarInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body for createAvatar", zap.Int64("userID", userID), zap.Error(err))
		handleServiceError(c, fmt.Errorf("%w: %s", model.ErrBadRequest, err), h.logger)
		return
	}

	avatar, err := h.avatars.CreateAvatar(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, avatar)
}

func (h *Handler) listAvatars(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	avatars, err := h.avatars.ListAvatars(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	if avatars == nil {
		avatars = []model.Avatar{}
	}
	c.JSON(http.StatusOK, avatars)
}

func (h *Handler) getAvatar(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	avatarID, err := parseIDParam(c, "id")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	avatar, err := h.avatars.GetAvatar(c.Request.Context(), userID, avatarID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, avatar)
}

func (h *Handler) deleteAvatar(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	avatarID, err := parseIDParam(c, "id")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	if err := h.avatars.DeleteAvatar(c.Request.Context(), userID, avatarID); err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	c.Status(http.StatusNoContent)
}
