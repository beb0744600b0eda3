package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cineasta-server/internal/model"
	"cineasta-server/internal/service"
)

type uploadAudioRequest struct {
	ChapterID   *int64 `json:"chapterId"`
	AudioBase64 string `json:"audioBase64" binding:"required"`
}

func (h *Handler) uploadAudio(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	characterID, err := parseIDParam(c, "id")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	var req uploadAudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body for uploadAudio", zap.Int64("userID", userID), zap.Error(err))
		handleServiceError(c, fmt.Errorf("%w: %s", model.ErrBadRequest, err), h.logger)
		return
	}

	audio, err := h.audios.UploadAudio(c.Request.Context(), userID, service.UploadAudioInput{
		StoryCharacterID: characterID,
		ChapterID:        req.ChapterID,
		AudioBase64:      req.AudioBase64,
	})
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, audio)
}

func (h *Handler) listAudios(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	characterID, err := parseIDParam(c, "id")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	audios, err := h.audios.ListAudios(c.Request.Context(), userID, characterID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	if audios == nil {
		audios = []model.CharacterAudio{}
	}
	c.JSON(http.StatusOK, audios)
}
