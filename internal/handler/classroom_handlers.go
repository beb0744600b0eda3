package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cineasta-server/internal/model"
	"cineasta-server/internal/service"
)

func (h *Handler) createClassroom(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req service.CreateClassroomInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body for createClassroom", zap.Int64("userID", userID), zap.Error(err))
		handleServiceError(c, fmt.Errorf("%w: %s", model.ErrBadRequest, err), h.logger)
		return
	}

	classroom, err := h.classrooms.CreateClassroom(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, classroom)
}

func (h *Handler) listClassrooms(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	classrooms, err := h.classrooms.ListClassrooms(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	if classrooms == nil {
		classrooms = []model.Classroom{}
	}
	c.JSON(http.StatusOK, classrooms)
}

type addStudentRequest struct {
	StudentName string  `json:"studentName" binding:"required"`
	StudentCode *string `json:"studentCode"`
}

func (h *Handler) addStudent(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	classroomID, err := parseIDParam(c, "id")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	var req addStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body for addStudent", zap.Int64("userID", userID), zap.Error(err))
		handleServiceError(c, fmt.Errorf("%w: %s", model.ErrBadRequest, err), h.logger)
		return
	}

	student, err := h.classrooms.AddStudent(c.Request.Context(), userID, service.AddStudentInput{
		ClassroomID: classroomID,
		StudentName: req.StudentName,
		StudentCode: req.StudentCode,
	})
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, student)
}

func (h *Handler) listStudents(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	classroomID, err := parseIDParam(c, "id")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	students, err := h.classrooms.ListStudents(c.Request.Context(), userID, classroomID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	if students == nil {
		students = []model.ClassroomStudent{}
	}
	c.JSON(http.StatusOK, students)
}

type shareStoryRequest struct {
	StoryID int64 `json:"storyId" binding:"required"`
}

func (h *Handler) shareStory(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	classroomID, err := parseIDParam(c, "id")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	var req shareStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body for shareStory", zap.Int64("userID", userID), zap.Error(err))
		handleServiceError(c, fmt.Errorf("%w: %s", model.ErrBadRequest, err), h.logger)
		return
	}

	share, err := h.classrooms.ShareStory(c.Request.Context(), userID, classroomID, req.StoryID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, share)
}
