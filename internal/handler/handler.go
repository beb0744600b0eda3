package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cineasta-server/internal/service"
)

// Handler обрабатывает HTTP запросы платформы историй.
type Handler struct {
	stories    *service.StoryService
	avatars    *service.AvatarService
	audios     *service.AudioService
	classrooms *service.ClassroomService
	users      *service.UserService
	jwtSecret  string
	logger     *zap.Logger
}

// NewHandler создает новый Handler.
func NewHandler(
	stories *service.StoryService,
	avatars *service.AvatarService,
	audios *service.AudioService,
	classrooms *service.ClassroomService,
	users *service.UserService,
	jwtSecret string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		stories:    stories,
		avatars:    avatars,
		audios:     audios,
		classrooms: classrooms,
		users:      users,
		jwtSecret:  jwtSecret,
		logger:     logger.Named("Handler"),
	}
}

// RegisterRoutes регистрирует маршруты API.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	authMiddleware := AuthMiddleware(h.jwtSecret, h.logger)

	api := r.Group("/api", authMiddleware)
	{
		stories := api.Group("/stories")
		{
			stories.POST("", h.createStory)
			stories.GET("", h.listStories)
			stories.GET("/:id", h.getStory)
			stories.DELETE("/:id", h.deleteStory)
			stories.POST("/:id/generate", h.generateScript)
			stories.POST("/:id/status", h.changeStoryStatus)
			stories.POST("/:id/publish", h.publishStory)
			stories.POST("/:id/unpublish", h.unpublishStory)
		}

		avatars := api.Group("/avatars")
		{
			avatars.POST("", h.createAvatar)
			avatars.GET("", h.listAvatars)
			avatars.GET("/:id", h.getAvatar)
			avatars.DELETE("/:id", h.deleteAvatar)
		}

		characters := api.Group("/characters")
		{
			characters.POST("/:id/audios", h.uploadAudio)
			characters.GET("/:id/audios", h.listAudios)
		}

		classrooms := api.Group("/classrooms")
		{
			classrooms.POST("", h.createClassroom)
			classrooms.GET("", h.listClassrooms)
			classrooms.POST("/:id/students", h.addStudent)
			classrooms.GET("/:id/students", h.listStudents)
			classrooms.POST("/:id/stories", h.shareStory)
		}

		users := api.Group("/users")
		{
			users.GET("/me", h.getProfile)
			users.POST("/me/subscription/upgrade", h.upgradeSubscription)
			users.POST("/me/subscription/cancel", h.cancelSubscription)
		}
	}
}
