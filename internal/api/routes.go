package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"smartfolio/internal/api/middleware"
	"smartfolio/internal/auth"
	"smartfolio/internal/records"
	"smartfolio/internal/render"
	"smartfolio/internal/storage"
)

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(
	router *gin.Engine,
	db *gorm.DB,
	engine render.Engine,
	asynqClient *asynq.Client,
	authService *auth.AuthService,
	redisClient *redis.Client,
	logger *slog.Logger,
	storageClient *storage.Client,
	clamdAddr string,
	allowedOrigins []string,
	renderTimeout time.Duration,
) {
	loader := records.NewLoader(db)
	exportHandler := NewExportHandler(db, engine, asynqClient, storageClient, renderTimeout)
	recordsHandler := NewRecordsHandler(db)
	profileHandler := NewProfileHandler(db, storageClient, logger, clamdAddr)
	publicHandler := NewPublicHandler(loader, logger)
	authHandler := NewAuthHandler(db, authService, redisClient, logger)
	notifyHandler := NewNotifyHandler(redisClient, authService, logger, allowedOrigins)
	authMiddleware := middleware.AuthMiddleware(authService)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", notifyHandler.HandleConnection)
		v1.GET("/public/resume/:email", publicHandler.ViewResume)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}

		resumeGroup := v1.Group("/resume")
		resumeGroup.Use(authMiddleware)
		{
			resumeGroup.POST("/export", exportHandler.ExportResume)
			resumeGroup.POST("/preview", exportHandler.PreviewResume)
			resumeGroup.POST("/export/async", exportHandler.EnqueueExport)
			resumeGroup.GET("/exports/:id/download-link", exportHandler.GetExportDownloadLink)
		}

		profileGroup := v1.Group("/profile")
		profileGroup.Use(authMiddleware)
		{
			profileGroup.GET("", profileHandler.GetProfile)
			profileGroup.PUT("", profileHandler.UpsertProfile)
			profileGroup.POST("/photo", profileHandler.UploadPhoto)
		}

		registerRecordRoutes(v1, authMiddleware, recordsHandler)
	}
}

// registerRecordRoutes 注册七类档案记录的 CRUD 路由。
func registerRecordRoutes(v1 *gin.RouterGroup, authMiddleware gin.HandlerFunc, h *RecordsHandler) {
	type entityRoutes struct {
		path   string
		list   gin.HandlerFunc
		create gin.HandlerFunc
		update gin.HandlerFunc
		remove gin.HandlerFunc
	}

	entities := []entityRoutes{
		{"/projects", h.ListProjects, h.CreateProject, h.UpdateProject, h.DeleteProject},
		{"/education", h.ListEducation, h.CreateEducation, h.UpdateEducation, h.DeleteEducation},
		{"/skills", h.ListSkills, h.CreateSkillGroup, h.UpdateSkillGroup, h.DeleteSkillGroup},
		{"/achievements", h.ListAchievements, h.CreateAchievement, h.UpdateAchievement, h.DeleteAchievement},
		{"/positions", h.ListPositions, h.CreatePosition, h.UpdatePosition, h.DeletePosition},
		{"/certifications", h.ListCertifications, h.CreateCertification, h.UpdateCertification, h.DeleteCertification},
		{"/courses", h.ListCourses, h.CreateCourse, h.UpdateCourse, h.DeleteCourse},
	}

	for _, e := range entities {
		group := v1.Group(e.path)
		group.Use(authMiddleware)
		{
			group.GET("", e.list)
			group.POST("", e.create)
			group.PUT("/:id", e.update)
			group.DELETE("/:id", e.remove)
		}
	}
}
