package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/dutchcoders/go-clamd"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartfolio/internal/database"
	"smartfolio/internal/storage"
)

const maxPhotoBytes = 5 * 1024 * 1024

// ProfileHandler 负责档案头部信息与头像照片。
type ProfileHandler struct {
	db        *gorm.DB
	storage   *storage.Client
	logger    *slog.Logger
	clamdAddr string
}

// NewProfileHandler 构造 ProfileHandler。
func NewProfileHandler(db *gorm.DB, storageClient *storage.Client, logger *slog.Logger, clamdAddr string) *ProfileHandler {
	return &ProfileHandler{
		db:        db,
		storage:   storageClient,
		logger:    logger,
		clamdAddr: clamdAddr,
	}
}

type profileRequest struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone"`
	PortfolioWebsite string `json:"portfolioWebsite"`
	GithubLink       string `json:"githubLink"`
	LinkedinLink     string `json:"linkedinLink"`
}

type profileResponse struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	PortfolioWebsite string `json:"portfolioWebsite,omitempty"`
	GithubLink       string `json:"githubLink,omitempty"`
	LinkedinLink     string `json:"linkedinLink,omitempty"`
	PhotoURL         string `json:"photoURL,omitempty"`
}

func (h *ProfileHandler) newProfileResponse(c *gin.Context, p database.Profile) profileResponse {
	resp := profileResponse{
		Name:             p.Name,
		Email:            p.Email,
		Phone:            p.Phone,
		PortfolioWebsite: p.PortfolioWebsite,
		GithubLink:       p.GithubLink,
		LinkedinLink:     p.LinkedinLink,
	}
	if p.PhotoObjectKey != "" {
		url, err := h.storage.GeneratePresignedURL(c.Request.Context(), p.PhotoObjectKey, time.Hour)
		if err == nil {
			resp.PhotoURL = url
		}
	}
	return resp
}

// GetProfile 返回当前用户的档案；不存在时返回 404。
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var profile database.Profile
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "profile not found")
			return
		}
		Internal(c, "failed to query profile")
		return
	}

	c.JSON(http.StatusOK, h.newProfileResponse(c, profile))
}

// UpsertProfile 创建或整体更新档案。
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	var profile database.Profile
	err := h.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = database.Profile{UserID: userID}
	default:
		Internal(c, "failed to query profile")
		return
	}

	profile.Name = strings.TrimSpace(req.Name)
	// 邮箱统一小写存储，公开分享路径按小写查找。
	profile.Email = strings.ToLower(strings.TrimSpace(req.Email))
	profile.Phone = strings.TrimSpace(req.Phone)
	profile.PortfolioWebsite = strings.TrimSpace(req.PortfolioWebsite)
	profile.GithubLink = strings.TrimSpace(req.GithubLink)
	profile.LinkedinLink = strings.TrimSpace(req.LinkedinLink)

	if err := h.db.WithContext(ctx).Save(&profile).Error; err != nil {
		Internal(c, "failed to save profile")
		return
	}

	c.JSON(http.StatusOK, h.newProfileResponse(c, profile))
}

// UploadPhoto 上传头像照片：可选的病毒扫描 -> 对象存储 -> 更新档案。
func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file")
		return
	}
	if file.Size > maxPhotoBytes {
		BadRequest(c, "photo too large")
		return
	}

	fileReader, err := file.Open()
	if err != nil {
		Internal(c, "failed to open file")
		return
	}
	data, err := io.ReadAll(io.LimitReader(fileReader, maxPhotoBytes+1))
	fileReader.Close()
	if err != nil {
		Internal(c, "failed to read file")
		return
	}
	if len(data) > maxPhotoBytes {
		BadRequest(c, "photo too large")
		return
	}

	contentType := http.DetectContentType(data)
	switch contentType {
	case "image/png", "image/jpeg", "image/webp":
	default:
		BadRequest(c, "unsupported image type")
		return
	}

	if h.clamdAddr != "" {
		if err := h.scanPhoto(data); err != nil {
			h.logger.Warn("photo rejected by scanner",
				slog.Uint64("user_id", uint64(userID)),
				slog.Any("error", err),
			)
			BadRequest(c, "file failed virus scan")
			return
		}
	}

	ctx := c.Request.Context()
	var profile database.Profile
	err = h.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = database.Profile{UserID: userID}
	default:
		Internal(c, "failed to query profile")
		return
	}

	ext := strings.ToLower(path.Ext(file.Filename))
	if ext == "" {
		ext = ".png"
	}
	objectKey := fmt.Sprintf("user-assets/%d/photo-%s%s", userID, uuid.NewString(), ext)
	if _, err := h.storage.UploadFile(ctx, objectKey, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		Internal(c, "failed to store photo")
		return
	}

	oldKey := profile.PhotoObjectKey
	profile.PhotoObjectKey = objectKey
	if err := h.db.WithContext(ctx).Save(&profile).Error; err != nil {
		Internal(c, "failed to save profile")
		return
	}
	if oldKey != "" {
		if err := h.storage.DeleteObject(ctx, oldKey); err != nil {
			h.logger.Warn("delete previous photo failed",
				slog.String("object_key", oldKey),
				slog.Any("error", err),
			)
		}
	}

	c.JSON(http.StatusOK, h.newProfileResponse(c, profile))
}

// scanPhoto 通过 clamd 扫描上传内容；发现病毒即返回错误。
func (h *ProfileHandler) scanPhoto(data []byte) error {
	clamdClient := clamd.NewClamd(h.clamdAddr)

	abortChan := make(chan bool)
	defer close(abortChan)

	scanChan, err := clamdClient.ScanStream(bytes.NewReader(data), abortChan)
	if err != nil {
		return fmt.Errorf("scan stream: %w", err)
	}
	for result := range scanChan {
		if result.Status != clamd.RES_OK {
			return fmt.Errorf("scan status %s: %s", result.Status, result.Description)
		}
	}
	return nil
}
