package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"smartfolio/internal/database"
	"smartfolio/internal/errcode"
	"smartfolio/internal/records"
	"smartfolio/internal/render"
	"smartfolio/internal/resume"
	"smartfolio/internal/storage"
	"smartfolio/internal/tasks"
)

// ExportTaskHandler 负责消费异步简历导出任务。
type ExportTaskHandler struct {
	db            *gorm.DB
	loader        *records.Loader
	engine        render.Engine
	storage       *storage.Client
	redisClient   *redis.Client
	logger        *slog.Logger
	renderTimeout time.Duration
}

// NewExportTaskHandler 创建任务处理器。
func NewExportTaskHandler(
	db *gorm.DB,
	engine render.Engine,
	storageClient *storage.Client,
	redisClient *redis.Client,
	logger *slog.Logger,
	renderTimeout time.Duration,
) *ExportTaskHandler {
	return &ExportTaskHandler{
		db:            db,
		loader:        records.NewLoader(db),
		engine:        engine,
		storage:       storageClient,
		redisClient:   redisClient,
		logger:        logger,
		renderTimeout: renderTimeout,
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *ExportTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.ResumeExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Uint64("export_id", uint64(payload.ExportID)),
		slog.Uint64("user_id", uint64(payload.UserID)),
	)
	log.Info("starting resume export task")

	var export database.ResumeExport
	if err := h.db.WithContext(ctx).First(&export, payload.ExportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("export record not found, skipping task")
			return nil
		}
		log.Error("query export record failed", slog.Any("error", err))
		return err
	}

	// 迟到的重试不再重复渲染与上传已完成的导出。
	if export.Status == "completed" {
		log.Info("export already completed, skipping task")
		return nil
	}

	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}

		msg := strings.TrimSpace(retErr.Error())
		if err := h.db.WithContext(ctx).Model(&export).Updates(map[string]any{
			"status":        "failed",
			"error_message": msg,
		}).Error; err != nil {
			log.Error("mark export failed", slog.Any("error", err))
		}

		notify := ExportNotifyMessage{
			Status:        "error",
			ExportID:      export.ID,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.RenderFailed,
			ErrorMessage:  msg,
		}
		if err := h.publishExportNotify(ctx, export.UserID, notify); err != nil {
			log.Error("publish export error notification failed", slog.Any("error", err))
		}
	}()

	doc, err := h.loader.LoadDocument(ctx, export.UserID)
	if err != nil {
		log.Error("load resume document failed", slog.Any("error", err))
		return err
	}

	doc, opts := resume.Normalize(doc, resume.Options{
		Template: resume.Template(export.Template),
		PageSize: resume.PageSize(export.PageSize),
		FileName: export.FileName,
	})

	html, err := resume.RenderHTML(doc, opts)
	if err != nil {
		log.Error("render resume markup failed", slog.Any("error", err))
		return err
	}

	renderCtx, cancel := context.WithTimeout(ctx, h.renderTimeout)
	defer cancel()

	pdfBytes, err := h.engine.RenderPDF(renderCtx, html, opts.PageSize)
	if err != nil {
		log.Error("render pdf failed",
			slog.String("provider", h.engine.Provider()),
			slog.Any("error", err),
		)
		return err
	}

	objectName := fmt.Sprintf("generated-resumes/%d/%s.pdf", export.UserID, uuid.NewString())
	pdfReader := bytes.NewReader(pdfBytes)
	if _, err := h.storage.UploadFile(ctx, objectName, pdfReader, int64(len(pdfBytes)), "application/pdf"); err != nil {
		log.Error("upload pdf failed", slog.Any("error", err))
		return err
	}

	update := map[string]any{
		"pdf_object_key": objectName,
		"status":         "completed",
		"file_name":      resume.SanitizeFileName(opts.FileName) + ".pdf",
	}
	if err := h.db.WithContext(ctx).Model(&export).Updates(update).Error; err != nil {
		log.Error("update export record failed", slog.Any("error", err))
		return err
	}

	notify := ExportNotifyMessage{
		Status:        "completed",
		ExportID:      export.ID,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
	}
	// 行已标记 completed，通知失败只记录，返回错误会让 asynq 重跑整个任务。
	if err := h.publishExportNotify(ctx, export.UserID, notify); err != nil {
		log.Error("publish export notification failed", slog.Any("error", err))
	}

	log.Info("resume export task completed")
	return nil
}

func (h *ExportTaskHandler) publishExportNotify(ctx context.Context, userID uint, notify ExportNotifyMessage) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := fmt.Sprintf("user_notify:%d", userID)
	if err := h.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
