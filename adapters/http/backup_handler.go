package http

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	backupUC "github.com/khoahotran/skillsync/internal/application/usecase/backup"
	profileUC "github.com/khoahotran/skillsync/internal/application/usecase/profile"
	"github.com/khoahotran/skillsync/pkg/logger"
)

type BackupHandler struct {
	backupUseCase *backupUC.BackupUseCase
	logger        logger.Logger
}

func NewBackupHandler(uc *backupUC.BackupUseCase, log logger.Logger) *BackupHandler {
	return &BackupHandler{
		backupUseCase: uc,
		logger:        log,
	}
}

func (h *BackupHandler) DownloadBackup(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	out, err := h.backupUseCase.ExecuteExport(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": out.Filename}))
	c.Data(http.StatusOK, "application/json; charset=utf-8", out.Data)
}

// RestoreBackup takes the backup file as the raw request body.
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	restored, err := h.backupUseCase.ExecuteRestore(c.Request.Context(), backupUC.RestoreInput{SessionID: id, File: c.Request.Body})
	if err != nil {
		c.Error(err)
		return
	}
	out := profileUC.BuildDashboard(restored)
	out.Applied = true
	c.JSON(http.StatusOK, ToDashboardDTO(out))
}
